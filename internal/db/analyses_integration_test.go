//go:build integration

package db

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/career-matcher/internal/matching"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	db, err := Connect(ctx, dsn)
	require.NoError(t, err, "failed to connect to test database")
	require.NoError(t, db.EnsureSchema(ctx))

	return db
}

func cleanupAnalysis(t *testing.T, db *DB, id uuid.UUID) {
	t.Helper()
	_, _ = db.DeleteAnalysis(context.Background(), id)
}

func TestIntegration_Analysis_CRUD(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	resume := "Built services in Python and packaged them with Docker."
	jd := "Python, Docker, Kubernetes and Terraform required."
	report := matching.NewMatcher(nil).Report(resume, jd)
	fp := matching.Fingerprint(resume, jd) + "-" + uuid.NewString()

	saved, err := db.SaveAnalysis(ctx, NewAnalysisInput("integration", jd, fp, &report))
	require.NoError(t, err)
	defer cleanupAnalysis(t, db, saved.ID)

	assert.NotEqual(t, uuid.Nil, saved.ID)
	assert.Equal(t, 50, saved.Score)
	assert.Equal(t, "fair", saved.Band)
	assert.Equal(t, []string{"Python", "Docker"}, saved.FoundKeywords)
	assert.False(t, saved.CreatedAt.IsZero())

	t.Run("get by id", func(t *testing.T) {
		got, err := db.GetAnalysis(ctx, saved.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, report.Result, got.Result())
	})

	t.Run("get missing", func(t *testing.T) {
		got, err := db.GetAnalysis(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("find by fingerprint", func(t *testing.T) {
		got, err := db.FindByFingerprint(ctx, fp)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, saved.ID, got.ID)

		none, err := db.FindByFingerprint(ctx, "no-such-fingerprint")
		require.NoError(t, err)
		assert.Nil(t, none)
	})

	t.Run("list includes saved", func(t *testing.T) {
		list, err := db.ListAnalyses(ctx, MaxListLimit, 0)
		require.NoError(t, err)

		var ids []uuid.UUID
		for _, a := range list {
			ids = append(ids, a.ID)
		}
		assert.Contains(t, ids, saved.ID)
	})
}

func TestIntegration_Analysis_DeleteAndPing(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	require.NoError(t, db.Ping(ctx))

	report := matching.NewMatcher(nil).Report("React", "React")
	saved, err := db.SaveAnalysis(ctx, NewAnalysisInput("delete-me", "React", uuid.NewString(), &report))
	require.NoError(t, err)

	deleted, err := db.DeleteAnalysis(ctx, saved.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err := db.GetAnalysis(ctx, saved.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	deleted, err = db.DeleteAnalysis(ctx, saved.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestIntegration_Analysis_Baseline(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	report := matching.NewMatcher(nil).Report("anything", "We need a team player")
	saved, err := db.SaveAnalysis(ctx, NewAnalysisInput("", "We need a team player", uuid.NewString(), &report))
	require.NoError(t, err)
	defer cleanupAnalysis(t, db, saved.ID)

	assert.True(t, saved.Baseline)
	assert.Equal(t, []string{}, saved.FoundKeywords)
	assert.Equal(t, []string{}, saved.MissingKeywords)
	assert.Equal(t, 80, saved.Score)
}
