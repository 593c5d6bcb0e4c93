package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Analysis Methods
// -----------------------------------------------------------------------------

const analysisColumns = `id, label, job_description, fingerprint, score, content_score,
	structure_score, impact_score, band, baseline, found_keywords, missing_keywords, created_at`

// SaveAnalysis inserts a new analysis and returns the stored row.
func (db *DB) SaveAnalysis(ctx context.Context, input *AnalysisCreateInput) (*Analysis, error) {
	found, err := json.Marshal(nonNil(input.FoundKeywords))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal found keywords: %w", err)
	}
	missing, err := json.Marshal(nonNil(input.MissingKeywords))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal missing keywords: %w", err)
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO analyses (id, label, job_description, fingerprint, score, content_score,
		                       structure_score, impact_score, band, baseline,
		                       found_keywords, missing_keywords)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING `+analysisColumns,
		uuid.New(), input.Label, input.JobDescription, input.Fingerprint,
		input.Score, input.ContentScore, input.StructureScore, input.ImpactScore,
		input.Band, input.Baseline, found, missing,
	)

	a, err := scanAnalysis(row)
	if err != nil {
		return nil, fmt.Errorf("failed to save analysis: %w", err)
	}
	return a, nil
}

// GetAnalysis retrieves an analysis by ID. Returns nil, nil when absent.
func (db *DB) GetAnalysis(ctx context.Context, id uuid.UUID) (*Analysis, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+analysisColumns+` FROM analyses WHERE id = $1`, id)

	a, err := scanAnalysis(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return a, nil
}

// FindByFingerprint returns the newest analysis with the given fingerprint,
// or nil, nil when there is none.
func (db *DB) FindByFingerprint(ctx context.Context, fingerprint string) (*Analysis, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+analysisColumns+` FROM analyses
		 WHERE fingerprint = $1
		 ORDER BY created_at DESC
		 LIMIT 1`, fingerprint)

	a, err := scanAnalysis(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find analysis by fingerprint: %w", err)
	}
	return a, nil
}

// ListAnalyses returns analyses newest first.
func (db *DB) ListAnalyses(ctx context.Context, limit, offset int) ([]Analysis, error) {
	limit, offset = normalizePage(limit, offset)

	rows, err := db.pool.Query(ctx,
		`SELECT `+analysisColumns+` FROM analyses
		 ORDER BY created_at DESC, id
		 LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	analyses := make([]Analysis, 0, limit)
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		analyses = append(analyses, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analyses: %w", err)
	}
	return analyses, nil
}

// DeleteAnalysis removes an analysis and reports whether a row existed.
func (db *DB) DeleteAnalysis(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM analyses WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete analysis: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanAnalysis(row pgx.Row) (*Analysis, error) {
	var a Analysis
	var found, missing []byte

	err := row.Scan(&a.ID, &a.Label, &a.JobDescription, &a.Fingerprint, &a.Score,
		&a.ContentScore, &a.StructureScore, &a.ImpactScore, &a.Band, &a.Baseline,
		&found, &missing, &a.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := decodeKeywords(found, &a.FoundKeywords); err != nil {
		return nil, err
	}
	if err := decodeKeywords(missing, &a.MissingKeywords); err != nil {
		return nil, err
	}
	return &a, nil
}

func decodeKeywords(data []byte, dst *[]string) error {
	*dst = []string{}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode keywords: %w", err)
	}
	if *dst == nil {
		*dst = []string{}
	}
	return nil
}
