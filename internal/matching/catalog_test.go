package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog(t *testing.T) {
	catalog, err := NewCatalog([]string{" Go ", "Rust", "Machine Learning"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Go", "Rust", "Machine Learning"}, catalog.Terms())
	assert.Equal(t, 3, catalog.Len())
}

func TestNewCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		terms     []string
		wantIndex int
	}{
		{"empty term", []string{"Go", ""}, 1},
		{"whitespace term", []string{"   ", "Go"}, 0},
		{"exact duplicate", []string{"Go", "Rust", "Go"}, 2},
		{"case-insensitive duplicate", []string{"Docker", "docker"}, 1},
		{"duplicate after trimming", []string{"AWS", " aws"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.terms)
			require.Error(t, err)

			var catErr *CatalogError
			require.ErrorAs(t, err, &catErr)
			assert.Equal(t, tt.wantIndex, catErr.Index)
		})
	}
}

func TestNewCatalog_DuplicateReason(t *testing.T) {
	_, err := NewCatalog([]string{"Go", "Rust", "Scala", "Java", "Kotlin", "C", "C++", "Zig", "Nim", "Odin", "Elm", "go"})
	require.Error(t, err)

	var catErr *CatalogError
	require.ErrorAs(t, err, &catErr)
	assert.Equal(t, 11, catErr.Index)
	assert.Equal(t, "duplicates term at index 0", catErr.Reason)
}

func TestNewCatalog_EmptyList(t *testing.T) {
	catalog, err := NewCatalog(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, catalog.Len())

	result := Analyze(catalog, "anything", "React")
	assert.Equal(t, BaselineScore, result.Score)
}

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()

	assert.Equal(t, 32, catalog.Len())
	terms := catalog.Terms()
	assert.Equal(t, "React", terms[0])
	assert.Equal(t, "Scrum", terms[len(terms)-1])
}

func TestCatalog_TermsReturnsCopy(t *testing.T) {
	catalog := DefaultCatalog()

	terms := catalog.Terms()
	terms[0] = "Mutated"

	assert.Equal(t, "React", catalog.Terms()[0])
}

func TestCatalog_Required(t *testing.T) {
	catalog := DefaultCatalog()

	// catalog order, not job description order
	assert.Equal(t, []string{"React", "Docker"}, catalog.Required("Docker first, then REACT"))
	// substring containment: "api" inside "rapid"
	assert.Equal(t, []string{"API"}, catalog.Required("rapid delivery"))
	assert.Empty(t, catalog.Required(""))
}

func TestCatalogError_Error(t *testing.T) {
	err := &CatalogError{Index: 2, Term: "Go", Reason: "duplicates term at index 0"}
	assert.Equal(t, `invalid catalog term "Go" at index 2: duplicates term at index 0`, err.Error())

	err = &CatalogError{Index: 1, Reason: "term is empty"}
	assert.Equal(t, "invalid catalog term at index 1: term is empty", err.Error())
}
