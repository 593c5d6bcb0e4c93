package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		schema  string
		file    string
		content string
		wantErr string
	}{
		{
			name:    "valid catalog",
			schema:  "catalog",
			file:    "catalog.json",
			content: `{"keywords": ["Go", "Rust"]}`,
		},
		{
			name:    "valid toml catalog",
			schema:  "catalog",
			file:    "catalog.toml",
			content: `keywords = ["Go"]`,
		},
		{
			name:    "catalog with case-insensitive duplicate",
			schema:  "catalog",
			file:    "dup.json",
			content: `{"keywords": ["Go", "go"]}`,
			wantErr: "duplicates term",
		},
		{
			name:    "catalog missing keywords",
			schema:  "catalog",
			file:    "empty.json",
			content: `{"terms": ["Go"]}`,
			wantErr: "not a valid catalog",
		},
		{
			name:    "valid analysis result",
			schema:  "analysis_result",
			file:    "result.json",
			content: `{"score": 80, "missingKeywords": [], "foundKeywords": [], "structureScore": 90, "impactScore": 70}`,
		},
		{
			name:    "analysis result out of range",
			schema:  "analysis_result",
			file:    "bad_result.json",
			content: `{"score": 180, "missingKeywords": [], "foundKeywords": [], "structureScore": 90, "impactScore": 70}`,
			wantErr: "not a valid analysis_result",
		},
		{
			name:    "unknown schema",
			schema:  "resume",
			file:    "x.json",
			content: `{}`,
			wantErr: "unknown schema",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.content)

			out, err := run(t, nil, "", "validate", "--schema", tt.schema, "--file", path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, "is a valid "+tt.schema)
		})
	}
}

func TestValidate_PrintsFieldErrors(t *testing.T) {
	path := writeFile(t, t.TempDir(), "result.json", `{"score": 80}`)

	out, err := run(t, nil, "", "validate", "--schema", "analysis_result", "--file", path)
	require.Error(t, err)
	assert.Contains(t, out, "validation failed")
	assert.Contains(t, out, "missingKeywords")
}

func TestValidate_MissingFile(t *testing.T) {
	_, err := run(t, nil, "", "validate", "--schema", "catalog", "--file", "/nonexistent.json")
	assert.ErrorContains(t, err, "failed to read")
}
