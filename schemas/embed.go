// Package schemas holds the JSON Schema documents for catalog files and analysis results.
package schemas

import "embed"

// Schema file names.
const (
	Catalog        = "catalog.schema.json"
	AnalysisResult = "analysis_result.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Read returns the contents of the named schema file.
func Read(name string) ([]byte, error) {
	return files.ReadFile(name)
}

// Names lists the embedded schema files.
func Names() []string {
	return []string{Catalog, AnalysisResult}
}
