package matching

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/career-matcher/internal/schemas"
	schemafiles "github.com/jonathan/career-matcher/schemas"
	"github.com/pelletier/go-toml/v2"
)

// catalogFile is the on-disk catalog layout shared by the JSON and TOML formats.
type catalogFile struct {
	Keywords []string `json:"keywords" toml:"keywords"`
}

// LoadCatalog reads a catalog from a .json or .toml file.
// JSON files are checked against the catalog schema before decoding.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &CatalogFileError{Path: path, Message: "failed to read", Cause: err}
	}
	return ParseCatalog(path, data)
}

// ParseCatalog decodes catalog data, choosing the format from name's extension.
func ParseCatalog(name string, data []byte) (*Catalog, error) {
	var file catalogFile

	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		if err := schemas.ValidateEmbedded(schemafiles.Catalog, data); err != nil {
			return nil, &CatalogFileError{Path: name, Message: "does not match catalog schema", Cause: err}
		}
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, &CatalogFileError{Path: name, Message: "failed to decode JSON", Cause: err}
		}
	case ".toml":
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, &CatalogFileError{Path: name, Message: "failed to decode TOML", Cause: err}
		}
		if len(file.Keywords) == 0 {
			return nil, &CatalogFileError{Path: name, Message: "keywords list is empty"}
		}
	default:
		return nil, &CatalogFileError{Path: name, Message: "unsupported extension (want .json or .toml)"}
	}

	catalog, err := NewCatalog(file.Keywords)
	if err != nil {
		return nil, &CatalogFileError{Path: name, Message: "invalid catalog", Cause: err}
	}
	return catalog, nil
}
