package matching

import (
	"fmt"
)

// CatalogError indicates a catalog term that cannot be accepted.
type CatalogError struct {
	Index  int
	Term   string
	Reason string
}

func (e *CatalogError) Error() string {
	if e.Term != "" {
		return fmt.Sprintf("invalid catalog term %q at index %d: %s", e.Term, e.Index, e.Reason)
	}
	return fmt.Sprintf("invalid catalog term at index %d: %s", e.Index, e.Reason)
}

// CatalogFileError indicates a catalog file that could not be read or decoded.
type CatalogFileError struct {
	Path    string
	Message string
	Cause   error
}

func (e *CatalogFileError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("catalog file %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("catalog file %s: %s", e.Path, e.Message)
}

func (e *CatalogFileError) Unwrap() error {
	return e.Cause
}
