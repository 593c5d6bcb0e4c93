// Package matching scores a resume against a job description using a fixed keyword catalog.
package matching

import (
	"strconv"
	"strings"
)

// defaultTerms is the built-in technology catalog, in display order.
var defaultTerms = []string{
	"React", "TypeScript", "Node.js", "Python", "Java", "Docker", "AWS", "Kubernetes",
	"SQL", "NoSQL", "MongoDB", "PostgreSQL", "GraphQL", "REST", "API",
	"Git", "CI/CD", "Terraform", "Next.js", "Vue", "Angular", "System Design",
	"Microservices", "Testing", "Jest", "Cypress", "Machine Learning", "AI",
	"Communication", "Leadership", "Agile", "Scrum",
}

// Catalog is an ordered, immutable list of canonical skill terms.
// A Catalog is safe for concurrent use once constructed.
type Catalog struct {
	terms []string
	lower []string
}

// NewCatalog builds a catalog from terms, preserving order and display case.
// Terms are trimmed; empty terms and case-insensitive duplicates are rejected.
func NewCatalog(terms []string) (*Catalog, error) {
	c := &Catalog{
		terms: make([]string, 0, len(terms)),
		lower: make([]string, 0, len(terms)),
	}
	seen := make(map[string]int, len(terms))

	for i, raw := range terms {
		term := strings.TrimSpace(raw)
		if term == "" {
			return nil, &CatalogError{Index: i, Reason: "term is empty"}
		}
		key := strings.ToLower(term)
		if prev, dup := seen[key]; dup {
			return nil, &CatalogError{Index: i, Term: term, Reason: "duplicates term at index " + strconv.Itoa(prev)}
		}
		seen[key] = i
		c.terms = append(c.terms, term)
		c.lower = append(c.lower, key)
	}

	return c, nil
}

// DefaultCatalog returns the built-in technology catalog.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultTerms)
	if err != nil {
		// defaultTerms is a compile-time constant list
		panic(err)
	}
	return c
}

// Terms returns a copy of the catalog terms in order.
func (c *Catalog) Terms() []string {
	out := make([]string, len(c.terms))
	copy(out, c.terms)
	return out
}

// Len returns the number of terms.
func (c *Catalog) Len() int {
	return len(c.terms)
}

// Required returns the catalog terms that occur in the job description,
// compared case-insensitively by substring, in catalog order.
func (c *Catalog) Required(jobDescription string) []string {
	return c.required(strings.ToLower(jobDescription))
}

func (c *Catalog) required(jdLower string) []string {
	required := make([]string, 0)
	for i, key := range c.lower {
		if strings.Contains(jdLower, key) {
			required = append(required, c.terms[i])
		}
	}
	return required
}
