package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/jonathan/career-matcher/internal/matching"
	"github.com/jonathan/career-matcher/internal/schemas"
	schemafiles "github.com/jonathan/career-matcher/schemas"
	"github.com/spf13/cobra"
)

// schemaNames maps --schema values to embedded schema files.
var schemaNames = map[string]string{
	"analysis_result": schemafiles.AnalysisResult,
	"catalog":         schemafiles.Catalog,
}

func newValidateCmd(_ *app) *cobra.Command {
	var schemaName, file string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a catalog or analysis result file",
		Long: `Validate a document against one of the embedded JSON schemas.

Catalogs are also checked for empty and duplicate terms, and may be TOML.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			schemaFile, ok := schemaNames[schemaName]
			if !ok {
				return fmt.Errorf("unknown schema %q (want one of: %s)", schemaName, strings.Join(knownSchemas(), ", "))
			}

			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", file, err)
			}

			if schemaName == "catalog" {
				_, err = matching.ParseCatalog(file, data)
			} else {
				err = schemas.ValidateEmbedded(schemaFile, data)
			}

			out := cmd.OutOrStdout()
			if err != nil {
				var ve *schemas.ValidationError
				if errors.As(err, &ve) {
					fmt.Fprint(out, ve.Error())
				}
				return fmt.Errorf("%s is not a valid %s: %w", file, schemaName, err)
			}

			fmt.Fprintf(out, "✓ %s is a valid %s\n", file, schemaName)
			return nil
		},
	}

	cmd.Flags().StringVar(&schemaName, "schema", "", "Schema to validate against: "+strings.Join(knownSchemas(), " or "))
	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to the document to validate")
	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func knownSchemas() []string {
	names := make([]string, 0, len(schemaNames))
	for name := range schemaNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
