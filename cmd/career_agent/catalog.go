package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/career-matcher/internal/observability"
	"github.com/spf13/cobra"
)

func newCatalogCmd(a *app) *cobra.Command {
	var path, output string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the active keyword catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := a.catalog(path)
			if err != nil {
				return err
			}

			switch output {
			case outputText:
				return observability.NewPrinter(cmd.OutOrStdout()).PrintCatalog(catalog)
			case outputJSON:
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string][]string{"keywords": catalog.Terms()})
			default:
				return fmt.Errorf("unknown output format %q (want text or json)", output)
			}
		},
	}

	cmd.Flags().StringVar(&path, "catalog", "", "Path to .json or .toml keyword catalog (overrides CATALOG_PATH)")
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text or json")
	return cmd
}
