package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/career-matcher/internal/matching"
	"github.com/jonathan/career-matcher/internal/observability"
	"github.com/jonathan/career-matcher/internal/parsing"
	"github.com/jonathan/career-matcher/internal/schemas"
	schemafiles "github.com/jonathan/career-matcher/schemas"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	outputText = "text"
	outputJSON = "json"
)

type analyzeOptions struct {
	resume    string
	jobs      []string
	jobFormat string
	catalog   string
	output    string
	delay     time.Duration
}

// labeledReport is the JSON shape of one job when several are analyzed.
type labeledReport struct {
	Label  string          `json:"label"`
	Report matching.Report `json:"report"`
}

func newAnalyzeCmd(a *app) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score a resume against one or more job descriptions",
		Long: `Score a resume against job descriptions and print the match report.

Pass --job more than once to compare several roles; a summary table follows
the individual reports. Use "-" as the resume path to read it from stdin.`,
		Example: `  career_agent analyze --resume resume.txt --job backend.txt
  career_agent analyze --resume resume.txt --job a.html --job b.html --job-format html --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("delay") {
				opts.delay = a.cfg.Latency()
			}
			return runAnalyze(cmd, a, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.resume, "resume", "r", "", "Path to resume text file, or - for stdin (required)")
	cmd.Flags().StringArrayVarP(&opts.jobs, "job", "j", nil, "Path to job description file (required, repeatable)")
	cmd.Flags().StringVar(&opts.jobFormat, "job-format", "text", "Job description format: text or html")
	cmd.Flags().StringVar(&opts.catalog, "catalog", "", "Path to .json or .toml keyword catalog (overrides CATALOG_PATH)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", outputText, "Output format: text or json")
	cmd.Flags().DurationVar(&opts.delay, "delay", 0, "Simulated analysis latency (overrides SIMULATED_LATENCY)")

	_ = cmd.MarkFlagRequired("resume")
	_ = cmd.MarkFlagRequired("job")
	return cmd
}

func runAnalyze(cmd *cobra.Command, a *app, opts *analyzeOptions) error {
	if opts.output != outputText && opts.output != outputJSON {
		return fmt.Errorf("unknown output format %q (want text or json)", opts.output)
	}
	format, err := parsing.ParseFormat(opts.jobFormat)
	if err != nil {
		return err
	}

	catalog, err := a.catalog(opts.catalog)
	if err != nil {
		return err
	}
	matcher := matching.NewAsyncMatcher(a.matcher(catalog), matching.WithLatency(opts.delay))

	resume, err := readInput(cmd.InOrStdin(), opts.resume)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	reports := make([]labeledReport, 0, len(opts.jobs))
	for _, path := range opts.jobs {
		raw, err := readInput(cmd.InOrStdin(), path)
		if err != nil {
			return fmt.Errorf("failed to read job description: %w", err)
		}
		text, err := parsing.Prepare(raw, format)
		if err != nil {
			return fmt.Errorf("failed to prepare %s: %w", path, err)
		}

		report, err := matcher.ReportContext(cmd.Context(), resume, text)
		if err != nil {
			return fmt.Errorf("analysis of %s interrupted: %w", path, err)
		}
		a.log.Debug("analyzed",
			zap.String("job", path),
			zap.Int("score", report.Score),
			zap.Int("required", len(report.RequiredKeywords)),
		)
		reports = append(reports, labeledReport{Label: filepath.Base(path), Report: report})
	}

	if opts.output == outputJSON {
		return writeJSONReports(cmd.OutOrStdout(), reports)
	}
	return writeTextReports(cmd.OutOrStdout(), reports)
}

func writeTextReports(w io.Writer, reports []labeledReport) error {
	printer := observability.NewPrinter(w)
	for i := range reports {
		if err := printer.PrintReport(reports[i].Label, &reports[i].Report); err != nil {
			return err
		}
	}
	if len(reports) < 2 {
		return nil
	}

	rows := make([]observability.SummaryRow, len(reports))
	for i := range reports {
		rows[i] = observability.SummaryRow{Label: reports[i].Label, Report: &reports[i].Report}
	}
	return printer.PrintSummary(rows)
}

// writeJSONReports prints a single report as an object, several as an array.
// Every report is checked against the analysis result schema first.
func writeJSONReports(w io.Writer, reports []labeledReport) error {
	for _, r := range reports {
		data, err := json.Marshal(r.Report)
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		if err := schemas.ValidateEmbedded(schemafiles.AnalysisResult, data); err != nil {
			return fmt.Errorf("report for %s failed schema check: %w", r.Label, err)
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if len(reports) == 1 {
		return enc.Encode(reports[0].Report)
	}
	return enc.Encode(reports)
}

// readInput reads path, or r when path is "-".
func readInput(r io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(r)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
