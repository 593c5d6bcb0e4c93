// Package observability renders analysis reports for the terminal.
package observability

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/career-matcher/internal/matching"
	"github.com/olekukonko/tablewriter"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// barWidth is the number of cells in a score bar
	barWidth = 20
)

// Printer writes human-readable reports.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // terminal output; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", inner, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if utf8.RuneCountInString(line) > inner {
			line = string([]rune(line)[:inner-3]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", inner, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// scoreBar draws score (0..100) as a fixed-width bar.
func scoreBar(score int) string {
	score = max(0, min(100, score))
	filled := score * barWidth / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// PrintReport writes the score summary box followed by a keyword table.
func (p *Printer) PrintReport(title string, r *matching.Report) error {
	if r == nil {
		return nil
	}
	if title == "" {
		title = "ATS MATCH REPORT"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Overall     %3d  %s  %s\n", r.Score, scoreBar(r.Score), strings.ToUpper(string(r.Band)))
	sb.WriteString("\n")
	if r.Baseline {
		sb.WriteString("Keywords      -  no catalog terms in job description\n")
	} else {
		fmt.Fprintf(&sb, "Keywords    %3d  %d of %d found\n", r.ContentScore, len(r.FoundKeywords), len(r.RequiredKeywords))
	}
	fmt.Fprintf(&sb, "Structure   %3d\n", r.StructureScore)
	fmt.Fprintf(&sb, "Impact      %3d", r.ImpactScore)
	p.printBox(title, sb.String())

	if !r.Baseline {
		if err := p.keywordTable(r); err != nil {
			return err
		}
	}
	return p.printRecommendations(r.Recommendations)
}

// printRecommendations lists follow-up actions, if any.
func (p *Printer) printRecommendations(recs []matching.Recommendation) error {
	if len(recs) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("Recommended actions:\n")
	for _, rec := range recs {
		fmt.Fprintf(&sb, "  - %s\n    %s\n", rec.Title, rec.Detail)
	}
	_, err := io.WriteString(p.out, sb.String())
	return err
}

func (p *Printer) keywordTable(r *matching.Report) error {
	found := make(map[string]bool, len(r.FoundKeywords))
	for _, kw := range r.FoundKeywords {
		found[kw] = true
	}

	table := tablewriter.NewWriter(p.out)
	table.Header("Keyword", "Status")
	for _, kw := range r.RequiredKeywords {
		status := "missing"
		if found[kw] {
			status = "found"
		}
		if err := table.Append([]string{kw, status}); err != nil {
			return fmt.Errorf("failed to add keyword row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render keyword table: %w", err)
	}
	return nil
}

// SummaryRow is one line of a multi-job comparison.
type SummaryRow struct {
	Label  string
	Report *matching.Report
}

// PrintSummary writes one table row per job, in the given order.
func (p *Printer) PrintSummary(rows []SummaryRow) error {
	if len(rows) == 0 {
		return nil
	}

	table := tablewriter.NewWriter(p.out)
	table.Header("Job", "Score", "Band", "Missing")
	for _, row := range rows {
		missing := strings.Join(row.Report.MissingKeywords, ", ")
		if missing == "" {
			missing = "-"
		}
		err := table.Append([]string{
			row.Label,
			strconv.Itoa(row.Report.Score),
			string(row.Report.Band),
			missing,
		})
		if err != nil {
			return fmt.Errorf("failed to add summary row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}
	return nil
}

// PrintCatalog lists the catalog terms in matching order.
func (p *Printer) PrintCatalog(c *matching.Catalog) error {
	if c == nil {
		return nil
	}

	table := tablewriter.NewWriter(p.out)
	table.Header("#", "Keyword")
	for i, term := range c.Terms() {
		if err := table.Append([]string{strconv.Itoa(i + 1), term}); err != nil {
			return fmt.Errorf("failed to add catalog row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render catalog: %w", err)
	}

	_, err := fmt.Fprintf(p.out, "%d keywords\n", c.Len())
	return err
}
