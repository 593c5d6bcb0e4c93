// Package parsing turns caller-supplied job description text into plain text for analysis.
package parsing

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Format names the markup of an input text.
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
)

// noiseSelector matches page furniture that never carries job requirements.
const noiseSelector = "nav, footer, header, script, style, noscript, .ad, .advertisement, .ads, .sidebar, .cookie-banner, .popup"

// JobDescriptionSelectors returns selectors tried, in order, to locate the
// job description inside a pasted page.
func JobDescriptionSelectors() []string {
	return []string{
		".job-description",
		".job-content",
		"#job-description",
		"#job-content",
		".posting-content",
		".job-details",
		"[data-testid='job-description']",
		"main",
		"article",
	}
}

// ParseFormat maps a request value to a Format. Empty means FormatText.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatHTML:
		return FormatHTML, nil
	default:
		return "", &FormatError{Format: s}
	}
}

// Prepare converts text in the given format to plain text.
// Plain text is returned unchanged so that analysis sees exactly what the caller sent.
func Prepare(text string, format Format) (string, error) {
	switch format {
	case "", FormatText:
		return text, nil
	case FormatHTML:
		return ExtractHTMLText(text)
	default:
		return "", &FormatError{Format: string(format)}
	}
}

// ExtractHTMLText parses an HTML fragment or page and returns its readable text.
// Noise elements are removed, then the first matching job description selector
// is used, falling back to the body.
func ExtractHTMLText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", &ParseError{Message: "failed to parse HTML", Cause: err}
	}

	doc.Find(noiseSelector).Remove()
	// Block elements would otherwise run together in Text().
	doc.Find("br, p, li, div, h1, h2, h3, h4, h5, h6, tr").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	var content *goquery.Selection
	for _, selector := range JobDescriptionSelectors() {
		if selection := doc.Find(selector); selection.Length() > 0 {
			content = selection.First()
			break
		}
	}
	if content == nil {
		content = doc.Find("body")
	}

	return CleanText(content.Text()), nil
}

// CleanText normalizes line endings, trims each line and drops blank lines.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
