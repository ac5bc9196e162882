package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/citelens/citelens/internal/model"
)

// Renderer writes reports as JSON, Markdown, and a stdout summary.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderReport writes the configured outputs for a report.
func (p *Pipeline) RenderReport(report *model.Report, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(report)
	return nil
}

// RenderJSON writes the report as indented JSON.
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report.
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	b.WriteString("# Citation Verification Report\n\n")
	if report.Source != "" {
		fmt.Fprintf(&b, "Source: %s\n\n", report.Source)
	}
	fmt.Fprintf(&b, "Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))

	fmt.Fprintf(&b, "## Summary\n\n")
	fmt.Fprintf(&b, "| Total | Verified | Partial | Missed | Pending | Unknown |\n")
	fmt.Fprintf(&b, "|------:|---------:|--------:|-------:|--------:|--------:|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d | %d | %d |\n\n",
		report.Summary.Total, report.Summary.Verified, report.Summary.Partial,
		report.Summary.Missed, report.Summary.Pending, report.Summary.Unknown)

	b.WriteString("## Citations\n\n")
	for i, c := range report.Citations {
		fmt.Fprintf(&b, "### %d. %s\n\n", i+1, citationLabel(c))
		fmt.Fprintf(&b, "- Outcome: %s\n", statusLabel(c.Status))
		if c.Verification != nil && c.Verification.Status != "" {
			fmt.Fprintf(&b, "- Search status: `%s`\n", c.Verification.Status)
		}
		if c.TrustLevel != "" {
			fmt.Fprintf(&b, "- Trust level: %s\n", c.TrustLevel)
		}
		if c.Image != nil {
			fmt.Fprintf(&b, "- Evidence image: %s\n", c.Image.Src)
		}
		if c.Verification != nil && len(c.Verification.SearchAttempts) > 0 {
			fmt.Fprintf(&b, "- Attempts: %d\n", len(c.Verification.SearchAttempts))
		}
		b.WriteString("\n")
	}

	if report.LLM != nil && report.LLM.Enabled && report.LLM.SummaryMD != "" {
		b.WriteString("## LLM Summary (informational, never affects classification)\n\n")
		b.WriteString(report.LLM.SummaryMD)
		b.WriteString("\n\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\nGenerated by citelens. Classification reflects search support, not truth.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// RenderSummary prints the aggregate counts to stdout.
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Printf("\nCitations: %d total, %d verified (%d partial), %d missed, %d pending, %d unknown\n",
		report.Summary.Total, report.Summary.Verified, report.Summary.Partial,
		report.Summary.Missed, report.Summary.Pending, report.Summary.Unknown)
}

func citationLabel(c model.CitationResult) string {
	if c.Citation != nil && c.Citation.Phrase != "" {
		phrase := c.Citation.Phrase
		if len(phrase) > 80 {
			phrase = phrase[:77] + "..."
		}
		return fmt.Sprintf("%q", phrase)
	}
	return "(no citation text)"
}

// statusLabel renders the status flags in priority order. Partial is
// checked through the same flags the classifier set, never re-derived
// from the raw search status.
func statusLabel(s model.CitationStatus) string {
	switch {
	case s.IsPartialMatch:
		return "partially verified"
	case s.IsVerified:
		return "verified"
	case s.IsMiss:
		return "not found"
	case s.IsPending:
		return "verification in progress"
	default:
		return "not yet verified"
	}
}
