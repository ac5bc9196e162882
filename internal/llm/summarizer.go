package llm

import (
	"context"
	"fmt"

	"github.com/citelens/citelens/internal/model"
)

// Summarizer wraps a provider and turns reports into LLMSummary
// attachments. It collects the source-URL allow-list from the report
// itself so the model can never cite a URL the citations did not.
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer creates a summarizer, or an error when the provider is
// misconfigured. A disabled provider yields a summarizer whose
// IsEnabled returns false.
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return &Summarizer{provider: provider, config: config}, nil
}

// IsEnabled reports whether a provider is configured.
func (s *Summarizer) IsEnabled() bool {
	return s != nil && s.provider != nil
}

// Summarize generates the summary attachment for a report. Failures
// are returned to the caller to surface as warnings; the report itself
// is already complete.
func (s *Summarizer) Summarize(ctx context.Context, report *model.Report) (*model.LLMSummary, error) {
	if !s.IsEnabled() {
		return nil, nil
	}
	if report == nil {
		return nil, fmt.Errorf("nil report")
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Report:     report,
		SourceURLs: sourceURLs(report),
	})
	if err != nil {
		return nil, err
	}

	summary := &model.LLMSummary{
		Enabled:        true,
		Provider:       s.provider.Name(),
		Model:          resp.Model,
		StrictEvidence: s.config.StrictEvidence,
		SummaryMD:      resp.Summary,
	}

	if len(resp.CitedURLs) > 0 && !s.config.StrictEvidence {
		summary.Warnings = append(summary.Warnings,
			"strict evidence mode disabled: cited URLs were not checked against the allow-list")
	}

	return summary, nil
}

// sourceURLs collects the deduplicated citation source URLs.
func sourceURLs(report *model.Report) []string {
	seen := make(map[string]bool)
	var urls []string
	for _, c := range report.Citations {
		if c.Citation == nil || c.Citation.SourceURL == "" {
			continue
		}
		if !seen[c.Citation.SourceURL] {
			seen[c.Citation.SourceURL] = true
			urls = append(urls, c.Citation.SourceURL)
		}
	}
	return urls
}
