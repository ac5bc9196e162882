// Package llm generates an optional narrative summary of a citation
// verification report. The summary is informational only and never
// influences classification.
package llm

import (
	"context"
	"fmt"

	"github.com/citelens/citelens/internal/model"
)

// Provider is one LLM backend capable of summarizing a report.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Summarize generates a summary with strict evidence mode.
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks that the provider is configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest is the input to a provider.
type SummarizeRequest struct {
	// Report is the verification report to summarize.
	Report *model.Report

	// SourceURLs is the STRICT allow-list of URLs the model may cite.
	// Any URL in the response outside this list fails the request.
	SourceURLs []string

	// Model overrides the configured model name.
	Model string

	// MaxTokens limits the response length.
	MaxTokens int
}

// SummarizeResponse is a provider's output.
type SummarizeResponse struct {
	Summary    string
	CitedURLs  []string
	Model      string
	TokensUsed int
}

// Config holds provider configuration.
type Config struct {
	Provider       string // "openai", "ollama", "" (disabled)
	Model          string
	APIKey         string
	BaseURL        string
	Timeout        int // seconds
	StrictEvidence bool
	MaxTokens      int
}

// ConfigFromModel converts the runtime LLM configuration.
func ConfigFromModel(cfg model.LLMConfig) Config {
	return Config{
		Provider:       cfg.Provider,
		Model:          cfg.Model,
		APIKey:         cfg.APIKey,
		BaseURL:        cfg.BaseURL,
		Timeout:        30,
		StrictEvidence: cfg.StrictEvidence,
		MaxTokens:      1000,
	}
}

// BuildPrompt constructs the default summarization prompt. The model is
// told which search outcomes back each citation and may cite only the
// allow-listed source URLs.
func BuildPrompt(report *model.Report, sourceURLs []string) string {
	prompt := fmt.Sprintf(`You are summarizing a citation verification report. The tool checks whether quoted phrases appear at their cited source locations - it NEVER asserts the claims themselves are true.

CRITICAL RULES:
1. You MUST ONLY cite URLs from this allowed list:
%s

2. DO NOT infer, speculate, or cite external sources beyond this list.
3. Describe search support, not truth: "the phrase was found", "only the anchor text matched", "the phrase was not found at the cited location".
4. Never say "this claim is true" or "this claim is false".

Report Summary:
- Citations checked: %d
- Verified: %d (of which partial: %d)
- Missed: %d
- Pending: %d

Outcomes:
`, joinURLs(sourceURLs), report.Summary.Total, report.Summary.Verified,
		report.Summary.Partial, report.Summary.Missed, report.Summary.Pending)

	for i, c := range report.Citations {
		if i >= 10 {
			prompt += fmt.Sprintf("... and %d more citations\n", len(report.Citations)-10)
			break
		}
		status := "unknown"
		if c.Verification != nil && c.Verification.Status != "" {
			status = string(c.Verification.Status)
		}
		phrase := ""
		if c.Citation != nil {
			phrase = c.Citation.Phrase
		}
		if len(phrase) > 100 {
			phrase = phrase[:97] + "..."
		}
		prompt += fmt.Sprintf("- %q: %s (trust: %s)\n", phrase, status, c.TrustLevel)
	}

	prompt += "\nProvide a 3-4 sentence summary focusing on how well the citations are supported."
	return prompt
}

func joinURLs(urls []string) string {
	if len(urls) == 0 {
		return "(No source URLs available)"
	}
	result := ""
	for i, u := range urls {
		if i >= 20 {
			result += fmt.Sprintf("\n... and %d more URLs", len(urls)-20)
			break
		}
		result += fmt.Sprintf("\n- %s", u)
	}
	return result
}
