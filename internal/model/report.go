package model

import "time"

// Report is the complete output of a classify or verify run.
type Report struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Source      string           `json:"source,omitempty"` // input file or URL the citations came from
	Citations   []CitationResult `json:"citations"`
	Summary     Summary          `json:"summary"`

	LLM *LLMSummary `json:"llm,omitempty"` // optional, never affects classification
}

// CitationResult pairs a citation with its verification record and the
// trust engine's reading of it.
type CitationResult struct {
	Citation     *Citation      `json:"citation,omitempty"`
	Verification *Verification  `json:"verification,omitempty"`
	Status       CitationStatus `json:"status"`
	TrustLevel   TrustLevel     `json:"trust_level,omitempty"`
	Image        *ExpandedImage `json:"image,omitempty"`
}

// Summary aggregates classification counts across a report.
type Summary struct {
	Total    int `json:"total"`
	Verified int `json:"verified"`
	Partial  int `json:"partial"`
	Missed   int `json:"missed"`
	Pending  int `json:"pending"`
	Unknown  int `json:"unknown"` // no status flags at all
}

// FetchMeta contains HTTP metadata from fetching a source document.
type FetchMeta struct {
	StatusCode   int               `json:"status_code"`
	ContentType  string            `json:"content_type,omitempty"`
	LastModified string            `json:"last_modified,omitempty"`
	ETag         string            `json:"etag,omitempty"`
	Headers      map[string]string `json:"headers,omitempty"`
}

// LLMSummary contains the optional LLM-generated report summary.
// CRITICAL: this never affects classification and is clearly separated.
type LLMSummary struct {
	Enabled        bool     `json:"enabled"`
	Provider       string   `json:"provider,omitempty"`
	Model          string   `json:"model,omitempty"`
	StrictEvidence bool     `json:"strict_evidence"`
	SummaryMD      string   `json:"summary_md,omitempty"`
	Warnings       []string `json:"warnings,omitempty"`
}
