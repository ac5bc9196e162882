package model

// TrustLevel is the coarse confidence bucket derived from how a match
// was found.
type TrustLevel string

const (
	TrustHigh   TrustLevel = "high"
	TrustMedium TrustLevel = "medium"
	TrustLow    TrustLevel = "low"
)

// CitationStatus is the classifier's output, consumed by the rendering
// layer to choose visual treatment.
//
// Invariants: at most one of IsMiss/IsPending is true, and
// IsPartialMatch implies IsVerified. The zero value (all false) is the
// valid "no verification yet" state, distinct from pending.
type CitationStatus struct {
	IsVerified     bool `json:"is_verified"`
	IsMiss         bool `json:"is_miss"`
	IsPartialMatch bool `json:"is_partial_match"`
	IsPending      bool `json:"is_pending"`
}

// ExpandedImage is a validated evidence image ready for a rendering
// sink. Src is guaranteed to have passed source validation.
type ExpandedImage struct {
	Src          string        `json:"src"`
	Dimensions   *Dimensions   `json:"dimensions,omitempty"`
	HighlightBox *HighlightBox `json:"highlight_box,omitempty"`
	TextItems    []TextItem    `json:"text_items"`
}
