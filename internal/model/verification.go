package model

// SearchStatus is the enumerated outcome of a verification pass.
// Exactly one status is assigned per verification; records are replaced
// wholesale on progress updates, never edited in place by consumers.
type SearchStatus string

const (
	StatusFound                       SearchStatus = "found"
	StatusFoundPhraseMissedAnchorText SearchStatus = "found_phrase_missed_anchor_text"
	StatusFoundAnchorTextOnly         SearchStatus = "found_anchor_text_only"
	StatusFoundOnOtherPage            SearchStatus = "found_on_other_page"
	StatusFoundOnOtherLine            SearchStatus = "found_on_other_line"
	StatusPartialTextFound            SearchStatus = "partial_text_found"
	StatusFirstWordFound              SearchStatus = "first_word_found"
	StatusNotFound                    SearchStatus = "not_found"
	StatusPending                     SearchStatus = "pending"
	StatusLoading                     SearchStatus = "loading"
)

// IsPartial reports whether the status counts as a partial match.
// This is the single source of truth for partial-match membership;
// every call site must consult it rather than re-deriving the set.
func (s SearchStatus) IsPartial() bool {
	switch s {
	case StatusFoundAnchorTextOnly,
		StatusFoundOnOtherPage,
		StatusFoundOnOtherLine,
		StatusPartialTextFound,
		StatusFirstWordFound:
		return true
	default:
		return false
	}
}

// MatchedVariation describes how a successful search attempt matched text.
// It is used only to derive a trust level.
type MatchedVariation string

const (
	VariationExactPhrase          MatchedVariation = "exact_phrase"
	VariationNormalizedPhrase     MatchedVariation = "normalized_phrase"
	VariationExactAnchorText      MatchedVariation = "exact_anchor_text"
	VariationNormalizedAnchorText MatchedVariation = "normalized_anchor_text"
	VariationPartialPhrase        MatchedVariation = "partial_phrase"
	VariationPartialAnchorText    MatchedVariation = "partial_anchor_text"
	VariationFirstWordOnly        MatchedVariation = "first_word_only"
)

// SearchAttempt records one search strategy tried during verification.
// A verification holds an ordered, append-only sequence of these.
type SearchAttempt struct {
	Method           string           `json:"method"`
	Success          bool             `json:"success"`
	Phrase           string           `json:"phrase,omitempty"`
	MatchedText      string           `json:"matched_text,omitempty"`
	MatchedVariation MatchedVariation `json:"matched_variation,omitempty"`
	PageSearched     *int             `json:"page_searched,omitempty"`
	LineSearched     *int             `json:"line_searched,omitempty"`
	Note             string           `json:"note,omitempty"`
}

// Dimensions holds the pixel size of an evidence image.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// HighlightBox marks the matched region on a page image.
type HighlightBox struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// TextItem is one positioned text fragment on a page image.
type TextItem struct {
	Text   string  `json:"text"`
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Page is one candidate page captured during verification.
type Page struct {
	PageNumber   int           `json:"page_number"`
	IsMatchPage  bool          `json:"is_match_page"`
	Source       string        `json:"source,omitempty"`
	Dimensions   *Dimensions   `json:"dimensions,omitempty"`
	HighlightBox *HighlightBox `json:"highlight_box,omitempty"`
	TextItems    []TextItem    `json:"text_items,omitempty"`
}

// Document carries the legacy single-image evidence fields.
type Document struct {
	VerifiedPageNumber          int         `json:"verified_page_number,omitempty"`
	VerificationImageSrc        string      `json:"verification_image_src,omitempty"`
	VerificationImageDimensions *Dimensions `json:"verification_image_dimensions,omitempty"`
}

// Proof carries the hosted proof-image evidence field.
type Proof struct {
	ProofImageURL string `json:"proof_image_url,omitempty"`
}

// Verification is the raw result of an automated attempt to confirm a
// citation. Any field may be absent; absence is always valid input.
// The engine only reads these records, it never owns or mutates them.
type Verification struct {
	Status         SearchStatus    `json:"status,omitempty"`
	SearchAttempts []SearchAttempt `json:"search_attempts,omitempty"`
	Document       *Document       `json:"document,omitempty"`
	Proof          *Proof          `json:"proof,omitempty"`
	Pages          []Page          `json:"pages,omitempty"`
}

// Citation is a claim tied to a source location, the input to the
// verification search pipeline.
type Citation struct {
	Phrase     string `json:"phrase"`
	AnchorText string `json:"anchor_text,omitempty"`
	SourceURL  string `json:"source_url"`
	Page       *int   `json:"page,omitempty"`
	Line       *int   `json:"line,omitempty"`
}
