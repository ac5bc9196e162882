package verify

import (
	"strings"

	"github.com/citelens/citelens/internal/model"
)

// Searcher runs the search strategy ladder for one citation against a
// fetched document. Strategies are tried in decreasing order of
// strength; every try is appended to the verification's attempt trail,
// and the first success fixes the status and matched variation.
type Searcher struct{}

// NewSearcher creates a new searcher.
func NewSearcher() *Searcher {
	return &Searcher{}
}

// location is where a strategy matched.
type location struct {
	page int
	line int
	text string
}

// Search produces a fresh verification record for the citation. The
// record is complete when it returns: status is never pending/loading
// here, those states belong to callers that poll long-running searches.
func (s *Searcher) Search(c model.Citation, doc *Document) *model.Verification {
	v := &model.Verification{}

	if doc == nil || len(doc.Pages) == 0 || strings.TrimSpace(c.Phrase) == "" {
		v.Status = model.StatusNotFound
		appendAttempt(v, model.SearchAttempt{
			Method: "exact_phrase",
			Phrase: c.Phrase,
			Note:   "nothing to search",
		})
		return v
	}

	citedPage := 0
	if c.Page != nil {
		citedPage = *c.Page
	}
	citedLine := 0
	if c.Line != nil {
		citedLine = *c.Line
	}

	// 1. Full phrase at the cited location, exact then normalized.
	for _, try := range []struct {
		method    string
		variation model.MatchedVariation
		find      func() (location, bool)
	}{
		{"exact_phrase", model.VariationExactPhrase, func() (location, bool) {
			return s.findExact(doc, c.Phrase, citedPage, citedLine)
		}},
		{"normalized_phrase", model.VariationNormalizedPhrase, func() (location, bool) {
			return s.findNormalized(doc, c.Phrase, citedPage, citedLine)
		}},
	} {
		loc, ok := try.find()
		appendLocated(v, try.method, c.Phrase, try.variation, loc, ok)
		if ok {
			v.Status = s.statusForPhraseHit(v, c, doc)
			return v
		}
	}

	// 2. Anchor text alone, exact then normalized.
	if c.AnchorText != "" {
		if loc, ok := s.findExact(doc, c.AnchorText, 0, 0); ok {
			appendLocated(v, "exact_anchor_text", c.AnchorText, model.VariationExactAnchorText, loc, true)
			v.Status = model.StatusFoundAnchorTextOnly
			return v
		}
		appendLocated(v, "exact_anchor_text", c.AnchorText, "", location{}, false)

		if loc, ok := s.findNormalized(doc, c.AnchorText, 0, 0); ok {
			appendLocated(v, "normalized_anchor_text", c.AnchorText, model.VariationNormalizedAnchorText, loc, true)
			v.Status = model.StatusFoundAnchorTextOnly
			return v
		}
		appendLocated(v, "normalized_anchor_text", c.AnchorText, "", location{}, false)
	}

	// 3. Full phrase somewhere other than the cited location.
	if citedPage > 0 {
		if loc, ok := s.findOnOtherPages(doc, c.Phrase, citedPage); ok {
			appendLocated(v, "other_page", c.Phrase, model.VariationNormalizedPhrase, loc, true)
			v.Status = model.StatusFoundOnOtherPage
			return v
		}
		appendLocated(v, "other_page", c.Phrase, "", location{}, false)
	}
	if citedPage > 0 && citedLine > 0 {
		if loc, ok := s.findNormalized(doc, c.Phrase, citedPage, 0); ok && loc.line != citedLine {
			appendLocated(v, "other_line", c.Phrase, model.VariationNormalizedPhrase, loc, true)
			v.Status = model.StatusFoundOnOtherLine
			return v
		}
		appendLocated(v, "other_line", c.Phrase, "", location{}, false)
	}

	// 4. Partial runs of the phrase, then of the anchor.
	docText := s.normalizedText(doc)
	phraseTokens := tokens(c.Phrase)
	if run, n := longestTokenRun(phraseTokens, docText); n >= 2 && n < len(phraseTokens) {
		appendAttempt(v, model.SearchAttempt{
			Method:           "partial_phrase",
			Success:          true,
			Phrase:           c.Phrase,
			MatchedText:      run,
			MatchedVariation: model.VariationPartialPhrase,
		})
		v.Status = model.StatusPartialTextFound
		return v
	}
	appendAttempt(v, model.SearchAttempt{Method: "partial_phrase", Phrase: c.Phrase})

	if anchorTokens := tokens(c.AnchorText); len(anchorTokens) >= 2 {
		if run, n := longestTokenRun(anchorTokens, docText); n >= 2 && n < len(anchorTokens) {
			appendAttempt(v, model.SearchAttempt{
				Method:           "partial_anchor_text",
				Success:          true,
				Phrase:           c.AnchorText,
				MatchedText:      run,
				MatchedVariation: model.VariationPartialAnchorText,
			})
			v.Status = model.StatusPartialTextFound
			return v
		}
		appendAttempt(v, model.SearchAttempt{Method: "partial_anchor_text", Phrase: c.AnchorText})
	}

	// 5. First word of the phrase as a last resort.
	if len(phraseTokens) > 0 {
		first := phraseTokens[0]
		if strings.Contains(" "+docText+" ", " "+first+" ") {
			appendAttempt(v, model.SearchAttempt{
				Method:           "first_word",
				Success:          true,
				Phrase:           c.Phrase,
				MatchedText:      first,
				MatchedVariation: model.VariationFirstWordOnly,
			})
			v.Status = model.StatusFirstWordFound
			return v
		}
		appendAttempt(v, model.SearchAttempt{Method: "first_word", Phrase: c.Phrase})
	}

	v.Status = model.StatusNotFound
	return v
}

// statusForPhraseHit decides between found and
// found_phrase_missed_anchor_text after a full-phrase hit, logging the
// anchor check as its own attempt.
func (s *Searcher) statusForPhraseHit(v *model.Verification, c model.Citation, doc *Document) model.SearchStatus {
	if c.AnchorText == "" {
		return model.StatusFound
	}

	if loc, ok := s.findNormalized(doc, c.AnchorText, 0, 0); ok {
		appendLocated(v, "anchor_text_check", c.AnchorText, model.VariationNormalizedAnchorText, loc, true)
		return model.StatusFound
	}

	appendAttempt(v, model.SearchAttempt{
		Method: "anchor_text_check",
		Phrase: c.AnchorText,
		Note:   "phrase matched but anchor text absent",
	})
	return model.StatusFoundPhraseMissedAnchorText
}

// findExact scans for a verbatim substring. A page of 0 searches all
// pages; a line of 0 searches all lines.
func (s *Searcher) findExact(doc *Document, needle string, page, line int) (location, bool) {
	return s.find(doc, page, line, func(text string) bool {
		return strings.Contains(text, needle)
	})
}

// findNormalized scans with whitespace, case, and punctuation folded on
// both sides.
func (s *Searcher) findNormalized(doc *Document, needle string, page, line int) (location, bool) {
	n := normalize(needle)
	if n == "" {
		return location{}, false
	}
	return s.find(doc, page, line, func(text string) bool {
		return strings.Contains(" "+normalize(text)+" ", " "+n+" ")
	})
}

// findOnOtherPages scans every page except the cited one.
func (s *Searcher) findOnOtherPages(doc *Document, needle string, citedPage int) (location, bool) {
	n := normalize(needle)
	for _, p := range doc.Pages {
		if p.Number == citedPage {
			continue
		}
		for i, text := range p.Lines {
			if strings.Contains(text, needle) ||
				(n != "" && strings.Contains(" "+normalize(text)+" ", " "+n+" ")) {
				return location{page: p.Number, line: i + 1, text: text}, true
			}
		}
	}
	return location{}, false
}

func (s *Searcher) find(doc *Document, page, line int, match func(string) bool) (location, bool) {
	for _, p := range doc.Pages {
		if page > 0 && p.Number != page {
			continue
		}
		for i, text := range p.Lines {
			if line > 0 && i+1 != line {
				continue
			}
			if match(text) {
				return location{page: p.Number, line: i + 1, text: text}, true
			}
		}
	}
	return location{}, false
}

// normalizedText joins the whole document into one normalized string
// for token-run scanning.
func (s *Searcher) normalizedText(doc *Document) string {
	var parts []string
	for _, p := range doc.Pages {
		for _, line := range p.Lines {
			parts = append(parts, line)
		}
	}
	return normalize(strings.Join(parts, " "))
}

// appendLocated appends an attempt with the matched location filled in
// on success.
func appendLocated(v *model.Verification, method, phrase string, variation model.MatchedVariation, loc location, ok bool) {
	attempt := model.SearchAttempt{
		Method:  method,
		Success: ok,
		Phrase:  phrase,
	}
	if ok {
		attempt.MatchedText = loc.text
		attempt.MatchedVariation = variation
		page, line := loc.page, loc.line
		attempt.PageSearched = &page
		attempt.LineSearched = &line
	}
	appendAttempt(v, attempt)
}

func appendAttempt(v *model.Verification, a model.SearchAttempt) {
	v.SearchAttempts = append(v.SearchAttempts, a)
}
