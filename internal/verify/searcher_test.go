package verify

import (
	"testing"

	"github.com/citelens/citelens/internal/model"
)

func intPtr(i int) *int { return &i }

func testDocument() *Document {
	return DocumentFromText(
		"The committee approved the budget on 12 March.\n" +
			"Spending increased by 14 percent year over year.\f" +
			"Appendix A lists all line items.\n" +
			"The budget was approved unanimously by the committee.",
	)
}

func TestSearch_ExactPhraseAtCitedLocation(t *testing.T) {
	s := NewSearcher()
	c := model.Citation{
		Phrase: "approved the budget on 12 March",
		Page:   intPtr(1),
		Line:   intPtr(1),
	}

	v := s.Search(c, testDocument())

	if v.Status != model.StatusFound {
		t.Errorf("Expected found, got %q", v.Status)
	}
	if len(v.SearchAttempts) == 0 {
		t.Fatal("Expected attempt trail")
	}
	first := v.SearchAttempts[0]
	if first.Method != "exact_phrase" || !first.Success {
		t.Errorf("Expected successful exact_phrase first attempt, got %+v", first)
	}
	if first.MatchedVariation != model.VariationExactPhrase {
		t.Errorf("Expected exact_phrase variation, got %q", first.MatchedVariation)
	}
	if first.PageSearched == nil || *first.PageSearched != 1 {
		t.Error("Expected matched page to be recorded")
	}
}

func TestSearch_NormalizedPhrase(t *testing.T) {
	s := NewSearcher()
	c := model.Citation{Phrase: "APPROVED, the Budget; on 12 march"}

	v := s.Search(c, testDocument())

	if v.Status != model.StatusFound {
		t.Errorf("Expected found via normalization, got %q", v.Status)
	}

	var hit *model.SearchAttempt
	for i := range v.SearchAttempts {
		if v.SearchAttempts[i].Success {
			hit = &v.SearchAttempts[i]
			break
		}
	}
	if hit == nil {
		t.Fatal("Expected a successful attempt")
	}
	if hit.MatchedVariation != model.VariationNormalizedPhrase {
		t.Errorf("Expected normalized_phrase variation, got %q", hit.MatchedVariation)
	}
}

func TestSearch_PhraseMissedAnchorText(t *testing.T) {
	s := NewSearcher()
	c := model.Citation{
		Phrase:     "approved the budget on 12 March",
		AnchorText: "fiscal austerity",
	}

	v := s.Search(c, testDocument())

	if v.Status != model.StatusFoundPhraseMissedAnchorText {
		t.Errorf("Expected found_phrase_missed_anchor_text, got %q", v.Status)
	}
}

func TestSearch_AnchorTextOnly(t *testing.T) {
	s := NewSearcher()
	c := model.Citation{
		Phrase:     "the treasury rejected every amendment",
		AnchorText: "Appendix A",
	}

	v := s.Search(c, testDocument())

	if v.Status != model.StatusFoundAnchorTextOnly {
		t.Errorf("Expected found_anchor_text_only, got %q", v.Status)
	}
}

func TestSearch_FoundOnOtherPage(t *testing.T) {
	s := NewSearcher()
	c := model.Citation{
		Phrase: "approved unanimously by the committee",
		Page:   intPtr(1),
	}

	v := s.Search(c, testDocument())

	if v.Status != model.StatusFoundOnOtherPage {
		t.Errorf("Expected found_on_other_page, got %q", v.Status)
	}
}

func TestSearch_FoundOnOtherLine(t *testing.T) {
	s := NewSearcher()
	c := model.Citation{
		Phrase: "Spending increased by 14 percent",
		Page:   intPtr(1),
		Line:   intPtr(1),
	}

	v := s.Search(c, testDocument())

	if v.Status != model.StatusFoundOnOtherLine {
		t.Errorf("Expected found_on_other_line, got %q", v.Status)
	}
}

func TestSearch_PartialTextFound(t *testing.T) {
	s := NewSearcher()
	c := model.Citation{Phrase: "the committee approved the moon landing"}

	v := s.Search(c, testDocument())

	if v.Status != model.StatusPartialTextFound {
		t.Errorf("Expected partial_text_found, got %q", v.Status)
	}

	var hit *model.SearchAttempt
	for i := range v.SearchAttempts {
		if v.SearchAttempts[i].Success {
			hit = &v.SearchAttempts[i]
		}
	}
	if hit == nil || hit.MatchedVariation != model.VariationPartialPhrase {
		t.Errorf("Expected partial_phrase variation, got %+v", hit)
	}
	if hit.MatchedText == "" {
		t.Error("Expected the matched run to be recorded")
	}
}

func TestSearch_FirstWordFound(t *testing.T) {
	s := NewSearcher()
	c := model.Citation{Phrase: "spending cuts were never discussed openly"}

	v := s.Search(c, testDocument())

	if v.Status != model.StatusFirstWordFound {
		t.Errorf("Expected first_word_found, got %q", v.Status)
	}
}

func TestSearch_NotFound(t *testing.T) {
	s := NewSearcher()
	c := model.Citation{Phrase: "zebras migrate across glaciers"}

	v := s.Search(c, testDocument())

	if v.Status != model.StatusNotFound {
		t.Errorf("Expected not_found, got %q", v.Status)
	}
	for _, a := range v.SearchAttempts {
		if a.Success {
			t.Errorf("Expected no successful attempts, got %+v", a)
		}
	}
}

func TestSearch_EmptyInputs(t *testing.T) {
	s := NewSearcher()

	tests := []struct {
		citation model.Citation
		doc      *Document
		desc     string
	}{
		{
			citation: model.Citation{Phrase: ""},
			doc:      testDocument(),
			desc:     "empty phrase is not_found, never a panic",
		},
		{
			citation: model.Citation{Phrase: "anything"},
			doc:      nil,
			desc:     "nil document is not_found",
		},
		{
			citation: model.Citation{Phrase: "anything"},
			doc:      &Document{},
			desc:     "document without pages is not_found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			v := s.Search(tt.citation, tt.doc)
			if v.Status != model.StatusNotFound {
				t.Errorf("Expected not_found, got %q", v.Status)
			}
		})
	}
}

func TestSearch_AttemptTrailIsOrdered(t *testing.T) {
	s := NewSearcher()
	c := model.Citation{Phrase: "zebras migrate across glaciers", AnchorText: "unknown anchor"}

	v := s.Search(c, testDocument())

	expected := []string{
		"exact_phrase",
		"normalized_phrase",
		"exact_anchor_text",
		"normalized_anchor_text",
		"partial_phrase",
		"partial_anchor_text",
		"first_word",
	}
	if len(v.SearchAttempts) != len(expected) {
		t.Fatalf("Expected %d attempts, got %d", len(expected), len(v.SearchAttempts))
	}
	for i, method := range expected {
		if v.SearchAttempts[i].Method != method {
			t.Errorf("Attempt %d: expected %q, got %q", i, method, v.SearchAttempts[i].Method)
		}
	}
}
