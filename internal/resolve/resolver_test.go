package resolve

import (
	"reflect"
	"testing"

	"github.com/citelens/citelens/internal/model"
)

func fullVerification() *model.Verification {
	return &model.Verification{
		Status: model.StatusFound,
		Pages: []model.Page{
			{PageNumber: 1, IsMatchPage: false, Source: "https://citelens.io/pages/1.png"},
			{
				PageNumber:   2,
				IsMatchPage:  true,
				Source:       "https://citelens.io/pages/2.png",
				Dimensions:   &model.Dimensions{Width: 800, Height: 1100},
				HighlightBox: &model.HighlightBox{Left: 10, Top: 20, Width: 200, Height: 14},
				TextItems:    []model.TextItem{{Text: "quoted phrase", Left: 10, Top: 20, Width: 200, Height: 14}},
			},
		},
		Document: &model.Document{
			VerifiedPageNumber:          2,
			VerificationImageSrc:        "https://citelens.io/legacy/2.png",
			VerificationImageDimensions: &model.Dimensions{Width: 640, Height: 480},
		},
		Proof: &model.Proof{ProofImageURL: "https://proofs.citelens.io/abc.png"},
	}
}

func TestImage_TierPriority(t *testing.T) {
	v := fullVerification()

	result := Image(v)
	if result == nil {
		t.Fatal("Expected a resolved image")
	}
	if result.Src != "https://citelens.io/pages/2.png" {
		t.Errorf("Expected match-page tier to win, got %q", result.Src)
	}
	if result.Dimensions == nil || result.Dimensions.Width != 800 {
		t.Error("Expected match-page dimensions to be carried")
	}
	if result.HighlightBox == nil {
		t.Error("Expected match-page highlight box to be carried")
	}
	if len(result.TextItems) != 1 {
		t.Errorf("Expected match-page text items, got %d", len(result.TextItems))
	}
}

func TestImage_ProofTierWhenNoMatchPage(t *testing.T) {
	v := fullVerification()
	v.Pages = nil

	result := Image(v)
	if result == nil {
		t.Fatal("Expected a resolved image")
	}
	if result.Src != "https://proofs.citelens.io/abc.png" {
		t.Errorf("Expected proof tier, got %q", result.Src)
	}
	if result.Dimensions != nil || result.HighlightBox != nil {
		t.Error("Proof tier carries no geometry")
	}
	if result.TextItems == nil || len(result.TextItems) != 0 {
		t.Error("Expected empty, non-nil text items")
	}
}

func TestImage_LegacyTierLast(t *testing.T) {
	v := fullVerification()
	v.Pages = nil
	v.Proof = nil

	result := Image(v)
	if result == nil {
		t.Fatal("Expected a resolved image")
	}
	if result.Src != "https://citelens.io/legacy/2.png" {
		t.Errorf("Expected legacy tier, got %q", result.Src)
	}
	if result.Dimensions == nil || result.Dimensions.Width != 640 {
		t.Error("Expected legacy document dimensions to be carried")
	}
}

func TestImage_InvalidTierSkipsNotAborts(t *testing.T) {
	// An attacker-influenced tier-1 source with valid tier-3 fallback
	// must still yield the tier-3 result, not nil.
	v := fullVerification()
	v.Pages[1].Source = "javascript:alert(1)"
	v.Proof.ProofImageURL = "//evil.com/proof.png"

	result := Image(v)
	if result == nil {
		t.Fatal("Expected cascade to fall through to the legacy tier")
	}
	if result.Src != "https://citelens.io/legacy/2.png" {
		t.Errorf("Expected legacy tier after invalid upper tiers, got %q", result.Src)
	}
}

func TestImage_SecondFlaggedPageWins(t *testing.T) {
	// One poisoned flagged page must not disable the whole tier.
	v := fullVerification()
	v.Pages = []model.Page{
		{PageNumber: 1, IsMatchPage: true, Source: "https://evil.example.com/1.png"},
		{PageNumber: 2, IsMatchPage: true, Source: "https://citelens.io/pages/2.png"},
	}

	result := Image(v)
	if result == nil {
		t.Fatal("Expected a resolved image")
	}
	if result.Src != "https://citelens.io/pages/2.png" {
		t.Errorf("Expected the next valid flagged page, got %q", result.Src)
	}
}

func TestImage_NothingValid(t *testing.T) {
	tests := []struct {
		verification *model.Verification
		desc         string
	}{
		{
			verification: nil,
			desc:         "absent verification resolves to nothing",
		},
		{
			verification: &model.Verification{Status: model.StatusFound},
			desc:         "no candidates on any tier resolves to nothing",
		},
		{
			verification: &model.Verification{
				Pages:    []model.Page{{PageNumber: 1, IsMatchPage: true, Source: "//evil.com/x.png"}},
				Proof:    &model.Proof{ProofImageURL: "javascript:alert(1)"},
				Document: &model.Document{VerificationImageSrc: "/a/%2e%2e/%2e%2e/etc/passwd"},
			},
			desc: "all tiers present but invalid resolves to nothing",
		},
		{
			verification: &model.Verification{
				Pages: []model.Page{{PageNumber: 1, IsMatchPage: true, Source: ""}},
			},
			desc: "flagged match page with empty source resolves to nothing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if result := Image(tt.verification); result != nil {
				t.Errorf("Expected nil, got %+v", result)
			}
		})
	}
}

func TestImage_Idempotent(t *testing.T) {
	v := fullVerification()

	first := Image(v)
	second := Image(v)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical results on unchanged input, got %+v then %+v", first, second)
	}
}

func TestImage_PageSearchedFieldsUntouched(t *testing.T) {
	// The resolver reads records, it never mutates them.
	v := fullVerification()
	before := *v.Pages[1].Dimensions

	_ = Image(v)

	if *v.Pages[1].Dimensions != before {
		t.Error("Resolver must not mutate the verification record")
	}
}
