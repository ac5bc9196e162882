package resolve

import "github.com/citelens/citelens/internal/model"

// Image walks the prioritized candidate sources on a verification
// record and returns the first one that passes validation, together
// with its metadata. A present-but-invalid candidate does not stop the
// cascade: the walk skips to the next tier, so one malformed or
// attacker-influenced field fails closed without breaking legitimate
// fallbacks.
//
// Returns nil when no tier yields a safe source; the caller degrades to
// a text-only presentation and must not retry or re-validate.
func Image(v *model.Verification) *model.ExpandedImage {
	if v == nil {
		return nil
	}

	// Tier 1: the flagged match page with its highlight geometry.
	for _, page := range v.Pages {
		if !page.IsMatchPage || page.Source == "" {
			continue
		}
		if !IsTrustedImageSource(page.Source) {
			continue
		}
		return &model.ExpandedImage{
			Src:          page.Source,
			Dimensions:   page.Dimensions,
			HighlightBox: page.HighlightBox,
			TextItems:    textItemsOrEmpty(page.TextItems),
		}
	}

	// Tier 2: the hosted proof image. No geometry is attached.
	if v.Proof != nil && v.Proof.ProofImageURL != "" && IsTrustedImageSource(v.Proof.ProofImageURL) {
		return &model.ExpandedImage{
			Src:       v.Proof.ProofImageURL,
			TextItems: []model.TextItem{},
		}
	}

	// Tier 3: the legacy document image.
	if v.Document != nil && v.Document.VerificationImageSrc != "" && IsTrustedImageSource(v.Document.VerificationImageSrc) {
		return &model.ExpandedImage{
			Src:        v.Document.VerificationImageSrc,
			Dimensions: v.Document.VerificationImageDimensions,
			TextItems:  []model.TextItem{},
		}
	}

	return nil
}

func textItemsOrEmpty(items []model.TextItem) []model.TextItem {
	if items == nil {
		return []model.TextItem{}
	}
	return items
}
