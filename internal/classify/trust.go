package classify

import "github.com/citelens/citelens/internal/model"

// LevelForVariation maps how a match was found to a coarse trust level.
//
// An absent variation is a neutral default, not a penalty. Unrecognized
// tags also resolve to medium: fail open toward "needs review", never
// silently high-trust. Total function, never fails.
func LevelForVariation(variation model.MatchedVariation) model.TrustLevel {
	switch variation {
	case "":
		return model.TrustMedium
	case model.VariationExactPhrase, model.VariationNormalizedPhrase:
		return model.TrustHigh
	case model.VariationExactAnchorText, model.VariationNormalizedAnchorText:
		return model.TrustMedium
	case model.VariationPartialPhrase, model.VariationPartialAnchorText, model.VariationFirstWordOnly:
		return model.TrustLow
	default:
		return model.TrustMedium
	}
}
