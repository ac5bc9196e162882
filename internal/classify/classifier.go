// Package classify turns raw verification records into the citation
// status flags and trust levels the presentation layer consumes.
package classify

import "github.com/citelens/citelens/internal/model"

// Status classifies a verification record into citation status flags.
//
// Records may be replaced or mutated in place by an external polling
// process between calls, so results must never be cached by record
// identity: this is a plain function with no memoization, recomputed
// on every call. It never panics; unknown statuses set no flags.
func Status(v *model.Verification) model.CitationStatus {
	if v == nil || v.Status == "" {
		// Not yet attempted. Distinct from pending, which means a
		// verification is in progress.
		return model.CitationStatus{}
	}

	status := model.CitationStatus{
		IsMiss:    v.Status == model.StatusNotFound,
		IsPending: v.Status == model.StatusPending || v.Status == model.StatusLoading,
	}

	status.IsPartialMatch = v.Status.IsPartial() || hasLowTrustMatch(v.SearchAttempts)

	// Partial matches are a subset of verified matches, distinguished
	// only by the partial flag. Callers render them with a cautionary
	// treatment, not as failures.
	status.IsVerified = v.Status == model.StatusFound ||
		v.Status == model.StatusFoundPhraseMissedAnchorText ||
		status.IsPartialMatch

	return status
}

// hasLowTrustMatch reports whether any successful attempt matched via a
// low-trust variation.
func hasLowTrustMatch(attempts []model.SearchAttempt) bool {
	for _, a := range attempts {
		if a.Success && LevelForVariation(a.MatchedVariation) == model.TrustLow {
			return true
		}
	}
	return false
}

// Level derives the overall trust level for a verification from its
// first successful search attempt. Records without a successful attempt
// get the neutral default.
func Level(v *model.Verification) model.TrustLevel {
	if v == nil {
		return model.TrustMedium
	}
	for _, a := range v.SearchAttempts {
		if a.Success {
			return LevelForVariation(a.MatchedVariation)
		}
	}
	return model.TrustMedium
}
