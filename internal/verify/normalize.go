package verify

import (
	"strings"
	"unicode"
)

// normalize lowercases text, strips punctuation, and collapses
// whitespace so that formatting differences between the citation and
// the source never block a match.
func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	return collapseSpaces(b.String())
}

// tokens splits a phrase into normalized words.
func tokens(s string) []string {
	n := normalize(s)
	if n == "" {
		return nil
	}
	return strings.Split(n, " ")
}

// longestTokenRun finds the longest consecutive run of needle tokens
// that appears, in order, inside haystack (both normalized). Returns
// the run as a phrase and its length in tokens.
func longestTokenRun(needle []string, haystack string) (string, int) {
	best := 0
	bestRun := ""
	// Pad with spaces so runs only match on word boundaries.
	padded := " " + haystack + " "

	for start := 0; start < len(needle); start++ {
		for end := len(needle); end > start+best; end-- {
			run := strings.Join(needle[start:end], " ")
			if strings.Contains(padded, " "+run+" ") {
				best = end - start
				bestRun = run
				break
			}
		}
	}

	return bestRun, best
}
