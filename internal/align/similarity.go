package align

import (
	"strings"
	"unicode"

	"github.com/agext/levenshtein"
)

// Normalize folds case, strips punctuation and markdown fencing, and
// collapses whitespace so that cosmetic rewording doesn't defeat matching.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "```", " ")

	var b strings.Builder
	b.Grow(len(s))
	lastSpace := true
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// Similarity scores two normalized strings in [0,1]. The score is the
// greater of word-token Jaccard overlap and Levenshtein ratio, so both
// heavy rewording with shared vocabulary and small edits with different
// tokenization score well. Symmetric by construction.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		if a == b {
			return 1
		}
		return 0
	}
	j := jaccard(tokens(a), tokens(b))
	l := levenshtein.Similarity(a, b, levenshtein.NewParams())
	if j > l {
		return j
	}
	return l
}

// tokens splits a normalized string into its word set.
func tokens(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		out[w] = struct{}{}
	}
	return out
}

// jaccard computes |a∩b| / |a∪b| over token sets.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	inter := 0
	for w := range a {
		if _, ok := b[w]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
