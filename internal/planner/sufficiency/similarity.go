// internal/planner/sufficiency/similarity.go
package sufficiency

import "strings"

// normalizeQuestion lowercases, strips punctuation, and collapses whitespace
// so that trivial rephrasings compare equal.
func normalizeQuestion(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// nearDuplicate reports whether candidate matches any question in the window,
// either exactly after normalization or with token-set Jaccard similarity at
// or above threshold. It returns the matched question for logging.
func nearDuplicate(candidate string, window []string, threshold float64) (string, bool) {
	normCand := normalizeQuestion(candidate)
	if normCand == "" {
		return "", false
	}
	candTokens := tokenSet(normCand)

	for _, q := range window {
		normQ := normalizeQuestion(q)
		if normQ == normCand {
			return q, true
		}
		if jaccard(candTokens, tokenSet(normQ)) >= threshold {
			return q, true
		}
	}
	return "", false
}

func tokenSet(normalized string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(normalized) {
		set[tok] = struct{}{}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}
