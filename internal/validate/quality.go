package validate

import (
	"strings"
	"unicode"
)

// Score estimates text well-formedness in [0,1]: the alphanumeric share of
// the text, discounted by word repetition. Empty or whitespace-only text
// scores 0.
func Score(text string) float64 {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}

	total := 0
	alnum := 0
	for _, r := range trimmed {
		total++
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			alnum++
		}
	}
	ratio := float64(alnum) / float64(total)

	words := strings.Fields(strings.ToLower(trimmed))
	distinct := make(map[string]bool, len(words))
	for _, w := range words {
		distinct[w] = true
	}
	diversity := float64(len(distinct)) / float64(len(words))

	score := ratio * (0.5 + 0.5*diversity)
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
