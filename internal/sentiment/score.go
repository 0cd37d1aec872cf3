package sentiment

import (
	"strings"
	"unicode"
)

// valence holds AFINN-style word scores on a -5..5 scale. Only words that
// actually show up in park reviews need coverage; unknown words score 0.
var valence = map[string]int{
	"amazing":     4,
	"awesome":     4,
	"fantastic":   4,
	"wonderful":   4,
	"fun":         4,
	"beautiful":   3,
	"best":        3,
	"excellent":   3,
	"good":        3,
	"great":       3,
	"happy":       3,
	"love":        3,
	"loved":       3,
	"lovely":      3,
	"nice":        3,
	"perfect":     3,
	"enjoy":       2,
	"enjoyed":     2,
	"clean":       2,
	"creative":    2,
	"friendly":    2,
	"informative": 2,
	"peaceful":    2,
	"pleasant":    2,
	"recommend":   2,
	"scenic":      2,
	"serene":      2,
	"spacious":    2,
	"well":        2,
	"fresh":       1,
	"like":        2,
	"likes":       2,
	"quiet":       1,
	"safe":        1,
	"safely":      1,

	"worst":         -3,
	"awful":         -3,
	"hate":          -3,
	"horrible":      -3,
	"terrible":      -3,
	"ugly":          -3,
	"bad":           -3,
	"dangerous":     -2,
	"dirty":         -2,
	"disappointing": -2,
	"crowded":       -2,
	"poor":          -2,
	"rude":          -2,
	"scary":         -2,
	"smelly":        -2,
	"unsafe":        -2,
	"problem":       -2,
	"problems":      -2,
	"broken":        -1,
	"difficult":     -1,
	"flood":         -1,
	"floods":        -1,
	"mosquitos":     -1,
	"muddy":         -1,
	"noisy":         -1,
	"outdated":      -1,
	"trash":         -1,
}

// Score estimates text polarity by summing word valences and rescaling the
// mean contribution to [-1, 1]. 0 when no lexicon word appears.
func Score(text string) float64 {
	var sum, hits int
	for _, tok := range tokenize(text) {
		if v, ok := valence[tok]; ok {
			sum += v
			hits++
		}
	}
	if hits == 0 {
		return 0
	}
	return float64(sum) / float64(hits*5)
}

// tokenize lowercases and splits on non-word boundaries, the same split
// FrequentKeywords uses.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
