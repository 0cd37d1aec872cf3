package sentiment

import (
	"sort"

	"millcreek_parks/internal/domain"
)

var stopWords = map[string]bool{
	"this": true, "that": true, "they": true, "their": true,
	"there": true, "these": true, "those": true, "with": true,
}

// FrequentKeywords returns the top-k tokens across the review set by
// descending frequency. Tokens of length <= 3 and stop words are discarded;
// ties keep first-encountered order.
func FrequentKeywords(reviews []domain.Review, k int) []string {
	if k <= 0 {
		return nil
	}
	counts := make(map[string]int)
	var order []string
	for _, r := range reviews {
		for _, tok := range tokenize(r.OriginalComment) {
			if len(tok) <= 3 || stopWords[tok] {
				continue
			}
			if counts[tok] == 0 {
				order = append(order, tok)
			}
			counts[tok]++
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > k {
		order = order[:k]
	}
	return order
}
