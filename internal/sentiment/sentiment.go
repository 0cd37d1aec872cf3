// Package sentiment holds the classifier and aggregation primitives every
// review-display surface is built on. All functions are total: a review with
// no stored sentiment counts as 0 so chart rendering never blocks on bad data.
package sentiment

import "millcreek_parks/internal/domain"

type Category string

const (
	VeryPositive Category = "Very Positive"
	Positive     Category = "Positive"
	Neutral      Category = "Neutral"
	Negative     Category = "Negative"
	VeryNegative Category = "Very Negative"
)

// Scheme selects the bucket layout. Category and color come from the same
// threshold table, so they can never disagree for a given score.
type Scheme int

const (
	TwoBucket  Scheme = 2
	FiveBucket Scheme = 5
)

func SchemeFromString(s string) Scheme {
	if s == "2" {
		return TwoBucket
	}
	return FiveBucket
}

type band struct {
	min   float64 // inclusive lower bound; last band catches everything below
	cat   Category
	color string
}

var fiveBands = []band{
	{0.6, VeryPositive, "#8CB369"},
	{0.2, Positive, "#F4D35E"},
	{-0.2, Neutral, "#A4937C"},
	{-0.6, Negative, "#F78C6B"},
	{0, VeryNegative, "#E56B6F"}, // min unused on the last band
}

var twoBands = []band{
	{0, Positive, "#8CB369"},
	{0, Negative, "#E56B6F"},
}

func (s Scheme) bandOf(score float64) band {
	bands := fiveBands
	if s == TwoBucket {
		bands = twoBands
	}
	for i := 0; i < len(bands)-1; i++ {
		if score >= bands[i].min {
			return bands[i]
		}
	}
	return bands[len(bands)-1]
}

func (s Scheme) CategoryOf(score float64) Category { return s.bandOf(score).cat }

func (s Scheme) ColorOf(score float64) string { return s.bandOf(score).color }

// AverageSentiment returns the arithmetic mean of the stored scores, 0 for an
// empty set. A review with no score contributes 0.
func AverageSentiment(reviews []domain.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var sum float64
	for _, r := range reviews {
		if r.Sentiment != nil {
			sum += *r.Sentiment
		}
	}
	return sum / float64(len(reviews))
}

// BucketCounts classifies every review and counts per category. Categories
// with zero reviews are absent from the map so charts skip empty segments.
func (s Scheme) BucketCounts(reviews []domain.Review) map[Category]int {
	out := make(map[Category]int)
	for _, r := range reviews {
		var score float64
		if r.Sentiment != nil {
			score = *r.Sentiment
		}
		out[s.CategoryOf(score)]++
	}
	return out
}

// Dominant returns the category holding the most reviews, with earlier
// (more positive) bands winning ties. Neutral for an empty set.
func (s Scheme) Dominant(reviews []domain.Review) Category {
	counts := s.BucketCounts(reviews)
	bands := fiveBands
	if s == TwoBucket {
		bands = twoBands
	}
	best := Neutral
	bestN := 0
	for _, b := range bands {
		if n := counts[b.cat]; n > bestN {
			best, bestN = b.cat, n
		}
	}
	return best
}
