package sentiment_test

import (
	"math"
	"reflect"
	"testing"

	"millcreek_parks/internal/domain"
	"millcreek_parks/internal/sentiment"
)

func rev(score float64) domain.Review {
	return domain.Review{Sentiment: &score}
}

func TestFiveBucketBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  sentiment.Category
	}{
		{1.0, sentiment.VeryPositive},
		{0.6, sentiment.VeryPositive},
		{0.59, sentiment.Positive},
		{0.2, sentiment.Positive},
		{0.19, sentiment.Neutral},
		{0.0, sentiment.Neutral},
		{-0.2, sentiment.Neutral},
		{-0.21, sentiment.Negative},
		{-0.6, sentiment.Negative},
		{-0.61, sentiment.VeryNegative},
		{-1.0, sentiment.VeryNegative},
	}
	for _, c := range cases {
		if got := sentiment.FiveBucket.CategoryOf(c.score); got != c.want {
			t.Fatalf("CategoryOf(%v) = %q, want %q", c.score, got, c.want)
		}
	}
}

func TestTwoBucketBoundaries(t *testing.T) {
	if got := sentiment.TwoBucket.CategoryOf(0); got != sentiment.Positive {
		t.Fatalf("CategoryOf(0) = %q, want Positive", got)
	}
	if got := sentiment.TwoBucket.CategoryOf(-0.01); got != sentiment.Negative {
		t.Fatalf("CategoryOf(-0.01) = %q, want Negative", got)
	}
}

// Category and color must partition [-1,1] with identical boundaries: the same
// score can never land in one category but carry another category's color.
func TestCategoryColorPartitionAgree(t *testing.T) {
	for _, scheme := range []sentiment.Scheme{sentiment.TwoBucket, sentiment.FiveBucket} {
		colorByCat := map[sentiment.Category]string{}
		for s := -1.0; s <= 1.0; s += 0.001 {
			cat := scheme.CategoryOf(s)
			color := scheme.ColorOf(s)
			if prev, ok := colorByCat[cat]; ok && prev != color {
				t.Fatalf("scheme %d: category %q maps to both %s and %s", scheme, cat, prev, color)
			}
			colorByCat[cat] = color
		}
		// every color belongs to exactly one category
		seen := map[string]sentiment.Category{}
		for cat, color := range colorByCat {
			if other, ok := seen[color]; ok {
				t.Fatalf("scheme %d: color %s shared by %q and %q", scheme, color, cat, other)
			}
			seen[color] = cat
		}
	}
}

func TestAverageSentiment(t *testing.T) {
	if got := sentiment.AverageSentiment(nil); got != 0 {
		t.Fatalf("empty average = %v, want 0", got)
	}
	got := sentiment.AverageSentiment([]domain.Review{rev(0.8), rev(-0.4)})
	if math.Abs(got-0.2) > 1e-9 {
		t.Fatalf("average = %v, want 0.2", got)
	}
	// a review missing its score counts as 0, not an error
	got = sentiment.AverageSentiment([]domain.Review{rev(0.9), {}})
	if math.Abs(got-0.45) > 1e-9 {
		t.Fatalf("average with missing score = %v, want 0.45", got)
	}
}

func TestBucketCountsOmitsEmpty(t *testing.T) {
	counts := sentiment.FiveBucket.BucketCounts([]domain.Review{rev(0.9), rev(0.8), rev(-0.9)})
	want := map[sentiment.Category]int{
		sentiment.VeryPositive: 2,
		sentiment.VeryNegative: 1,
	}
	if !reflect.DeepEqual(counts, want) {
		t.Fatalf("counts = %v, want %v", counts, want)
	}
	if _, ok := counts[sentiment.Neutral]; ok {
		t.Fatalf("zero-count category must be absent")
	}
}

func TestDominant(t *testing.T) {
	reviews := []domain.Review{rev(0.9), rev(0.9), rev(-0.9)}
	if got := sentiment.FiveBucket.Dominant(reviews); got != sentiment.VeryPositive {
		t.Fatalf("dominant = %q, want Very Positive", got)
	}
	if got := sentiment.FiveBucket.Dominant(nil); got != sentiment.Neutral {
		t.Fatalf("dominant of empty = %q, want Neutral", got)
	}
}

func TestFrequentKeywords(t *testing.T) {
	reviews := []domain.Review{
		{OriginalComment: "Great trails, the trails are great for running"},
		{OriginalComment: "These trails flood with rain"},
		{OriginalComment: "Running here is fun"},
	}
	got := sentiment.FrequentKeywords(reviews, 5)
	// "the"/"are"/"for"/"fun" are too short, "these"/"with" are stop words
	want := []string{"trails", "great", "running", "flood", "rain"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("keywords = %v, want %v", got, want)
	}

	// k caps the result
	if got := sentiment.FrequentKeywords(reviews, 2); !reflect.DeepEqual(got, []string{"trails", "great"}) {
		t.Fatalf("top-2 = %v", got)
	}
}

func TestFrequentKeywordsStableTies(t *testing.T) {
	reviews := []domain.Review{
		{OriginalComment: "alpha bravo charlie"},
		{OriginalComment: "bravo charlie alpha"},
	}
	// all three appear twice; first-encountered order must hold
	got := sentiment.FrequentKeywords(reviews, 3)
	want := []string{"alpha", "bravo", "charlie"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tie order = %v, want %v", got, want)
	}
}
