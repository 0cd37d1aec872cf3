package domain

import "context"

type ReviewRepository interface {
	// Write paths
	InsertReview(ctx context.Context, r Review) (int64, error)
	UpdateReview(ctx context.Context, id int64, patch ReviewPatch) error
	LogTranslationMiss(ctx context.Context, reviewID int64, status int, reason string) error

	// Read paths
	ListByPark(ctx context.Context, park string, pg PageQuery) (ReviewsPage, error)
	// ScanPending returns reviews still missing annotation fields, oldest first.
	ScanPending(ctx context.Context) ([]Review, error)
}

// Translator is the external machine-translation collaborator.
// Implementations return the translated text verbatim; callers decide what an
// input-identical result means.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// LanguageDetector identifies the language of raw text, returning an ISO 639-1
// code from the configured allow-list or LangUnknown. It never fails.
type LanguageDetector interface {
	Detect(text string) string
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Read models & queries

type PageQuery struct {
	Limit int
	Sort  string
}

type ReviewsPage struct {
	Items []Review
}

// ParkView is a catalog entry joined with its review aggregates for display.
type ParkView struct {
	Park
	ReviewCount  int
	AvgSentiment float64
	Category     string
	Color        string
	BucketCounts map[string]int
	Keywords     []string
}
