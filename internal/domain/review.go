package domain

import (
	"errors"
	"strings"
	"time"
)

// Review is the central entity. OriginalComment is immutable once created;
// the annotation fields (Sentiment, Language, TranslatedComment,
// NeedsManualReview) are filled by the ingestion pipeline and may be patched
// later by a backfill pass when they were absent at creation.
type Review struct {
	ID                int64
	Park              string
	User              string
	Rating            int
	OriginalComment   string
	TranslatedComment *string
	Sentiment         *float64
	Language          *string
	NeedsManualReview bool
	CreatedAt         time.Time
}

const LangUnknown = "unknown"

var (
	ErrNotFound     = errors.New("not found")
	ErrEmptyComment = errors.New("comment must not be empty")
	ErrRatingRange  = errors.New("rating must be between 1 and 5")
	ErrUnknownPark  = errors.New("unknown park")
	ErrEmptyPark    = errors.New("park must not be empty")
)

// NewReview validates a submission and returns an unannotated Review.
// A blank user becomes "Anonymous".
func NewReview(park, user string, rating int, comment string) (Review, error) {
	park = strings.TrimSpace(park)
	if park == "" {
		return Review{}, ErrEmptyPark
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return Review{}, ErrEmptyComment
	}
	if rating < 1 || rating > 5 {
		return Review{}, ErrRatingRange
	}
	user = strings.TrimSpace(user)
	if user == "" {
		user = "Anonymous"
	}
	return Review{
		Park:            park,
		User:            user,
		Rating:          rating,
		OriginalComment: comment,
	}, nil
}

// ReviewPatch carries the annotation fields a backfill pass may fill in.
// Nil fields are left untouched.
type ReviewPatch struct {
	Sentiment         *float64
	Language          *string
	TranslatedComment *string
	NeedsManualReview *bool
}

// IsZero reports whether the patch would change nothing.
func (p ReviewPatch) IsZero() bool {
	return p.Sentiment == nil && p.Language == nil &&
		p.TranslatedComment == nil && p.NeedsManualReview == nil
}
