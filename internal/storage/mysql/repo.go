package mysql

import (
	"context"
	"database/sql"
	"strings"

	"millcreek_parks/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) InsertReview(ctx context.Context, rv domain.Review) (int64, error) {
	var createdAt any
	if !rv.CreatedAt.IsZero() {
		createdAt = rv.CreatedAt
	}
	res, err := r.db.ExecContext(ctx, insertReviewSQL,
		rv.Park,
		rv.User,
		rv.Rating,
		rv.OriginalComment,
		valStr(rv.TranslatedComment),
		valF64(rv.Sentiment),
		valStr(rv.Language),
		rv.NeedsManualReview,
		createdAt, // COALESCE keeps creation time server-assigned
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateReview patches only the fields present; nil patch fields keep the
// stored value, which is what makes backfill passes idempotent.
func (r *Repo) UpdateReview(ctx context.Context, id int64, patch domain.ReviewPatch) error {
	if patch.IsZero() {
		return nil
	}
	var sets []string
	var args []any
	if patch.Sentiment != nil {
		sets = append(sets, "sentiment = ?")
		args = append(args, *patch.Sentiment)
	}
	if patch.Language != nil {
		sets = append(sets, "language = ?")
		args = append(args, *patch.Language)
	}
	if patch.TranslatedComment != nil {
		sets = append(sets, "translated_comment = ?")
		args = append(args, *patch.TranslatedComment)
	}
	if patch.NeedsManualReview != nil {
		sets = append(sets, "needs_manual_review = ?")
		args = append(args, *patch.NeedsManualReview)
	}
	args = append(args, id)
	_, err := r.db.ExecContext(ctx,
		"UPDATE reviews SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	return err
}

func (r *Repo) LogTranslationMiss(ctx context.Context, reviewID int64, status int, reason string) error {
	_, err := r.db.ExecContext(ctx, insertMissSQL, reviewID, status, reason)
	return err
}

func (r *Repo) ListByPark(ctx context.Context, park string, pg domain.PageQuery) (domain.ReviewsPage, error) {
	limit := pg.Limit
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, listByParkSQL, park, limit)
	if err != nil {
		return domain.ReviewsPage{}, err
	}
	defer rows.Close()

	items, err := scanReviews(rows)
	if err != nil {
		return domain.ReviewsPage{}, err
	}
	return domain.ReviewsPage{Items: items}, nil
}

func (r *Repo) ScanPending(ctx context.Context) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, scanPendingSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReviews(rows)
}

func scanReviews(rows *sql.Rows) ([]domain.Review, error) {
	var out []domain.Review
	for rows.Next() {
		var rv domain.Review
		var (
			translated sql.NullString
			score      sql.NullFloat64
			lang       sql.NullString
			createdAt  sql.NullTime
		)
		if err := rows.Scan(
			&rv.ID,
			&rv.Park,
			&rv.User,
			&rv.Rating,
			&rv.OriginalComment,
			&translated,
			&score,
			&lang,
			&rv.NeedsManualReview,
			&createdAt,
		); err != nil {
			return nil, err
		}
		if translated.Valid {
			s := translated.String
			rv.TranslatedComment = &s
		}
		if score.Valid {
			f := score.Float64
			rv.Sentiment = &f
		}
		if lang.Valid {
			s := lang.String
			rv.Language = &s
		}
		if createdAt.Valid {
			rv.CreatedAt = createdAt.Time
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}
