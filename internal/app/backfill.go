package app

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"millcreek_parks/internal/adapters/observability"
	"millcreek_parks/internal/domain"
	"millcreek_parks/internal/langid"
	"millcreek_parks/internal/sentiment"
)

// PaceTranslator wraps a Translator so calls run one at a time with a fixed
// minimum interval between them. The upstream API is free-tier; batch passes
// must never fan out against it. A zero interval only serializes.
func PaceTranslator(t domain.Translator, interval time.Duration) domain.Translator {
	p := &pacedTranslator{inner: t}
	if interval > 0 {
		p.rl = rate.NewLimiter(rate.Every(interval), 1)
	}
	return p
}

type pacedTranslator struct {
	mu    sync.Mutex
	inner domain.Translator
	rl    *rate.Limiter
}

func (p *pacedTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.rl != nil {
		if err := p.rl.Wait(ctx); err != nil {
			return "", err
		}
	}
	return p.inner.Translate(ctx, text, source, target)
}

// Backfill is the reconciliation pass: it re-scans stored reviews still
// missing annotations and fills in only the absent fields, updating each
// record in place exactly once. It is the system's retry mechanism for
// translation shortfalls. Items are processed strictly sequentially; a
// failure on one review never aborts the rest.
func (s *IngestionService) Backfill(ctx context.Context) (int, error) {
	rows, err := s.repo.ScanPending(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, r := range rows {
		if ctx.Err() != nil {
			return updated, ctx.Err()
		}
		patch, outcome := s.backfillPatch(ctx, r)
		if patch.IsZero() {
			continue
		}
		if err := s.repo.UpdateReview(ctx, r.ID, patch); err != nil {
			log.Warn().Err(err).Int64("id", r.ID).Msg("backfill update failed")
			continue
		}
		updated++
		s.invalidatePark(ctx, r.Park)
		if outcome != "" {
			observability.ObserveIngest(outcome)
		}
		log.Info().Int64("id", r.ID).Str("park", r.Park).Msg("review backfilled")
	}
	return updated, nil
}

// backfillPatch computes the annotations a stored review is missing. Fields
// already present are never recomputed, which keeps the pass idempotent.
func (s *IngestionService) backfillPatch(ctx context.Context, r domain.Review) (domain.ReviewPatch, string) {
	var patch domain.ReviewPatch
	outcome := ""

	if r.Sentiment == nil {
		score := sentiment.Score(r.OriginalComment)
		patch.Sentiment = &score
	}

	lang := ""
	if r.Language != nil {
		lang = *r.Language
	} else {
		lang = s.detect.Detect(r.OriginalComment)
		patch.Language = &lang
	}

	// translation only for allow-list languages still lacking a result
	needsTranslation := langid.Supported(lang) && r.TranslatedComment == nil
	switch {
	case needsTranslation:
		translated, needs, out, missStatus, missReason := s.decideTranslation(ctx, r.OriginalComment, lang)
		patch.TranslatedComment = translated
		patch.NeedsManualReview = &needs
		outcome = out
		if missStatus != 0 {
			if err := s.repo.LogTranslationMiss(ctx, r.ID, missStatus, missReason); err != nil {
				log.Warn().Err(err).Int64("review", r.ID).Msg("miss log write failed")
			}
		}
	case patch.Language != nil:
		// language was just detected; settle the flag for the skip cases
		needs := lang == domain.LangUnknown
		patch.NeedsManualReview = &needs
		outcome = "skipped"
	}

	return patch, outcome
}
