package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"millcreek_parks/internal/adapters/observability"
	"millcreek_parks/internal/domain"
	"millcreek_parks/internal/langid"
	"millcreek_parks/internal/sentiment"
)

// IngestionService turns freshly submitted review text into a fully annotated,
// persisted record: lexical score, language detection, conditional translation,
// then a single insert. Translation shortfalls never fail a submission; they
// set the manual-review flag and are logged for operators. Only a failed
// persistence write surfaces to the submitter.
type IngestionService struct {
	detect    domain.LanguageDetector
	translate domain.Translator
	repo      domain.ReviewRepository
	cache     domain.Cache
	hub       *Hub
}

func NewIngestionService(d domain.LanguageDetector, t domain.Translator, r domain.ReviewRepository, cache domain.Cache, hub *Hub) *IngestionService {
	return &IngestionService{detect: d, translate: t, repo: r, cache: cache, hub: hub}
}

// annotation is the outcome of the score/detect/translate steps for one text.
type annotation struct {
	sentiment  float64
	language   string
	translated *string
	needs      bool
	outcome    string // translated|skipped|noop|failed
	missStatus int    // non-zero when the miss log should get an entry
	missReason string
}

func (s *IngestionService) annotate(ctx context.Context, text string) annotation {
	a := annotation{
		sentiment: sentiment.Score(text),
		language:  s.detect.Detect(text),
	}
	a.translated, a.needs, a.outcome, a.missStatus, a.missReason =
		s.decideTranslation(ctx, text, a.language)
	return a
}

// decideTranslation runs the conditional translation step for text already
// identified as lang. English and unknown input skip the network entirely.
func (s *IngestionService) decideTranslation(ctx context.Context, text, lang string) (translated *string, needs bool, outcome string, missStatus int, missReason string) {
	switch {
	case lang == "en":
		return nil, false, "skipped", 0, ""
	case !langid.Supported(lang):
		// unknown language: keep the original only, flag for a human
		return nil, true, "skipped", 0, ""
	}

	out, err := s.translate.Translate(ctx, text, lang, "en")
	if err != nil {
		log.Warn().Err(err).Str("lang", lang).Msg("translation unavailable")
		return nil, true, "failed", 502, "translate:" + lang
	}
	if strings.TrimSpace(out) == strings.TrimSpace(text) {
		// the service answered with the input verbatim: it could not translate
		return nil, true, "noop", 200, "noop:" + lang
	}
	return &out, false, "translated", 0, ""
}

// Submit runs the full pipeline for one user submission and persists the
// result. The returned Review carries the assigned ID and annotations.
func (s *IngestionService) Submit(ctx context.Context, draft domain.Review) (domain.Review, error) {
	a := s.annotate(ctx, draft.OriginalComment)

	draft.Sentiment = &a.sentiment
	draft.Language = &a.language
	draft.TranslatedComment = a.translated
	draft.NeedsManualReview = a.needs

	id, err := s.repo.InsertReview(ctx, draft)
	if err != nil {
		// the one unrecoverable path: the submitter is told to retry
		return domain.Review{}, fmt.Errorf("insert review: %w", err)
	}
	draft.ID = id
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = time.Now().UTC()
	}

	if a.missStatus != 0 {
		if lerr := s.repo.LogTranslationMiss(ctx, id, a.missStatus, a.missReason); lerr != nil {
			log.Warn().Err(lerr).Int64("review", id).Msg("miss log write failed")
		}
	}
	s.invalidatePark(ctx, draft.Park)
	observability.ObserveIngest(a.outcome)

	if s.hub != nil {
		s.hub.Publish(draft)
	}
	log.Info().
		Int64("id", id).
		Str("park", draft.Park).
		Str("lang", a.language).
		Str("outcome", a.outcome).
		Msg("review ingested")
	return draft, nil
}

// invalidatePark drops the cached read models a new review makes stale.
func (s *IngestionService) invalidatePark(ctx context.Context, park string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, "parks")
	_ = s.cache.Del(ctx, "park:"+park)
	// API default is limit=50, sort=-created_at; clear common variants too
	for _, lim := range []int{50, 100, 200} {
		_ = s.cache.Del(ctx, fmt.Sprintf("reviews:%s:%d:%s", park, lim, "-created_at"))
	}
}
