package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"millcreek_parks/internal/domain"
	"millcreek_parks/internal/sentiment"
)

// aggregateLimit bounds how many recent reviews feed a park's aggregates.
const aggregateLimit = 500

// QueryService assembles the read models the map, detail, and comparison
// surfaces render. Aggregation is pure and pull-based; redis only shortcuts
// the repository read.
type QueryService struct {
	repo     domain.ReviewRepository
	cache    domain.Cache
	cacheTTL time.Duration
	scheme   sentiment.Scheme
	parks    []domain.Park
}

func NewQueryService(r domain.ReviewRepository, c domain.Cache, ttl time.Duration, scheme sentiment.Scheme, parks []domain.Park) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl, scheme: scheme, parks: parks}
}

// ResolvePark looks a catalog entry up by id.
func (s *QueryService) ResolvePark(id string) (domain.Park, bool) {
	return s.parkByID(id)
}

func (s *QueryService) parkByID(id string) (domain.Park, bool) {
	for _, p := range s.parks {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Park{}, false
}

// buildView computes a park's display aggregates from its stored reviews.
func (s *QueryService) buildView(ctx context.Context, p domain.Park) (domain.ParkView, error) {
	page, err := s.repo.ListByPark(ctx, p.Name, domain.PageQuery{Limit: aggregateLimit, Sort: "-created_at"})
	if err != nil {
		return domain.ParkView{}, err
	}
	avg := sentiment.AverageSentiment(page.Items)

	counts := make(map[string]int)
	for cat, n := range s.scheme.BucketCounts(page.Items) {
		counts[string(cat)] = n
	}
	if len(page.Items) == 0 {
		counts = nil
	}

	return domain.ParkView{
		Park:         p,
		ReviewCount:  len(page.Items),
		AvgSentiment: avg,
		Category:     string(s.scheme.CategoryOf(avg)),
		Color:        s.scheme.ColorOf(avg),
		BucketCounts: counts,
		Keywords:     sentiment.FrequentKeywords(page.Items, 5),
	}, nil
}

// ListParks returns the full catalog with aggregates, cached as one unit.
func (s *QueryService) ListParks(ctx context.Context) ([]domain.ParkView, error) {
	var out []domain.ParkView
	if ok, _ := s.cache.Get(ctx, "parks", &out); ok {
		return out, nil
	}
	for _, p := range s.parks {
		v, err := s.buildView(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	_ = s.cache.Set(ctx, "parks", out, int(s.cacheTTL.Seconds()))
	return out, nil
}

func (s *QueryService) GetPark(ctx context.Context, id string) (domain.ParkView, error) {
	p, ok := s.parkByID(id)
	if !ok {
		return domain.ParkView{}, domain.ErrUnknownPark
	}
	key := "park:" + p.Name
	var v domain.ParkView
	if ok, _ := s.cache.Get(ctx, key, &v); ok {
		return v, nil
	}
	v, err := s.buildView(ctx, p)
	if err != nil {
		return domain.ParkView{}, err
	}
	_ = s.cache.Set(ctx, key, v, int(s.cacheTTL.Seconds()))
	return v, nil
}

func (s *QueryService) ListReviews(ctx context.Context, parkID string, pg domain.PageQuery) (domain.ReviewsPage, error) {
	p, ok := s.parkByID(parkID)
	if !ok {
		return domain.ReviewsPage{}, domain.ErrUnknownPark
	}
	key := fmt.Sprintf("reviews:%s:%d:%s", p.Name, pg.Limit, pg.Sort)
	var out domain.ReviewsPage
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}

	rs, err := s.repo.ListByPark(ctx, p.Name, pg)
	if err != nil {
		return domain.ReviewsPage{}, err
	}

	// copy to avoid aliasing the repo's backing array into the cache
	cp := deepCopyReviewsPage(rs)
	if b, _ := json.Marshal(cp); len(b) < 1_000_000 {
		_ = s.cache.Set(ctx, key, cp, int(s.cacheTTL.Seconds()))
	}
	return cp, nil
}

// CompareView pairs two parks for the side-by-side comparison surface.
type CompareView struct {
	A, B domain.ParkView
}

func (s *QueryService) Compare(ctx context.Context, aID, bID string) (CompareView, error) {
	a, err := s.GetPark(ctx, aID)
	if err != nil {
		return CompareView{}, err
	}
	b, err := s.GetPark(ctx, bID)
	if err != nil {
		return CompareView{}, err
	}
	return CompareView{A: a, B: b}, nil
}

func deepCopyReviewsPage(in domain.ReviewsPage) domain.ReviewsPage {
	var out domain.ReviewsPage
	if n := len(in.Items); n > 0 {
		out.Items = make([]domain.Review, n)
		copy(out.Items, in.Items)
	}
	return out
}
