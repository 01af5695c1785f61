package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"searchbyimage/internal/cache"
	"searchbyimage/internal/domain"
	"searchbyimage/internal/reply"
	"searchbyimage/internal/slogs"
)

var (
	// ErrInvalidURL rejects image URLs that are not absolute http(s) URLs.
	ErrInvalidURL = errors.New("image url must be an absolute http or https url")
	// ErrInvalidThreshold rejects NaN and thresholds outside [0, 100].
	ErrInvalidThreshold = errors.New("threshold must be between 0 and 100")
)

// Service implements domain.SearchService.
type Service struct {
	engine  domain.SearchEngine
	cache   domain.ResultCache
	history domain.HistoryStore
	limiter *rate.Limiter

	maxAnswers int
	now        func() time.Time
}

// New builds a Service. A nil cache disables caching, a nil history skips
// recording and a nil limiter never waits.
func New(
	engine domain.SearchEngine,
	results domain.ResultCache,
	history domain.HistoryStore,
	limiter *rate.Limiter,
) *Service {
	if results == nil {
		results = cache.Null{}
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}
	return &Service{
		engine:     engine,
		cache:      results,
		history:    history,
		limiter:    limiter,
		maxAnswers: reply.MaxAnswers,
		now:        time.Now,
	}
}

// NewLimiter allows n backend requests per window with a burst of n.
// n <= 0 means unlimited.
func NewLimiter(n int, window time.Duration) *rate.Limiter {
	if n <= 0 || window <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Every(window/time.Duration(n)), n)
}

// Search looks up sources for req.ImageURL and formats the reply text.
func (s *Service) Search(ctx context.Context, req domain.SearchRequest) (domain.SearchOutcome, error) {
	if err := validate(req); err != nil {
		return domain.SearchOutcome{}, err
	}

	out := domain.SearchOutcome{
		ID:      uuid.NewString(),
		Request: req,
	}

	resp, ok := s.cache.Get(req.ImageURL)
	if ok {
		out.Cached = true
	} else {
		if err := s.limiter.Wait(ctx); err != nil {
			return domain.SearchOutcome{}, fmt.Errorf("rate limit wait: %w", err)
		}
		var err error
		resp, err = s.engine.Search(ctx, req.ImageURL)
		if err != nil {
			return domain.SearchOutcome{}, fmt.Errorf("search %s: %w", req.ImageURL, err)
		}
		s.cache.Put(req.ImageURL, resp)

		if resp.LongRemaining == 0 {
			slog.Warn("Daily search quota exhausted", slogs.ShortRemaining, resp.ShortRemaining)
		}
	}

	out.Response = resp
	out.ReplyText = reply.Format(resp.Hits, req.Threshold, s.maxAnswers)

	slog.Info("Search complete",
		slogs.ID, out.ID,
		slogs.GroupID, req.GroupID,
		slogs.Threshold, req.Threshold,
		slogs.Hits, len(resp.Hits),
		slogs.Cached, out.Cached,
		slogs.LongRemaining, resp.LongRemaining,
	)

	s.record(ctx, out)
	return out, nil
}

func (s *Service) record(ctx context.Context, out domain.SearchOutcome) {
	if s.history == nil {
		return
	}
	rec := domain.SearchRecord{
		ID:            out.ID,
		GroupID:       out.Request.GroupID,
		SenderID:      out.Request.SenderID,
		ImageURL:      out.Request.ImageURL,
		Threshold:     out.Request.Threshold,
		HitCount:      reply.Count(out.Response.Hits, out.Request.Threshold, s.maxAnswers),
		TopSimilarity: topSimilarity(out.Response.Hits),
		Cached:        out.Cached,
		Origin:        out.Request.Origin,
		CreatedAt:     s.now(),
	}
	if err := s.history.Record(ctx, rec); err != nil {
		slog.Error("Failed to record search", slogs.ID, out.ID, slogs.Error, err)
	}
}

func validate(req domain.SearchRequest) error {
	u, err := url.Parse(req.ImageURL)
	if err != nil || !u.IsAbs() || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidURL
	}
	if math.IsNaN(req.Threshold) || req.Threshold < 0 || req.Threshold > 100 {
		return ErrInvalidThreshold
	}
	return nil
}

func topSimilarity(hits []domain.SearchHit) float64 {
	top := 0.0
	for _, h := range hits {
		if h.Similarity > top {
			top = h.Similarity
		}
	}
	return top
}

var _ domain.SearchService = (*Service)(nil)
