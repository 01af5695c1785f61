package search

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"searchbyimage/internal/cache"
	"searchbyimage/internal/domain"
)

type fakeEngine struct {
	mu    sync.Mutex
	calls int
	resp  domain.SearchResponse
	err   error
}

func (f *fakeEngine) Search(_ context.Context, _ string) (domain.SearchResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.resp, f.err
}

type fakeHistory struct {
	mu   sync.Mutex
	recs []domain.SearchRecord
	err  error
}

func (f *fakeHistory) Record(_ context.Context, r domain.SearchRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recs = append(f.recs, r)
	return f.err
}

func (f *fakeHistory) Recent(context.Context, int) ([]domain.SearchRecord, error) {
	return f.recs, nil
}

func (f *fakeHistory) Prune(context.Context, time.Time) (int64, error) { return 0, nil }

func (f *fakeHistory) Stats(context.Context) (domain.HistoryStats, error) {
	return domain.HistoryStats{Total: int64(len(f.recs))}, nil
}

func hits() domain.SearchResponse {
	return domain.SearchResponse{
		Hits: []domain.SearchHit{
			{Similarity: 95.5, ExtURLs: []string{"https://a"}},
			{Similarity: 85, ExtURLs: []string{"https://b"}},
			{Similarity: 40, ExtURLs: []string{"https://c"}},
		},
		LongRemaining: 100,
	}
}

func request(threshold float64) domain.SearchRequest {
	return domain.SearchRequest{
		ImageURL:  "https://img.example/1.png",
		Threshold: threshold,
		GroupID:   1,
		SenderID:  2,
		Origin:    domain.OriginGroup,
	}
}

func TestService_Search(t *testing.T) {
	eng := &fakeEngine{resp: hits()}
	hist := &fakeHistory{}
	s := New(eng, nil, hist, nil)

	out, err := s.Search(context.Background(), request(80))
	require.NoError(t, err)

	assert.False(t, out.Cached)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t,
		"在以下来源找到相似度大于80.00%的结果:\n"+
			"相似度：95.50%，链接：https://a\n"+
			"相似度：85.00%，链接：https://b\n",
		out.ReplyText)

	require.Len(t, hist.recs, 1)
	rec := hist.recs[0]
	assert.Equal(t, out.ID, rec.ID)
	assert.Equal(t, 2, rec.HitCount)
	assert.Equal(t, 95.5, rec.TopSimilarity)
	assert.Equal(t, domain.GroupID(1), rec.GroupID)
	assert.Equal(t, domain.OriginGroup, rec.Origin)
	assert.False(t, rec.CreatedAt.IsZero())
}

func TestService_SearchUsesCache(t *testing.T) {
	eng := &fakeEngine{resp: hits()}
	c, err := cache.New(16, time.Hour)
	require.NoError(t, err)
	s := New(eng, c, nil, nil)

	first, err := s.Search(context.Background(), request(80))
	require.NoError(t, err)
	second, err := s.Search(context.Background(), request(90))
	require.NoError(t, err)

	assert.Equal(t, 1, eng.calls)
	assert.False(t, first.Cached)
	assert.True(t, second.Cached)
	assert.Contains(t, second.ReplyText, "大于90.00%")
	assert.NotContains(t, second.ReplyText, "https://b")
}

func TestService_SearchNoResults(t *testing.T) {
	s := New(&fakeEngine{resp: domain.SearchResponse{LongRemaining: 3}}, nil, nil, nil)

	out, err := s.Search(context.Background(), request(80))
	require.NoError(t, err)
	assert.Equal(t, "未在任何来源中寻找到相似度大于80.00%的结果。", out.ReplyText)
}

func TestService_SearchEngineError(t *testing.T) {
	boom := errors.New("boom")
	hist := &fakeHistory{}
	c, err := cache.New(16, time.Hour)
	require.NoError(t, err)
	s := New(&fakeEngine{err: boom}, c, hist, nil)

	_, err = s.Search(context.Background(), request(80))
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, hist.recs)
	assert.Equal(t, 0, c.Len())
}

func TestService_HistoryErrorIsNotFatal(t *testing.T) {
	s := New(&fakeEngine{resp: hits()}, nil, &fakeHistory{err: errors.New("disk full")}, nil)

	_, err := s.Search(context.Background(), request(80))
	assert.NoError(t, err)
}

func TestService_Validation(t *testing.T) {
	uu := map[string]struct {
		url       string
		threshold float64
		err       error
	}{
		"relative":  {url: "/a.png", threshold: 80, err: ErrInvalidURL},
		"ftp":       {url: "ftp://h/a.png", threshold: 80, err: ErrInvalidURL},
		"empty":     {url: "", threshold: 80, err: ErrInvalidURL},
		"negative":  {url: "https://h/a.png", threshold: -1, err: ErrInvalidThreshold},
		"nan":       {url: "https://h/a.png", threshold: math.NaN(), err: ErrInvalidThreshold},
		"zero":      {url: "https://h/a.png", threshold: 0},
		"above 100": {url: "https://h/a.png", threshold: 100.5, err: ErrInvalidThreshold},
		"hundred":   {url: "https://h/a.png", threshold: 100},
		"tiny":      {url: "http://h/a.png", threshold: 0.01},
	}

	for k, u := range uu {
		t.Run(k, func(t *testing.T) {
			eng := &fakeEngine{resp: hits()}
			s := New(eng, nil, nil, nil)

			_, err := s.Search(context.Background(), domain.SearchRequest{ImageURL: u.url, Threshold: u.threshold})
			if u.err != nil {
				assert.ErrorIs(t, err, u.err)
				assert.Equal(t, 0, eng.calls)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestService_RateLimitHonoursContext(t *testing.T) {
	eng := &fakeEngine{resp: hits()}
	s := New(eng, nil, nil, rate.NewLimiter(rate.Every(time.Hour), 1))

	_, err := s.Search(context.Background(), request(80))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = s.Search(ctx, request(80))
	assert.Error(t, err)
	assert.Equal(t, 1, eng.calls)
}

func TestNewLimiter(t *testing.T) {
	l := NewLimiter(4, 30*time.Second)
	assert.Equal(t, 4, l.Burst())
	assert.InDelta(t, 4.0/30.0, float64(l.Limit()), 1e-9)

	assert.Equal(t, rate.Inf, NewLimiter(0, time.Second).Limit())
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf
}

func TestService_QuotaWarning(t *testing.T) {
	uu := map[string]struct {
		long int
		warn bool
	}{
		"exhausted":  {long: 0, warn: true},
		"remaining":  {long: 5},
		"unreported": {long: domain.QuotaUnknown},
	}

	for k, u := range uu {
		t.Run(k, func(t *testing.T) {
			logs := captureLogs(t)
			s := New(&fakeEngine{resp: domain.SearchResponse{LongRemaining: u.long}}, nil, nil, nil)

			_, err := s.Search(context.Background(), request(80))
			require.NoError(t, err)
			if u.warn {
				assert.Contains(t, logs.String(), "Daily search quota exhausted")
			} else {
				assert.NotContains(t, logs.String(), "Daily search quota exhausted")
			}
		})
	}
}
