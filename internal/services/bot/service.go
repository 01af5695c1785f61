package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"searchbyimage/internal/command"
	"searchbyimage/internal/domain"
	"searchbyimage/internal/pool"
	"searchbyimage/internal/slogs"
)

const (
	DefaultPollInterval = time.Second
	DefaultBatchSize    = 16
	DefaultMaxBackoff   = 30 * time.Second
)

// Options tune the event loop.
type Options struct {
	BotID        domain.UserID
	PollInterval time.Duration
	BatchSize    int
	Workers      int
	MaxBackoff   time.Duration
}

func (o *Options) defaults() {
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultPollInterval
	}
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.Workers <= 0 {
		o.Workers = pool.DefaultSize
	}
	if o.MaxBackoff <= 0 {
		o.MaxBackoff = DefaultMaxBackoff
	}
}

// Service implements domain.BotService.
type Service struct {
	gateway domain.GatewayClient
	search  domain.SearchService
	opts    Options

	sleep func(ctx context.Context, d time.Duration) error
}

// New returns a bot answering commands through gateway with search.
func New(gateway domain.GatewayClient, search domain.SearchService, opts Options) *Service {
	opts.defaults()
	return &Service{
		gateway: gateway,
		search:  search,
		opts:    opts,
		sleep:   sleepCtx,
	}
}

// HandleEvent answers ev if it is a search command. Search failures are
// logged and produce no reply; only gateway failures are returned.
func (s *Service) HandleEvent(ctx context.Context, ev domain.GroupMessageEvent) error {
	if s.opts.BotID != 0 && ev.SenderID == s.opts.BotID {
		return nil
	}
	cmd, ok := command.Parse(ev.Message)
	if !ok {
		return nil
	}

	img := cmd.Image
	if img.URL == "" {
		u, err := s.gateway.QueryImageURL(ctx, img.ImageID)
		if err != nil {
			return fmt.Errorf("resolve image %s: %w", img.ImageID, err)
		}
		img.URL = u
	}

	slog.Debug("Search command",
		slogs.EventID, ev.ID,
		slogs.GroupID, ev.GroupID,
		slogs.SenderID, ev.SenderID,
		slogs.ImageID, img.ImageID,
		slogs.Threshold, cmd.Threshold,
	)

	out, err := s.search.Search(ctx, domain.SearchRequest{
		ImageURL:  img.URL,
		Threshold: cmd.Threshold,
		GroupID:   ev.GroupID,
		SenderID:  ev.SenderID,
		Origin:    domain.OriginGroup,
	})
	if err != nil {
		slog.Error("Image search failed",
			slogs.EventID, ev.ID,
			slogs.GroupID, ev.GroupID,
			slogs.URL, img.URL,
			slogs.Error, err,
		)
		return nil
	}

	chain := domain.MessageChain{
		domain.Quote(ev.ID),
		img,
		domain.Plain(out.ReplyText),
	}
	if err := s.gateway.SendGroupMessage(ctx, ev.GroupID, chain); err != nil {
		return fmt.Errorf("reply to %s in group %s: %w", ev.ID, ev.GroupID, err)
	}
	return nil
}

// Run polls the gateway until ctx is cancelled. Each batch is acknowledged
// after all of its events were handled; gateway errors back off
// exponentially up to MaxBackoff.
func (s *Service) Run(ctx context.Context) error {
	slog.Debug("Polling gateway", slogs.BotID, s.opts.BotID)

	var backoff time.Duration
	for {
		if ctx.Err() != nil {
			return nil
		}

		evs, err := s.gateway.FetchEvents(ctx, s.opts.BotID, s.opts.BatchSize)
		if err == nil && len(evs) > 0 {
			s.handleBatch(ctx, evs)
			err = s.gateway.AckEvents(ctx, s.opts.BotID, len(evs))
		}

		var wait time.Duration
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return nil
			}
			backoff = s.nextBackoff(backoff)
			wait = backoff
			slog.Warn("Gateway unavailable", slogs.Error, err, slogs.Duration, wait)
		case len(evs) == 0:
			backoff = 0
			wait = s.opts.PollInterval
		default:
			backoff = 0
			continue
		}

		if err := s.sleep(ctx, wait); err != nil {
			return nil
		}
	}
}

func (s *Service) handleBatch(ctx context.Context, evs []domain.GroupMessageEvent) {
	p := pool.New(ctx, s.opts.Workers, "events")
	for _, ev := range evs {
		p.Add(func(ctx context.Context) error {
			return s.HandleEvent(ctx, ev)
		})
	}
	for _, err := range p.Drain() {
		slog.Error("Event handling failed", slogs.Error, err)
	}
	slog.Debug("Batch handled", slogs.Count, len(evs))
}

func (s *Service) nextBackoff(cur time.Duration) time.Duration {
	if cur <= 0 {
		return s.opts.PollInterval
	}
	cur *= 2
	if cur > s.opts.MaxBackoff {
		cur = s.opts.MaxBackoff
	}
	return cur
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

var _ domain.BotService = (*Service)(nil)
