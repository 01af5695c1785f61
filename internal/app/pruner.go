package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"searchbyimage/internal/domain"
	"searchbyimage/internal/slogs"
)

// PruneHistory removes history older than retention. It is the job run by
// the scheduler from StartPruner.
func PruneHistory(ctx context.Context, h domain.HistoryStore, retention time.Duration, now time.Time) (int64, error) {
	n, err := h.Prune(ctx, now.Add(-retention))
	if err != nil {
		return 0, fmt.Errorf("prune history: %w", err)
	}
	return n, nil
}

// StartPruner schedules PruneHistory on schedule (standard cron syntax or a
// descriptor like "@daily"). A non-positive retention or empty schedule
// yields an idle scheduler. Stop the returned scheduler when done.
func StartPruner(h domain.HistoryStore, retention time.Duration, schedule string) (*cron.Cron, error) {
	c := cron.New()
	if retention <= 0 || schedule == "" {
		return c, nil
	}
	_, err := c.AddFunc(schedule, func() {
		n, err := PruneHistory(context.Background(), h, retention, time.Now())
		if err != nil {
			slog.Error("History pruning failed", slogs.Error, err)
			return
		}
		slog.Info("History pruned", slogs.Count, n)
	})
	if err != nil {
		return nil, fmt.Errorf("history prune schedule %q: %w", schedule, err)
	}
	c.Start()
	return c, nil
}
