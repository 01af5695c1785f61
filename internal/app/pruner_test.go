package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchbyimage/internal/domain"
	"searchbyimage/internal/store"
)

func TestPruneHistory(t *testing.T) {
	ctx := context.Background()
	h, err := store.OpenHistory(filepath.Join(t.TempDir(), "h.db"))
	require.NoError(t, err)
	defer h.Close()

	now := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	require.NoError(t, h.Record(ctx, domain.SearchRecord{ImageURL: "old", Origin: domain.OriginCLI, CreatedAt: now.Add(-40 * 24 * time.Hour)}))
	require.NoError(t, h.Record(ctx, domain.SearchRecord{ImageURL: "new", Origin: domain.OriginCLI, CreatedAt: now.Add(-time.Hour)}))

	n, err := PruneHistory(ctx, h, 30*24*time.Hour, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestStartPruner(t *testing.T) {
	uu := map[string]struct {
		retention time.Duration
		schedule  string
		entries   int
		err       bool
	}{
		"daily":        {retention: time.Hour, schedule: "@daily", entries: 1},
		"cron":         {retention: time.Hour, schedule: "0 3 * * *", entries: 1},
		"no retention": {retention: 0, schedule: "@daily"},
		"no schedule":  {retention: time.Hour},
		"bad":          {retention: time.Hour, schedule: "every tuesday", err: true},
	}

	for k, u := range uu {
		t.Run(k, func(t *testing.T) {
			c, err := StartPruner(nil, u.retention, u.schedule)
			if u.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer c.Stop()
			assert.Len(t, c.Entries(), u.entries)
		})
	}
}
