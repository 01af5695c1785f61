package commands

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchbyimage/internal/config"
	"searchbyimage/internal/logging"
)

type closeRecorder struct{ closed int }

func (c *closeRecorder) Close() error {
	c.closed++
	return nil
}

func TestRun_ClosesLogOnCommandError(t *testing.T) {
	rec := &closeRecorder{}
	prevSetup, prevLog := setupLogging, slog.Default()
	t.Cleanup(func() {
		setupLogging = prevSetup
		slog.SetDefault(prevLog)
	})
	t.Setenv(config.EnvPrefix+"_APIKEY", "")
	setupLogging = func(opts logging.Options) (io.Closer, error) {
		if _, err := logging.Setup(logging.Options{Level: opts.Level}); err != nil {
			return nil, err
		}
		return rec, nil
	}

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "searchbyimage.yaml")
	require.NoError(t, os.WriteFile(cfgPath,
		[]byte("settings_dir: "+filepath.Join(dir, "settings")+"\n"), 0o644))

	// no key configured, so search fails inside RunE
	err := run([]string{"--config", cfgPath, "search", "https://h/a.png"})
	require.ErrorIs(t, err, config.ErrInvalidAPIKey)
	assert.Equal(t, 1, rec.closed)
}
