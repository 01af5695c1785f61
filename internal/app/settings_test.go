package app

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchbyimage/internal/config"
	"searchbyimage/internal/store"
)

const validKey = "0123456789012345678901234567890123456789"

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	return &buf
}

func TestInitSettings(t *testing.T) {
	s := store.NewSettingsFileStore(filepath.Join(t.TempDir(), "config"))

	got, err := InitSettings(s, "")
	require.NoError(t, err)
	assert.Empty(t, got.APIKey)
	assert.FileExists(t, s.Path())

	got, err = InitSettings(s, validKey)
	require.NoError(t, err)
	assert.Equal(t, validKey, got.APIKey)

	// an existing key survives a plain init
	got, err = InitSettings(s, "")
	require.NoError(t, err)
	assert.Equal(t, validKey, got.APIKey)

	_, err = InitSettings(s, "short")
	assert.ErrorIs(t, err, config.ErrInvalidAPIKey)
	got, err = s.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, validKey, got.APIKey)
}

func TestLoadAPIKey(t *testing.T) {
	c := config.Default()
	c.SettingsDir = filepath.Join(t.TempDir(), "config", "searchByImage")
	s := store.NewSettingsFileStore(c.SettingsDir)
	_, err := InitSettings(s, validKey)
	require.NoError(t, err)

	key, src, err := LoadAPIKey(c, "")
	require.NoError(t, err)
	assert.Equal(t, validKey, key)
	assert.Equal(t, validKey, src.APIKey())
}

func TestEnable_LogsLoadedBeforeKeyCheck(t *testing.T) {
	logs := captureLogs(t)
	c := config.Default()
	c.SettingsDir = filepath.Join(t.TempDir(), "config", "searchByImage")

	_, _, err := Enable(c, "")
	assert.ErrorIs(t, err, config.ErrInvalidAPIKey)

	out := logs.String()
	loaded := strings.Index(out, LoadedMessage)
	invalid := strings.Index(out, config.ErrInvalidAPIKey.Error())
	require.GreaterOrEqual(t, loaded, 0)
	require.GreaterOrEqual(t, invalid, 0)
	assert.Less(t, loaded, invalid)

	// the default settings file was bootstrapped
	b, err := os.ReadFile(filepath.Join(c.SettingsDir, store.SettingsFilename))
	require.NoError(t, err)
	assert.JSONEq(t, `{"apiKey":""}`, string(b))
}
