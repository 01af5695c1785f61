package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchbyimage/internal/store"
)

const validKey = "0123456789abcdef0123456789abcdef01234567"

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, "config/searchByImage", c.SettingsDir)
	assert.Equal(t, 15*time.Second, c.SauceNAO.ConnectTimeout)
	assert.Equal(t, 60*time.Second, c.SauceNAO.ReadTimeout)
	assert.Equal(t, 16, c.SauceNAO.NumResults)
	assert.Equal(t, 4, c.Gateway.Workers)
	assert.Equal(t, "@daily", c.History.PruneSchedule)
	assert.NoError(t, c.Validate())
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
cache:
  capacity: 8
  ttl: 5m
gateway:
  bot_id: 42
`), 0o600))
	t.Setenv("SEARCHBYIMAGE_GATEWAY_URL", "http://gw:9000")

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, 8, c.Cache.Capacity)
	assert.Equal(t, 5*time.Minute, c.Cache.TTL)
	assert.Equal(t, int64(42), c.Gateway.BotID)
	assert.Equal(t, "http://gw:9000", c.Gateway.URL)
	assert.Equal(t, 16, c.Gateway.BatchSize)
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gateway:\n  workers: 0\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateAPIKey(t *testing.T) {
	uu := map[string]struct {
		key string
		ok  bool
	}{
		"empty":   {key: "", ok: false},
		"short":   {key: "abc", ok: false},
		"long":    {key: validKey + "8", ok: false},
		"exact":   {key: validKey, ok: true},
		"unicode": {key: strings.Repeat("键", 40), ok: true},
	}

	for k, u := range uu {
		t.Run(k, func(t *testing.T) {
			err := ValidateAPIKey(u.key)
			if u.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidAPIKey)
			}
		})
	}
}

func writeSettings(t *testing.T, key string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"apiKey":"`+key+`"}`), 0o600))
	return path
}

func TestAPIKeySource_File(t *testing.T) {
	s, err := NewAPIKeySource(writeSettings(t, validKey))
	require.NoError(t, err)
	assert.Equal(t, validKey, s.APIKey())
}

func TestAPIKeySource_EnvOverride(t *testing.T) {
	other := strings.Repeat("z", 40)
	t.Setenv("SEARCHBYIMAGE_APIKEY", other)

	s, err := NewAPIKeySource(writeSettings(t, validKey))
	require.NoError(t, err)
	assert.Equal(t, other, s.APIKey())
}

func TestAPIKeySource_Watch(t *testing.T) {
	path := writeSettings(t, validKey)
	s, err := NewAPIKeySource(path)
	require.NoError(t, err)

	reloaded := make(chan string, 8)
	s.Watch(func(key string) { reloaded <- key })

	require.NoError(t, os.WriteFile(path, []byte(`{"apiKey":"short"}`), 0o600))
	select {
	case key := <-reloaded:
		t.Fatalf("invalid key %q was applied", key)
	case <-time.After(300 * time.Millisecond):
	}
	assert.Equal(t, validKey, s.APIKey())

	next := strings.Repeat("a", APIKeyLength)
	require.NoError(t, os.WriteFile(path, []byte(`{"apiKey":"`+next+`"}`), 0o600))
	select {
	case key := <-reloaded:
		assert.Equal(t, next, key)
	case <-time.After(5 * time.Second):
		t.Fatal("valid key was not reloaded")
	}
	assert.Equal(t, next, s.APIKey())
}

func TestAPIKeySource_Missing(t *testing.T) {
	_, err := NewAPIKeySource(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestResolveAPIKey(t *testing.T) {
	secrets := store.NewSecretFileStore(t.TempDir())
	sealedKey := strings.Repeat("s", 40)
	require.NoError(t, secrets.SaveAPIKey("pw", sealedKey))

	key, err := ResolveAPIKey(validKey, secrets, "pw")
	require.NoError(t, err)
	assert.Equal(t, validKey, key, "settings key wins over sealed key")

	key, err = ResolveAPIKey("", secrets, "pw")
	require.NoError(t, err)
	assert.Equal(t, sealedKey, key)

	_, err = ResolveAPIKey("", secrets, "")
	assert.ErrorIs(t, err, ErrInvalidAPIKey)

	_, err = ResolveAPIKey("", secrets, "wrong")
	assert.ErrorIs(t, err, store.ErrWrongPassphrase)

	_, err = ResolveAPIKey("short", nil, "")
	assert.ErrorIs(t, err, ErrInvalidAPIKey)
}
