package config

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"unicode/utf8"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"searchbyimage/internal/domain"
	"searchbyimage/internal/slogs"
	"searchbyimage/internal/store"
)

// APIKeyLength is the length of a SauceNAO API key.
const APIKeyLength = 40

// ErrInvalidAPIKey is returned for keys that are not APIKeyLength long.
var ErrInvalidAPIKey = errors.New("程序配置文件错误, ApiKey长度不等于40!")

// ValidateAPIKey checks the key's length.
func ValidateAPIKey(key string) error {
	if utf8.RuneCountInString(key) != APIKeyLength {
		return ErrInvalidAPIKey
	}
	return nil
}

// APIKeySource reads the apiKey from the settings file, letting
// SEARCHBYIMAGE_APIKEY override it, and can follow edits to the file.
type APIKeySource struct {
	v    *viper.Viper
	path string

	mu      sync.Mutex
	current string
}

// NewAPIKeySource reads the settings file at path. The file must exist; see
// store.SettingsFileStore.EnsureSettings.
func NewAPIKeySource(path string) (*APIKeySource, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.BindEnv("apikey", EnvPrefix+"_APIKEY"); err != nil {
		return nil, err
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}
	s := &APIKeySource{v: v, path: path}
	s.current = s.read()
	return s, nil
}

func (s *APIKeySource) read() string {
	return s.v.GetString("apikey")
}

// APIKey returns the most recently read key.
func (s *APIKeySource) APIKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Watch calls onChange with each valid key written to the settings file.
// Invalid keys are logged and the previous key stays in effect.
func (s *APIKeySource) Watch(onChange func(key string)) {
	s.v.OnConfigChange(func(e fsnotify.Event) {
		key := s.read()
		if err := ValidateAPIKey(key); err != nil {
			slog.Warn("Ignoring settings change", slogs.Path, e.Name, slogs.Error, err)
			return
		}

		s.mu.Lock()
		changed := key != s.current
		s.current = key
		s.mu.Unlock()

		if changed {
			slog.Info("API key reloaded", slogs.Path, e.Name)
			onChange(key)
		}
	})
	s.v.WatchConfig()
}

// ResolveAPIKey picks the key to run with: the settings file (or its env
// override) when it holds one, else the sealed key when a passphrase is given.
// The result is validated.
func ResolveAPIKey(settingsKey string, secrets domain.SecretStore, passphrase string) (string, error) {
	key := settingsKey
	if key == "" && passphrase != "" && secrets != nil {
		sealed, err := secrets.LoadAPIKey(passphrase)
		if err != nil && !errors.Is(err, store.ErrNoSealedKey) {
			return "", fmt.Errorf("load sealed api key: %w", err)
		}
		key = sealed
	}
	if err := ValidateAPIKey(key); err != nil {
		return "", err
	}
	return key, nil
}
