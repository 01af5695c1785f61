package app

import (
	"errors"
	"log/slog"

	"searchbyimage/internal/config"
	"searchbyimage/internal/domain"
	"searchbyimage/internal/store"
)

// LoadedMessage is logged when the bot is enabled, before its settings are checked.
const LoadedMessage = "ImageSearching bot loaded!"

// InitSettings creates the settings file when missing, stores apiKey in it
// when one is given, and returns the settings now on disk.
func InitSettings(s domain.SettingsStore, apiKey string) (domain.Settings, error) {
	if err := s.EnsureSettings(); err != nil {
		return domain.Settings{}, err
	}
	if apiKey != "" {
		if err := config.ValidateAPIKey(apiKey); err != nil {
			return domain.Settings{}, err
		}
		if err := s.SaveSettings(domain.Settings{APIKey: apiKey}); err != nil {
			return domain.Settings{}, err
		}
	}
	return s.LoadSettings()
}

// LoadAPIKey makes sure the settings file exists and resolves the key to
// search with, returning the settings source for hot reload.
func LoadAPIKey(c *config.Config, passphrase string) (string, *config.APIKeySource, error) {
	var settings domain.SettingsStore = store.NewSettingsFileStore(c.SettingsDir)
	if err := settings.EnsureSettings(); err != nil {
		return "", nil, err
	}
	src, err := config.NewAPIKeySource(settings.Path())
	if err != nil {
		return "", nil, err
	}
	key, err := config.ResolveAPIKey(src.APIKey(), store.NewSecretFileStore(c.SettingsDir), passphrase)
	if err != nil {
		if errors.Is(err, config.ErrInvalidAPIKey) {
			slog.Warn(err.Error())
		}
		return "", nil, err
	}
	return key, src, nil
}

// Enable announces the bot and then loads its API key, so a bad key is
// reported after the bot shows as loaded.
func Enable(c *config.Config, passphrase string) (string, *config.APIKeySource, error) {
	slog.Info(LoadedMessage)
	return LoadAPIKey(c, passphrase)
}
