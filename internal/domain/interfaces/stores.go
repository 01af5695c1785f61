package interfaces

import (
	"context"
	"time"

	domaintypes "searchbyimage/internal/domain/types"
)

// SettingsStore owns the plugin settings file.
type SettingsStore interface {
	EnsureSettings() error
	LoadSettings() (domaintypes.Settings, error)
	SaveSettings(settings domaintypes.Settings) error
	Path() string
}

// SecretStore keeps the backend API key sealed under a passphrase.
type SecretStore interface {
	SaveAPIKey(passphrase, apiKey string) error
	LoadAPIKey(passphrase string) (string, error)
}

// HistoryStore persists handled searches.
type HistoryStore interface {
	Record(ctx context.Context, record domaintypes.SearchRecord) error
	Recent(ctx context.Context, limit int) ([]domaintypes.SearchRecord, error)
	Prune(ctx context.Context, before time.Time) (int64, error)
	Stats(ctx context.Context) (domaintypes.HistoryStats, error)
}

// ResultCache memoises backend responses by image URL.
type ResultCache interface {
	Get(imageURL string) (domaintypes.SearchResponse, bool)
	Put(imageURL string, resp domaintypes.SearchResponse)
	Len() int
}
