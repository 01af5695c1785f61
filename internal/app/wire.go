package app

import (
	"fmt"
	"net/http"

	"searchbyimage/internal/cache"
	"searchbyimage/internal/domain"
	"searchbyimage/internal/gateway"
	"searchbyimage/internal/saucenao"
	botsvc "searchbyimage/internal/services/bot"
	searchsvc "searchbyimage/internal/services/search"
	"searchbyimage/internal/store"
)

// Wire bundles all stores, services and clients for the CLI.
type Wire struct {
	Settings *store.SettingsFileStore
	Secrets  *store.SecretFileStore
	History  *store.HistorySQLStore
	Cache    domain.ResultCache
	Engine   *saucenao.Client
	Gateway  *gateway.HTTPClient
	Search   *searchsvc.Service
	Bot      *botsvc.Service
	HTTP     *http.Client
}

// NewWire constructs the dependency graph from cfg. The caller must Close
// the result.
func NewWire(cfg Config) (*Wire, error) {
	c := cfg.Settings
	if c == nil {
		return nil, fmt.Errorf("app: no configuration")
	}

	// File-based stores
	settingsStore := store.NewSettingsFileStore(c.SettingsDir)
	secretStore := store.NewSecretFileStore(c.SettingsDir)
	history, err := store.OpenHistory(c.History.Path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}

	var results domain.ResultCache = cache.Null{}
	if c.Cache.Capacity > 0 {
		lru, err := cache.New(c.Cache.Capacity, c.Cache.TTL)
		if err != nil {
			history.Close()
			return nil, err
		}
		results = lru
	}

	engine, err := saucenao.New(cfg.APIKey, c.SauceNAO.ConnectTimeout, c.SauceNAO.ReadTimeout,
		saucenao.WithBaseURL(c.SauceNAO.BaseURL),
		saucenao.WithNumResults(c.SauceNAO.NumResults),
	)
	if err != nil {
		history.Close()
		return nil, err
	}

	// Ensure an HTTP client is available for gateway calls
	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	gw := gateway.NewHTTP(c.Gateway.URL, httpClient)

	// High-level services
	searchSvc := searchsvc.New(engine, results, history,
		searchsvc.NewLimiter(c.SauceNAO.RateLimit, c.SauceNAO.RateWindow))
	botSvc := botsvc.New(gw, searchSvc, botsvc.Options{
		BotID:        domain.UserID(c.Gateway.BotID),
		PollInterval: c.Gateway.PollInterval,
		BatchSize:    c.Gateway.BatchSize,
		Workers:      c.Gateway.Workers,
	})

	return &Wire{
		Settings: settingsStore,
		Secrets:  secretStore,
		History:  history,
		Cache:    results,
		Engine:   engine,
		Gateway:  gw,
		Search:   searchSvc,
		Bot:      botSvc,
		HTTP:     httpClient,
	}, nil
}

// Close releases the history database.
func (w *Wire) Close() error {
	return w.History.Close()
}
