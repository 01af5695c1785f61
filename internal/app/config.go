package app

import (
	"net/http"

	"searchbyimage/internal/config"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Settings *config.Config
	APIKey   string       // validated SauceNAO key; empty for commands that do not search
	HTTP     *http.Client // optional; gateway client, defaults to http.DefaultClient
}
