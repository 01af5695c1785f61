// Package config loads the bot's runtime configuration and the plugin
// settings file.
//
// Runtime options come from an optional YAML file, SEARCHBYIMAGE_* environment
// variables and built-in defaults, in that order of precedence (environment
// first). The API key lives in the separate settings file, see APIKeySource.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SEARCHBYIMAGE_LOG_LEVEL.
const EnvPrefix = "SEARCHBYIMAGE"

// Config is the complete runtime configuration.
type Config struct {
	SettingsDir string `mapstructure:"settings_dir"`

	Log      LogConfig      `mapstructure:"log"`
	SauceNAO SauceNAOConfig `mapstructure:"saucenao"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Gateway  GatewayConfig  `mapstructure:"gateway"`
	History  HistoryConfig  `mapstructure:"history"`
}

// LogConfig selects log level and destination.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// SauceNAOConfig tunes the search backend client.
type SauceNAOConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	NumResults     int           `mapstructure:"num_results"`
	RateLimit      int           `mapstructure:"rate_limit"`
	RateWindow     time.Duration `mapstructure:"rate_window"`
}

// CacheConfig sizes the result cache. Capacity 0 disables it.
type CacheConfig struct {
	Capacity int           `mapstructure:"capacity"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// GatewayConfig points the bot at its chat gateway.
type GatewayConfig struct {
	URL          string        `mapstructure:"url"`
	BotID        int64         `mapstructure:"bot_id"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	BatchSize    int           `mapstructure:"batch_size"`
	Workers      int           `mapstructure:"workers"`
}

// HistoryConfig controls the search history database.
type HistoryConfig struct {
	Path          string        `mapstructure:"path"`
	Retention     time.Duration `mapstructure:"retention"`
	PruneSchedule string        `mapstructure:"prune_schedule"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("settings_dir", "config/searchByImage")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetDefault("saucenao.base_url", "https://saucenao.com")
	v.SetDefault("saucenao.connect_timeout", 15*time.Second)
	v.SetDefault("saucenao.read_timeout", 60*time.Second)
	v.SetDefault("saucenao.num_results", 16)
	v.SetDefault("saucenao.rate_limit", 4)
	v.SetDefault("saucenao.rate_window", 30*time.Second)

	v.SetDefault("cache.capacity", 512)
	v.SetDefault("cache.ttl", time.Hour)

	v.SetDefault("gateway.url", "http://127.0.0.1:8080")
	v.SetDefault("gateway.bot_id", 0)
	v.SetDefault("gateway.poll_interval", time.Second)
	v.SetDefault("gateway.batch_size", 16)
	v.SetDefault("gateway.workers", 4)

	v.SetDefault("history.path", "data/searchByImage/history.db")
	v.SetDefault("history.retention", 30*24*time.Hour)
	v.SetDefault("history.prune_schedule", "@daily")
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	// defaults always decode
	_ = v.Unmarshal(&c)
	return &c
}

// Load reads the YAML file at path (or searchbyimage.yaml in the working
// directory or ./config when path is empty), applies environment overrides and
// validates the result. A missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("searchbyimage")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects settings the bot cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.SettingsDir == "":
		return errors.New("config: settings_dir is empty")
	case c.SauceNAO.BaseURL == "":
		return errors.New("config: saucenao.base_url is empty")
	case c.SauceNAO.RateLimit < 0:
		return errors.New("config: saucenao.rate_limit must not be negative")
	case c.SauceNAO.RateLimit > 0 && c.SauceNAO.RateWindow <= 0:
		return errors.New("config: saucenao.rate_window must be positive")
	case c.Cache.Capacity < 0:
		return errors.New("config: cache.capacity must not be negative")
	case c.Gateway.BatchSize <= 0:
		return errors.New("config: gateway.batch_size must be positive")
	case c.Gateway.Workers <= 0:
		return errors.New("config: gateway.workers must be positive")
	}
	return nil
}
