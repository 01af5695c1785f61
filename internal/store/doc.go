// Package store provides the bot's persistence.
//
// It contains concrete implementations of the domain storage interfaces:
//   - SettingsFileStore: the plugin settings file (config.json, {"apiKey": ...}),
//     created with defaults on first run.
//   - SecretFileStore: the API key sealed under a passphrase (scrypt +
//     XChaCha20-Poly1305), for hosts that must not keep it in plain text.
//   - HistorySQLStore: handled searches in SQLite, with versioned migrations.
//
// File writes go through a temp file and rename so readers never observe a
// partial file. All stores are safe for concurrent use.
package store
