package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"searchbyimage/internal/domain"
	"searchbyimage/internal/slogs"
)

// SettingsFilename is the settings file inside the settings directory.
const SettingsFilename = "config.json"

// SettingsFileStore owns <dir>/config.json.
type SettingsFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewSettingsFileStore returns a store rooted at dir.
func NewSettingsFileStore(dir string) *SettingsFileStore {
	return &SettingsFileStore{dir: dir}
}

// Path returns the settings file location.
func (s *SettingsFileStore) Path() string { return filepath.Join(s.dir, SettingsFilename) }

// EnsureSettings creates the directory and a default settings file when they
// are missing. Existing files are left untouched.
func (s *SettingsFileStore) EnsureSettings() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fi, err := os.Stat(s.dir); err != nil || !fi.IsDir() {
		slog.Warn("Making settings directory", slogs.Path, s.dir)
		if err := os.MkdirAll(s.dir, 0o755); err != nil {
			return fmt.Errorf("make settings dir: %w", err)
		}
	}

	path := s.Path()
	fi, err := os.Stat(path)
	if err == nil {
		if !fi.Mode().IsRegular() {
			return fmt.Errorf("settings path %q is not a regular file", path)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}

	slog.Warn("Creating settings file", slogs.Path, path)
	return writeJSON(path, domain.Settings{}, 0o600)
}

// LoadSettings reads the settings file. A missing file yields empty settings.
func (s *SettingsFileStore) LoadSettings() (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out domain.Settings
	b, err := readFile(s.Path())
	if err != nil || b == nil {
		return out, err
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return domain.Settings{}, fmt.Errorf("decode %s: %w", s.Path(), err)
	}
	return out, nil
}

// SaveSettings overwrites the settings file.
func (s *SettingsFileStore) SaveSettings(settings domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	return writeJSON(s.Path(), settings, 0o600)
}

var _ domain.SettingsStore = (*SettingsFileStore)(nil)
