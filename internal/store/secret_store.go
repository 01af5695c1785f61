package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"searchbyimage/internal/domain"
	"searchbyimage/internal/util/memzero"
)

const sealedKeyFilename = "apikey.enc"

// ErrNoSealedKey means no API key has been sealed yet.
var ErrNoSealedKey = errors.New("no sealed api key")

// SecretFileStore keeps the backend API key encrypted under a passphrase.
type SecretFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewSecretFileStore returns a SecretFileStore rooted at dir.
func NewSecretFileStore(dir string) *SecretFileStore {
	return &SecretFileStore{dir: dir}
}

// SaveAPIKey seals apiKey with passphrase and writes it to disk.
func (s *SecretFileStore) SaveAPIKey(passphrase, apiKey string) error {
	if passphrase == "" {
		return fmt.Errorf("passphrase required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	raw := []byte(apiKey)
	defer memzero.Zero(raw)

	n, r, p := scryptParamsDefault()
	blob, err := seal(passphrase, raw, n, r, p)
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(s.dir, sealedKeyFilename), blob, 0o600)
}

// LoadAPIKey reads and unseals the API key.
func (s *SecretFileStore) LoadAPIKey(passphrase string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(filepath.Join(s.dir, sealedKeyFilename))
	if err != nil {
		return "", err
	}
	if b == nil {
		return "", ErrNoSealedKey
	}
	pt, err := unseal(passphrase, b)
	if err != nil {
		return "", err
	}
	defer memzero.Zero(pt)
	return string(pt), nil
}

var _ domain.SecretStore = (*SecretFileStore)(nil)
