package store

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

// sealedFormatVersion is the newest envelope layout this package writes.
const sealedFormatVersion = 1

// ErrWrongPassphrase means the passphrase is wrong or the envelope was modified.
var ErrWrongPassphrase = errors.New("wrong passphrase or corrupted key file")

// sealed is the on-disk JSON envelope holding the ciphertext and KDF parameters.
type sealed struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Nonce  []byte `json:"nonce"`
	Cipher []byte `json:"cipher"`
}

// seal derives a key from passphrase and encrypts raw into an envelope.
func seal(passphrase string, raw []byte, n, r, p int) ([]byte, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	key, err := scrypt.Key([]byte(passphrase), salt, n, r, p, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	ct := aead.Seal(nil, nonce, raw, salt)

	return json.Marshal(sealed{
		V:      sealedFormatVersion,
		Salt:   salt,
		N:      n,
		R:      r,
		P:      p,
		Nonce:  nonce,
		Cipher: ct,
	})
}

// unseal opens an envelope produced by seal.
func unseal(passphrase string, b []byte) ([]byte, error) {
	var env sealed
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, err
	}
	if env.V > sealedFormatVersion {
		return nil, fmt.Errorf("unsupported key file version %d", env.V)
	}

	key, err := scrypt.Key([]byte(passphrase), env.Salt, env.N, env.R, env.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	if len(env.Nonce) != aead.NonceSize() {
		return nil, ErrWrongPassphrase
	}
	pt, err := aead.Open(nil, env.Nonce, env.Cipher, env.Salt)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}

// Tunables for scrypt key derivation.
func scryptParamsDefault() (n, r, p int) { return 1 << 15, 8, 1 }
