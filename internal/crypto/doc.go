// Package crypto holds helpers for showing secrets without revealing them.
//
// Fingerprint identifies an API key in logs and CLI output; Redact masks it
// for display. Sealing the key at rest lives in internal/store.
package crypto
