// Package memzero wipes secrets held in byte slices.
package memzero

import "runtime"

// Zero overwrites b with zeros once the secret it holds has been consumed.
func Zero(b []byte) {
	clear(b)
	runtime.KeepAlive(b)
}
