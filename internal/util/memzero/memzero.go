// Package memzero wipes secrets held in byte slices.
//
// Wiping is best effort: the runtime may already have copied the bytes
// elsewhere, and values held inside crypto/ecdh or crypto/ecdsa keys cannot
// be reached at all. It still shortens the window in which derived secrets
// sit in memory.
package memzero

import (
	"crypto/subtle"
	"runtime"
)

// Zero overwrites every byte of b with zero.
func Zero(b []byte) {
	if len(b) == 0 {
		return
	}
	subtle.XORBytes(b, b, b)
	runtime.KeepAlive(b)
}
