package crypto

import "errors"

var (
	// ErrInvalidKeySize is returned when the AES key size is invalid.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidNonceSize is returned when the nonce size is invalid.
	ErrInvalidNonceSize = errors.New("invalid nonce size")

	// ErrInvalidPublicKey is returned when raw bytes are not a valid P-256 point.
	ErrInvalidPublicKey = errors.New("invalid P-256 public key")

	// ErrBadSignature is returned when a signature is malformed or does not verify.
	ErrBadSignature = errors.New("bad signature")

	// ErrOpenFailed is returned when AES-GCM authentication fails.
	ErrOpenFailed = errors.New("message authentication failed")

	// ErrRandom is returned when the random source cannot be read.
	ErrRandom = errors.New("random source unavailable")
)
