package domain

import (
	"context"
	"errors"
)

// Document protection errors. Every one of them is surfaced to the caller as a
// distinct failure and none is retried automatically.
var (
	// ErrCryptoUnavailable indicates a primitive or the RNG failed. There is no
	// degraded mode: the document must not be stored or shown.
	ErrCryptoUnavailable = errors.New("cryptography unavailable: cannot secure or open document right now")

	// ErrSignatureInvalid indicates the bundle signature did not verify. The
	// file may have been tampered with or is not from the expected sender.
	ErrSignatureInvalid = errors.New("signature verification failed: file may be tampered with or not from the expected sender")

	// ErrDecryptionFailed indicates an AES-GCM tag mismatch or a malformed bundle.
	ErrDecryptionFailed = errors.New("decryption failed: file is corrupted or not addressed to this recipient")

	// ErrEncryptionFailed indicates an upload could not be sealed in time.
	ErrEncryptionFailed = errors.New("encryption failed: document was not stored")

	// ErrOpenFailed is the generic failure shown when the precise reason for a
	// failed open is withheld from the viewer.
	ErrOpenFailed = errors.New("could not decrypt or verify the file")

	// ErrInitializationPending indicates the key store has not finished
	// generating keys. Callers should wait and try again.
	ErrInitializationPending = errors.New("key initialization pending")
)

// Record errors.
var (
	// ErrMaterialNotFound indicates no material exists with the given id.
	ErrMaterialNotFound = errors.New("material not found")

	// ErrInvalidMaterial indicates the upload or update request is unusable.
	ErrInvalidMaterial = errors.New("invalid material")
)

// ErrorKind is the stable, wire-visible name of a failure class.
type ErrorKind string

// Wire kinds reported by KindOf.
const (
	KindNone                  ErrorKind = ""
	KindCryptoUnavailable     ErrorKind = "crypto_unavailable"
	KindSignatureInvalid      ErrorKind = "signature_invalid"
	KindDecryptionFailed      ErrorKind = "decryption_failed"
	KindEncryptionFailed      ErrorKind = "encryption_failed"
	KindInitializationPending ErrorKind = "initialization_pending"
	KindNotFound              ErrorKind = "not_found"
	KindInvalidRequest        ErrorKind = "invalid_request"
	KindOpenFailed            ErrorKind = "open_failed"
	KindInternal              ErrorKind = "internal"
)

var kindErrors = []struct {
	kind ErrorKind
	err  error
}{
	{KindSignatureInvalid, ErrSignatureInvalid},
	{KindDecryptionFailed, ErrDecryptionFailed},
	{KindEncryptionFailed, ErrEncryptionFailed},
	{KindInitializationPending, ErrInitializationPending},
	{KindCryptoUnavailable, ErrCryptoUnavailable},
	{KindOpenFailed, ErrOpenFailed},
	{KindNotFound, ErrMaterialNotFound},
	{KindInvalidRequest, ErrInvalidMaterial},
}

// KindOf classifies err. Unknown non-nil errors are KindInternal.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	for _, ke := range kindErrors {
		if errors.Is(err, ke.err) {
			return ke.kind
		}
	}
	return KindInternal
}

// ErrorForKind returns the sentinel error for kind, or nil if kind has none.
func ErrorForKind(kind ErrorKind) error {
	for _, ke := range kindErrors {
		if ke.kind == kind {
			return ke.err
		}
	}
	return nil
}

// IsTimeout reports whether err came from an expired or cancelled context.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
