// Package identity is the key store for one document-sharing session.
//
// A KeyStore generates the owner's ECDSA P-256 signing key pair and the
// recipient's ECDH P-256 exchange key pair exactly once, in the background,
// and hands every caller the same immutable Keys handle. Nothing is generated
// until Initialize is called, nothing is persisted, and nothing is global:
// each KeyStore is an independent session.
//
// # Waiting for keys
//
// Initialize starts generation on first use and blocks until it completes or
// the caller's context ends. Concurrent callers all wait on the same result.
// A caller whose context ends first receives domain.ErrInitializationPending;
// generation continues and later callers still get the keys.
//
// Keys never blocks. It is what request handlers use when they would rather
// fail fast than wait.
//
// # Failure
//
// A generation failure is sticky. Every later call returns the same error,
// which wraps domain.ErrCryptoUnavailable.
package identity
