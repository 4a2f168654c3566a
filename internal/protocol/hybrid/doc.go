// Package hybrid implements the confidential document scheme: a document
// owner encrypts once for a single recipient and signs the result, and the
// recipient verifies before decrypting.
//
// # Scheme
//
// Sealing (owner side, EncryptAndSign):
//  1. Generate an ephemeral ECDH P-256 key pair, used exactly once.
//  2. Shared secret = ECDH(ephemeral private, recipient exchange public).
//  3. Draw a random 12-byte IV.
//  4. AES-256-GCM encrypt under (shared secret, IV); the tag is appended.
//  5. Export the ephemeral public key as a raw uncompressed point.
//  6. Signing input = ephemeral public || ciphertext || IV.
//  7. ECDSA P-256 / SHA-256 signature with the owner's signing key.
//
// Opening (recipient side, VerifyAndDecrypt):
//  1. Rebuild the signing input from the bundle.
//  2. Verify the signature with the owner's public signing key. This is
//     unconditional: nothing is decrypted on failure.
//  3. Import the ephemeral public key and re-derive the shared secret with
//     the recipient's exchange private key.
//  4. AES-256-GCM decrypt; the tag is a second, independent integrity check.
//
// # Wire layout
//
// The signing input is a raw concatenation with no length prefixes. The
// ephemeral key is always 65 bytes and the IV always 12, so the ciphertext is
// delimited by position. Changing this order breaks every existing bundle.
//
// # Errors
//
// Failures wrap the domain taxonomy: domain.ErrCryptoUnavailable for
// primitive or RNG failures while sealing, domain.ErrSignatureInvalid when
// verification fails, and domain.ErrDecryptionFailed for tag mismatches and
// malformed bundles (ErrMalformedBundle). A cancelled context aborts with
// ctx.Err() and produces no output.
//
// # Concurrency
//
// Nothing here holds mutable state. Each call owns its ephemeral key and
// derived secret, so any number of calls may run concurrently.
package hybrid
