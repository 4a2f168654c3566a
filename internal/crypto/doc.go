// Package crypto exposes the minimal primitives used by lexvault.
//
// Contents
//
//   - P-256 ECDH key generation, raw public key import and shared-secret
//     derivation (GenerateP256Exchange, ParseExchangeKey, SharedSecret)
//   - P-256 ECDSA key generation, signing and verification over SHA-256 with
//     fixed-width IEEE P1363 signatures (GenerateP256Signing, SignP256,
//     VerifyP256)
//   - AES-256-GCM sealing and opening (SealAESGCM, OpenAESGCM) and nonce
//     generation (NewNonce)
//   - Short public-key fingerprints for display/logging (Fingerprint)
//
// # Encodings
//
// Public keys are exchanged as 65-byte uncompressed points (0x04 || X || Y),
// the "raw" format of WebCrypto's exportKey. Signatures are the 64-byte
// r || s concatenation WebCrypto produces for ECDSA; they are converted to
// and from ASN.1 DER internally because crypto/ecdsa speaks DER.
//
// # Notes
//
// The ECDH shared secret is the 32-byte X coordinate and is used directly as
// an AES-256 key, matching WebCrypto's deriveKey for AES-GCM. Callers should
// treat returned secrets as sensitive and wipe them with memzero.Zero once
// used.
package crypto
