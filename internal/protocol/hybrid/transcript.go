package hybrid

import (
	"lexvault/internal/crypto"
	"lexvault/internal/domain"
)

const (
	// IVSize is the AES-GCM nonce length carried in every bundle.
	IVSize = crypto.AESNonceSize
	// PublicKeySize is the length of the raw ephemeral public key.
	PublicKeySize = domain.P256PublicSize
	// SignatureSize is the length of an r || s ECDSA P-256 signature.
	SignatureSize = crypto.P256SignatureSize
	// KeySize is the length of the derived AES-256 key.
	KeySize = crypto.AESKeySize
	// TagSize is the AES-GCM tag appended to the ciphertext.
	TagSize = crypto.AESTagSize
)

// SigningInput returns ephemeralPublicKey || ciphertext || iv.
func SigningInput(ephemeralPublicKey, ciphertext, iv []byte) []byte {
	out := make([]byte, 0, len(ephemeralPublicKey)+len(ciphertext)+len(iv))
	out = append(out, ephemeralPublicKey...)
	out = append(out, ciphertext...)
	return append(out, iv...)
}

func bundleSigningInput(b domain.EncryptedBundle) []byte {
	return SigningInput(b.EphemeralPublicKey, b.Ciphertext, b.IV)
}
