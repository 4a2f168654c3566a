package crypto

import (
	"crypto/ecdh"
	"fmt"

	"lexvault/internal/domain"
)

// SharedSecretSize is the size of a P-256 ECDH shared secret in bytes.
const SharedSecretSize = 32

// GenerateP256Exchange returns a fresh ECDH P-256 key pair together with the
// raw encoding of its public half.
func GenerateP256Exchange() (*ecdh.PrivateKey, domain.P256Public, error) {
	var pub domain.P256Public
	priv, err := ecdh.P256().GenerateKey(randSource())
	if err != nil {
		return nil, pub, fmt.Errorf("%w: %v", ErrRandom, err)
	}
	copy(pub[:], priv.PublicKey().Bytes())
	return priv, pub, nil
}

// ExchangePublic returns the raw encoding of priv's public key.
func ExchangePublic(priv *ecdh.PrivateKey) domain.P256Public {
	var pub domain.P256Public
	copy(pub[:], priv.PublicKey().Bytes())
	return pub
}

// ParseExchangeKey imports a raw uncompressed P-256 point as an ECDH public
// key. Points that are off the curve or at infinity are rejected.
func ParseExchangeKey(raw []byte) (*ecdh.PublicKey, error) {
	pub, err := ecdh.P256().NewPublicKey(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return pub, nil
}

// SharedSecret computes ECDH(priv, pub) and returns the 32-byte X coordinate.
func SharedSecret(priv *ecdh.PrivateKey, pub *ecdh.PublicKey) ([]byte, error) {
	secret, err := priv.ECDH(pub)
	if err != nil {
		return nil, err
	}
	return secret, nil
}
