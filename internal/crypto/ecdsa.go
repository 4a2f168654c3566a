package crypto

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/sha256"
	"fmt"
	"math/big"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"

	"lexvault/internal/domain"
)

const (
	// P256ScalarSize is the byte length of a P-256 scalar or coordinate.
	P256ScalarSize = 32
	// P256SignatureSize is the byte length of an r || s signature.
	P256SignatureSize = 2 * P256ScalarSize
)

// GenerateP256Signing returns a fresh ECDSA P-256 signing key together with
// the raw encoding of its public half.
func GenerateP256Signing() (*ecdsa.PrivateKey, domain.P256Public, error) {
	var pub domain.P256Public
	priv, err := ecdsa.GenerateKey(elliptic.P256(), randSource())
	if err != nil {
		return nil, pub, fmt.Errorf("%w: %v", ErrRandom, err)
	}
	pub, err = SigningPublic(&priv.PublicKey)
	if err != nil {
		return nil, pub, err
	}
	return priv, pub, nil
}

// SigningPublic returns the raw uncompressed encoding of an ECDSA public key.
func SigningPublic(pub *ecdsa.PublicKey) (domain.P256Public, error) {
	var out domain.P256Public
	ek, err := pub.ECDH()
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	copy(out[:], ek.Bytes())
	return out, nil
}

// ParseVerifyingKey imports a raw uncompressed P-256 point as an ECDSA public key.
func ParseVerifyingKey(raw domain.P256Public) (*ecdsa.PublicKey, error) {
	// ecdh performs the on-curve and infinity checks for us.
	if _, err := ecdh.P256().NewPublicKey(raw.Slice()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return &ecdsa.PublicKey{
		Curve: elliptic.P256(),
		X:     new(big.Int).SetBytes(raw[1 : 1+P256ScalarSize]),
		Y:     new(big.Int).SetBytes(raw[1+P256ScalarSize:]),
	}, nil
}

// SignP256 signs SHA-256(msg) with priv and returns a 64-byte r || s signature.
func SignP256(priv *ecdsa.PrivateKey, msg []byte) ([]byte, error) {
	digest := sha256.Sum256(msg)
	der, err := ecdsa.SignASN1(randSource(), priv, digest[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandom, err)
	}
	return derToP1363(der)
}

// VerifyP256 checks a 64-byte r || s signature over SHA-256(msg).
func VerifyP256(pub domain.P256Public, msg, sig []byte) error {
	key, err := ParseVerifyingKey(pub)
	if err != nil {
		return err
	}
	der, err := p1363ToDER(sig)
	if err != nil {
		return err
	}
	digest := sha256.Sum256(msg)
	if !ecdsa.VerifyASN1(key, digest[:], der) {
		return ErrBadSignature
	}
	return nil
}

// derToP1363 converts an ASN.1 ECDSA-Sig-Value into fixed-width r || s.
func derToP1363(der []byte) ([]byte, error) {
	var (
		r, s  = new(big.Int), new(big.Int)
		inner cryptobyte.String
	)
	input := cryptobyte.String(der)
	if !input.ReadASN1(&inner, asn1.SEQUENCE) ||
		!input.Empty() ||
		!inner.ReadASN1Integer(r) ||
		!inner.ReadASN1Integer(s) ||
		!inner.Empty() {
		return nil, fmt.Errorf("%w: malformed DER", ErrBadSignature)
	}
	if r.Sign() <= 0 || s.Sign() <= 0 || r.BitLen() > 8*P256ScalarSize || s.BitLen() > 8*P256ScalarSize {
		return nil, fmt.Errorf("%w: scalar out of range", ErrBadSignature)
	}
	out := make([]byte, P256SignatureSize)
	r.FillBytes(out[:P256ScalarSize])
	s.FillBytes(out[P256ScalarSize:])
	return out, nil
}

// p1363ToDER converts fixed-width r || s into an ASN.1 ECDSA-Sig-Value.
func p1363ToDER(sig []byte) ([]byte, error) {
	if len(sig) != P256SignatureSize {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrBadSignature, P256SignatureSize, len(sig))
	}
	r := new(big.Int).SetBytes(sig[:P256ScalarSize])
	s := new(big.Int).SetBytes(sig[P256ScalarSize:])

	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1BigInt(r)
		b.AddASN1BigInt(s)
	})
	der, err := b.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSignature, err)
	}
	return der, nil
}
