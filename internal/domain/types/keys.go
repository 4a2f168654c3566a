package types

import "fmt"

// P256PublicSize is the length of an uncompressed P-256 point (0x04 || X || Y).
const P256PublicSize = 65

// P256Public is a raw, uncompressed P-256 public key.
//
// Both ECDSA verifying keys and ECDH exchange keys travel in this form.
type P256Public [P256PublicSize]byte

// Slice returns the key as a []byte.
func (p P256Public) Slice() []byte { return p[:] }

// IsZero reports whether the key is unset.
func (p P256Public) IsZero() bool { return p == P256Public{} }

// P256PublicFromBytes copies b into a P256Public after a length check.
// It does not validate that b encodes a point on the curve.
func P256PublicFromBytes(b []byte) (P256Public, error) {
	var out P256Public
	if len(b) != P256PublicSize {
		return out, fmt.Errorf("P-256 public key: want %d bytes, got %d", P256PublicSize, len(b))
	}
	copy(out[:], b)
	return out, nil
}
