package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"lexvault/internal/domain"
)

// Fingerprint returns a short fingerprint of a raw public key, meant to be
// read aloud or compared side by side when keys are exchanged out of band.
//
// It hashes with SHA-256, truncates to 10 bytes and prints five groups of
// four hex digits.
func Fingerprint(pub []byte) domain.Fingerprint {
	sum := sha256.Sum256(pub)
	h := hex.EncodeToString(sum[:10])
	groups := make([]string, 0, len(h)/4)
	for i := 0; i < len(h); i += 4 {
		groups = append(groups, h[i:i+4])
	}
	return domain.Fingerprint(strings.Join(groups, " "))
}
