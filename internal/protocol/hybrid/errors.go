package hybrid

import (
	"fmt"

	"lexvault/internal/domain"
)

// ErrMalformedBundle is returned for bundles that are structurally unusable.
// It is a decryption failure, not a signature failure.
var ErrMalformedBundle = fmt.Errorf("%w: malformed bundle", domain.ErrDecryptionFailed)

func unavailable(step string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrCryptoUnavailable, step, err)
}

func malformed(reason string) error {
	return fmt.Errorf("%w: %s", ErrMalformedBundle, reason)
}
