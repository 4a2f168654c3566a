package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
)

// randReader is the random source used for key and nonce generation.
// It defaults to nil (which uses crypto/rand) but can be overridden for testing.
var randReader io.Reader

func randSource() io.Reader {
	if randReader != nil {
		return randReader
	}
	return rand.Reader
}

// SetRandReaderForTesting replaces the random source and returns a function
// restoring the original. It must not be used outside tests.
func SetRandReaderForTesting(r io.Reader) func() {
	original := randReader
	randReader = r
	return func() { randReader = original }
}

// NewNonce draws a fresh AES-GCM nonce.
func NewNonce() ([]byte, error) {
	nonce := make([]byte, AESNonceSize)
	if _, err := io.ReadFull(randSource(), nonce); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandom, err)
	}
	return nonce, nil
}
