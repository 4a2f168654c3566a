package crypto_test

import (
	"bytes"
	"errors"
	"testing"
	"testing/iotest"

	"lexvault/internal/crypto"
)

func TestAESGCM_RoundTrip(t *testing.T) {
	key := bytes.Repeat([]byte{0x42}, crypto.AESKeySize)
	nonce, err := crypto.NewNonce()
	if err != nil {
		t.Fatalf("NewNonce: %v", err)
	}
	ct, err := crypto.SealAESGCM(key, nonce, []byte("privileged"))
	if err != nil {
		t.Fatalf("SealAESGCM: %v", err)
	}
	if len(ct) != len("privileged")+crypto.AESTagSize {
		t.Fatalf("ciphertext length = %d", len(ct))
	}
	pt, err := crypto.OpenAESGCM(key, nonce, ct)
	if err != nil {
		t.Fatalf("OpenAESGCM: %v", err)
	}
	if string(pt) != "privileged" {
		t.Fatalf("got %q", pt)
	}
}

func TestAESGCM_TagMismatch(t *testing.T) {
	key := bytes.Repeat([]byte{0x42}, crypto.AESKeySize)
	nonce := make([]byte, crypto.AESNonceSize)
	ct, err := crypto.SealAESGCM(key, nonce, []byte("x"))
	if err != nil {
		t.Fatalf("SealAESGCM: %v", err)
	}
	ct[0] ^= 0x01
	if _, err := crypto.OpenAESGCM(key, nonce, ct); !errors.Is(err, crypto.ErrOpenFailed) {
		t.Fatalf("want ErrOpenFailed, got %v", err)
	}
	if _, err := crypto.OpenAESGCM(key, nonce, ct[:3]); !errors.Is(err, crypto.ErrOpenFailed) {
		t.Fatalf("short ciphertext: want ErrOpenFailed, got %v", err)
	}
}

func TestAESGCM_SizeChecks(t *testing.T) {
	if _, err := crypto.SealAESGCM(make([]byte, 16), make([]byte, 12), nil); !errors.Is(err, crypto.ErrInvalidKeySize) {
		t.Fatalf("want ErrInvalidKeySize, got %v", err)
	}
	if _, err := crypto.SealAESGCM(make([]byte, 32), make([]byte, 16), nil); !errors.Is(err, crypto.ErrInvalidNonceSize) {
		t.Fatalf("want ErrInvalidNonceSize, got %v", err)
	}
}

func TestNewNonce_RandomFailure(t *testing.T) {
	restore := crypto.SetRandReaderForTesting(iotest.ErrReader(errors.New("no entropy")))
	defer restore()

	if _, err := crypto.NewNonce(); !errors.Is(err, crypto.ErrRandom) {
		t.Fatalf("want ErrRandom, got %v", err)
	}
}

func TestFingerprint_Format(t *testing.T) {
	fp := crypto.Fingerprint([]byte("key"))
	if len(fp) != 24 {
		t.Fatalf("fingerprint %q has length %d, want 24", fp, len(fp))
	}
	if fp != crypto.Fingerprint([]byte("key")) {
		t.Fatal("fingerprint not deterministic")
	}
}
