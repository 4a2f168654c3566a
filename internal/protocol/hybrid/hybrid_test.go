package hybrid_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"testing/iotest"

	"lexvault/internal/crypto"
	"lexvault/internal/domain"
	"lexvault/internal/protocol/hybrid"
)

type party struct {
	owner           domain.LocalOwner
	ownerPublic     domain.RemoteOwner
	recipient       domain.LocalRecipient
	recipientPublic domain.RemoteRecipient
}

func newParty(t *testing.T) party {
	t.Helper()
	signPriv, signPub, err := crypto.GenerateP256Signing()
	if err != nil {
		t.Fatalf("GenerateP256Signing: %v", err)
	}
	exPriv, exPub, err := crypto.GenerateP256Exchange()
	if err != nil {
		t.Fatalf("GenerateP256Exchange: %v", err)
	}
	return party{
		owner:           domain.LocalOwner{SigningKey: signPriv},
		ownerPublic:     domain.RemoteOwner{VerifyingKey: signPub},
		recipient:       domain.LocalRecipient{ExchangeKey: exPriv},
		recipientPublic: domain.RemoteRecipient{ExchangeKey: exPub},
	}
}

func seal(t *testing.T, p party, plaintext []byte) domain.EncryptedBundle {
	t.Helper()
	b, err := hybrid.EncryptAndSign(context.Background(), plaintext, p.recipientPublic, p.owner)
	if err != nil {
		t.Fatalf("EncryptAndSign: %v", err)
	}
	return b
}

func TestHelloWorld(t *testing.T) {
	p := newParty(t)
	msg := []byte("Hello, World!")

	b := seal(t, p, msg)
	if len(b.Ciphertext) != len(msg)+hybrid.TagSize {
		t.Fatalf("ciphertext length = %d, want %d", len(b.Ciphertext), len(msg)+hybrid.TagSize)
	}
	if len(b.IV) != hybrid.IVSize {
		t.Fatalf("iv length = %d", len(b.IV))
	}
	if len(b.EphemeralPublicKey) != hybrid.PublicKeySize || b.EphemeralPublicKey[0] != 0x04 {
		t.Fatalf("ephemeral key not a raw uncompressed point: % x", b.EphemeralPublicKey[:1])
	}
	if len(b.Signature) != hybrid.SignatureSize {
		t.Fatalf("signature length = %d", len(b.Signature))
	}

	got, err := hybrid.VerifyAndDecrypt(context.Background(), b, p.ownerPublic, p.recipient)
	if err != nil {
		t.Fatalf("VerifyAndDecrypt: %v", err)
	}
	if !bytes.Equal(got, msg) {
		t.Fatalf("got %q, want %q", got, msg)
	}
}

func TestRoundTripSizes(t *testing.T) {
	p := newParty(t)
	sealer := hybrid.NewSealer(p.owner)
	opener := hybrid.NewOpener(p.recipient)

	for _, n := range []int{0, 1, 15, 16, 17, 4096, 1 << 20} {
		msg := bytes.Repeat([]byte{byte(n)}, n)
		b, err := sealer.EncryptAndSign(context.Background(), msg, p.recipientPublic)
		if err != nil {
			t.Fatalf("size %d: EncryptAndSign: %v", n, err)
		}
		got, err := opener.VerifyAndDecrypt(context.Background(), b, p.ownerPublic)
		if err != nil {
			t.Fatalf("size %d: VerifyAndDecrypt: %v", n, err)
		}
		if !bytes.Equal(got, msg) {
			t.Fatalf("size %d: plaintext mismatch", n)
		}
	}
}

func TestTamperAnyBitFailsSignature(t *testing.T) {
	p := newParty(t)
	b := seal(t, p, []byte("settlement offer"))

	fields := map[string]func(*domain.EncryptedBundle) []byte{
		"ciphertext": func(x *domain.EncryptedBundle) []byte { return x.Ciphertext },
		"iv":         func(x *domain.EncryptedBundle) []byte { return x.IV },
		"ephemeral":  func(x *domain.EncryptedBundle) []byte { return x.EphemeralPublicKey },
		"signature":  func(x *domain.EncryptedBundle) []byte { return x.Signature },
	}
	for name, field := range fields {
		n := len(field(&b))
		for i := 0; i < n*8; i++ {
			tampered := b.Clone()
			field(&tampered)[i/8] ^= 1 << (i % 8)

			_, err := hybrid.VerifyAndDecrypt(context.Background(), tampered, p.ownerPublic, p.recipient)
			if !errors.Is(err, domain.ErrSignatureInvalid) {
				t.Fatalf("%s bit %d: err = %v, want ErrSignatureInvalid", name, i, err)
			}
		}
	}
}

func TestCorruptedIVFailsBeforeDecrypt(t *testing.T) {
	p := newParty(t)
	b := seal(t, p, []byte("Hello, World!"))
	b.IV[0] ^= 0x01

	var states []hybrid.State
	opener := hybrid.NewOpener(p.recipient, hybrid.WithObserver(func(s hybrid.State) {
		states = append(states, s)
	}))
	_, err := opener.VerifyAndDecrypt(context.Background(), b, p.ownerPublic)
	if !errors.Is(err, domain.ErrSignatureInvalid) {
		t.Fatalf("err = %v, want ErrSignatureInvalid", err)
	}
	if errors.Is(err, domain.ErrDecryptionFailed) {
		t.Fatalf("signature failure must not look like a decryption failure")
	}
	for _, s := range states {
		if s == hybrid.StateDecrypting {
			t.Fatalf("decryption attempted after failed verification: %v", states)
		}
	}
}

func TestWrongRecipientFailsDecryption(t *testing.T) {
	p := newParty(t)
	other := newParty(t)
	b := seal(t, p, []byte("for the client only"))

	_, err := hybrid.VerifyAndDecrypt(context.Background(), b, p.ownerPublic, other.recipient)
	if !errors.Is(err, domain.ErrDecryptionFailed) {
		t.Fatalf("err = %v, want ErrDecryptionFailed", err)
	}
	if errors.Is(err, domain.ErrSignatureInvalid) {
		t.Fatalf("wrong recipient must pass verification")
	}
}

func TestWrongOwnerFailsSignature(t *testing.T) {
	p := newParty(t)
	other := newParty(t)
	b := seal(t, p, []byte("x"))

	_, err := hybrid.VerifyAndDecrypt(context.Background(), b, other.ownerPublic, p.recipient)
	if !errors.Is(err, domain.ErrSignatureInvalid) {
		t.Fatalf("err = %v, want ErrSignatureInvalid", err)
	}
}

func TestNonReuse(t *testing.T) {
	p := newParty(t)
	msg := []byte("same document twice")
	a := seal(t, p, msg)
	b := seal(t, p, msg)

	if bytes.Equal(a.EphemeralPublicKey, b.EphemeralPublicKey) {
		t.Fatalf("ephemeral key reused")
	}
	if bytes.Equal(a.IV, b.IV) {
		t.Fatalf("iv reused")
	}
	if bytes.Equal(a.Ciphertext, b.Ciphertext) {
		t.Fatalf("ciphertext repeated for identical plaintext")
	}
}

func TestVerifyWithoutRecipientKey(t *testing.T) {
	p := newParty(t)
	b := seal(t, p, []byte("authentic but private"))

	if err := hybrid.Verify(b, p.ownerPublic); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	third := newParty(t)
	if _, err := hybrid.VerifyAndDecrypt(context.Background(), b, p.ownerPublic, third.recipient); !errors.Is(err, domain.ErrDecryptionFailed) {
		t.Fatalf("third party decrypt err = %v, want ErrDecryptionFailed", err)
	}
}

func TestMissingFieldIsMalformed(t *testing.T) {
	p := newParty(t)
	b := seal(t, p, []byte("x"))

	cases := map[string]func(*domain.EncryptedBundle){
		"ciphertext": func(x *domain.EncryptedBundle) { x.Ciphertext = nil },
		"iv":         func(x *domain.EncryptedBundle) { x.IV = nil },
		"ephemeral":  func(x *domain.EncryptedBundle) { x.EphemeralPublicKey = nil },
		"signature":  func(x *domain.EncryptedBundle) { x.Signature = nil },
	}
	for name, strip := range cases {
		bad := b.Clone()
		strip(&bad)
		_, err := hybrid.VerifyAndDecrypt(context.Background(), bad, p.ownerPublic, p.recipient)
		if !errors.Is(err, hybrid.ErrMalformedBundle) || !errors.Is(err, domain.ErrDecryptionFailed) {
			t.Fatalf("%s: err = %v, want ErrMalformedBundle", name, err)
		}
	}
}

func TestSignedButMalformedIV(t *testing.T) {
	p := newParty(t)
	good := seal(t, p, []byte("x"))

	shortIV := good.IV[:8]
	sig, err := crypto.SignP256(p.owner.SigningKey, hybrid.SigningInput(good.EphemeralPublicKey, good.Ciphertext, shortIV))
	if err != nil {
		t.Fatalf("SignP256: %v", err)
	}
	bad := domain.EncryptedBundle{
		Ciphertext:         good.Ciphertext,
		IV:                 shortIV,
		EphemeralPublicKey: good.EphemeralPublicKey,
		Signature:          sig,
	}
	_, err = hybrid.VerifyAndDecrypt(context.Background(), bad, p.ownerPublic, p.recipient)
	if !errors.Is(err, hybrid.ErrMalformedBundle) {
		t.Fatalf("err = %v, want ErrMalformedBundle", err)
	}
}

func TestSignedButInvalidEphemeralPoint(t *testing.T) {
	p := newParty(t)
	good := seal(t, p, []byte("x"))

	offCurve := make([]byte, hybrid.PublicKeySize)
	offCurve[0] = 0x04
	offCurve[1] = 0x01
	sig, err := crypto.SignP256(p.owner.SigningKey, hybrid.SigningInput(offCurve, good.Ciphertext, good.IV))
	if err != nil {
		t.Fatalf("SignP256: %v", err)
	}
	bad := domain.EncryptedBundle{
		Ciphertext:         good.Ciphertext,
		IV:                 good.IV,
		EphemeralPublicKey: offCurve,
		Signature:          sig,
	}
	_, err = hybrid.VerifyAndDecrypt(context.Background(), bad, p.ownerPublic, p.recipient)
	if !errors.Is(err, hybrid.ErrMalformedBundle) {
		t.Fatalf("err = %v, want ErrMalformedBundle", err)
	}
}

func TestSigningInputLayout(t *testing.T) {
	got := hybrid.SigningInput([]byte{1, 2}, []byte{3}, []byte{4, 5})
	if !bytes.Equal(got, []byte{1, 2, 3, 4, 5}) {
		t.Fatalf("SigningInput = %v", got)
	}
}

func TestRandomFailureIsCryptoUnavailable(t *testing.T) {
	p := newParty(t)
	restore := crypto.SetRandReaderForTesting(iotest.ErrReader(errors.New("entropy exhausted")))
	defer restore()

	b, err := hybrid.EncryptAndSign(context.Background(), []byte("x"), p.recipientPublic, p.owner)
	if !errors.Is(err, domain.ErrCryptoUnavailable) {
		t.Fatalf("err = %v, want ErrCryptoUnavailable", err)
	}
	if b.Complete() {
		t.Fatalf("partial bundle returned on failure")
	}
}

func TestInvalidRecipientKeyIsCryptoUnavailable(t *testing.T) {
	p := newParty(t)
	_, err := hybrid.EncryptAndSign(context.Background(), []byte("x"), domain.RemoteRecipient{}, p.owner)
	if !errors.Is(err, domain.ErrCryptoUnavailable) {
		t.Fatalf("err = %v, want ErrCryptoUnavailable", err)
	}
}

func TestCancelledContext(t *testing.T) {
	p := newParty(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := hybrid.EncryptAndSign(ctx, []byte("x"), p.recipientPublic, p.owner); !errors.Is(err, context.Canceled) {
		t.Fatalf("seal err = %v, want context.Canceled", err)
	}
	b := seal(t, p, []byte("x"))
	if _, err := hybrid.VerifyAndDecrypt(ctx, b, p.ownerPublic, p.recipient); !errors.Is(err, context.Canceled) {
		t.Fatalf("open err = %v, want context.Canceled", err)
	}
}

func TestStateTransitions(t *testing.T) {
	p := newParty(t)
	other := newParty(t)
	good := seal(t, p, []byte("x"))
	tampered := good.Clone()
	tampered.Ciphertext[0] ^= 0xff

	tests := []struct {
		name   string
		me     domain.LocalRecipient
		bundle domain.EncryptedBundle
		want   []hybrid.State
	}{
		{
			name:   "success",
			me:     p.recipient,
			bundle: good,
			want: []hybrid.State{
				hybrid.StateIdle, hybrid.StateVerifying, hybrid.StateVerifiedOK,
				hybrid.StateDecrypting, hybrid.StateDone,
			},
		},
		{
			name:   "tampered",
			me:     p.recipient,
			bundle: tampered,
			want: []hybrid.State{
				hybrid.StateIdle, hybrid.StateVerifying, hybrid.StateVerifiedFail, hybrid.StateFailed,
			},
		},
		{
			name:   "wrong recipient",
			me:     other.recipient,
			bundle: good,
			want: []hybrid.State{
				hybrid.StateIdle, hybrid.StateVerifying, hybrid.StateVerifiedOK,
				hybrid.StateDecrypting, hybrid.StateFailed,
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got []hybrid.State
			opener := hybrid.NewOpener(tc.me, hybrid.WithObserver(func(s hybrid.State) {
				got = append(got, s)
			}))
			// A second view on the same opener starts over from Idle.
			for round := 0; round < 2; round++ {
				got = got[:0]
				_, _ = opener.VerifyAndDecrypt(context.Background(), tc.bundle, p.ownerPublic)
				if len(got) != len(tc.want) {
					t.Fatalf("round %d: states = %v, want %v", round, got, tc.want)
				}
				for i := range got {
					if got[i] != tc.want[i] {
						t.Fatalf("round %d: states = %v, want %v", round, got, tc.want)
					}
				}
				if !got[len(got)-1].Terminal() {
					t.Fatalf("last state %v is not terminal", got[len(got)-1])
				}
			}
		})
	}
}

func TestConcurrentUse(t *testing.T) {
	p := newParty(t)
	sealer := hybrid.NewSealer(p.owner)
	opener := hybrid.NewOpener(p.recipient)

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			msg := []byte{byte(i), byte(i >> 8), 0xaa}
			b, err := sealer.EncryptAndSign(context.Background(), msg, p.recipientPublic)
			if err != nil {
				errs <- err
				return
			}
			got, err := opener.VerifyAndDecrypt(context.Background(), b, p.ownerPublic)
			if err != nil {
				errs <- err
				return
			}
			if !bytes.Equal(got, msg) {
				errs <- errors.New("plaintext mismatch")
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}
