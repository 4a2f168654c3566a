package hybrid

import (
	"context"
	"errors"
	"fmt"

	"lexvault/internal/crypto"
	"lexvault/internal/domain"
	"lexvault/internal/util/memzero"
)

// Option configures an Opener.
type Option func(*Opener)

// WithObserver registers fn to receive every state transition of each view.
// fn runs synchronously on the calling goroutine.
func WithObserver(fn func(State)) Option {
	return func(o *Opener) { o.observe = fn }
}

// Opener verifies and decrypts bundles addressed to one recipient.
type Opener struct {
	me      domain.LocalRecipient
	observe func(State)
}

// NewOpener returns an Opener decrypting with me's exchange key.
func NewOpener(me domain.LocalRecipient, opts ...Option) *Opener {
	o := &Opener{me: me}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// VerifyAndDecrypt authenticates bundle against the owner's public signing
// key and, only if that succeeds, decrypts it.
func (o *Opener) VerifyAndDecrypt(
	ctx context.Context,
	bundle domain.EncryptedBundle,
	from domain.RemoteOwner,
) ([]byte, error) {
	return verifyAndDecrypt(ctx, bundle, from, o.me, o.observe)
}

// VerifyAndDecrypt is the functional form of Opener.VerifyAndDecrypt.
func VerifyAndDecrypt(
	ctx context.Context,
	bundle domain.EncryptedBundle,
	from domain.RemoteOwner,
	me domain.LocalRecipient,
) ([]byte, error) {
	return verifyAndDecrypt(ctx, bundle, from, me, nil)
}

// Verify checks only the bundle signature. Holding the owner's public key is
// enough to call it; it reveals nothing about the plaintext.
func Verify(bundle domain.EncryptedBundle, from domain.RemoteOwner) error {
	if !bundle.Complete() {
		return malformed("missing field")
	}
	if err := crypto.VerifyP256(from.VerifyingKey, bundleSigningInput(bundle), bundle.Signature); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSignatureInvalid, err)
	}
	return nil
}

func verifyAndDecrypt(
	ctx context.Context,
	bundle domain.EncryptedBundle,
	from domain.RemoteOwner,
	me domain.LocalRecipient,
	observe func(State),
) ([]byte, error) {
	t := newTracker(observe)
	if err := ctx.Err(); err != nil {
		t.enter(StateFailed)
		return nil, err
	}

	t.enter(StateVerifying)
	if err := Verify(bundle, from); err != nil {
		t.enter(StateVerifiedFail)
		t.enter(StateFailed)
		return nil, err
	}
	t.enter(StateVerifiedOK)

	t.enter(StateDecrypting)
	plaintext, err := decrypt(ctx, bundle, me)
	if err != nil {
		t.enter(StateFailed)
		return nil, err
	}
	t.enter(StateDone)
	return plaintext, nil
}

// decrypt must only run on a verified bundle.
func decrypt(ctx context.Context, bundle domain.EncryptedBundle, me domain.LocalRecipient) ([]byte, error) {
	if me.ExchangeKey == nil {
		return nil, unavailable("recipient", errors.New("exchange key missing"))
	}
	if len(bundle.IV) != IVSize {
		return nil, malformed(fmt.Sprintf("iv is %d bytes, want %d", len(bundle.IV), IVSize))
	}
	ephemeral, err := crypto.ParseExchangeKey(bundle.EphemeralPublicKey)
	if err != nil {
		return nil, malformed("ephemeral public key is not a P-256 point")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	secret, err := crypto.SharedSecret(me.ExchangeKey, ephemeral)
	if err != nil {
		return nil, malformed("key agreement failed")
	}
	defer memzero.Zero(secret)

	plaintext, err := crypto.OpenAESGCM(secret, bundle.IV, bundle.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecryptionFailed, err)
	}
	return plaintext, nil
}
