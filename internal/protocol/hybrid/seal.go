package hybrid

import (
	"context"
	"errors"

	"lexvault/internal/crypto"
	"lexvault/internal/domain"
	"lexvault/internal/util/memzero"
)

// Sealer encrypts documents on behalf of one owner.
type Sealer struct {
	owner domain.LocalOwner
}

// NewSealer returns a Sealer signing with owner's key.
func NewSealer(owner domain.LocalOwner) *Sealer {
	return &Sealer{owner: owner}
}

// EncryptAndSign seals plaintext for the recipient. See the package
// documentation for the exact steps.
func (s *Sealer) EncryptAndSign(
	ctx context.Context,
	plaintext []byte,
	to domain.RemoteRecipient,
) (domain.EncryptedBundle, error) {
	return EncryptAndSign(ctx, plaintext, to, s.owner)
}

// EncryptAndSign seals plaintext for to and signs the result as from.
//
// The returned bundle is the only output. The ephemeral private key and the
// shared secret never leave this call.
func EncryptAndSign(
	ctx context.Context,
	plaintext []byte,
	to domain.RemoteRecipient,
	from domain.LocalOwner,
) (domain.EncryptedBundle, error) {
	if from.SigningKey == nil {
		return domain.EncryptedBundle{}, unavailable("owner", errors.New("signing key missing"))
	}
	recipient, err := crypto.ParseExchangeKey(to.ExchangeKey.Slice())
	if err != nil {
		return domain.EncryptedBundle{}, unavailable("recipient key", err)
	}
	if err := ctx.Err(); err != nil {
		return domain.EncryptedBundle{}, err
	}

	ephemeralPriv, ephemeralPub, err := crypto.GenerateP256Exchange()
	if err != nil {
		return domain.EncryptedBundle{}, unavailable("ephemeral key", err)
	}

	secret, err := crypto.SharedSecret(ephemeralPriv, recipient)
	if err != nil {
		return domain.EncryptedBundle{}, unavailable("key agreement", err)
	}
	defer memzero.Zero(secret)

	iv, err := crypto.NewNonce()
	if err != nil {
		return domain.EncryptedBundle{}, unavailable("iv", err)
	}

	ciphertext, err := crypto.SealAESGCM(secret, iv, plaintext)
	if err != nil {
		return domain.EncryptedBundle{}, unavailable("encrypt", err)
	}
	if err := ctx.Err(); err != nil {
		return domain.EncryptedBundle{}, err
	}

	ephemeral := ephemeralPub.Slice()
	signature, err := crypto.SignP256(from.SigningKey, SigningInput(ephemeral, ciphertext, iv))
	if err != nil {
		return domain.EncryptedBundle{}, unavailable("sign", err)
	}

	return domain.EncryptedBundle{
		Ciphertext:         ciphertext,
		IV:                 iv,
		EphemeralPublicKey: ephemeral,
		Signature:          signature,
	}, nil
}
