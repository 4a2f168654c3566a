package identity

import (
	"errors"

	"lexvault/internal/crypto"
	"lexvault/internal/domain"
)

// Keys is the immutable result of key generation. Each accessor exposes one
// role: callers that only verify never see a private key.
type Keys struct {
	owner           domain.LocalOwner
	ownerPublic     domain.RemoteOwner
	recipient       domain.LocalRecipient
	recipientPublic domain.RemoteRecipient
}

// Fingerprints are short digests of the public keys, for comparing out of
// band.
type Fingerprints struct {
	Signing  domain.Fingerprint `json:"signing"`
	Exchange domain.Fingerprint `json:"exchange"`
}

// NewKeys builds a Keys handle from existing private keys.
func NewKeys(owner domain.LocalOwner, recipient domain.LocalRecipient) (*Keys, error) {
	return newKeys(owner, recipient)
}

func newKeys(owner domain.LocalOwner, recipient domain.LocalRecipient) (*Keys, error) {
	if owner.SigningKey == nil || recipient.ExchangeKey == nil {
		return nil, errors.New("missing private key")
	}
	signPub, err := crypto.SigningPublic(&owner.SigningKey.PublicKey)
	if err != nil {
		return nil, err
	}
	return &Keys{
		owner:           owner,
		ownerPublic:     domain.RemoteOwner{VerifyingKey: signPub},
		recipient:       recipient,
		recipientPublic: domain.RemoteRecipient{ExchangeKey: crypto.ExchangePublic(recipient.ExchangeKey)},
	}, nil
}

// Owner returns the signing identity used to seal documents.
func (k *Keys) Owner() domain.LocalOwner { return k.owner }

// OwnerPublic returns the verifying key recipients check signatures with.
func (k *Keys) OwnerPublic() domain.RemoteOwner { return k.ownerPublic }

// Recipient returns the exchange identity used to open documents.
func (k *Keys) Recipient() domain.LocalRecipient { return k.recipient }

// RecipientPublic returns the key documents are addressed to.
func (k *Keys) RecipientPublic() domain.RemoteRecipient { return k.recipientPublic }

// Fingerprints returns short digests of both public keys for out-of-band comparison.
func (k *Keys) Fingerprints() Fingerprints {
	return Fingerprints{
		Signing:  crypto.Fingerprint(k.ownerPublic.VerifyingKey.Slice()),
		Exchange: crypto.Fingerprint(k.recipientPublic.ExchangeKey.Slice()),
	}
}
