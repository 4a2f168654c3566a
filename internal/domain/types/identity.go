package types

import (
	"crypto/ecdh"
	"crypto/ecdsa"
)

// LocalOwner is the document owner's own identity: the ECDSA P-256 signing
// private key. It never leaves process memory.
type LocalOwner struct {
	SigningKey *ecdsa.PrivateKey `json:"-"`
}

// RemoteOwner is what a recipient knows about the owner: the signing public
// key, exchanged out of band and trusted without a certificate chain.
type RemoteOwner struct {
	VerifyingKey P256Public `json:"verifying_key"`
}

// LocalRecipient is the recipient's own identity: the ECDH P-256 private key
// used to re-derive per-document secrets.
type LocalRecipient struct {
	ExchangeKey *ecdh.PrivateKey `json:"-"`
}

// RemoteRecipient is what an owner knows about the recipient: the exchange
// public key that documents are addressed to.
type RemoteRecipient struct {
	ExchangeKey P256Public `json:"exchange_key"`
}
