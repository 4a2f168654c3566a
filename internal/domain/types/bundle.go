package types

// EncryptedBundle is the persisted unit produced by the encryption engine.
//
// The four fields only make sense together: the signature covers
// EphemeralPublicKey || Ciphertext || IV, so none of them can be altered
// independently. A bundle is immutable once created; replacing content
// produces a new bundle.
type EncryptedBundle struct {
	Ciphertext         []byte `json:"ciphertext"`
	IV                 []byte `json:"iv"`
	EphemeralPublicKey []byte `json:"ephemeral_public_key"`
	Signature          []byte `json:"signature"`
}

// Complete reports whether every field is present.
func (b EncryptedBundle) Complete() bool {
	return len(b.Ciphertext) > 0 &&
		len(b.IV) > 0 &&
		len(b.EphemeralPublicKey) > 0 &&
		len(b.Signature) > 0
}

// Clone returns a deep copy so callers cannot mutate stored bundles.
func (b EncryptedBundle) Clone() EncryptedBundle {
	return EncryptedBundle{
		Ciphertext:         append([]byte(nil), b.Ciphertext...),
		IV:                 append([]byte(nil), b.IV...),
		EphemeralPublicKey: append([]byte(nil), b.EphemeralPublicKey...),
		Signature:          append([]byte(nil), b.Signature...),
	}
}
