package commands

import (
	"lexvault/internal/domain"
)

// describe turns an error into the message shown next to a failed operation.
func describe(err error) string {
	switch domain.KindOf(err) {
	case domain.KindSignatureInvalid:
		return "Signature verification failed. The file may have been tampered with or is not from the expected sender."
	case domain.KindDecryptionFailed:
		return "Decryption failed. The file is corrupted or was not encrypted for this recipient."
	case domain.KindOpenFailed:
		return "Could not decrypt or verify the file."
	case domain.KindCryptoUnavailable:
		return "Cryptography is unavailable. Nothing was stored or shown."
	case domain.KindInitializationPending:
		return "Keys are still being generated. Try again shortly."
	case domain.KindEncryptionFailed:
		return "Encryption did not finish in time. Nothing was stored."
	}
	return err.Error()
}
