// Package material is the document store behind the upload and viewing
// screens.
//
// Upload seals new content with the session keys and persists only the
// resulting bundle. View loads a bundle, verifies it against the owner's
// signing key, decrypts it with the recipient's exchange key and returns the
// plaintext together with the MIME type the viewer should render it as.
// Plaintext is returned to the caller and never stored or cached here.
//
// Every operation runs under the configured timeout. A timeout while sealing
// is reported as domain.ErrEncryptionFailed, and one while opening as
// domain.ErrDecryptionFailed. If the keys are still being generated when the
// deadline passes the caller gets domain.ErrInitializationPending instead.
package material
