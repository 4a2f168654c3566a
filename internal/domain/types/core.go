package types

// MaterialID uniquely identifies a stored material.
type MaterialID string

// String returns the string form of the identifier.
func (id MaterialID) String() string { return string(id) }

// Fingerprint is a short identifier for public keys presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }

// MaterialKind is the document category chosen at upload time. It drives how
// the viewer renders decrypted content.
type MaterialKind string

// Known material kinds.
const (
	KindPDF   MaterialKind = "pdf"
	KindWord  MaterialKind = "word"
	KindImage MaterialKind = "image"
	KindVideo MaterialKind = "video"
	KindText  MaterialKind = "txt"
	KindExcel MaterialKind = "excel"
)

// Valid reports whether k is one of the known kinds.
func (k MaterialKind) Valid() bool {
	switch k {
	case KindPDF, KindWord, KindImage, KindVideo, KindText, KindExcel:
		return true
	}
	return false
}
