package types

import "time"

// Material is a stored document: plaintext metadata next to the encrypted
// bundle holding its content.
type Material struct {
	ID          MaterialID      `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Kind        MaterialKind    `json:"kind"`
	Size        int64           `json:"size"`
	UploadedAt  time.Time       `json:"uploaded_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Bundle      EncryptedBundle `json:"bundle"`
}

// UploadRequest carries a new document from the upload form.
type UploadRequest struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Kind        MaterialKind `json:"kind"`
	Content     []byte       `json:"content"`
}

// DetailsUpdate edits plaintext metadata. Nil fields are left unchanged.
type DetailsUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ViewedMaterial is what the viewer receives after a successful open.
// Plaintext must not be cached beyond the viewing operation.
type ViewedMaterial struct {
	Material  Material `json:"material"`
	Plaintext []byte   `json:"-"`
	MIMEType  string   `json:"mime_type"`
}
