package api

import (
	"time"

	"lexvault/internal/domain"
	"lexvault/internal/services/identity"
)

// HealthResponse is returned by GET /healthz.
type HealthResponse struct {
	Keys identity.State `json:"keys"`
}

// KeysResponse is returned by GET /keys. Keys are raw uncompressed P-256
// points, base64 encoded.
type KeysResponse struct {
	SigningPublicKey  string                `json:"signing_public_key"`
	ExchangePublicKey string                `json:"exchange_public_key"`
	Fingerprints      identity.Fingerprints `json:"fingerprints"`
}

// UploadBody is the request body of POST /materials.
type UploadBody struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Kind        domain.MaterialKind `json:"kind"`
	Content     string              `json:"content"`
}

// ContentBody is the request body of PUT /materials/:id/content.
type ContentBody struct {
	Content string `json:"content"`
}

// MaterialJSON is a material on the wire. Listings omit the bundle.
type MaterialJSON struct {
	ID          domain.MaterialID       `json:"id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Kind        domain.MaterialKind     `json:"kind"`
	Size        int64                   `json:"size"`
	UploadedAt  time.Time               `json:"uploaded_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
	Bundle      *domain.EncryptedBundle `json:"bundle,omitempty"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string           `json:"error"`
	Kind  domain.ErrorKind `json:"kind"`
}

func materialJSON(m domain.Material, withBundle bool) MaterialJSON {
	out := MaterialJSON{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Kind:        m.Kind,
		Size:        m.Size,
		UploadedAt:  m.UploadedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if withBundle {
		b := m.Bundle
		out.Bundle = &b
	}
	return out
}

func (m MaterialJSON) material() domain.Material {
	out := domain.Material{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Kind:        m.Kind,
		Size:        m.Size,
		UploadedAt:  m.UploadedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.Bundle != nil {
		out.Bundle = *m.Bundle
	}
	return out
}
