package domain

import (
	interfaces "lexvault/internal/domain/interfaces"
	types "lexvault/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	MaterialID      = types.MaterialID
	MaterialKind    = types.MaterialKind
	Fingerprint     = types.Fingerprint
	P256Public      = types.P256Public
	LocalOwner      = types.LocalOwner
	RemoteOwner     = types.RemoteOwner
	LocalRecipient  = types.LocalRecipient
	RemoteRecipient = types.RemoteRecipient
	EncryptedBundle = types.EncryptedBundle
	Material        = types.Material
	UploadRequest   = types.UploadRequest
	DetailsUpdate   = types.DetailsUpdate
	ViewedMaterial  = types.ViewedMaterial
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	MaterialStore   = interfaces.MaterialStore
	MaterialService = interfaces.MaterialService
)

// Material kinds.
const (
	KindPDF   = types.KindPDF
	KindWord  = types.KindWord
	KindImage = types.KindImage
	KindVideo = types.KindVideo
	KindText  = types.KindText
	KindExcel = types.KindExcel
)

// P256PublicSize is the length of an uncompressed P-256 point.
const P256PublicSize = types.P256PublicSize

// P256PublicFromBytes copies b into a P256Public after a length check.
func P256PublicFromBytes(b []byte) (P256Public, error) { return types.P256PublicFromBytes(b) }
