package interfaces

import (
	"context"

	domaintypes "lexvault/internal/domain/types"
)

// MaterialStore persists materials and their encrypted bundles.
//
// Implementations store bundles verbatim; they never see plaintext.
type MaterialStore interface {
	SaveMaterial(ctx context.Context, material domaintypes.Material) error
	LoadMaterial(
		ctx context.Context,
		id domaintypes.MaterialID,
	) (domaintypes.Material, bool, error)
	ListMaterials(ctx context.Context) ([]domaintypes.Material, error)
	DeleteMaterial(ctx context.Context, id domaintypes.MaterialID) (bool, error)
}
