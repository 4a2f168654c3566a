package interfaces

import (
	"context"

	domaintypes "lexvault/internal/domain/types"
)

// MaterialService is the document store the upload and viewing screens talk to.
type MaterialService interface {
	Upload(
		ctx context.Context,
		req domaintypes.UploadRequest,
	) (domaintypes.Material, error)
	View(ctx context.Context, id domaintypes.MaterialID) (domaintypes.ViewedMaterial, error)
	Replace(
		ctx context.Context,
		id domaintypes.MaterialID,
		content []byte,
	) (domaintypes.Material, error)
	UpdateDetails(
		ctx context.Context,
		id domaintypes.MaterialID,
		update domaintypes.DetailsUpdate,
	) (domaintypes.Material, error)
	Get(ctx context.Context, id domaintypes.MaterialID) (domaintypes.Material, error)
	List(ctx context.Context) ([]domaintypes.Material, error)
	Delete(ctx context.Context, id domaintypes.MaterialID) error
}
