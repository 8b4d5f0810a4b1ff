package repositories

import (
	"context"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
)

// AssetTypeReader defines read operations for asset-type data.
type AssetTypeReader interface {
	FindAssetTypeByID(ctx context.Context, tenantID, assetTypeID string) (*domain.AssetType, error)

	// FindAssetTypesByIDs retrieves several asset types at once, keyed by ID.
	FindAssetTypesByIDs(ctx context.Context, tenantID string, assetTypeIDs []string) (map[string]domain.AssetType, error)

	ListAssetTypesByTenant(ctx context.Context, tenantID string) ([]domain.AssetType, error)
}

// AssetTypeWriter defines write operations for asset-type data.
type AssetTypeWriter interface {
	SaveAssetType(ctx context.Context, assetType domain.AssetType) error
	UpdateAssetType(ctx context.Context, assetType domain.AssetType) error
}

// AssetTypeRepositoryFacade combines all asset-type repository interfaces.
type AssetTypeRepositoryFacade interface {
	AssetTypeReader
	AssetTypeWriter
}
