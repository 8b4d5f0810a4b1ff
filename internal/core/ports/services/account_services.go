package services

import (
	"context"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	"github.com/quillbooks/quillbooks_app/internal/dto"
)

// AccountReaderSvc defines read operations for chart-of-accounts data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its ID.
	GetAccountByID(ctx context.Context, tenantID, accountID, requestingUserID string) (*domain.Account, error)

	// ListAccounts retrieves the tenant's accounts.
	ListAccounts(ctx context.Context, tenantID, requestingUserID string, params dto.PaginationParams) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for chart-of-accounts data
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// UpdateAccount updates account details.
	UpdateAccount(ctx context.Context, tenantID, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error)

	// DeactivateAccount marks an account inactive.
	DeactivateAccount(ctx context.Context, tenantID, accountID, requestingUserID string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}

// AssetTypeReaderSvc defines read operations for asset-type data
type AssetTypeReaderSvc interface {
	GetAssetTypeByID(ctx context.Context, tenantID, assetTypeID, requestingUserID string) (*domain.AssetType, error)
	ListAssetTypes(ctx context.Context, tenantID, requestingUserID string) ([]domain.AssetType, error)
}

// AssetTypeWriterSvc defines write operations for asset-type data
type AssetTypeWriterSvc interface {
	CreateAssetType(ctx context.Context, tenantID string, req dto.CreateAssetTypeRequest, creatorUserID string) (*domain.AssetType, error)
	UpdateAssetType(ctx context.Context, tenantID, assetTypeID string, req dto.UpdateAssetTypeRequest, requestingUserID string) (*domain.AssetType, error)
}

// AssetTypeSvcFacade combines all asset-type service interfaces
type AssetTypeSvcFacade interface {
	AssetTypeReaderSvc
	AssetTypeWriterSvc
}
