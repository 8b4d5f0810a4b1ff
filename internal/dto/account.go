package dto

import (
	"time"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name          string             `json:"name" binding:"required"`
	AccountNumber string             `json:"accountNumber" binding:"required"`
	AccountType   domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	Description   string             `json:"description"` // Optional
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string             `json:"accountID"`
	TenantID      string             `json:"tenantID"`
	Name          string             `json:"name"`
	AccountNumber string             `json:"accountNumber"`
	AccountType   domain.AccountType `json:"accountType"`
	Description   string             `json:"description"`
	IsActive      bool               `json:"isActive"`
	CreatedAt     time.Time          `json:"createdAt"`
	CreatedBy     string             `json:"createdBy"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy string             `json:"lastUpdatedBy"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		TenantID:      acc.TenantID,
		Name:          acc.Name,
		AccountNumber: acc.AccountNumber,
		AccountType:   acc.AccountType,
		Description:   acc.Description,
		IsActive:      acc.IsActive,
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
		LastUpdatedAt: acc.LastUpdatedAt,
		LastUpdatedBy: acc.LastUpdatedBy,
	}
}

// ToListAccountsResponse converts a slice of domain.Account to the list DTO.
func ToListAccountsResponse(accounts []domain.Account) ListAccountsResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return ListAccountsResponse{Accounts: res}
}

// CreateAssetTypeRequest defines the data needed to create an asset type.
type CreateAssetTypeRequest struct {
	Name      string `json:"name" binding:"required"`
	Suffix    string `json:"suffix"`
	Precision int16  `json:"precision" binding:"min=0,max=8"`
}

// UpdateAssetTypeRequest defines the data allowed for updating an asset type.
type UpdateAssetTypeRequest struct {
	Name     *string `json:"name"`
	Suffix   *string `json:"suffix"`
	IsActive *bool   `json:"isActive"`
}

// AssetTypeResponse defines the data returned for an asset type.
type AssetTypeResponse struct {
	AssetTypeID string `json:"assetTypeID"`
	TenantID    string `json:"tenantID"`
	Name        string `json:"name"`
	Suffix      string `json:"suffix"`
	Precision   int16  `json:"precision"`
	IsActive    bool   `json:"isActive"`
}

// ToAssetTypeResponse converts a domain.AssetType to AssetTypeResponse DTO.
func ToAssetTypeResponse(at *domain.AssetType) AssetTypeResponse {
	return AssetTypeResponse{
		AssetTypeID: at.AssetTypeID,
		TenantID:    at.TenantID,
		Name:        at.Name,
		Suffix:      at.Suffix,
		Precision:   at.Precision,
		IsActive:    at.IsActive,
	}
}

// ToListAssetTypesResponse converts a slice of domain.AssetType to response DTOs.
func ToListAssetTypesResponse(assetTypes []domain.AssetType) []AssetTypeResponse {
	res := make([]AssetTypeResponse, len(assetTypes))
	for i := range assetTypes {
		res[i] = ToAssetTypeResponse(&assetTypes[i])
	}
	return res
}
