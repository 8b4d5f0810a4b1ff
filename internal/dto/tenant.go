package dto

import (
	"time"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
)

// CreateTenantRequest defines the data needed to create a tenant.
type CreateTenantRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateTenantRequest defines the data allowed for updating a tenant.
type UpdateTenantRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// AddUserToTenantRequest defines the data for adding a user to a tenant.
type AddUserToTenantRequest struct {
	UserID string                `json:"userID" binding:"required"`
	Role   domain.UserTenantRole `json:"role" binding:"required,oneof=ADMIN MEMBER READONLY"`
}

// TenantResponse defines the data returned for a tenant.
type TenantResponse struct {
	TenantID    string    `json:"tenantID"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `json:"createdBy"`
}

// ListTenantsResponse wraps the list of tenants.
type ListTenantsResponse struct {
	Tenants []TenantResponse `json:"tenants"`
}

// ToTenantResponse converts a domain.Tenant to TenantResponse DTO.
func ToTenantResponse(t *domain.Tenant) TenantResponse {
	return TenantResponse{
		TenantID:    t.TenantID,
		Name:        t.Name,
		Description: t.Description,
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
		CreatedBy:   t.CreatedBy,
	}
}

// ToListTenantsResponse converts a slice of domain.Tenant to the list DTO.
func ToListTenantsResponse(tenants []domain.Tenant) ListTenantsResponse {
	res := make([]TenantResponse, len(tenants))
	for i := range tenants {
		res[i] = ToTenantResponse(&tenants[i])
	}
	return ListTenantsResponse{Tenants: res}
}
