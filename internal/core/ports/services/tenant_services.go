package services

import (
	"context"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
)

// TenantReaderSvc defines read operations for tenant data
type TenantReaderSvc interface {
	// FindTenantByID retrieves a specific tenant by its ID.
	FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)

	// ListUserTenants retrieves tenants the user belongs to.
	ListUserTenants(ctx context.Context, userID string) ([]domain.Tenant, error)
}

// TenantWriterSvc defines write operations for tenant data
type TenantWriterSvc interface {
	// CreateTenant persists a new tenant and makes the creator its admin.
	CreateTenant(ctx context.Context, name, description, creatorUserID string) (*domain.Tenant, error)

	// UpdateTenant updates tenant details. Admin only.
	UpdateTenant(ctx context.Context, tenantID, name, description, requestingUserID string) (*domain.Tenant, error)
}

// TenantMembershipSvc defines operations for managing tenant membership
type TenantMembershipSvc interface {
	// AddUserToTenant adds a user to a tenant with a specific role.
	// Only tenant admins may add users.
	AddUserToTenant(ctx context.Context, addingUserID, targetUserID, tenantID string, role domain.UserTenantRole) error
}

// TenantAuthorizerSvc defines operations for tenant authorization
type TenantAuthorizerSvc interface {
	// AuthorizeUserAction checks that the user holds at least requiredRole in
	// the tenant. Returns apperrors.ErrForbidden otherwise.
	AuthorizeUserAction(ctx context.Context, userID, tenantID string, requiredRole domain.UserTenantRole) error
}

// TenantSvcFacade combines all tenant-related service interfaces
type TenantSvcFacade interface {
	TenantReaderSvc
	TenantWriterSvc
	TenantMembershipSvc
	TenantAuthorizerSvc
}
