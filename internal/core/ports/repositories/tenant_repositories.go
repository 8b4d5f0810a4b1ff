package repositories

import (
	"context"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
)

// TenantReader defines read operations for tenant data.
type TenantReader interface {
	// FindTenantByID retrieves a tenant; returns apperrors.ErrNotFound when missing.
	FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)

	// ListTenantsByUser retrieves the tenants a user belongs to.
	ListTenantsByUser(ctx context.Context, userID string) ([]domain.Tenant, error)

	// FindUserTenantRole retrieves a user's role within a tenant, or
	// apperrors.ErrNotFound when the user is not a member.
	FindUserTenantRole(ctx context.Context, userID, tenantID string) (domain.UserTenantRole, error)
}

// TenantWriter defines write operations for tenant data.
type TenantWriter interface {
	SaveTenant(ctx context.Context, tenant domain.Tenant) error
	UpdateTenant(ctx context.Context, tenant domain.Tenant) error
	AddUserToTenant(ctx context.Context, membership domain.UserTenant) error
}

// TenantRepositoryFacade combines all tenant repository interfaces.
type TenantRepositoryFacade interface {
	TenantReader
	TenantWriter
}
