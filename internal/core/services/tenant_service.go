package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/quillbooks/quillbooks_app/internal/apperrors"
	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	portsrepo "github.com/quillbooks/quillbooks_app/internal/core/ports/repositories"
	portssvc "github.com/quillbooks/quillbooks_app/internal/core/ports/services"
	"github.com/quillbooks/quillbooks_app/internal/middleware"
)

// tenantService provides tenant management and tenant-scoped authorization.
type tenantService struct {
	tenantRepo portsrepo.TenantRepositoryFacade
	userSvc    portssvc.UserReaderSvc
}

// NewTenantService creates a new tenant service.
func NewTenantService(repo portsrepo.TenantRepositoryFacade, userSvc portssvc.UserReaderSvc) portssvc.TenantSvcFacade {
	return &tenantService{
		tenantRepo: repo,
		userSvc:    userSvc,
	}
}

var _ portssvc.TenantSvcFacade = (*tenantService)(nil)

// AuthorizeUserAction checks that the user holds at least requiredRole in the
// tenant. A missing membership is reported as forbidden, not as not-found, so
// callers cannot probe for tenant existence.
func (s *tenantService) AuthorizeUserAction(ctx context.Context, userID, tenantID string, requiredRole domain.UserTenantRole) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	role, err := s.tenantRepo.FindUserTenantRole(ctx, userID, tenantID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Debug("User is not a member of tenant",
				slog.String("user_id", userID),
				slog.String("tenant_id", tenantID))
			return apperrors.ErrForbidden
		}
		logger.Error("Failed to find user tenant role",
			slog.String("user_id", userID),
			slog.String("tenant_id", tenantID),
			slog.String("error", err.Error()))
		return err
	}

	if !hasRequiredRole(role, requiredRole) {
		logger.Debug("User does not have required role",
			slog.String("user_id", userID),
			slog.String("tenant_id", tenantID),
			slog.String("user_role", string(role)),
			slog.String("required_role", string(requiredRole)))
		return apperrors.ErrForbidden
	}

	return nil
}

// hasRequiredRole checks if the user's role meets or exceeds the required role.
func hasRequiredRole(userRole, requiredRole domain.UserTenantRole) bool {
	if userRole == domain.RoleRemoved {
		return false
	}
	switch requiredRole {
	case domain.RoleReadOnly:
		return userRole == domain.RoleReadOnly || userRole == domain.RoleMember || userRole == domain.RoleAdmin
	case domain.RoleMember:
		return userRole == domain.RoleMember || userRole == domain.RoleAdmin
	case domain.RoleAdmin:
		return userRole == domain.RoleAdmin
	default:
		return false
	}
}

// FindTenantByID retrieves a specific tenant by its ID.
func (s *tenantService) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	tenant, err := s.tenantRepo.FindTenantByID(ctx, tenantID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find tenant",
				slog.String("tenant_id", tenantID),
				slog.String("error", err.Error()))
		}
		return nil, err
	}
	return tenant, nil
}

// ListUserTenants retrieves the tenants the user belongs to.
func (s *tenantService) ListUserTenants(ctx context.Context, userID string) ([]domain.Tenant, error) {
	tenants, err := s.tenantRepo.ListTenantsByUser(ctx, userID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list tenants for user",
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
		return nil, err
	}
	return tenants, nil
}

// CreateTenant persists a new tenant and makes the creator its admin.
func (s *tenantService) CreateTenant(ctx context.Context, name, description, creatorUserID string) (*domain.Tenant, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	tenant := domain.Tenant{
		TenantID:    uuid.NewString(),
		Name:        name,
		Description: description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.tenantRepo.SaveTenant(ctx, tenant); err != nil {
		logger.Error("Failed to save tenant",
			slog.String("tenant_name", name),
			slog.String("error", err.Error()))
		return nil, err
	}

	membership := domain.UserTenant{
		UserID:   creatorUserID,
		TenantID: tenant.TenantID,
		Role:     domain.RoleAdmin,
		JoinedAt: now,
	}
	if err := s.tenantRepo.AddUserToTenant(ctx, membership); err != nil {
		logger.Error("Failed to add creator as tenant admin",
			slog.String("tenant_id", tenant.TenantID),
			slog.String("user_id", creatorUserID),
			slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Tenant created",
		slog.String("tenant_id", tenant.TenantID),
		slog.String("created_by", creatorUserID))
	return &tenant, nil
}

// UpdateTenant updates tenant details. Admin only.
func (s *tenantService) UpdateTenant(ctx context.Context, tenantID, name, description, requestingUserID string) (*domain.Tenant, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	tenant, err := s.tenantRepo.FindTenantByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		tenant.Name = name
	}
	if description != "" {
		tenant.Description = description
	}
	tenant.LastUpdatedAt = time.Now().UTC()
	tenant.LastUpdatedBy = requestingUserID

	if err := s.tenantRepo.UpdateTenant(ctx, *tenant); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to update tenant",
			slog.String("tenant_id", tenantID),
			slog.String("error", err.Error()))
		return nil, err
	}
	return tenant, nil
}

// AddUserToTenant adds a user to a tenant with a specific role. Admin only.
func (s *tenantService) AddUserToTenant(ctx context.Context, addingUserID, targetUserID, tenantID string, role domain.UserTenantRole) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, addingUserID, tenantID, domain.RoleAdmin); err != nil {
		return err
	}

	// Ensure the target user exists before granting membership.
	if _, err := s.userSvc.GetUserByID(ctx, targetUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewValidationFailedError("user " + targetUserID + " does not exist")
		}
		return err
	}

	membership := domain.UserTenant{
		UserID:   targetUserID,
		TenantID: tenantID,
		Role:     role,
		JoinedAt: time.Now().UTC(),
	}
	if err := s.tenantRepo.AddUserToTenant(ctx, membership); err != nil {
		logger.Error("Failed to add user to tenant",
			slog.String("tenant_id", tenantID),
			slog.String("target_user_id", targetUserID),
			slog.String("error", err.Error()))
		return err
	}

	logger.Info("User added to tenant",
		slog.String("tenant_id", tenantID),
		slog.String("target_user_id", targetUserID),
		slog.String("role", string(role)))
	return nil
}
