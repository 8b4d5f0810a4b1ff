package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	portsrepo "github.com/quillbooks/quillbooks_app/internal/core/ports/repositories"
	portssvc "github.com/quillbooks/quillbooks_app/internal/core/ports/services"
	"github.com/quillbooks/quillbooks_app/internal/dto"
	"github.com/quillbooks/quillbooks_app/internal/middleware"
	"github.com/quillbooks/quillbooks_app/internal/utils/pagination"
)

// accountService provides chart-of-accounts management.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	tenantSvc   portssvc.TenantAuthorizerSvc
}

// NewAccountService creates a new account service.
func NewAccountService(repo portsrepo.AccountRepositoryFacade, tenantSvc portssvc.TenantAuthorizerSvc) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: repo,
		tenantSvc:   tenantSvc,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// GetAccountByID retrieves a specific account by its ID.
func (s *accountService) GetAccountByID(ctx context.Context, tenantID, accountID, requestingUserID string) (*domain.Account, error) {
	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
}

// ListAccounts retrieves the tenant's accounts ordered by account number.
func (s *accountService) ListAccounts(ctx context.Context, tenantID, requestingUserID string, params dto.PaginationParams) ([]domain.Account, error) {
	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	pageReq := pagination.PageRequest{Page: params.Page, Size: params.Size}.Normalize()
	return s.accountRepo.ListAccountsByTenant(ctx, tenantID, pageReq.Limit(), pageReq.Offset())
}

// CreateAccount persists a new account.
func (s *accountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.tenantSvc.AuthorizeUserAction(ctx, creatorUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:     uuid.NewString(),
		TenantID:      tenantID,
		Name:          req.Name,
		AccountNumber: req.AccountNumber,
		AccountType:   req.AccountType,
		Description:   req.Description,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account",
			slog.String("tenant_id", tenantID),
			slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Account created",
		slog.String("account_id", account.AccountID),
		slog.String("tenant_id", tenantID))
	return &account, nil
}

// UpdateAccount updates account details.
func (s *accountService) UpdateAccount(ctx context.Context, tenantID, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error) {
	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = requestingUserID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to update account",
			slog.String("account_id", accountID),
			slog.String("error", err.Error()))
		return nil, err
	}
	return account, nil
}

// DeactivateAccount marks an account inactive. Existing journal lines keep
// referencing it; only new lines are blocked.
func (s *accountService) DeactivateAccount(ctx context.Context, tenantID, accountID, requestingUserID string) error {
	inactive := false
	_, err := s.UpdateAccount(ctx, tenantID, accountID, dto.UpdateAccountRequest{IsActive: &inactive}, requestingUserID)
	return err
}
