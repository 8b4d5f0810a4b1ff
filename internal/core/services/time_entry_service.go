package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quillbooks/quillbooks_app/internal/apperrors"
	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	portsrepo "github.com/quillbooks/quillbooks_app/internal/core/ports/repositories"
	portssvc "github.com/quillbooks/quillbooks_app/internal/core/ports/services"
	"github.com/quillbooks/quillbooks_app/internal/dto"
	"github.com/quillbooks/quillbooks_app/internal/middleware"
	"github.com/quillbooks/quillbooks_app/internal/utils/pagination"
)

// timeEntryService provides time tracking for later invoicing.
type timeEntryService struct {
	timeEntryRepo portsrepo.TimeEntryRepositoryFacade
	tenantSvc     portssvc.TenantAuthorizerSvc
}

// NewTimeEntryService creates a new time entry service.
func NewTimeEntryService(repo portsrepo.TimeEntryRepositoryFacade, tenantSvc portssvc.TenantAuthorizerSvc) portssvc.TimeEntrySvcFacade {
	return &timeEntryService{
		timeEntryRepo: repo,
		tenantSvc:     tenantSvc,
	}
}

var _ portssvc.TimeEntrySvcFacade = (*timeEntryService)(nil)

// GetTimeEntryByID retrieves a time entry. Entries of other tenants are
// indistinguishable from absent ones.
func (s *timeEntryService) GetTimeEntryByID(ctx context.Context, tenantID, timeEntryID, requestingUserID string) (*domain.TimeEntry, error) {
	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	entry, err := s.timeEntryRepo.FindTimeEntryByID(ctx, timeEntryID)
	if err != nil {
		return nil, err
	}
	if entry == nil || entry.TenantID != tenantID {
		return nil, nil
	}
	return entry, nil
}

// ListTimeEntries retrieves the tenant's time entries within a date range.
func (s *timeEntryService) ListTimeEntries(ctx context.Context, tenantID, requestingUserID string, params dto.ListTimeEntriesParams) (*dto.ListTimeEntriesResponse, error) {
	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	if params.EndDate.Before(params.StartDate) {
		return nil, apperrors.NewAppError(400, ErrInvalidDateRange.Error(), ErrInvalidDateRange)
	}

	pageReq := pagination.PageRequest{Page: params.Page, Size: params.Size}.Normalize()
	page, err := s.timeEntryRepo.ListTimeEntries(ctx, tenantID, params.StartDate, params.EndDate, pageReq)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list time entries",
			slog.String("tenant_id", tenantID),
			slog.String("error", err.Error()))
		return nil, err
	}

	return dto.ToListTimeEntriesResponse(page.Items, page.TotalCount, page.Page, page.Size), nil
}

// ListUnbilledTimeEntries retrieves billable time entries not yet invoiced.
func (s *timeEntryService) ListUnbilledTimeEntries(ctx context.Context, tenantID, requestingUserID string) ([]domain.TimeEntry, error) {
	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.timeEntryRepo.ListUnbilledTimeEntries(ctx, tenantID)
}

// CreateTimeEntry persists a new time entry for the requesting user.
func (s *timeEntryService) CreateTimeEntry(ctx context.Context, tenantID string, req dto.CreateTimeEntryRequest, creatorUserID string) (*domain.TimeEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.tenantSvc.AuthorizeUserAction(ctx, creatorUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	if req.Hours.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewValidationFailedError("hours must be positive")
	}

	now := time.Now().UTC()
	entry := domain.TimeEntry{
		TimeEntryID: uuid.NewString(),
		TenantID:    tenantID,
		UserID:      creatorUserID,
		WorkDate:    req.WorkDate,
		Hours:       req.Hours,
		Description: req.Description,
		Billable:    req.Billable,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.timeEntryRepo.SaveTimeEntry(ctx, entry); err != nil {
		logger.Error("Failed to save time entry",
			slog.String("tenant_id", tenantID),
			slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Time entry created",
		slog.String("time_entry_id", entry.TimeEntryID),
		slog.String("tenant_id", tenantID))
	return &entry, nil
}

// UpdateTimeEntry updates an uninvoiced time entry. Entries already attached
// to an invoice are immutable.
func (s *timeEntryService) UpdateTimeEntry(ctx context.Context, tenantID, timeEntryID string, req dto.UpdateTimeEntryRequest, requestingUserID string) (*domain.TimeEntry, error) {
	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	entry, err := s.timeEntryRepo.FindTimeEntryByID(ctx, timeEntryID)
	if err != nil {
		return nil, err
	}
	if entry == nil || entry.TenantID != tenantID {
		return nil, nil
	}
	if entry.InvoiceID != nil {
		return nil, apperrors.NewConflictError("time entry " + timeEntryID + " is already invoiced")
	}

	if req.WorkDate != nil {
		entry.WorkDate = *req.WorkDate
	}
	if req.Hours != nil {
		if req.Hours.LessThanOrEqual(decimal.Zero) {
			return nil, apperrors.NewValidationFailedError("hours must be positive")
		}
		entry.Hours = *req.Hours
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.Billable != nil {
		entry.Billable = *req.Billable
	}
	entry.LastUpdatedAt = time.Now().UTC()
	entry.LastUpdatedBy = requestingUserID

	if err := s.timeEntryRepo.UpdateTimeEntry(ctx, *entry); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to update time entry",
			slog.String("time_entry_id", timeEntryID),
			slog.String("error", err.Error()))
		return nil, err
	}
	return entry, nil
}
