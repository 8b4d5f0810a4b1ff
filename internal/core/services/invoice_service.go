package services

import (
	"context"
	"errors"
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

// ErrInvoiceHasNoLines is returned when an invoice creation request yields no lines.
var ErrInvoiceHasNoLines = errors.New("invoice must have at least one line")

// invoiceService provides invoice lifecycle management, including generating
// lines from unbilled time entries.
type invoiceService struct {
	invoiceRepo   portsrepo.InvoiceRepositoryFacade
	paymentRepo   portsrepo.PaymentReader
	timeEntryRepo portsrepo.TimeEntryRepositoryFacade
	tenantSvc     portssvc.TenantAuthorizerSvc
}

// NewInvoiceService creates a new invoice service.
func NewInvoiceService(
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	paymentRepo portsrepo.PaymentReader,
	timeEntryRepo portsrepo.TimeEntryRepositoryFacade,
	tenantSvc portssvc.TenantAuthorizerSvc,
) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo:   invoiceRepo,
		paymentRepo:   paymentRepo,
		timeEntryRepo: timeEntryRepo,
		tenantSvc:     tenantSvc,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// GetInvoiceByID retrieves an invoice with its lines and payment balance.
// Invoices of other tenants are indistinguishable from absent ones.
func (s *invoiceService) GetInvoiceByID(ctx context.Context, tenantID, invoiceID, requestingUserID string) (*domain.InvoiceWithBalance, error) {
	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil || invoice.TenantID != tenantID {
		return nil, nil
	}
	return s.withBalance(ctx, invoice)
}

// GetInvoiceByNumber retrieves an invoice by its tenant-scoped sequential number.
func (s *invoiceService) GetInvoiceByNumber(ctx context.Context, tenantID string, invoiceNumber int64, requestingUserID string) (*domain.InvoiceWithBalance, error) {
	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	invoice, err := s.invoiceRepo.FindInvoiceByTenantAndNumber(ctx, tenantID, invoiceNumber)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, nil
	}
	return s.withBalance(ctx, invoice)
}

func (s *invoiceService) withBalance(ctx context.Context, invoice *domain.Invoice) (*domain.InvoiceWithBalance, error) {
	paid, err := s.paymentRepo.SumPaymentsByInvoice(ctx, invoice.InvoiceID)
	if err != nil {
		return nil, err
	}
	return &domain.InvoiceWithBalance{
		Invoice:    *invoice,
		AmountPaid: paid,
		Balance:    invoice.Total.Sub(paid),
	}, nil
}

// ListInvoices retrieves the tenant's invoices with balances, optionally
// filtered by status.
func (s *invoiceService) ListInvoices(ctx context.Context, tenantID, requestingUserID string, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error) {
	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	var status *domain.InvoiceStatus
	if params.Status != nil {
		st := domain.InvoiceStatus(*params.Status)
		status = &st
	}

	pageReq := pagination.PageRequest{Page: params.Page, Size: params.Size}.Normalize()
	page, err := s.invoiceRepo.ListInvoices(ctx, tenantID, status, pageReq)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list invoices",
			slog.String("tenant_id", tenantID),
			slog.String("error", err.Error()))
		return nil, err
	}

	return dto.ToListInvoicesResponse(page.Items, page.TotalCount, page.Page, page.Size), nil
}

// CreateInvoice persists a draft invoice with its lines. When time entry IDs
// are given, each unbilled entry becomes a generated line priced at the
// request's hourly rate and is stamped with the new invoice.
func (s *invoiceService) CreateInvoice(ctx context.Context, tenantID string, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.tenantSvc.AuthorizeUserAction(ctx, creatorUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	invoiceID := uuid.NewString()

	lines := make([]domain.InvoiceLine, 0, len(req.Lines)+len(req.TimeEntryIDs))
	for _, lineReq := range req.Lines {
		if lineReq.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, apperrors.NewValidationFailedError("line quantity must be positive")
		}
		if lineReq.UnitPrice.IsNegative() {
			return nil, apperrors.NewValidationFailedError("line unit price must not be negative")
		}
		lines = append(lines, domain.InvoiceLine{
			LineID:      uuid.NewString(),
			InvoiceID:   invoiceID,
			Description: lineReq.Description,
			Quantity:    lineReq.Quantity,
			UnitPrice:   lineReq.UnitPrice,
			Amount:      lineReq.Quantity.Mul(lineReq.UnitPrice),
		})
	}

	if len(req.TimeEntryIDs) > 0 {
		if req.HourlyRate == nil || req.HourlyRate.LessThanOrEqual(decimal.Zero) {
			return nil, apperrors.NewValidationFailedError("a positive hourlyRate is required when billing time entries")
		}
		timeLines, err := s.linesFromTimeEntries(ctx, tenantID, invoiceID, req.TimeEntryIDs, *req.HourlyRate)
		if err != nil {
			return nil, err
		}
		lines = append(lines, timeLines...)
	}

	if len(lines) == 0 {
		return nil, apperrors.NewAppError(400, ErrInvoiceHasNoLines.Error(), ErrInvoiceHasNoLines)
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Amount)
	}

	invoice := &domain.Invoice{
		InvoiceID:       invoiceID,
		TenantID:        tenantID,
		CustomerName:    req.CustomerName,
		CustomerAddress: req.CustomerAddress,
		InvoiceDate:     req.InvoiceDate,
		DueDate:         req.DueDate,
		Status:          domain.InvoiceDraft,
		Total:           total,
		Lines:           lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	created, err := s.invoiceRepo.CreateInvoice(ctx, invoice)
	if err != nil {
		logger.Error("Failed to create invoice",
			slog.String("tenant_id", tenantID),
			slog.String("error", err.Error()))
		return nil, err
	}

	if len(req.TimeEntryIDs) > 0 {
		if err := s.timeEntryRepo.AttachTimeEntriesToInvoice(ctx, req.TimeEntryIDs, created.InvoiceID, creatorUserID); err != nil {
			logger.Error("Failed to attach time entries to invoice",
				slog.String("invoice_id", created.InvoiceID),
				slog.String("error", err.Error()))
			return nil, err
		}
	}

	logger.Info("Invoice created",
		slog.String("invoice_id", created.InvoiceID),
		slog.String("tenant_id", tenantID),
		slog.Int64("invoice_number", created.InvoiceNumber))
	return created, nil
}

// linesFromTimeEntries turns unbilled time entries into invoice lines. Every
// referenced entry must exist in the tenant, be billable and not yet invoiced.
func (s *invoiceService) linesFromTimeEntries(ctx context.Context, tenantID, invoiceID string, timeEntryIDs []string, hourlyRate decimal.Decimal) ([]domain.InvoiceLine, error) {
	lines := make([]domain.InvoiceLine, 0, len(timeEntryIDs))
	for _, timeEntryID := range timeEntryIDs {
		entry, err := s.timeEntryRepo.FindTimeEntryByID(ctx, timeEntryID)
		if err != nil {
			return nil, err
		}
		if entry == nil || entry.TenantID != tenantID {
			return nil, apperrors.NewValidationFailedError("time entry " + timeEntryID + " does not exist in this tenant")
		}
		if !entry.Billable {
			return nil, apperrors.NewValidationFailedError("time entry " + timeEntryID + " is not billable")
		}
		if entry.InvoiceID != nil {
			return nil, apperrors.NewConflictError("time entry " + timeEntryID + " is already invoiced")
		}

		description := entry.Description + " (" + entry.WorkDate.Format("2006-01-02") + ")"
		lines = append(lines, domain.InvoiceLine{
			LineID:      uuid.NewString(),
			InvoiceID:   invoiceID,
			Description: description,
			Quantity:    entry.Hours,
			UnitPrice:   hourlyRate,
			Amount:      entry.Hours.Mul(hourlyRate),
		})
	}
	return lines, nil
}

// SendInvoice transitions a draft invoice to sent.
func (s *invoiceService) SendInvoice(ctx context.Context, tenantID, invoiceID, requestingUserID string) (*domain.Invoice, error) {
	return s.transitionStatus(ctx, tenantID, invoiceID, requestingUserID, domain.InvoiceSent, []domain.InvoiceStatus{domain.InvoiceDraft})
}

// VoidInvoice transitions a draft or sent invoice to void. Paid invoices
// cannot be voided.
func (s *invoiceService) VoidInvoice(ctx context.Context, tenantID, invoiceID, requestingUserID string) (*domain.Invoice, error) {
	return s.transitionStatus(ctx, tenantID, invoiceID, requestingUserID, domain.InvoiceVoid, []domain.InvoiceStatus{domain.InvoiceDraft, domain.InvoiceSent})
}

func (s *invoiceService) transitionStatus(ctx context.Context, tenantID, invoiceID, requestingUserID string, target domain.InvoiceStatus, allowedFrom []domain.InvoiceStatus) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil || invoice.TenantID != tenantID {
		return nil, nil
	}

	allowed := false
	for _, from := range allowedFrom {
		if invoice.Status == from {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, apperrors.NewConflictError("invoice in status " + string(invoice.Status) + " cannot transition to " + string(target))
	}

	updated, err := s.invoiceRepo.UpdateInvoiceStatus(ctx, invoiceID, target, requestingUserID)
	if err != nil {
		logger.Error("Failed to update invoice status",
			slog.String("invoice_id", invoiceID),
			slog.String("target_status", string(target)),
			slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Invoice status updated",
		slog.String("invoice_id", invoiceID),
		slog.String("status", string(target)))
	return updated, nil
}
