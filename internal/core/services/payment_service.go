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
)

// ErrOverpayment is returned when a payment exceeds the invoice's outstanding balance.
var ErrOverpayment = errors.New("payment exceeds outstanding invoice balance")

// paymentService records payments against invoices and maintains the
// paid-in-full status transition.
type paymentService struct {
	paymentRepo portsrepo.PaymentRepositoryFacade
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	tenantSvc   portssvc.TenantAuthorizerSvc
}

// NewPaymentService creates a new payment service.
func NewPaymentService(
	paymentRepo portsrepo.PaymentRepositoryFacade,
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	tenantSvc portssvc.TenantAuthorizerSvc,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
		tenantSvc:   tenantSvc,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// RecordPayment records a payment against an invoice. The amount must be
// positive and must not exceed the outstanding balance; when the balance
// reaches zero the invoice becomes PAID.
func (s *paymentService) RecordPayment(ctx context.Context, tenantID string, req dto.RecordPaymentRequest, creatorUserID string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.tenantSvc.AuthorizeUserAction(ctx, creatorUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewValidationFailedError("payment amount must be positive")
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, req.InvoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil || invoice.TenantID != tenantID {
		return nil, apperrors.NewValidationFailedError("invoice " + req.InvoiceID + " does not exist in this tenant")
	}
	if invoice.Status != domain.InvoiceSent {
		return nil, apperrors.NewConflictError("payments can only be recorded against sent invoices")
	}

	paid, err := s.paymentRepo.SumPaymentsByInvoice(ctx, req.InvoiceID)
	if err != nil {
		return nil, err
	}
	balance := invoice.Total.Sub(paid)
	if req.Amount.GreaterThan(balance) {
		return nil, apperrors.NewAppError(409, ErrOverpayment.Error(), ErrOverpayment)
	}

	now := time.Now().UTC()
	payment := domain.Payment{
		PaymentID:   uuid.NewString(),
		TenantID:    tenantID,
		InvoiceID:   req.InvoiceID,
		PaymentDate: req.PaymentDate,
		Amount:      req.Amount,
		Method:      domain.PaymentMethod(req.Method),
		Memo:        req.Memo,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.paymentRepo.SavePayment(ctx, payment); err != nil {
		logger.Error("Failed to save payment",
			slog.String("invoice_id", req.InvoiceID),
			slog.String("error", err.Error()))
		return nil, err
	}

	if req.Amount.Equal(balance) {
		if _, err := s.invoiceRepo.UpdateInvoiceStatus(ctx, req.InvoiceID, domain.InvoicePaid, creatorUserID); err != nil {
			logger.Error("Failed to mark invoice paid",
				slog.String("invoice_id", req.InvoiceID),
				slog.String("error", err.Error()))
			return nil, err
		}
	}

	logger.Info("Payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("invoice_id", req.InvoiceID))
	return &payment, nil
}

// ListPaymentsByInvoice retrieves an invoice's payments oldest first.
func (s *paymentService) ListPaymentsByInvoice(ctx context.Context, tenantID, invoiceID, requestingUserID string) ([]domain.Payment, error) {
	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil || invoice.TenantID != tenantID {
		return nil, apperrors.ErrNotFound
	}

	return s.paymentRepo.ListPaymentsByInvoice(ctx, invoiceID)
}
