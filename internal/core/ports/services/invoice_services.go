package services

import (
	"context"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	"github.com/quillbooks/quillbooks_app/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoice data
type InvoiceReaderSvc interface {
	// GetInvoiceByID retrieves an invoice with its lines, payment total and
	// outstanding balance. Returns nil when absent.
	GetInvoiceByID(ctx context.Context, tenantID, invoiceID, requestingUserID string) (*domain.InvoiceWithBalance, error)

	// GetInvoiceByNumber retrieves an invoice by its tenant-scoped sequential
	// number. Returns nil when absent.
	GetInvoiceByNumber(ctx context.Context, tenantID string, invoiceNumber int64, requestingUserID string) (*domain.InvoiceWithBalance, error)

	// ListInvoices retrieves the tenant's invoices with balances, optionally
	// filtered by status.
	ListInvoices(ctx context.Context, tenantID, requestingUserID string, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error)
}

// InvoiceWriterSvc defines write operations for invoice data
type InvoiceWriterSvc interface {
	// CreateInvoice persists a draft invoice with its lines, optionally
	// pulling in unbilled time entries as lines.
	CreateInvoice(ctx context.Context, tenantID string, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error)

	// SendInvoice transitions a draft invoice to sent.
	SendInvoice(ctx context.Context, tenantID, invoiceID, requestingUserID string) (*domain.Invoice, error)

	// VoidInvoice transitions a draft or sent invoice to void.
	VoidInvoice(ctx context.Context, tenantID, invoiceID, requestingUserID string) (*domain.Invoice, error)
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}

// PaymentSvcFacade defines operations for recording and reading payments
type PaymentSvcFacade interface {
	// RecordPayment records a payment against an invoice, rejecting amounts
	// exceeding the outstanding balance, and marks the invoice paid when the
	// balance reaches zero.
	RecordPayment(ctx context.Context, tenantID string, req dto.RecordPaymentRequest, creatorUserID string) (*domain.Payment, error)

	// ListPaymentsByInvoice retrieves an invoice's payments oldest first.
	ListPaymentsByInvoice(ctx context.Context, tenantID, invoiceID, requestingUserID string) ([]domain.Payment, error)
}
