package repositories

import (
	"context"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	"github.com/quillbooks/quillbooks_app/internal/utils/pagination"
)

// InvoiceReader defines read operations for invoice data.
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice with its lines; (nil, nil) when absent.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// FindInvoiceByTenantAndNumber retrieves an invoice by its tenant-scoped
	// sequential number; (nil, nil) when absent.
	FindInvoiceByTenantAndNumber(ctx context.Context, tenantID string, invoiceNumber int64) (*domain.Invoice, error)

	// ListInvoices returns the tenant's invoices newest first, each paired
	// with the sum of its payments and the outstanding balance.
	ListInvoices(ctx context.Context, tenantID string, status *domain.InvoiceStatus, page pagination.PageRequest) (pagination.Page[domain.InvoiceWithBalance], error)

	// NextInvoiceNumber computes one plus the current maximum invoice number
	// for the tenant (1 if none exist).
	NextInvoiceNumber(ctx context.Context, tenantID string) (int64, error)
}

// InvoiceWriter defines write operations for invoice data.
type InvoiceWriter interface {
	// CreateInvoice assigns the next sequential invoice number and inserts the
	// invoice plus its lines atomically.
	CreateInvoice(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error)

	// UpdateInvoiceStatus transitions an invoice's status, stamping update
	// audit. Returns (nil, nil) when no invoice matches.
	UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, updatedBy string) (*domain.Invoice, error)
}

// InvoiceRepositoryFacade combines all invoice repository interfaces.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
