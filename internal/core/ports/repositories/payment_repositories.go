package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
)

// PaymentReader defines read operations for payment data.
type PaymentReader interface {
	// FindPaymentByID retrieves a payment; (nil, nil) when absent.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPaymentsByInvoice returns an invoice's payments oldest first.
	ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error)

	// SumPaymentsByInvoice returns the total amount paid against an invoice.
	SumPaymentsByInvoice(ctx context.Context, invoiceID string) (decimal.Decimal, error)
}

// PaymentWriter defines write operations for payment data.
type PaymentWriter interface {
	SavePayment(ctx context.Context, payment domain.Payment) error
}

// PaymentRepositoryFacade combines all payment repository interfaces.
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
