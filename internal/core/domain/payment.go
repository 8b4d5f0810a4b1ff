package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod enumerates the supported payment instruments.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentCheck    PaymentMethod = "CHECK"
	PaymentCard     PaymentMethod = "CARD"
	PaymentTransfer PaymentMethod = "TRANSFER"
)

// Payment represents money received against an invoice.
type Payment struct {
	PaymentID   string          `json:"paymentID"` // Primary Key (UUID)
	TenantID    string          `json:"tenantID"`
	InvoiceID   string          `json:"invoiceID"` // FK -> invoices.invoice_id
	PaymentDate time.Time       `json:"paymentDate"`
	Amount      decimal.Decimal `json:"amount"` // Positive value
	Method      PaymentMethod   `json:"method"`
	Memo        string          `json:"memo"`
	AuditFields
}
