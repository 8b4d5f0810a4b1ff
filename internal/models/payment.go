package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment mirrors one row of payments.
type Payment struct {
	PaymentID   string          `json:"paymentID"`
	TenantID    string          `json:"tenantID"`
	InvoiceID   string          `json:"invoiceID"`
	PaymentDate time.Time       `json:"paymentDate"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	Memo        string          `json:"memo"`
	AuditFields
}
