package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus indicates the lifecycle state of an invoice row.
type InvoiceStatus string

const (
	InvoiceDraft InvoiceStatus = "DRAFT"
	InvoiceSent  InvoiceStatus = "SENT"
	InvoicePaid  InvoiceStatus = "PAID"
	InvoiceVoid  InvoiceStatus = "VOID"
)

// Invoice mirrors one row of invoices.
type Invoice struct {
	InvoiceID       string          `json:"invoiceID"`
	TenantID        string          `json:"tenantID"`
	InvoiceNumber   int64           `json:"invoiceNumber"` // Unique per tenant
	CustomerName    string          `json:"customerName"`
	CustomerAddress string          `json:"customerAddress"`
	InvoiceDate     time.Time       `json:"invoiceDate"`
	DueDate         time.Time       `json:"dueDate"`
	Status          InvoiceStatus   `json:"status"`
	Total           decimal.Decimal `json:"total"`
	AuditFields
}

// InvoiceLine mirrors one row of invoice_lines.
type InvoiceLine struct {
	LineID      string          `json:"lineID"`
	InvoiceID   string          `json:"invoiceID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Amount      decimal.Decimal `json:"amount"`
}
