package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus indicates the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft InvoiceStatus = "DRAFT"
	InvoiceSent  InvoiceStatus = "SENT"
	InvoicePaid  InvoiceStatus = "PAID"
	InvoiceVoid  InvoiceStatus = "VOID"
)

// Invoice represents a bill issued by a tenant to a customer. Invoice numbers
// are sequential per tenant, assigned at creation.
type Invoice struct {
	InvoiceID       string          `json:"invoiceID"` // Primary Key (UUID)
	TenantID        string          `json:"tenantID"`
	InvoiceNumber   int64           `json:"invoiceNumber"` // Tenant-scoped sequential number
	CustomerName    string          `json:"customerName"`
	CustomerAddress string          `json:"customerAddress"`
	InvoiceDate     time.Time       `json:"invoiceDate"`
	DueDate         time.Time       `json:"dueDate"`
	Status          InvoiceStatus   `json:"status"`
	Total           decimal.Decimal `json:"total"` // Sum of line amounts
	AuditFields

	Lines []InvoiceLine `json:"lines,omitempty"`
}

// InvoiceLine is one billed item on an invoice.
type InvoiceLine struct {
	LineID      string          `json:"lineID"` // Primary Key (UUID)
	InvoiceID   string          `json:"invoiceID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Amount      decimal.Decimal `json:"amount"` // Quantity * UnitPrice
}

// InvoiceWithBalance decorates an invoice with its payment totals; populated
// by detailed lookups.
type InvoiceWithBalance struct {
	Invoice
	AmountPaid decimal.Decimal `json:"amountPaid"`
	Balance    decimal.Decimal `json:"balance"`
}
