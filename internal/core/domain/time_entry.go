package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeEntry represents tracked work time for a tenant, optionally billable and
// later attached to an invoice.
type TimeEntry struct {
	TimeEntryID string          `json:"timeEntryID"` // Primary Key (UUID)
	TenantID    string          `json:"tenantID"`
	UserID      string          `json:"userID"` // Who performed the work
	WorkDate    time.Time       `json:"workDate"`
	Hours       decimal.Decimal `json:"hours"` // Positive value
	Description string          `json:"description"`
	Billable    bool            `json:"billable"`
	InvoiceID   *string         `json:"invoiceID,omitempty"` // Set once billed
	AuditFields
}
