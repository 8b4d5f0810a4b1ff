package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeEntry mirrors one row of time_entries.
type TimeEntry struct {
	TimeEntryID string          `json:"timeEntryID"`
	TenantID    string          `json:"tenantID"`
	UserID      string          `json:"userID"`
	WorkDate    time.Time       `json:"workDate"`
	Hours       decimal.Decimal `json:"hours"`
	Description string          `json:"description"`
	Billable    bool            `json:"billable"`
	InvoiceID   *string         `json:"invoiceID"`
	AuditFields
}
