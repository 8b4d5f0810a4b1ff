package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry row.
type EntryStatus string

const (
	Pending  EntryStatus = "PENDING"
	Posted   EntryStatus = "POSTED"
	Canceled EntryStatus = "CANCELED"
)

// EntryType indicates whether a line row is a Debit or a Credit.
type EntryType string

const (
	Debit  EntryType = "DEBIT"
	Credit EntryType = "CREDIT"
)

// JournalEntry mirrors one row of journal_entries.
type JournalEntry struct {
	JournalEntryID string      `json:"journalEntryID"`
	TenantID       string      `json:"tenantID"`
	EntryID        int64       `json:"entryID"` // Unique per tenant
	EntryDate      time.Time   `json:"entryDate"`
	PostDate       *time.Time  `json:"postDate"`
	Status         EntryStatus `json:"status"`
	Note           string      `json:"note"`
	AuditFields
	PostedAt   *time.Time `json:"postedAt"`
	PostedBy   *string    `json:"postedBy"`
	CanceledAt *time.Time `json:"canceledAt"`
	CanceledBy *string    `json:"canceledBy"`
}

// JournalEntryAccount mirrors one row of journal_entry_accounts.
type JournalEntryAccount struct {
	LineID         string          `json:"lineID"`
	JournalEntryID string          `json:"journalEntryID"`
	AccountID      string          `json:"accountID"`
	AssetTypeID    string          `json:"assetTypeID"`
	EntryType      EntryType       `json:"entryType"`
	Amount         decimal.Decimal `json:"amount"` // Positive value
	Memo           string          `json:"memo"`
	AuditFields
}
