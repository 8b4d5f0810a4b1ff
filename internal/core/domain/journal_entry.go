package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry.
type EntryStatus string

const (
	Pending  EntryStatus = "PENDING"
	Posted   EntryStatus = "POSTED"
	Canceled EntryStatus = "CANCELED"
)

// EntryType indicates whether a journal-entry line is a Debit or a Credit.
type EntryType string

const (
	Debit  EntryType = "DEBIT"
	Credit EntryType = "CREDIT"
)

// JournalEntry represents a dated financial transaction belonging to one
// tenant. Entry numbers (EntryID) are sequential and unique per tenant; zero
// means "not yet assigned" and the repository assigns the next number at
// creation time.
type JournalEntry struct {
	JournalEntryID string      `json:"journalEntryID"` // Primary Key (UUID)
	TenantID       string      `json:"tenantID"`       // FK -> tenants.tenant_id
	EntryID        int64       `json:"entryID"`        // Tenant-scoped sequential number
	EntryDate      time.Time   `json:"entryDate"`
	PostDate       *time.Time  `json:"postDate,omitempty"`
	Status         EntryStatus `json:"status"`
	Note           string      `json:"note"`
	AuditFields
	PostedAt   *time.Time `json:"postedAt,omitempty"`
	PostedBy   *string    `json:"postedBy,omitempty"` // UserID reference
	CanceledAt *time.Time `json:"canceledAt,omitempty"`
	CanceledBy *string    `json:"canceledBy,omitempty"` // UserID reference

	// Owned collection; cascade lifecycle with the entry.
	Lines []JournalEntryAccount `json:"lines,omitempty"`

	// Non-owning references, populated by detailed lookups only.
	Tenant         *Tenant `json:"tenant,omitempty"`
	CreatedByUser  *User   `json:"createdByUser,omitempty"`
	UpdatedByUser  *User   `json:"updatedByUser,omitempty"`
	PostedByUser   *User   `json:"postedByUser,omitempty"`
	CanceledByUser *User   `json:"canceledByUser,omitempty"`
}

// EffectiveDate is the date an entry takes effect in reports: the post date
// when present, the entry date otherwise.
func (e *JournalEntry) EffectiveDate() time.Time {
	if e.PostDate != nil {
		return *e.PostDate
	}
	return e.EntryDate
}

// JournalEntryAccount is one debit-or-credit line within a journal entry,
// referencing an account and an asset type.
type JournalEntryAccount struct {
	LineID         string          `json:"lineID"`         // Primary Key (UUID)
	JournalEntryID string          `json:"journalEntryID"` // FK -> journal_entries.journal_entry_id
	AccountID      string          `json:"accountID"`      // FK -> accounts.account_id
	AssetTypeID    string          `json:"assetTypeID"`    // FK -> asset_types.asset_type_id
	EntryType      EntryType       `json:"entryType"`
	Amount         decimal.Decimal `json:"amount"` // Positive value
	Memo           string          `json:"memo"`
	AuditFields

	// Populated by detailed lookups only.
	Account   *Account   `json:"account,omitempty"`
	AssetType *AssetType `json:"assetType,omitempty"`
}
