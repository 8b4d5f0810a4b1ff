package repositories

import (
	"context"
	"time"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	"github.com/quillbooks/quillbooks_app/internal/utils/pagination"
)

// JournalEntryReader defines read operations for journal-entry data.
//
// Single-entity lookups return (nil, nil) when no entry matches; not-found is
// an absent result, never an error.
type JournalEntryReader interface {
	// FindByID retrieves an entry header with its tenant populated.
	FindByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error)

	// FindByTenantAndEntryID retrieves an entry header by its tenant-scoped
	// sequential number, with the tenant populated.
	FindByTenantAndEntryID(ctx context.Context, tenantID string, entryID int64) (*domain.JournalEntry, error)

	// FindDetailedByID retrieves an entry with its full relation graph:
	// tenant, all four audit-user references, and lines with their accounts
	// and asset types.
	FindDetailedByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error)

	// FindDetailedByTenantAndEntryID is FindDetailedByID keyed by tenant and
	// entry number.
	FindDetailedByTenantAndEntryID(ctx context.Context, tenantID string, entryID int64) (*domain.JournalEntry, error)

	// ListJournalEntries returns the tenant's entries whose effective date
	// (post date if set, else entry date) falls within [start, end] inclusive,
	// excluding CANCELED entries, ordered by effective date descending then
	// entry number ascending, with creator/poster users and lines populated.
	ListJournalEntries(ctx context.Context, tenantID string, start, end time.Time, page pagination.PageRequest) (pagination.Page[domain.JournalEntry], error)

	// ListPendingJournalEntries returns the tenant's PENDING entries ordered
	// by entry date descending then entry number ascending.
	ListPendingJournalEntries(ctx context.Context, tenantID string, page pagination.PageRequest) (pagination.Page[domain.JournalEntry], error)

	// NextEntryID computes one plus the current maximum entry number for the
	// tenant (1 if none exist). Advisory only: not race-free outside the
	// creation transaction.
	NextEntryID(ctx context.Context, tenantID string) (int64, error)

	// ListLedgerRows returns a cursor-paginated ledger for one account:
	// posted entry lines joined with their entry headers, newest first.
	ListLedgerRows(ctx context.Context, tenantID, accountID string, limit int, nextToken *string) ([]domain.LedgerRow, *string, error)
}

// JournalEntryWriter defines write operations for journal-entry data.
type JournalEntryWriter interface {
	// CreateJournalEntry validates tenant existence, assigns the next
	// sequential entry number when the entry's number is zero, and inserts the
	// header plus all lines atomically. Returns the created entry re-read in
	// detailed form.
	CreateJournalEntry(ctx context.Context, entry *domain.JournalEntry) (*domain.JournalEntry, error)

	// PostJournalEntry marks a pending entry POSTED, setting post date,
	// posting user and update audit, replacing the note only when a non-blank
	// differing note is supplied. Returns (nil, nil) when no entry matches.
	PostJournalEntry(ctx context.Context, journalEntryID string, postDate time.Time, postedByUserID string, note *string) (*domain.JournalEntry, error)

	// CancelJournalEntry marks a pending entry CANCELED, setting cancel audit.
	// Returns (nil, nil) when no entry matches.
	CancelJournalEntry(ctx context.Context, journalEntryID string, canceledByUserID string) (*domain.JournalEntry, error)
}

// JournalEntryRepositoryFacade combines all journal-entry repository interfaces.
type JournalEntryRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
}

// JournalEntryRepositoryWithTx extends the facade with transaction capabilities.
type JournalEntryRepositoryWithTx interface {
	JournalEntryRepositoryFacade
	TransactionManager
}
