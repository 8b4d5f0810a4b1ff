package services

import (
	"context"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	"github.com/quillbooks/quillbooks_app/internal/dto"
)

// JournalEntryReaderSvc defines read operations for journal-entry data
type JournalEntryReaderSvc interface {
	// GetJournalEntryByID retrieves a specific entry with its full relation
	// graph. Returns nil (no error) when the entry does not exist or belongs
	// to a different tenant.
	GetJournalEntryByID(ctx context.Context, tenantID, journalEntryID, requestingUserID string) (*domain.JournalEntry, error)

	// GetJournalEntryByNumber retrieves an entry by its tenant-scoped
	// sequential number, detailed form. Returns nil when absent.
	GetJournalEntryByNumber(ctx context.Context, tenantID string, entryID int64, requestingUserID string) (*domain.JournalEntry, error)

	// ListJournalEntries retrieves a paginated, date-filtered list of the
	// tenant's entries, excluding canceled ones.
	ListJournalEntries(ctx context.Context, tenantID, requestingUserID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)

	// ListPendingJournalEntries retrieves the tenant's pending entries.
	ListPendingJournalEntries(ctx context.Context, tenantID, requestingUserID string, params dto.PaginationParams) (*dto.ListJournalEntriesResponse, error)

	// PeekNextEntryNumber reports the entry number the next created entry
	// would receive. Advisory: concurrent creates may claim it first.
	PeekNextEntryNumber(ctx context.Context, tenantID, requestingUserID string) (int64, error)

	// ListAccountLedger retrieves a cursor-paginated ledger with running
	// balances for one account.
	ListAccountLedger(ctx context.Context, tenantID, accountID, requestingUserID string, params dto.LedgerParams) (*dto.LedgerResponse, error)
}

// JournalEntryWriterSvc defines write operations for journal-entry data
type JournalEntryWriterSvc interface {
	// CreateJournalEntry validates balance and tenancy, assigns the next
	// sequential entry number, and persists the entry with its lines.
	CreateJournalEntry(ctx context.Context, tenantID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// PostJournalEntry transitions a pending entry to posted. Returns nil
	// when the entry does not exist.
	PostJournalEntry(ctx context.Context, tenantID, journalEntryID string, req dto.PostJournalEntryRequest, requestingUserID string) (*domain.JournalEntry, error)

	// CancelJournalEntry transitions a pending entry to canceled. Returns nil
	// when the entry does not exist.
	CancelJournalEntry(ctx context.Context, tenantID, journalEntryID string, requestingUserID string) (*domain.JournalEntry, error)
}

// JournalEntrySvcFacade combines all journal-entry service interfaces
type JournalEntrySvcFacade interface {
	JournalEntryReaderSvc
	JournalEntryWriterSvc
}
