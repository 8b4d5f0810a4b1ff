package repositories

import (
	"context"
	"time"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	"github.com/quillbooks/quillbooks_app/internal/utils/pagination"
)

// TimeEntryReader defines read operations for time-tracking data.
type TimeEntryReader interface {
	// FindTimeEntryByID retrieves a time entry; (nil, nil) when absent.
	FindTimeEntryByID(ctx context.Context, timeEntryID string) (*domain.TimeEntry, error)

	// ListTimeEntries returns the tenant's time entries within [start, end]
	// inclusive, newest first.
	ListTimeEntries(ctx context.Context, tenantID string, start, end time.Time, page pagination.PageRequest) (pagination.Page[domain.TimeEntry], error)

	// ListUnbilledTimeEntries returns billable time entries not yet attached
	// to an invoice, oldest first.
	ListUnbilledTimeEntries(ctx context.Context, tenantID string) ([]domain.TimeEntry, error)
}

// TimeEntryWriter defines write operations for time-tracking data.
type TimeEntryWriter interface {
	SaveTimeEntry(ctx context.Context, entry domain.TimeEntry) error
	UpdateTimeEntry(ctx context.Context, entry domain.TimeEntry) error

	// AttachTimeEntriesToInvoice stamps the invoice onto the given time
	// entries atomically.
	AttachTimeEntriesToInvoice(ctx context.Context, timeEntryIDs []string, invoiceID, updatedBy string) error
}

// TimeEntryRepositoryFacade combines all time-entry repository interfaces.
type TimeEntryRepositoryFacade interface {
	TimeEntryReader
	TimeEntryWriter
}
