package services

import (
	"context"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	"github.com/quillbooks/quillbooks_app/internal/dto"
)

// TimeEntryReaderSvc defines read operations for time-tracking data
type TimeEntryReaderSvc interface {
	// GetTimeEntryByID retrieves a time entry. Returns nil when absent.
	GetTimeEntryByID(ctx context.Context, tenantID, timeEntryID, requestingUserID string) (*domain.TimeEntry, error)

	// ListTimeEntries retrieves the tenant's time entries within a date range.
	ListTimeEntries(ctx context.Context, tenantID, requestingUserID string, params dto.ListTimeEntriesParams) (*dto.ListTimeEntriesResponse, error)

	// ListUnbilledTimeEntries retrieves billable time entries not yet invoiced.
	ListUnbilledTimeEntries(ctx context.Context, tenantID, requestingUserID string) ([]domain.TimeEntry, error)
}

// TimeEntryWriterSvc defines write operations for time-tracking data
type TimeEntryWriterSvc interface {
	// CreateTimeEntry persists a new time entry.
	CreateTimeEntry(ctx context.Context, tenantID string, req dto.CreateTimeEntryRequest, creatorUserID string) (*domain.TimeEntry, error)

	// UpdateTimeEntry updates an uninvoiced time entry.
	UpdateTimeEntry(ctx context.Context, tenantID, timeEntryID string, req dto.UpdateTimeEntryRequest, requestingUserID string) (*domain.TimeEntry, error)
}

// TimeEntrySvcFacade combines all time-entry service interfaces
type TimeEntrySvcFacade interface {
	TimeEntryReaderSvc
	TimeEntryWriterSvc
}
