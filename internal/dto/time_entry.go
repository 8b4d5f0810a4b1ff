package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
)

// CreateTimeEntryRequest defines the data needed to create a time entry.
type CreateTimeEntryRequest struct {
	WorkDate    time.Time       `json:"workDate" binding:"required"`
	Hours       decimal.Decimal `json:"hours" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Billable    bool            `json:"billable"`
}

// UpdateTimeEntryRequest defines the data allowed for updating a time entry.
type UpdateTimeEntryRequest struct {
	WorkDate    *time.Time       `json:"workDate"`
	Hours       *decimal.Decimal `json:"hours"`
	Description *string          `json:"description"`
	Billable    *bool            `json:"billable"`
}

// ListTimeEntriesParams defines query parameters for listing time entries.
type ListTimeEntriesParams struct {
	StartDate time.Time `form:"startDate" time_format:"2006-01-02" binding:"required"`
	EndDate   time.Time `form:"endDate" time_format:"2006-01-02" binding:"required"`
	Page      int       `form:"page,default=1"`
	Size      int       `form:"size,default=20"`
}

// TimeEntryResponse defines the data returned for a time entry.
type TimeEntryResponse struct {
	TimeEntryID string          `json:"timeEntryID"`
	TenantID    string          `json:"tenantID"`
	UserID      string          `json:"userID"`
	WorkDate    time.Time       `json:"workDate"`
	Hours       decimal.Decimal `json:"hours"`
	Description string          `json:"description"`
	Billable    bool            `json:"billable"`
	InvoiceID   *string         `json:"invoiceID,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ListTimeEntriesResponse wraps a page of time entries.
type ListTimeEntriesResponse struct {
	TimeEntries []TimeEntryResponse `json:"timeEntries"`
	TotalCount  int64               `json:"totalCount"`
	Page        int                 `json:"page"`
	Size        int                 `json:"size"`
}

// ToTimeEntryResponse converts a domain.TimeEntry to TimeEntryResponse DTO.
func ToTimeEntryResponse(te *domain.TimeEntry) TimeEntryResponse {
	return TimeEntryResponse{
		TimeEntryID: te.TimeEntryID,
		TenantID:    te.TenantID,
		UserID:      te.UserID,
		WorkDate:    te.WorkDate,
		Hours:       te.Hours,
		Description: te.Description,
		Billable:    te.Billable,
		InvoiceID:   te.InvoiceID,
		CreatedAt:   te.CreatedAt,
	}
}

// ToListTimeEntriesResponse converts a page of time entries to the list DTO.
func ToListTimeEntriesResponse(entries []domain.TimeEntry, totalCount int64, page, size int) *ListTimeEntriesResponse {
	resp := &ListTimeEntriesResponse{
		TimeEntries: make([]TimeEntryResponse, len(entries)),
		TotalCount:  totalCount,
		Page:        page,
		Size:        size,
	}
	for i := range entries {
		resp.TimeEntries[i] = ToTimeEntryResponse(&entries[i])
	}
	return resp
}
