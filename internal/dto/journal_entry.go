package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
)

// CreateJournalEntryLine defines one debit-or-credit line in a creation request.
type CreateJournalEntryLine struct {
	AccountID   string          `json:"accountID" binding:"required"`
	AssetTypeID string          `json:"assetTypeID" binding:"required"`
	EntryType   string          `json:"entryType" binding:"required,oneof=DEBIT CREDIT"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Memo        string          `json:"memo"`
}

// CreateJournalEntryRequest defines the data needed to create a journal entry.
// At least two lines are required and debits must equal credits.
type CreateJournalEntryRequest struct {
	EntryDate time.Time                `json:"entryDate" binding:"required"`
	PostDate  *time.Time               `json:"postDate"` // Optional; set when the entry is created pre-posted
	Note      string                   `json:"note"`
	Lines     []CreateJournalEntryLine `json:"lines" binding:"required,min=2,dive"`
}

// PostJournalEntryRequest defines the data for posting a pending entry.
type PostJournalEntryRequest struct {
	PostDate *time.Time `json:"postDate"` // Defaults to today when omitted
	Note     *string    `json:"note"`     // Replaces the note only when non-blank and different
}

// ListJournalEntriesParams defines query parameters for listing entries.
type ListJournalEntriesParams struct {
	StartDate time.Time `form:"startDate" time_format:"2006-01-02" binding:"required"`
	EndDate   time.Time `form:"endDate" time_format:"2006-01-02" binding:"required"`
	Page      int       `form:"page,default=1"`
	Size      int       `form:"size,default=20"`
}

// JournalEntryLineResponse defines the data returned for one entry line.
type JournalEntryLineResponse struct {
	LineID        string          `json:"lineID"`
	AccountID     string          `json:"accountID"`
	AccountName   string          `json:"accountName,omitempty"`
	AssetTypeID   string          `json:"assetTypeID"`
	AssetTypeName string          `json:"assetTypeName,omitempty"`
	EntryType     string          `json:"entryType"`
	Amount        decimal.Decimal `json:"amount"`
	Memo          string          `json:"memo,omitempty"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	JournalEntryID string                     `json:"journalEntryID"`
	TenantID       string                     `json:"tenantID"`
	EntryID        int64                      `json:"entryID"`
	EntryDate      time.Time                  `json:"entryDate"`
	PostDate       *time.Time                 `json:"postDate,omitempty"`
	EffectiveDate  time.Time                  `json:"effectiveDate"`
	Status         string                     `json:"status"`
	Note           string                     `json:"note"`
	CreatedAt      time.Time                  `json:"createdAt"`
	CreatedBy      string                     `json:"createdBy"`
	CreatedByName  string                     `json:"createdByName,omitempty"`
	PostedBy       *string                    `json:"postedBy,omitempty"`
	PostedByName   string                     `json:"postedByName,omitempty"`
	CanceledBy     *string                    `json:"canceledBy,omitempty"`
	Lines          []JournalEntryLineResponse `json:"lines,omitempty"`
}

// ListJournalEntriesResponse wraps a page of journal entries.
type ListJournalEntriesResponse struct {
	Entries    []JournalEntryResponse `json:"entries"`
	TotalCount int64                  `json:"totalCount"`
	Page       int                    `json:"page"`
	Size       int                    `json:"size"`
}

// NextEntryNumberResponse reports the number the next created entry would get.
type NextEntryNumberResponse struct {
	NextEntryID int64 `json:"nextEntryID"`
}

// LedgerParams defines query parameters for the account ledger endpoint.
type LedgerParams struct {
	Limit     int     `form:"limit,default=50"`
	NextToken *string `form:"nextToken"`
}

// LedgerRowResponse defines one line of an account ledger.
type LedgerRowResponse struct {
	JournalEntryID string          `json:"journalEntryID"`
	EntryID        int64           `json:"entryID"`
	EntryDate      time.Time       `json:"entryDate"`
	Note           string          `json:"note"`
	EntryType      string          `json:"entryType"`
	Amount         decimal.Decimal `json:"amount"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// LedgerResponse wraps a cursor-paginated ledger page.
type LedgerResponse struct {
	Rows      []LedgerRowResponse `json:"rows"`
	NextToken *string             `json:"nextToken,omitempty"`
}

// ToJournalEntryLineResponse converts a domain line to its response DTO.
func ToJournalEntryLineResponse(line *domain.JournalEntryAccount) JournalEntryLineResponse {
	resp := JournalEntryLineResponse{
		LineID:      line.LineID,
		AccountID:   line.AccountID,
		AssetTypeID: line.AssetTypeID,
		EntryType:   string(line.EntryType),
		Amount:      line.Amount,
		Memo:        line.Memo,
	}
	if line.Account != nil {
		resp.AccountName = line.Account.Name
	}
	if line.AssetType != nil {
		resp.AssetTypeName = line.AssetType.Name
	}
	return resp
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		JournalEntryID: e.JournalEntryID,
		TenantID:       e.TenantID,
		EntryID:        e.EntryID,
		EntryDate:      e.EntryDate,
		PostDate:       e.PostDate,
		EffectiveDate:  e.EffectiveDate(),
		Status:         string(e.Status),
		Note:           e.Note,
		CreatedAt:      e.CreatedAt,
		CreatedBy:      e.CreatedBy,
		PostedBy:       e.PostedBy,
		CanceledBy:     e.CanceledBy,
	}
	if e.CreatedByUser != nil {
		resp.CreatedByName = e.CreatedByUser.Name
	}
	if e.PostedByUser != nil {
		resp.PostedByName = e.PostedByUser.Name
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]JournalEntryLineResponse, len(e.Lines))
		for i := range e.Lines {
			resp.Lines[i] = ToJournalEntryLineResponse(&e.Lines[i])
		}
	}
	return resp
}

// ToListJournalEntriesResponse converts a slice of entries plus paging
// metadata to the list response DTO.
func ToListJournalEntriesResponse(entries []domain.JournalEntry, totalCount int64, page, size int) *ListJournalEntriesResponse {
	resp := &ListJournalEntriesResponse{
		Entries:    make([]JournalEntryResponse, len(entries)),
		TotalCount: totalCount,
		Page:       page,
		Size:       size,
	}
	for i := range entries {
		resp.Entries[i] = ToJournalEntryResponse(&entries[i])
	}
	return resp
}

// ToLedgerResponse converts ledger rows plus the continuation token.
func ToLedgerResponse(rows []domain.LedgerRow, nextToken *string) *LedgerResponse {
	resp := &LedgerResponse{
		Rows:      make([]LedgerRowResponse, len(rows)),
		NextToken: nextToken,
	}
	for i, row := range rows {
		resp.Rows[i] = LedgerRowResponse{
			JournalEntryID: row.JournalEntryID,
			EntryID:        row.EntryID,
			EntryDate:      row.EntryDate,
			Note:           row.Note,
			EntryType:      string(row.EntryType),
			Amount:         row.Amount,
			RunningBalance: row.RunningBalance,
		}
	}
	return resp
}
