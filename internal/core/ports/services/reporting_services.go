package services

import (
	"context"
	"io"
	"time"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
)

// ReportingService defines financial-report operations over posted entries.
type ReportingService interface {
	// TrialBalance returns per-account debit and credit totals as of a date.
	TrialBalance(ctx context.Context, tenantID, requestingUserID string, asOf time.Time) ([]domain.TrialBalanceRow, error)

	// ProfitAndLoss aggregates revenue and expense activity for a period.
	ProfitAndLoss(ctx context.Context, tenantID, requestingUserID string, start, end time.Time) (*domain.PAndLReport, error)

	// BalanceSheet aggregates asset, liability and equity balances as of a date.
	BalanceSheet(ctx context.Context, tenantID, requestingUserID string, asOf time.Time) (*domain.BalanceSheetReport, error)

	// ExportTrialBalanceCSV streams the trial balance as CSV to w.
	ExportTrialBalanceCSV(ctx context.Context, tenantID, requestingUserID string, asOf time.Time, w io.Writer) error

	// ExportProfitAndLossCSV streams the P&L report as CSV to w.
	ExportProfitAndLossCSV(ctx context.Context, tenantID, requestingUserID string, start, end time.Time, w io.Writer) error

	// ExportBalanceSheetCSV streams the balance sheet as CSV to w.
	ExportBalanceSheetCSV(ctx context.Context, tenantID, requestingUserID string, asOf time.Time, w io.Writer) error

	// ExportJournalEntriesCSV streams the tenant's non-canceled entry lines
	// within [start, end] as CSV to w, one row per line.
	ExportJournalEntriesCSV(ctx context.Context, tenantID, requestingUserID string, start, end time.Time, w io.Writer) error
}
