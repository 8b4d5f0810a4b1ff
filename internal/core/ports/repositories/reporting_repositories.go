package repositories

import (
	"context"
	"time"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
)

// ReportingReader defines aggregate read operations over posted journal data.
type ReportingReader interface {
	// TrialBalance returns per-account debit and credit totals for posted
	// entries with effective date up to and including asOf.
	TrialBalance(ctx context.Context, tenantID string, asOf time.Time) ([]domain.TrialBalanceRow, error)

	// ProfitAndLoss aggregates revenue and expense account activity for posted
	// entries with effective date within [start, end] inclusive.
	ProfitAndLoss(ctx context.Context, tenantID string, start, end time.Time) (*domain.PAndLReport, error)

	// BalanceSheet aggregates asset, liability and equity balances for posted
	// entries with effective date up to and including asOf.
	BalanceSheet(ctx context.Context, tenantID string, asOf time.Time) (*domain.BalanceSheetReport, error)

	// ListEntryLinesForExport returns every non-canceled entry line with its
	// header whose effective date falls within [start, end] inclusive, ordered
	// by effective date then entry number.
	ListEntryLinesForExport(ctx context.Context, tenantID string, start, end time.Time) ([]domain.JournalExportRow, error)
}
