package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/quillbooks/quillbooks_app/internal/apperrors"
	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	portsrepo "github.com/quillbooks/quillbooks_app/internal/core/ports/repositories"
)

type ReportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a repository for aggregate reads over posted entries.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingReader {
	return &ReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReportingReader = (*ReportingRepository)(nil)

// TrialBalance returns per-account debit and credit totals for posted entries
// with effective date up to and including asOf.
func (r *ReportingRepository) TrialBalance(ctx context.Context, tenantID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.account_id, a.name, a.account_type,
		       COALESCE(SUM(l.amount) FILTER (WHERE l.entry_type = 'DEBIT'), 0) AS debit,
		       COALESCE(SUM(l.amount) FILTER (WHERE l.entry_type = 'CREDIT'), 0) AS credit
		FROM accounts a
		JOIN journal_entry_accounts l ON l.account_id = a.account_id
		JOIN journal_entries j ON j.journal_entry_id = l.journal_entry_id
		WHERE a.tenant_id = $1 AND j.status = 'POSTED' AND COALESCE(j.post_date, j.entry_date) <= $2
		GROUP BY a.account_id, a.name, a.account_type
		ORDER BY a.account_number;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query trial balance for tenant "+tenantID, err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		if err := rows.Scan(&row.AccountID, &row.AccountName, &row.AccountType, &row.Debit, &row.Credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trial balance row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating trial balance rows for tenant "+tenantID, err)
	}
	return result, nil
}

// ListEntryLinesForExport returns every non-canceled entry line with its
// header whose effective date falls within [start, end] inclusive.
func (r *ReportingRepository) ListEntryLinesForExport(ctx context.Context, tenantID string, start, end time.Time) ([]domain.JournalExportRow, error) {
	query := `
		SELECT j.entry_id, COALESCE(j.post_date, j.entry_date) AS effective_date, j.status, j.note,
		       a.account_number, a.name, l.entry_type, l.amount, l.memo
		FROM journal_entries j
		JOIN journal_entry_accounts l ON l.journal_entry_id = j.journal_entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE j.tenant_id = $1 AND j.status != 'CANCELED'
		  AND COALESCE(j.post_date, j.entry_date) BETWEEN $2 AND $3
		ORDER BY COALESCE(j.post_date, j.entry_date), j.entry_id, l.entry_type DESC;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, start, end)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entry lines for export for tenant "+tenantID, err)
	}
	defer rows.Close()

	result := []domain.JournalExportRow{}
	for rows.Next() {
		var row domain.JournalExportRow
		if err := rows.Scan(&row.EntryID, &row.EffectiveDate, &row.Status, &row.Note,
			&row.AccountNumber, &row.AccountName, &row.EntryType, &row.Amount, &row.Memo); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry export row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry export rows for tenant "+tenantID, err)
	}
	return result, nil
}

// netAmounts aggregates the net activity of all accounts of the given types.
// The sign convention flips per account type so every net amount is positive
// in the account's natural direction.
func (r *ReportingRepository) netAmounts(ctx context.Context, tenantID string, accountTypes []string, start, end time.Time) (map[domain.AccountType][]domain.AccountAmount, error) {
	query := `
		SELECT a.account_id, a.name, a.account_type,
		       COALESCE(SUM(CASE WHEN a.account_type IN ('ASSET', 'EXPENSE')
		                         THEN CASE WHEN l.entry_type = 'DEBIT' THEN l.amount ELSE -l.amount END
		                         ELSE CASE WHEN l.entry_type = 'CREDIT' THEN l.amount ELSE -l.amount END
		                    END), 0) AS net_amount
		FROM accounts a
		JOIN journal_entry_accounts l ON l.account_id = a.account_id
		JOIN journal_entries j ON j.journal_entry_id = l.journal_entry_id
		WHERE a.tenant_id = $1 AND a.account_type = ANY($2)
		  AND j.status = 'POSTED'
		  AND COALESCE(j.post_date, j.entry_date) BETWEEN $3 AND $4
		GROUP BY a.account_id, a.name, a.account_type
		ORDER BY a.account_number;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, accountTypes, start, end)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account activity for tenant "+tenantID, err)
	}
	defer rows.Close()

	out := make(map[domain.AccountType][]domain.AccountAmount)
	for rows.Next() {
		var amount domain.AccountAmount
		var accountType domain.AccountType
		if err := rows.Scan(&amount.AccountID, &amount.Name, &accountType, &amount.NetAmount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account activity row", err)
		}
		out[accountType] = append(out[accountType], amount)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account activity rows for tenant "+tenantID, err)
	}
	return out, nil
}

func sumAmounts(amounts []domain.AccountAmount) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a.NetAmount)
	}
	return total
}

// ProfitAndLoss aggregates revenue and expense account activity for posted
// entries with effective date within [start, end].
func (r *ReportingRepository) ProfitAndLoss(ctx context.Context, tenantID string, start, end time.Time) (*domain.PAndLReport, error) {
	byType, err := r.netAmounts(ctx, tenantID, []string{"REVENUE", "EXPENSE"}, start, end)
	if err != nil {
		return nil, err
	}

	report := &domain.PAndLReport{
		Revenue:  byType[domain.Revenue],
		Expenses: byType[domain.Expense],
	}
	report.NetProfit = sumAmounts(report.Revenue).Sub(sumAmounts(report.Expenses))
	return report, nil
}

// BalanceSheet aggregates asset, liability and equity balances for posted
// entries with effective date up to and including asOf. Retained earnings are
// folded into equity so the statement balances.
func (r *ReportingRepository) BalanceSheet(ctx context.Context, tenantID string, asOf time.Time) (*domain.BalanceSheetReport, error) {
	var epoch time.Time
	byType, err := r.netAmounts(ctx, tenantID, []string{"ASSET", "LIABILITY", "EQUITY"}, epoch, asOf)
	if err != nil {
		return nil, err
	}

	pnl, err := r.ProfitAndLoss(ctx, tenantID, epoch, asOf)
	if err != nil {
		return nil, err
	}

	report := &domain.BalanceSheetReport{
		Assets:      byType[domain.Asset],
		Liabilities: byType[domain.Liability],
		Equity:      byType[domain.Equity],
	}
	if !pnl.NetProfit.IsZero() {
		report.Equity = append(report.Equity, domain.AccountAmount{
			Name:      "Retained Earnings",
			NetAmount: pnl.NetProfit,
		})
	}
	report.TotalAssets = sumAmounts(report.Assets)
	report.TotalLiabilities = sumAmounts(report.Liabilities)
	report.TotalEquity = sumAmounts(report.Equity)
	return report, nil
}
