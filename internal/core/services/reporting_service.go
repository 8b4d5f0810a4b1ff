package services

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/quillbooks/quillbooks_app/internal/apperrors"
	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	portsrepo "github.com/quillbooks/quillbooks_app/internal/core/ports/repositories"
	portssvc "github.com/quillbooks/quillbooks_app/internal/core/ports/services"
	"github.com/quillbooks/quillbooks_app/internal/middleware"
	"github.com/quillbooks/quillbooks_app/internal/utils/export"
)

// reportingService provides financial reports over posted journal entries.
type reportingService struct {
	reportingRepo portsrepo.ReportingReader
	tenantSvc     portssvc.TenantAuthorizerSvc
}

// NewReportingService creates a new reporting service.
func NewReportingService(repo portsrepo.ReportingReader, tenantSvc portssvc.TenantAuthorizerSvc) portssvc.ReportingService {
	return &reportingService{
		reportingRepo: repo,
		tenantSvc:     tenantSvc,
	}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// TrialBalance returns per-account debit and credit totals as of a date.
func (s *reportingService) TrialBalance(ctx context.Context, tenantID, requestingUserID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.reportingRepo.TrialBalance(ctx, tenantID, asOf)
}

// ProfitAndLoss aggregates revenue and expense activity for a period.
func (s *reportingService) ProfitAndLoss(ctx context.Context, tenantID, requestingUserID string, start, end time.Time) (*domain.PAndLReport, error) {
	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.reportingRepo.ProfitAndLoss(ctx, tenantID, start, end)
}

// BalanceSheet aggregates asset, liability and equity balances as of a date.
func (s *reportingService) BalanceSheet(ctx context.Context, tenantID, requestingUserID string, asOf time.Time) (*domain.BalanceSheetReport, error) {
	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.reportingRepo.BalanceSheet(ctx, tenantID, asOf)
}

// ExportTrialBalanceCSV streams the trial balance as CSV to w. The first line
// is a comment naming the report date.
func (s *reportingService) ExportTrialBalanceCSV(ctx context.Context, tenantID, requestingUserID string, asOf time.Time, w io.Writer) error {
	rows, err := s.TrialBalance(ctx, tenantID, requestingUserID, asOf)
	if err != nil {
		return err
	}

	streamer := export.NewCSVStreamer(w)
	if err := streamer.WriteComment("# Trial balance as of " + asOf.Format("2006-01-02")); err != nil {
		return err
	}
	if err := streamer.WriteRow([]string{"AccountID", "AccountName", "AccountType", "Debit", "Credit"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.AccountID,
			row.AccountName,
			string(row.AccountType),
			row.Debit.String(),
			row.Credit.String(),
		}
		if err := streamer.WriteRow(record); err != nil {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to write trial balance row",
				slog.String("tenant_id", tenantID),
				slog.String("error", err.Error()))
			return err
		}
	}
	return streamer.Close()
}

// ExportProfitAndLossCSV streams the P&L report as CSV to w, one section per
// account class with a closing net profit row.
func (s *reportingService) ExportProfitAndLossCSV(ctx context.Context, tenantID, requestingUserID string, start, end time.Time, w io.Writer) error {
	report, err := s.ProfitAndLoss(ctx, tenantID, requestingUserID, start, end)
	if err != nil {
		return err
	}

	streamer := export.NewCSVStreamer(w)
	comment := "# Profit and loss " + start.Format("2006-01-02") + " to " + end.Format("2006-01-02")
	if err := streamer.WriteComment(comment); err != nil {
		return err
	}
	if err := streamer.WriteRow([]string{"Section", "AccountID", "AccountName", "Amount"}); err != nil {
		return err
	}
	for _, row := range report.Revenue {
		if err := streamer.WriteRow([]string{"REVENUE", row.AccountID, row.Name, row.NetAmount.String()}); err != nil {
			return err
		}
	}
	for _, row := range report.Expenses {
		if err := streamer.WriteRow([]string{"EXPENSE", row.AccountID, row.Name, row.NetAmount.String()}); err != nil {
			return err
		}
	}
	if err := streamer.WriteRow([]string{"NET_PROFIT", "", "", report.NetProfit.String()}); err != nil {
		return err
	}
	return streamer.Close()
}

// ExportBalanceSheetCSV streams the balance sheet as CSV to w, one section per
// account class with closing totals.
func (s *reportingService) ExportBalanceSheetCSV(ctx context.Context, tenantID, requestingUserID string, asOf time.Time, w io.Writer) error {
	report, err := s.BalanceSheet(ctx, tenantID, requestingUserID, asOf)
	if err != nil {
		return err
	}

	streamer := export.NewCSVStreamer(w)
	if err := streamer.WriteComment("# Balance sheet as of " + asOf.Format("2006-01-02")); err != nil {
		return err
	}
	if err := streamer.WriteRow([]string{"Section", "AccountID", "AccountName", "Amount"}); err != nil {
		return err
	}
	sections := []struct {
		name string
		rows []domain.AccountAmount
	}{
		{"ASSET", report.Assets},
		{"LIABILITY", report.Liabilities},
		{"EQUITY", report.Equity},
	}
	for _, section := range sections {
		for _, row := range section.rows {
			if err := streamer.WriteRow([]string{section.name, row.AccountID, row.Name, row.NetAmount.String()}); err != nil {
				return err
			}
		}
	}
	totals := [][]string{
		{"TOTAL_ASSETS", "", "", report.TotalAssets.String()},
		{"TOTAL_LIABILITIES", "", "", report.TotalLiabilities.String()},
		{"TOTAL_EQUITY", "", "", report.TotalEquity.String()},
	}
	for _, row := range totals {
		if err := streamer.WriteRow(row); err != nil {
			return err
		}
	}
	return streamer.Close()
}

// ExportJournalEntriesCSV streams the tenant's non-canceled entry lines within
// [start, end] as CSV to w, one row per line.
func (s *reportingService) ExportJournalEntriesCSV(ctx context.Context, tenantID, requestingUserID string, start, end time.Time, w io.Writer) error {
	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return err
	}
	if end.Before(start) {
		return apperrors.NewAppError(400, ErrInvalidDateRange.Error(), ErrInvalidDateRange)
	}

	rows, err := s.reportingRepo.ListEntryLinesForExport(ctx, tenantID, start, end)
	if err != nil {
		return err
	}

	streamer := export.NewCSVStreamer(w)
	comment := "# Journal entries " + start.Format("2006-01-02") + " to " + end.Format("2006-01-02")
	if err := streamer.WriteComment(comment); err != nil {
		return err
	}
	if err := streamer.WriteRow([]string{"EntryNumber", "EffectiveDate", "Status", "Note", "AccountNumber", "AccountName", "EntryType", "Amount", "Memo"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			strconv.FormatInt(row.EntryID, 10),
			row.EffectiveDate.Format("2006-01-02"),
			string(row.Status),
			row.Note,
			row.AccountNumber,
			row.AccountName,
			string(row.EntryType),
			row.Amount.String(),
			row.Memo,
		}
		if err := streamer.WriteRow(record); err != nil {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to write entry export row",
				slog.String("tenant_id", tenantID),
				slog.String("error", err.Error()))
			return err
		}
	}
	return streamer.Close()
}
