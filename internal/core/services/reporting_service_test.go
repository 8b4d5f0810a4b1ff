package services_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/quillbooks/quillbooks_app/internal/apperrors"
	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	portsrepo "github.com/quillbooks/quillbooks_app/internal/core/ports/repositories"
	portssvc "github.com/quillbooks/quillbooks_app/internal/core/ports/services"
	"github.com/quillbooks/quillbooks_app/internal/core/services"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingReader = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) TrialBalance(ctx context.Context, tenantID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, tenantID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func (m *MockReportingRepository) ProfitAndLoss(ctx context.Context, tenantID string, start, end time.Time) (*domain.PAndLReport, error) {
	args := m.Called(ctx, tenantID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PAndLReport), args.Error(1)
}

func (m *MockReportingRepository) BalanceSheet(ctx context.Context, tenantID string, asOf time.Time) (*domain.BalanceSheetReport, error) {
	args := m.Called(ctx, tenantID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheetReport), args.Error(1)
}

func (m *MockReportingRepository) ListEntryLinesForExport(ctx context.Context, tenantID string, start, end time.Time) ([]domain.JournalExportRow, error) {
	args := m.Called(ctx, tenantID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalExportRow), args.Error(1)
}

// --- Test Suite Setup ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockTenantSvc     *MockTenantAuthorizer
	reportingSvc      portssvc.ReportingService
	tenantID          string
	userID            string
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockTenantSvc = new(MockTenantAuthorizer)
	suite.reportingSvc = services.NewReportingService(suite.mockReportingRepo, suite.mockTenantSvc)
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestTrialBalance_RequiresMembership() {
	ctx := context.Background()
	asOf := time.Now().UTC()

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleReadOnly).
		Return(apperrors.ErrForbidden).Once()

	_, err := suite.reportingSvc.TrialBalance(ctx, suite.tenantID, suite.userID, asOf)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "TrialBalance", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestExportTrialBalanceCSV() {
	ctx := context.Background()
	asOf := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockReportingRepo.On("TrialBalance", ctx, suite.tenantID, asOf).Return([]domain.TrialBalanceRow{
		{AccountID: "a1", AccountName: "Cash", AccountType: domain.Asset, Debit: decimal.NewFromInt(150), Credit: decimal.Zero},
		{AccountID: "a2", AccountName: "Revenue", AccountType: domain.Revenue, Debit: decimal.Zero, Credit: decimal.NewFromInt(150)},
	}, nil).Once()

	var buf bytes.Buffer
	err := suite.reportingSvc.ExportTrialBalanceCSV(ctx, suite.tenantID, suite.userID, asOf, &buf)

	suite.Require().NoError(err)
	lines := strings.Split(strings.TrimRight(buf.String(), "\r\n"), "\r\n")
	suite.Require().Len(lines, 4, "comment + header + one row per account")
	suite.Equal("# Trial balance as of 2026-01-31", lines[0])
	suite.Equal("AccountID,AccountName,AccountType,Debit,Credit", lines[1])
	suite.Equal("a1,Cash,ASSET,150,0", lines[2])
	suite.Equal("a2,Revenue,REVENUE,0,150", lines[3])
}

func (suite *ReportingServiceTestSuite) TestExportJournalEntriesCSV_OneRowPerLine() {
	ctx := context.Background()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockReportingRepo.On("ListEntryLinesForExport", ctx, suite.tenantID, start, end).Return([]domain.JournalExportRow{
		{EntryID: 1, EffectiveDate: start, Status: domain.Posted, Note: "Opening", AccountNumber: "1000", AccountName: "Cash", EntryType: domain.Debit, Amount: decimal.NewFromInt(500)},
		{EntryID: 1, EffectiveDate: start, Status: domain.Posted, Note: "Opening", AccountNumber: "3000", AccountName: "Equity", EntryType: domain.Credit, Amount: decimal.NewFromInt(500)},
	}, nil).Once()

	var buf bytes.Buffer
	err := suite.reportingSvc.ExportJournalEntriesCSV(ctx, suite.tenantID, suite.userID, start, end, &buf)

	suite.Require().NoError(err)
	lines := strings.Split(strings.TrimRight(buf.String(), "\r\n"), "\r\n")
	suite.Require().Len(lines, 4, "comment + header + one row per entry line")
	suite.Contains(lines[1], "EntryNumber,EffectiveDate,Status")
	suite.Equal("1,2026-01-01,POSTED,Opening,1000,Cash,DEBIT,500,", lines[2])
	suite.Equal("1,2026-01-01,POSTED,Opening,3000,Equity,CREDIT,500,", lines[3])
}

func (suite *ReportingServiceTestSuite) TestExportJournalEntriesCSV_InvalidRange() {
	ctx := context.Background()
	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleReadOnly).Return(nil).Once()

	var buf bytes.Buffer
	err := suite.reportingSvc.ExportJournalEntriesCSV(ctx, suite.tenantID, suite.userID, start, end, &buf)

	suite.ErrorIs(err, services.ErrInvalidDateRange)
	suite.Zero(buf.Len(), "nothing should be written on validation failure")
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "ListEntryLinesForExport", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestExportProfitAndLossCSV() {
	ctx := context.Background()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockReportingRepo.On("ProfitAndLoss", ctx, suite.tenantID, start, end).Return(&domain.PAndLReport{
		Revenue:   []domain.AccountAmount{{AccountID: "r1", Name: "Sales", NetAmount: decimal.NewFromInt(900)}},
		Expenses:  []domain.AccountAmount{{AccountID: "e1", Name: "Rent", NetAmount: decimal.NewFromInt(400)}},
		NetProfit: decimal.NewFromInt(500),
	}, nil).Once()

	var buf bytes.Buffer
	err := suite.reportingSvc.ExportProfitAndLossCSV(ctx, suite.tenantID, suite.userID, start, end, &buf)

	suite.Require().NoError(err)
	out := buf.String()
	suite.Contains(out, "REVENUE,r1,Sales,900")
	suite.Contains(out, "EXPENSE,e1,Rent,400")
	suite.Contains(out, "NET_PROFIT,,,500")
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
