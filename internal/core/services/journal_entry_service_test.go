package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/quillbooks/quillbooks_app/internal/apperrors"
	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	portsrepo "github.com/quillbooks/quillbooks_app/internal/core/ports/repositories"
	portssvc "github.com/quillbooks/quillbooks_app/internal/core/ports/services"
	"github.com/quillbooks/quillbooks_app/internal/core/services"
	"github.com/quillbooks/quillbooks_app/internal/dto"
	"github.com/quillbooks/quillbooks_app/internal/utils/pagination"
)

// --- Mock JournalEntryRepository ---
type MockJournalEntryRepository struct {
	mock.Mock
}

var _ portsrepo.JournalEntryRepositoryWithTx = (*MockJournalEntryRepository)(nil)

func (m *MockJournalEntryRepository) FindByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, journalEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) FindByTenantAndEntryID(ctx context.Context, tenantID string, entryID int64) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) FindDetailedByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, journalEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) FindDetailedByTenantAndEntryID(ctx context.Context, tenantID string, entryID int64) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) ListJournalEntries(ctx context.Context, tenantID string, start, end time.Time, page pagination.PageRequest) (pagination.Page[domain.JournalEntry], error) {
	args := m.Called(ctx, tenantID, start, end, page)
	return args.Get(0).(pagination.Page[domain.JournalEntry]), args.Error(1)
}

func (m *MockJournalEntryRepository) ListPendingJournalEntries(ctx context.Context, tenantID string, page pagination.PageRequest) (pagination.Page[domain.JournalEntry], error) {
	args := m.Called(ctx, tenantID, page)
	return args.Get(0).(pagination.Page[domain.JournalEntry]), args.Error(1)
}

func (m *MockJournalEntryRepository) NextEntryID(ctx context.Context, tenantID string) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJournalEntryRepository) ListLedgerRows(ctx context.Context, tenantID, accountID string, limit int, nextToken *string) ([]domain.LedgerRow, *string, error) {
	args := m.Called(ctx, tenantID, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedToken = &tokenVal
	}
	return args.Get(0).([]domain.LedgerRow), returnedToken, args.Error(2)
}

func (m *MockJournalEntryRepository) CreateJournalEntry(ctx context.Context, entry *domain.JournalEntry) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) PostJournalEntry(ctx context.Context, journalEntryID string, postDate time.Time, postedByUserID string, note *string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, journalEntryID, postDate, postedByUserID, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) CancelJournalEntry(ctx context.Context, journalEntryID string, canceledByUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, journalEntryID, canceledByUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockJournalEntryRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock AccountReader ---
type MockAccountReader struct {
	mock.Mock
}

var _ portsrepo.AccountReader = (*MockAccountReader)(nil)

func (m *MockAccountReader) FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReader) FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tenantID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountReader) ListAccountsByTenant(ctx context.Context, tenantID string, limit, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock AssetTypeReader ---
type MockAssetTypeReader struct {
	mock.Mock
}

var _ portsrepo.AssetTypeReader = (*MockAssetTypeReader)(nil)

func (m *MockAssetTypeReader) FindAssetTypeByID(ctx context.Context, tenantID, assetTypeID string) (*domain.AssetType, error) {
	args := m.Called(ctx, tenantID, assetTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AssetType), args.Error(1)
}

func (m *MockAssetTypeReader) FindAssetTypesByIDs(ctx context.Context, tenantID string, assetTypeIDs []string) (map[string]domain.AssetType, error) {
	args := m.Called(ctx, tenantID, assetTypeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.AssetType), args.Error(1)
}

func (m *MockAssetTypeReader) ListAssetTypesByTenant(ctx context.Context, tenantID string) ([]domain.AssetType, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AssetType), args.Error(1)
}

// --- Mock TenantAuthorizer ---
type MockTenantAuthorizer struct {
	mock.Mock
}

var _ portssvc.TenantAuthorizerSvc = (*MockTenantAuthorizer)(nil)

func (m *MockTenantAuthorizer) AuthorizeUserAction(ctx context.Context, userID, tenantID string, requiredRole domain.UserTenantRole) error {
	args := m.Called(ctx, userID, tenantID, requiredRole)
	return args.Error(0)
}

// --- Test Suite Setup ---
type JournalEntryServiceTestSuite struct {
	suite.Suite
	mockJournalRepo   *MockJournalEntryRepository
	mockAccountRepo   *MockAccountReader
	mockAssetTypeRepo *MockAssetTypeReader
	mockTenantSvc     *MockTenantAuthorizer
	service           portssvc.JournalEntrySvcFacade
	tenantID          string
	userID            string
	cashAccount       domain.Account
	revenueAccount    domain.Account
	usd               domain.AssetType
}

func (suite *JournalEntryServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalEntryRepository)
	suite.mockAccountRepo = new(MockAccountReader)
	suite.mockAssetTypeRepo = new(MockAssetTypeReader)
	suite.mockTenantSvc = new(MockTenantAuthorizer)
	suite.service = services.NewJournalEntryService(suite.mockJournalRepo, suite.mockAccountRepo, suite.mockAssetTypeRepo, suite.mockTenantSvc)

	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.revenueAccount = domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		AccountType: domain.Revenue,
		IsActive:    true,
	}
	suite.usd = domain.AssetType{
		AssetTypeID: uuid.NewString(),
		TenantID:    suite.tenantID,
		Name:        "US Dollar",
		IsActive:    true,
	}
}

func (suite *JournalEntryServiceTestSuite) balancedRequest() dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		EntryDate: time.Now().UTC(),
		Note:      "Invoice settled in cash",
		Lines: []dto.CreateJournalEntryLine{
			{AccountID: suite.cashAccount.AccountID, AssetTypeID: suite.usd.AssetTypeID, EntryType: "DEBIT", Amount: decimal.NewFromInt(100)},
			{AccountID: suite.revenueAccount.AccountID, AssetTypeID: suite.usd.AssetTypeID, EntryType: "CREDIT", Amount: decimal.NewFromInt(100)},
		},
	}
}

func (suite *JournalEntryServiceTestSuite) expectLineReferencesValid() {
	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID:    suite.cashAccount,
		suite.revenueAccount.AccountID: suite.revenueAccount,
	}
	assetTypesMap := map[string]domain.AssetType{
		suite.usd.AssetTypeID: suite.usd,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, suite.tenantID, mock.AnythingOfType("[]string")).Return(accountsMap, nil).Once()
	suite.mockAssetTypeRepo.On("FindAssetTypesByIDs", mock.Anything, suite.tenantID, mock.AnythingOfType("[]string")).Return(assetTypesMap, nil).Once()
}

// --- Test Cases ---

func (suite *JournalEntryServiceTestSuite) TestCreateJournalEntry_Success() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.expectLineReferencesValid()

	suite.mockJournalRepo.On("CreateJournalEntry", ctx, mock.AnythingOfType("*domain.JournalEntry")).Run(func(args mock.Arguments) {
		entry := args.Get(1).(*domain.JournalEntry)
		suite.Equal(suite.tenantID, entry.TenantID)
		suite.Equal(domain.Pending, entry.Status)
		suite.Zero(entry.EntryID) // Number is assigned by the repository
		suite.Len(entry.Lines, 2)
		suite.Equal(suite.userID, entry.CreatedBy)
	}).Return(&domain.JournalEntry{
		JournalEntryID: uuid.NewString(),
		TenantID:       suite.tenantID,
		EntryID:        7,
		Status:         domain.Pending,
	}, nil).Once()

	created, err := suite.service.CreateJournalEntry(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal(int64(7), created.EntryID)

	suite.mockTenantSvc.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockAssetTypeRepo.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalEntryServiceTestSuite) TestCreateJournalEntry_Unbalanced() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[1].Amount = decimal.NewFromInt(90)

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()

	_, err := suite.service.CreateJournalEntry(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrJournalUnbalanced)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(400, appErr.Code)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "CreateJournalEntry", mock.Anything, mock.Anything)
}

func (suite *JournalEntryServiceTestSuite) TestCreateJournalEntry_AuthorizationFail() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.CreateJournalEntry(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountsByIDs", mock.Anything, mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "CreateJournalEntry", mock.Anything, mock.Anything)
}

func (suite *JournalEntryServiceTestSuite) TestCreateJournalEntry_UnknownAccount() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()

	// Only the cash account resolves; the revenue account is missing.
	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID: suite.cashAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, suite.tenantID, mock.AnythingOfType("[]string")).Return(accountsMap, nil).Once()

	_, err := suite.service.CreateJournalEntry(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "CreateJournalEntry", mock.Anything, mock.Anything)
}

func (suite *JournalEntryServiceTestSuite) TestCreateJournalEntry_InactiveAccount() {
	ctx := context.Background()
	req := suite.balancedRequest()

	inactive := suite.revenueAccount
	inactive.IsActive = false
	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID: suite.cashAccount,
		inactive.AccountID:          inactive,
	}

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, suite.tenantID, mock.AnythingOfType("[]string")).Return(accountsMap, nil).Once()

	_, err := suite.service.CreateJournalEntry(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalEntryServiceTestSuite) TestGetJournalEntryByID_OtherTenantIsNil() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockJournalRepo.On("FindDetailedByID", ctx, entryID).Return(&domain.JournalEntry{
		JournalEntryID: entryID,
		TenantID:       uuid.NewString(), // different tenant
	}, nil).Once()

	entry, err := suite.service.GetJournalEntryByID(ctx, suite.tenantID, entryID, suite.userID)

	suite.Require().NoError(err)
	suite.Nil(entry)
}

func (suite *JournalEntryServiceTestSuite) TestListJournalEntries_InvalidDateRange() {
	ctx := context.Background()
	params := dto.ListJournalEntriesParams{
		StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleReadOnly).Return(nil).Once()

	_, err := suite.service.ListJournalEntries(ctx, suite.tenantID, suite.userID, params)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidDateRange)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "ListJournalEntries", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalEntryServiceTestSuite) TestListJournalEntries_NormalizesPagination() {
	ctx := context.Background()
	params := dto.ListJournalEntriesParams{
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Page:      0,
		Size:      -5,
	}

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleReadOnly).Return(nil).Once()

	expectedPageReq := pagination.PageRequest{Page: 1, Size: 20}
	suite.mockJournalRepo.On("ListJournalEntries", ctx, suite.tenantID, params.StartDate, params.EndDate, expectedPageReq).
		Return(pagination.NewPage([]domain.JournalEntry{}, 0, expectedPageReq), nil).Once()

	resp, err := suite.service.ListJournalEntries(ctx, suite.tenantID, suite.userID, params)

	suite.Require().NoError(err)
	suite.Equal(1, resp.Page)
	suite.Equal(20, resp.Size)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalEntryServiceTestSuite) TestPostJournalEntry_DefaultsPostDate() {
	ctx := context.Background()
	entryID := uuid.NewString()
	before := time.Now().UTC()

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.mockJournalRepo.On("FindByID", ctx, entryID).Return(&domain.JournalEntry{
		JournalEntryID: entryID,
		TenantID:       suite.tenantID,
		Status:         domain.Pending,
	}, nil).Once()
	suite.mockJournalRepo.On("PostJournalEntry", ctx, entryID, mock.MatchedBy(func(postDate time.Time) bool {
		return !postDate.Before(before) && !postDate.After(time.Now().UTC())
	}), suite.userID, (*string)(nil)).Return(&domain.JournalEntry{
		JournalEntryID: entryID,
		TenantID:       suite.tenantID,
		Status:         domain.Posted,
	}, nil).Once()

	posted, err := suite.service.PostJournalEntry(ctx, suite.tenantID, entryID, dto.PostJournalEntryRequest{}, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(posted)
	suite.Equal(domain.Posted, posted.Status)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalEntryServiceTestSuite) TestPostJournalEntry_OtherTenantIsNil() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.mockJournalRepo.On("FindByID", ctx, entryID).Return(&domain.JournalEntry{
		JournalEntryID: entryID,
		TenantID:       uuid.NewString(),
	}, nil).Once()

	posted, err := suite.service.PostJournalEntry(ctx, suite.tenantID, entryID, dto.PostJournalEntryRequest{}, suite.userID)

	suite.Require().NoError(err)
	suite.Nil(posted)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "PostJournalEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalEntryServiceTestSuite) TestCancelJournalEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.mockJournalRepo.On("FindByID", ctx, entryID).Return(&domain.JournalEntry{
		JournalEntryID: entryID,
		TenantID:       suite.tenantID,
		Status:         domain.Pending,
	}, nil).Once()
	suite.mockJournalRepo.On("CancelJournalEntry", ctx, entryID, suite.userID).Return(&domain.JournalEntry{
		JournalEntryID: entryID,
		TenantID:       suite.tenantID,
		Status:         domain.Canceled,
	}, nil).Once()

	canceled, err := suite.service.CancelJournalEntry(ctx, suite.tenantID, entryID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(canceled)
	suite.Equal(domain.Canceled, canceled.Status)
}

func (suite *JournalEntryServiceTestSuite) TestPeekNextEntryNumber() {
	ctx := context.Background()

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockJournalRepo.On("NextEntryID", ctx, suite.tenantID).Return(int64(42), nil).Once()

	next, err := suite.service.PeekNextEntryNumber(ctx, suite.tenantID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(int64(42), next)
}

func TestJournalEntryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalEntryServiceTestSuite))
}
