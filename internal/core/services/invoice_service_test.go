package services_test

import (
	"context"
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
	"github.com/quillbooks/quillbooks_app/internal/dto"
	"github.com/quillbooks/quillbooks_app/internal/utils/pagination"
)

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

var _ portsrepo.InvoiceRepositoryFacade = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoiceByTenantAndNumber(ctx context.Context, tenantID string, invoiceNumber int64) (*domain.Invoice, error) {
	args := m.Called(ctx, tenantID, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, tenantID string, status *domain.InvoiceStatus, page pagination.PageRequest) (pagination.Page[domain.InvoiceWithBalance], error) {
	args := m.Called(ctx, tenantID, status, page)
	return args.Get(0).(pagination.Page[domain.InvoiceWithBalance]), args.Error(1)
}

func (m *MockInvoiceRepository) NextInvoiceNumber(ctx context.Context, tenantID string) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) CreateInvoice(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error) {
	args := m.Called(ctx, invoice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, updatedBy string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID, status, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

// --- Mock PaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentRepositoryFacade = (*MockPaymentRepository)(nil)

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SumPaymentsByInvoice(ctx context.Context, invoiceID string) (decimal.Decimal, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

// --- Mock TimeEntryRepository ---
type MockTimeEntryRepository struct {
	mock.Mock
}

var _ portsrepo.TimeEntryRepositoryFacade = (*MockTimeEntryRepository)(nil)

func (m *MockTimeEntryRepository) FindTimeEntryByID(ctx context.Context, timeEntryID string) (*domain.TimeEntry, error) {
	args := m.Called(ctx, timeEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) ListTimeEntries(ctx context.Context, tenantID string, start, end time.Time, page pagination.PageRequest) (pagination.Page[domain.TimeEntry], error) {
	args := m.Called(ctx, tenantID, start, end, page)
	return args.Get(0).(pagination.Page[domain.TimeEntry]), args.Error(1)
}

func (m *MockTimeEntryRepository) ListUnbilledTimeEntries(ctx context.Context, tenantID string) ([]domain.TimeEntry, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) SaveTimeEntry(ctx context.Context, entry domain.TimeEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTimeEntryRepository) UpdateTimeEntry(ctx context.Context, entry domain.TimeEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTimeEntryRepository) AttachTimeEntriesToInvoice(ctx context.Context, timeEntryIDs []string, invoiceID, updatedBy string) error {
	args := m.Called(ctx, timeEntryIDs, invoiceID, updatedBy)
	return args.Error(0)
}

// --- Test Suite Setup ---
type InvoiceServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo   *MockInvoiceRepository
	mockPaymentRepo   *MockPaymentRepository
	mockTimeEntryRepo *MockTimeEntryRepository
	mockTenantSvc     *MockTenantAuthorizer
	invoiceSvc        portssvc.InvoiceSvcFacade
	paymentSvc        portssvc.PaymentSvcFacade
	tenantID          string
	userID            string
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockTimeEntryRepo = new(MockTimeEntryRepository)
	suite.mockTenantSvc = new(MockTenantAuthorizer)
	suite.invoiceSvc = services.NewInvoiceService(suite.mockInvoiceRepo, suite.mockPaymentRepo, suite.mockTimeEntryRepo, suite.mockTenantSvc)
	suite.paymentSvc = services.NewPaymentService(suite.mockPaymentRepo, suite.mockInvoiceRepo, suite.mockTenantSvc)

	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *InvoiceServiceTestSuite) sentInvoice(total int64) *domain.Invoice {
	return &domain.Invoice{
		InvoiceID:    uuid.NewString(),
		TenantID:     suite.tenantID,
		CustomerName: "Acme Corp",
		Status:       domain.InvoiceSent,
		Total:        decimal.NewFromInt(total),
	}
}

// --- Invoice Test Cases ---

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_ExplicitLines() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{
		CustomerName: "Acme Corp",
		InvoiceDate:  time.Now().UTC(),
		DueDate:      time.Now().UTC().AddDate(0, 1, 0),
		Lines: []dto.CreateInvoiceLineRequest{
			{Description: "Consulting", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(150)},
			{Description: "Expenses", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(200)},
		},
	}

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.mockInvoiceRepo.On("CreateInvoice", ctx, mock.AnythingOfType("*domain.Invoice")).Run(func(args mock.Arguments) {
		invoice := args.Get(1).(*domain.Invoice)
		suite.Equal(domain.InvoiceDraft, invoice.Status)
		suite.True(invoice.Total.Equal(decimal.NewFromInt(1700)))
		suite.Len(invoice.Lines, 2)
		suite.True(invoice.Lines[0].Amount.Equal(decimal.NewFromInt(1500)))
	}).Return(&domain.Invoice{
		InvoiceID:     uuid.NewString(),
		TenantID:      suite.tenantID,
		InvoiceNumber: 3,
		Status:        domain.InvoiceDraft,
	}, nil).Once()

	created, err := suite.invoiceSvc.CreateInvoice(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(int64(3), created.InvoiceNumber)
	suite.mockTimeEntryRepo.AssertNotCalled(suite.T(), "AttachTimeEntriesToInvoice", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_NoLines() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{
		CustomerName: "Acme Corp",
		InvoiceDate:  time.Now().UTC(),
		DueDate:      time.Now().UTC(),
	}

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()

	_, err := suite.invoiceSvc.CreateInvoice(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvoiceHasNoLines)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "CreateInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_FromTimeEntries() {
	ctx := context.Background()
	rate := decimal.NewFromInt(120)
	timeEntryID := uuid.NewString()
	workDate := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	req := dto.CreateInvoiceRequest{
		CustomerName: "Acme Corp",
		InvoiceDate:  time.Now().UTC(),
		DueDate:      time.Now().UTC(),
		TimeEntryIDs: []string{timeEntryID},
		HourlyRate:   &rate,
	}

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.mockTimeEntryRepo.On("FindTimeEntryByID", ctx, timeEntryID).Return(&domain.TimeEntry{
		TimeEntryID: timeEntryID,
		TenantID:    suite.tenantID,
		WorkDate:    workDate,
		Hours:       decimal.RequireFromString("2.5"),
		Description: "Schema design",
		Billable:    true,
	}, nil).Once()

	createdID := uuid.NewString()
	suite.mockInvoiceRepo.On("CreateInvoice", ctx, mock.AnythingOfType("*domain.Invoice")).Run(func(args mock.Arguments) {
		invoice := args.Get(1).(*domain.Invoice)
		suite.Require().Len(invoice.Lines, 1)
		suite.Equal("Schema design (2026-03-14)", invoice.Lines[0].Description)
		suite.True(invoice.Lines[0].Amount.Equal(decimal.NewFromInt(300)))
	}).Return(&domain.Invoice{
		InvoiceID: createdID,
		TenantID:  suite.tenantID,
		Status:    domain.InvoiceDraft,
	}, nil).Once()
	suite.mockTimeEntryRepo.On("AttachTimeEntriesToInvoice", ctx, []string{timeEntryID}, createdID, suite.userID).Return(nil).Once()

	_, err := suite.invoiceSvc.CreateInvoice(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockTimeEntryRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_AlreadyInvoicedTimeEntry() {
	ctx := context.Background()
	rate := decimal.NewFromInt(120)
	timeEntryID := uuid.NewString()
	otherInvoiceID := uuid.NewString()
	req := dto.CreateInvoiceRequest{
		CustomerName: "Acme Corp",
		InvoiceDate:  time.Now().UTC(),
		DueDate:      time.Now().UTC(),
		TimeEntryIDs: []string{timeEntryID},
		HourlyRate:   &rate,
	}

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.mockTimeEntryRepo.On("FindTimeEntryByID", ctx, timeEntryID).Return(&domain.TimeEntry{
		TimeEntryID: timeEntryID,
		TenantID:    suite.tenantID,
		Hours:       decimal.NewFromInt(1),
		Billable:    true,
		InvoiceID:   &otherInvoiceID,
	}, nil).Once()

	_, err := suite.invoiceSvc.CreateInvoice(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "CreateInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestSendInvoice_OnlyFromDraft() {
	ctx := context.Background()
	invoice := suite.sentInvoice(100)

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()

	_, err := suite.invoiceSvc.SendInvoice(ctx, suite.tenantID, invoice.InvoiceID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoiceStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestVoidInvoice_PaidIsRejected() {
	ctx := context.Background()
	invoice := suite.sentInvoice(100)
	invoice.Status = domain.InvoicePaid

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()

	_, err := suite.invoiceSvc.VoidInvoice(ctx, suite.tenantID, invoice.InvoiceID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *InvoiceServiceTestSuite) TestGetInvoiceByID_IncludesBalance() {
	ctx := context.Background()
	invoice := suite.sentInvoice(500)

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockPaymentRepo.On("SumPaymentsByInvoice", ctx, invoice.InvoiceID).Return(decimal.NewFromInt(200), nil).Once()

	got, err := suite.invoiceSvc.GetInvoiceByID(ctx, suite.tenantID, invoice.InvoiceID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(got)
	suite.True(got.AmountPaid.Equal(decimal.NewFromInt(200)))
	suite.True(got.Balance.Equal(decimal.NewFromInt(300)))
}

func (suite *InvoiceServiceTestSuite) TestGetInvoiceByID_OtherTenantIsNil() {
	ctx := context.Background()
	invoice := suite.sentInvoice(100)
	invoice.TenantID = uuid.NewString()

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()

	got, err := suite.invoiceSvc.GetInvoiceByID(ctx, suite.tenantID, invoice.InvoiceID, suite.userID)

	suite.Require().NoError(err)
	suite.Nil(got)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SumPaymentsByInvoice", mock.Anything, mock.Anything)
}

// --- Payment Test Cases ---

func (suite *InvoiceServiceTestSuite) paymentRequest(invoiceID string, amount int64) dto.RecordPaymentRequest {
	return dto.RecordPaymentRequest{
		InvoiceID:   invoiceID,
		PaymentDate: time.Now().UTC(),
		Amount:      decimal.NewFromInt(amount),
		Method:      "TRANSFER",
	}
}

func (suite *InvoiceServiceTestSuite) TestRecordPayment_PartialKeepsSent() {
	ctx := context.Background()
	invoice := suite.sentInvoice(500)

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockPaymentRepo.On("SumPaymentsByInvoice", ctx, invoice.InvoiceID).Return(decimal.Zero, nil).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.AnythingOfType("domain.Payment")).Return(nil).Once()

	payment, err := suite.paymentSvc.RecordPayment(ctx, suite.tenantID, suite.paymentRequest(invoice.InvoiceID, 200), suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(payment)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoiceStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestRecordPayment_FullMarksPaid() {
	ctx := context.Background()
	invoice := suite.sentInvoice(500)

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockPaymentRepo.On("SumPaymentsByInvoice", ctx, invoice.InvoiceID).Return(decimal.NewFromInt(300), nil).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.AnythingOfType("domain.Payment")).Return(nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceStatus", ctx, invoice.InvoiceID, domain.InvoicePaid, suite.userID).Return(invoice, nil).Once()

	_, err := suite.paymentSvc.RecordPayment(ctx, suite.tenantID, suite.paymentRequest(invoice.InvoiceID, 200), suite.userID)

	suite.Require().NoError(err)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestRecordPayment_Overpayment() {
	ctx := context.Background()
	invoice := suite.sentInvoice(500)

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockPaymentRepo.On("SumPaymentsByInvoice", ctx, invoice.InvoiceID).Return(decimal.NewFromInt(400), nil).Once()

	_, err := suite.paymentSvc.RecordPayment(ctx, suite.tenantID, suite.paymentRequest(invoice.InvoiceID, 200), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrOverpayment)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestRecordPayment_DraftInvoiceRejected() {
	ctx := context.Background()
	invoice := suite.sentInvoice(500)
	invoice.Status = domain.InvoiceDraft

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()

	_, err := suite.paymentSvc.RecordPayment(ctx, suite.tenantID, suite.paymentRequest(invoice.InvoiceID, 100), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *InvoiceServiceTestSuite) TestRecordPayment_NonPositiveAmount() {
	ctx := context.Background()

	suite.mockTenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()

	req := suite.paymentRequest(uuid.NewString(), 0)
	_, err := suite.paymentSvc.RecordPayment(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "FindInvoiceByID", mock.Anything, mock.Anything)
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
