package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/quillbooks/quillbooks_app/internal/apperrors"
	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	portssvc "github.com/quillbooks/quillbooks_app/internal/core/ports/services"
	"github.com/quillbooks/quillbooks_app/internal/dto"
	"github.com/quillbooks/quillbooks_app/internal/middleware"
)

// --- Mock JournalEntryService ---
type MockJournalEntryService struct {
	mock.Mock
}

var _ portssvc.JournalEntrySvcFacade = (*MockJournalEntryService)(nil)

func (m *MockJournalEntryService) GetJournalEntryByID(ctx context.Context, tenantID, journalEntryID, requestingUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, journalEntryID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryService) GetJournalEntryByNumber(ctx context.Context, tenantID string, entryID int64, requestingUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryService) ListJournalEntries(ctx context.Context, tenantID, requestingUserID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	args := m.Called(ctx, tenantID, requestingUserID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalEntriesResponse), args.Error(1)
}

func (m *MockJournalEntryService) ListPendingJournalEntries(ctx context.Context, tenantID, requestingUserID string, params dto.PaginationParams) (*dto.ListJournalEntriesResponse, error) {
	args := m.Called(ctx, tenantID, requestingUserID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalEntriesResponse), args.Error(1)
}

func (m *MockJournalEntryService) PeekNextEntryNumber(ctx context.Context, tenantID, requestingUserID string) (int64, error) {
	args := m.Called(ctx, tenantID, requestingUserID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJournalEntryService) ListAccountLedger(ctx context.Context, tenantID, accountID, requestingUserID string, params dto.LedgerParams) (*dto.LedgerResponse, error) {
	args := m.Called(ctx, tenantID, accountID, requestingUserID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LedgerResponse), args.Error(1)
}

func (m *MockJournalEntryService) CreateJournalEntry(ctx context.Context, tenantID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryService) PostJournalEntry(ctx context.Context, tenantID, journalEntryID string, req dto.PostJournalEntryRequest, requestingUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, journalEntryID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryService) CancelJournalEntry(ctx context.Context, tenantID, journalEntryID string, requestingUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, journalEntryID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// --- Test Suite ---
type JournalEntryHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockJournalEntryService
	jwtSecret   string
	tenantID    string
	userID      string
}

func (suite *JournalEntryHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockService = new(MockJournalEntryService)

	tenantGroup := suite.router.Group("/api/v1/tenants/:tenant_id")
	registerJournalEntryRoutes(tenantGroup, suite.mockService)
}

// generateTestToken creates a signed JWT for the test user.
func (suite *JournalEntryHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "quillbooks-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *JournalEntryHandlerTestSuite) doRequest(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *JournalEntryHandlerTestSuite) TestCreateJournalEntry_Success() {
	entryDate := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	reqBody := dto.CreateJournalEntryRequest{
		EntryDate: entryDate,
		Note:      "February rent",
		Lines: []dto.CreateJournalEntryLine{
			{AccountID: uuid.NewString(), AssetTypeID: uuid.NewString(), EntryType: "DEBIT", Amount: decimal.NewFromInt(1200)},
			{AccountID: uuid.NewString(), AssetTypeID: uuid.NewString(), EntryType: "CREDIT", Amount: decimal.NewFromInt(1200)},
		},
	}

	created := &domain.JournalEntry{
		JournalEntryID: uuid.NewString(),
		TenantID:       suite.tenantID,
		EntryID:        11,
		EntryDate:      entryDate,
		Status:         domain.Pending,
		Note:           "February rent",
	}

	suite.mockService.On("CreateJournalEntry",
		mock.AnythingOfType("*context.valueCtx"),
		suite.tenantID,
		mock.MatchedBy(func(req dto.CreateJournalEntryRequest) bool {
			return len(req.Lines) == 2 && req.Note == "February rent"
		}),
		suite.userID,
	).Return(created, nil).Once()

	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/tenants/%s/journal-entries", suite.tenantID), reqBody)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.JournalEntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.JournalEntryID, resp.JournalEntryID)
	suite.Equal(int64(11), resp.EntryID)
	suite.Equal(string(domain.Pending), resp.Status)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *JournalEntryHandlerTestSuite) TestCreateJournalEntry_UnbalancedIsBadRequest() {
	reqBody := dto.CreateJournalEntryRequest{
		EntryDate: time.Now().UTC(),
		Lines: []dto.CreateJournalEntryLine{
			{AccountID: uuid.NewString(), AssetTypeID: uuid.NewString(), EntryType: "DEBIT", Amount: decimal.NewFromInt(100)},
			{AccountID: uuid.NewString(), AssetTypeID: uuid.NewString(), EntryType: "CREDIT", Amount: decimal.NewFromInt(99)},
		},
	}

	suite.mockService.On("CreateJournalEntry",
		mock.AnythingOfType("*context.valueCtx"),
		suite.tenantID,
		mock.AnythingOfType("dto.CreateJournalEntryRequest"),
		suite.userID,
	).Return(nil, apperrors.NewValidationFailedError("journal entry is not balanced")).Once()

	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/tenants/%s/journal-entries", suite.tenantID), reqBody)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "not balanced")
}

func (suite *JournalEntryHandlerTestSuite) TestCreateJournalEntry_TooFewLinesRejectedByBinding() {
	reqBody := dto.CreateJournalEntryRequest{
		EntryDate: time.Now().UTC(),
		Lines: []dto.CreateJournalEntryLine{
			{AccountID: uuid.NewString(), AssetTypeID: uuid.NewString(), EntryType: "DEBIT", Amount: decimal.NewFromInt(100)},
		},
	}

	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/tenants/%s/journal-entries", suite.tenantID), reqBody)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreateJournalEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalEntryHandlerTestSuite) TestGetJournalEntry_NotFound() {
	journalEntryID := uuid.NewString()

	suite.mockService.On("GetJournalEntryByID",
		mock.AnythingOfType("*context.valueCtx"),
		suite.tenantID, journalEntryID, suite.userID,
	).Return(nil, nil).Once()

	w := suite.doRequest(http.MethodGet, fmt.Sprintf("/api/v1/tenants/%s/journal-entries/%s", suite.tenantID, journalEntryID), nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Contains(w.Body.String(), "Journal entry not found")
}

func (suite *JournalEntryHandlerTestSuite) TestListJournalEntries_PassesDateRange() {
	expected := &dto.ListJournalEntriesResponse{
		Entries:    []dto.JournalEntryResponse{},
		TotalCount: 0,
		Page:       1,
		Size:       20,
	}

	suite.mockService.On("ListJournalEntries",
		mock.AnythingOfType("*context.valueCtx"),
		suite.tenantID,
		suite.userID,
		mock.MatchedBy(func(p dto.ListJournalEntriesParams) bool {
			return p.StartDate.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) &&
				p.EndDate.Equal(time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC))
		}),
	).Return(expected, nil).Once()

	url := fmt.Sprintf("/api/v1/tenants/%s/journal-entries?startDate=2026-01-01&endDate=2026-01-31", suite.tenantID)
	w := suite.doRequest(http.MethodGet, url, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *JournalEntryHandlerTestSuite) TestListJournalEntries_MissingDatesRejected() {
	url := fmt.Sprintf("/api/v1/tenants/%s/journal-entries", suite.tenantID)
	w := suite.doRequest(http.MethodGet, url, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ListJournalEntries", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalEntryHandlerTestSuite) TestPostJournalEntry_Conflict() {
	journalEntryID := uuid.NewString()

	suite.mockService.On("PostJournalEntry",
		mock.AnythingOfType("*context.valueCtx"),
		suite.tenantID, journalEntryID,
		mock.AnythingOfType("dto.PostJournalEntryRequest"),
		suite.userID,
	).Return(nil, apperrors.NewConflictError("only pending entries can be posted")).Once()

	url := fmt.Sprintf("/api/v1/tenants/%s/journal-entries/%s/post", suite.tenantID, journalEntryID)
	w := suite.doRequest(http.MethodPost, url, nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(w.Body.String(), "only pending entries")
}

func (suite *JournalEntryHandlerTestSuite) TestPeekNextEntryNumber() {
	suite.mockService.On("PeekNextEntryNumber",
		mock.AnythingOfType("*context.valueCtx"),
		suite.tenantID, suite.userID,
	).Return(int64(42), nil).Once()

	url := fmt.Sprintf("/api/v1/tenants/%s/journal-entries/next-number", suite.tenantID)
	w := suite.doRequest(http.MethodGet, url, nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.NextEntryNumberResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(42), resp.NextEntryID)
}

func (suite *JournalEntryHandlerTestSuite) TestMissingTokenIsUnauthorized() {
	url := fmt.Sprintf("/api/v1/tenants/%s/journal-entries/next-number", suite.tenantID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "PeekNextEntryNumber", mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestJournalEntryHandler(t *testing.T) {
	suite.Run(t, new(JournalEntryHandlerTestSuite))
}
