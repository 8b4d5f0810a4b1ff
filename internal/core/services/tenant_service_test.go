package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/quillbooks/quillbooks_app/internal/apperrors"
	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	portsrepo "github.com/quillbooks/quillbooks_app/internal/core/ports/repositories"
	portssvc "github.com/quillbooks/quillbooks_app/internal/core/ports/services"
	"github.com/quillbooks/quillbooks_app/internal/core/services"
)

// --- Mock TenantRepository ---
type MockTenantRepository struct {
	mock.Mock
}

var _ portsrepo.TenantRepositoryFacade = (*MockTenantRepository)(nil)

func (m *MockTenantRepository) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockTenantRepository) ListTenantsByUser(ctx context.Context, userID string) ([]domain.Tenant, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindUserTenantRole(ctx context.Context, userID, tenantID string) (domain.UserTenantRole, error) {
	args := m.Called(ctx, userID, tenantID)
	return args.Get(0).(domain.UserTenantRole), args.Error(1)
}

func (m *MockTenantRepository) SaveTenant(ctx context.Context, tenant domain.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) UpdateTenant(ctx context.Context, tenant domain.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) AddUserToTenant(ctx context.Context, membership domain.UserTenant) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

// --- Mock UserReader ---
type MockUserReader struct {
	mock.Mock
}

var _ portssvc.UserReaderSvc = (*MockUserReader)(nil)

func (m *MockUserReader) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserReader) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Test Suite Setup ---
type TenantServiceTestSuite struct {
	suite.Suite
	mockTenantRepo *MockTenantRepository
	mockUserSvc    *MockUserReader
	tenantSvc      portssvc.TenantSvcFacade
	tenantID       string
	userID         string
}

func (suite *TenantServiceTestSuite) SetupTest() {
	suite.mockTenantRepo = new(MockTenantRepository)
	suite.mockUserSvc = new(MockUserReader)
	suite.tenantSvc = services.NewTenantService(suite.mockTenantRepo, suite.mockUserSvc)
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *TenantServiceTestSuite) TestAuthorizeUserAction_RoleHierarchy() {
	ctx := context.Background()
	tests := []struct {
		name         string
		userRole     domain.UserTenantRole
		requiredRole domain.UserTenantRole
		allowed      bool
	}{
		{"admin can do admin actions", domain.RoleAdmin, domain.RoleAdmin, true},
		{"admin can do member actions", domain.RoleAdmin, domain.RoleMember, true},
		{"admin can do read-only actions", domain.RoleAdmin, domain.RoleReadOnly, true},
		{"member cannot do admin actions", domain.RoleMember, domain.RoleAdmin, false},
		{"member can do member actions", domain.RoleMember, domain.RoleMember, true},
		{"member can do read-only actions", domain.RoleMember, domain.RoleReadOnly, true},
		{"read-only cannot do member actions", domain.RoleReadOnly, domain.RoleMember, false},
		{"read-only can do read-only actions", domain.RoleReadOnly, domain.RoleReadOnly, true},
		{"removed user is denied everything", domain.RoleRemoved, domain.RoleReadOnly, false},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.mockTenantRepo.On("FindUserTenantRole", ctx, suite.userID, suite.tenantID).Return(tt.userRole, nil).Once()

			err := suite.tenantSvc.AuthorizeUserAction(ctx, suite.userID, suite.tenantID, tt.requiredRole)

			if tt.allowed {
				suite.NoError(err)
			} else {
				suite.ErrorIs(err, apperrors.ErrForbidden)
			}
		})
	}
	suite.mockTenantRepo.AssertExpectations(suite.T())
}

func (suite *TenantServiceTestSuite) TestAuthorizeUserAction_NonMemberIsForbidden() {
	ctx := context.Background()
	suite.mockTenantRepo.On("FindUserTenantRole", ctx, suite.userID, suite.tenantID).
		Return(domain.UserTenantRole(""), apperrors.ErrNotFound).Once()

	err := suite.tenantSvc.AuthorizeUserAction(ctx, suite.userID, suite.tenantID, domain.RoleReadOnly)

	suite.ErrorIs(err, apperrors.ErrForbidden, "missing membership must not leak tenant existence")
}

func (suite *TenantServiceTestSuite) TestCreateTenant_CreatorBecomesAdmin() {
	ctx := context.Background()

	suite.mockTenantRepo.On("SaveTenant", ctx, mock.AnythingOfType("domain.Tenant")).Run(func(args mock.Arguments) {
		tenant := args.Get(1).(domain.Tenant)
		suite.Equal("Umbrella LLC", tenant.Name)
		suite.True(tenant.IsActive)
		suite.Equal(suite.userID, tenant.CreatedBy)
	}).Return(nil).Once()
	suite.mockTenantRepo.On("AddUserToTenant", ctx, mock.MatchedBy(func(m domain.UserTenant) bool {
		return m.UserID == suite.userID && m.Role == domain.RoleAdmin
	})).Return(nil).Once()

	tenant, err := suite.tenantSvc.CreateTenant(ctx, "Umbrella LLC", "consulting books", suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(tenant.TenantID)
	suite.mockTenantRepo.AssertExpectations(suite.T())
}

func (suite *TenantServiceTestSuite) TestAddUserToTenant_RequiresAdmin() {
	ctx := context.Background()
	targetUserID := uuid.NewString()

	suite.mockTenantRepo.On("FindUserTenantRole", ctx, suite.userID, suite.tenantID).Return(domain.RoleMember, nil).Once()

	err := suite.tenantSvc.AddUserToTenant(ctx, suite.userID, targetUserID, suite.tenantID, domain.RoleMember)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTenantRepo.AssertNotCalled(suite.T(), "AddUserToTenant", mock.Anything, mock.Anything)
}

func (suite *TenantServiceTestSuite) TestAddUserToTenant_UnknownTargetUser() {
	ctx := context.Background()
	targetUserID := uuid.NewString()

	suite.mockTenantRepo.On("FindUserTenantRole", ctx, suite.userID, suite.tenantID).Return(domain.RoleAdmin, nil).Once()
	suite.mockUserSvc.On("GetUserByID", ctx, targetUserID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.tenantSvc.AddUserToTenant(ctx, suite.userID, targetUserID, suite.tenantID, domain.RoleMember)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTenantRepo.AssertNotCalled(suite.T(), "AddUserToTenant", mock.Anything, mock.Anything)
}

func (suite *TenantServiceTestSuite) TestAddUserToTenant_Success() {
	ctx := context.Background()
	targetUserID := uuid.NewString()

	suite.mockTenantRepo.On("FindUserTenantRole", ctx, suite.userID, suite.tenantID).Return(domain.RoleAdmin, nil).Once()
	suite.mockUserSvc.On("GetUserByID", ctx, targetUserID).Return(&domain.User{UserID: targetUserID}, nil).Once()
	suite.mockTenantRepo.On("AddUserToTenant", ctx, mock.MatchedBy(func(m domain.UserTenant) bool {
		return m.UserID == targetUserID && m.TenantID == suite.tenantID && m.Role == domain.RoleReadOnly
	})).Return(nil).Once()

	err := suite.tenantSvc.AddUserToTenant(ctx, suite.userID, targetUserID, suite.tenantID, domain.RoleReadOnly)

	suite.Require().NoError(err)
	suite.mockTenantRepo.AssertExpectations(suite.T())
}

func TestTenantServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TenantServiceTestSuite))
}
