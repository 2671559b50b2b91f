package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/swiftparcel/parcel_broker_app/internal/apperrors"
	"github.com/swiftparcel/parcel_broker_app/internal/core/domain"
	portssvc "github.com/swiftparcel/parcel_broker_app/internal/core/ports/services"
	"github.com/swiftparcel/parcel_broker_app/internal/core/services"
	"github.com/swiftparcel/parcel_broker_app/internal/dto"
	"github.com/swiftparcel/parcel_broker_app/internal/utils"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo    *MockUserRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewUserService(suite.mockUserRepo, suite.mockAccountRepo)
}

func (suite *UserServiceTestSuite) TestRegister_CreatesPersonalAccount() {
	ctx := context.Background()

	var savedAccountID string
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		savedAccountID = a.AccountID
		return a.OwnerType == domain.OwnerUser &&
			a.Balance.IsZero() &&
			a.CreditLimit.IsZero() &&
			a.CurrencyCode == "EUR"
	})).Return(nil).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Role == domain.RoleClient &&
			u.Email == "jo@example.com" &&
			u.AccountID == savedAccountID &&
			u.PasswordHash != "" &&
			u.PasswordHash != "hunter22"
	})).Return(nil).Once()

	user, err := suite.service.Register(ctx, dto.RegisterUserRequest{
		Name:     "Jo",
		Email:    "jo@example.com",
		Password: "hunter22",
	})

	suite.Require().NoError(err)
	suite.Equal(domain.RoleClient, user.Role)
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticate_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("hunter22")
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Email: "jo@example.com", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByEmail", ctx, user.Email).Return(user, nil).Once()

	got, err := suite.service.Authenticate(ctx, user.Email, "hunter22")

	suite.Require().NoError(err)
	suite.Equal(user.UserID, got.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticate_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("hunter22")
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Email: "jo@example.com", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByEmail", ctx, user.Email).Return(user, nil).Once()

	_, err = suite.service.Authenticate(ctx, user.Email, "letmein")

	suite.Require().ErrorIs(err, services.ErrInvalidCredentials)
}

func (suite *UserServiceTestSuite) TestAuthenticate_UnknownEmailHidesExistence() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ghost@example.com").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Authenticate(ctx, "ghost@example.com", "whatever")

	suite.Require().ErrorIs(err, services.ErrInvalidCredentials)
}

func (suite *UserServiceTestSuite) TestRequireRole_AllowsMatchingRole() {
	ctx := context.Background()
	user := &domain.User{UserID: uuid.NewString(), Role: domain.RoleStaff}

	suite.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()

	got, err := suite.service.RequireRole(ctx, user.UserID, domain.RoleStaff, domain.RoleAdmin)

	suite.Require().NoError(err)
	suite.Equal(user.UserID, got.UserID)
}

func (suite *UserServiceTestSuite) TestRequireRole_RejectsOtherRoles() {
	ctx := context.Background()
	user := &domain.User{UserID: uuid.NewString(), Role: domain.RoleClient}

	suite.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()

	_, err := suite.service.RequireRole(ctx, user.UserID, domain.RoleStaff, domain.RoleAdmin)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
