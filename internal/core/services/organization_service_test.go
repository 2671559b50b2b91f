package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/swiftparcel/parcel_broker_app/internal/apperrors"
	"github.com/swiftparcel/parcel_broker_app/internal/core/domain"
	portssvc "github.com/swiftparcel/parcel_broker_app/internal/core/ports/services"
	"github.com/swiftparcel/parcel_broker_app/internal/core/services"
	"github.com/swiftparcel/parcel_broker_app/internal/dto"
)

type OrganizationServiceTestSuite struct {
	suite.Suite
	mockOrgRepo     *MockOrganizationRepository
	mockAccountRepo *MockAccountRepository
	mockUserRepo    *MockUserRepository
	mockUserSvc     *MockUserSvc
	service         portssvc.OrganizationSvcFacade
}

func (suite *OrganizationServiceTestSuite) SetupTest() {
	suite.mockOrgRepo = new(MockOrganizationRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockUserSvc = new(MockUserSvc)
	suite.service = services.NewOrganizationService(suite.mockOrgRepo, suite.mockAccountRepo, suite.mockUserRepo, suite.mockUserSvc)
}

func (suite *OrganizationServiceTestSuite) expectStaff(userID string) {
	suite.mockUserSvc.On("RequireRole", mock.Anything, userID, mock.Anything).
		Return(&domain.User{UserID: userID, Role: domain.RoleStaff}, nil).Once()
}

func (suite *OrganizationServiceTestSuite) TestCreateOrganization_CreatesPooledAccount() {
	ctx := context.Background()
	staffID := uuid.NewString()
	suite.expectStaff(staffID)

	var savedAccountID string
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		savedAccountID = a.AccountID
		return a.OwnerType == domain.OwnerOrganization &&
			a.Balance.IsZero() &&
			a.IsActive
	})).Return(nil).Once()
	suite.mockOrgRepo.On("SaveOrganization", ctx, mock.MatchedBy(func(o domain.Organization) bool {
		return o.Name == "Acme Logistics" && o.AccountID == savedAccountID
	})).Return(nil).Once()

	org, err := suite.service.CreateOrganization(ctx, dto.CreateOrganizationRequest{
		Name:         "Acme Logistics",
		CurrencyCode: "EUR",
		CreditLimit:  decimal.NewFromInt(1000),
	}, staffID)

	suite.Require().NoError(err)
	suite.Equal("Acme Logistics", org.Name)
	suite.NotEmpty(org.AccountID)
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockOrgRepo.AssertExpectations(suite.T())
}

func (suite *OrganizationServiceTestSuite) TestAddMember_Success() {
	ctx := context.Background()
	staffID := uuid.NewString()
	orgID := uuid.NewString()
	userID := uuid.NewString()
	suite.expectStaff(staffID)

	suite.mockOrgRepo.On("FindOrganizationByID", ctx, orgID).
		Return(&domain.Organization{OrganizationID: orgID}, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, userID).
		Return(&domain.User{UserID: userID, Role: domain.RoleClient}, nil).Once()
	suite.mockUserRepo.On("SetOrganization", ctx, userID, mock.MatchedBy(func(id *string) bool {
		return id != nil && *id == orgID
	}), staffID, mock.Anything).Return(nil).Once()

	err := suite.service.AddMember(ctx, orgID, userID, staffID)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *OrganizationServiceTestSuite) TestAddMember_SameOrganizationIsNoOp() {
	ctx := context.Background()
	staffID := uuid.NewString()
	orgID := uuid.NewString()
	userID := uuid.NewString()
	suite.expectStaff(staffID)

	suite.mockOrgRepo.On("FindOrganizationByID", ctx, orgID).
		Return(&domain.Organization{OrganizationID: orgID}, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, userID).
		Return(&domain.User{UserID: userID, OrganizationID: &orgID}, nil).Once()

	err := suite.service.AddMember(ctx, orgID, userID, staffID)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SetOrganization", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrganizationServiceTestSuite) TestAddMember_OtherOrganizationRejected() {
	ctx := context.Background()
	staffID := uuid.NewString()
	orgID := uuid.NewString()
	otherOrgID := uuid.NewString()
	userID := uuid.NewString()
	suite.expectStaff(staffID)

	suite.mockOrgRepo.On("FindOrganizationByID", ctx, orgID).
		Return(&domain.Organization{OrganizationID: orgID}, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, userID).
		Return(&domain.User{UserID: userID, OrganizationID: &otherOrgID}, nil).Once()

	err := suite.service.AddMember(ctx, orgID, userID, staffID)

	var memberErr *apperrors.AlreadyMemberError
	suite.Require().ErrorAs(err, &memberErr)
	suite.Equal(otherOrgID, memberErr.OrganizationID)
}

func (suite *OrganizationServiceTestSuite) TestAddMember_ConcurrentAddReportsWinner() {
	ctx := context.Background()
	staffID := uuid.NewString()
	orgID := uuid.NewString()
	winnerOrgID := uuid.NewString()
	userID := uuid.NewString()
	suite.expectStaff(staffID)

	suite.mockOrgRepo.On("FindOrganizationByID", ctx, orgID).
		Return(&domain.Organization{OrganizationID: orgID}, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, userID).
		Return(&domain.User{UserID: userID}, nil).Once()
	suite.mockUserRepo.On("SetOrganization", ctx, userID, mock.Anything, staffID, mock.Anything).
		Return(errors.New("conditional update matched no rows")).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, userID).
		Return(&domain.User{UserID: userID, OrganizationID: &winnerOrgID}, nil).Once()

	err := suite.service.AddMember(ctx, orgID, userID, staffID)

	var memberErr *apperrors.AlreadyMemberError
	suite.Require().ErrorAs(err, &memberErr)
	suite.Equal(winnerOrgID, memberErr.OrganizationID)
}

func (suite *OrganizationServiceTestSuite) TestRemoveMember_Success() {
	ctx := context.Background()
	staffID := uuid.NewString()
	orgID := uuid.NewString()
	userID := uuid.NewString()
	suite.expectStaff(staffID)

	suite.mockUserRepo.On("FindUserByID", ctx, userID).
		Return(&domain.User{UserID: userID, OrganizationID: &orgID}, nil).Once()
	suite.mockUserRepo.On("SetOrganization", ctx, userID, (*string)(nil), staffID, mock.Anything).Return(nil).Once()

	err := suite.service.RemoveMember(ctx, orgID, userID, staffID)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *OrganizationServiceTestSuite) TestRemoveMember_NonMemberNotFound() {
	ctx := context.Background()
	staffID := uuid.NewString()
	orgID := uuid.NewString()
	userID := uuid.NewString()
	suite.expectStaff(staffID)

	suite.mockUserRepo.On("FindUserByID", ctx, userID).
		Return(&domain.User{UserID: userID}, nil).Once()

	err := suite.service.RemoveMember(ctx, orgID, userID, staffID)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SetOrganization", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrganizationServiceTestSuite) TestGetOrganization_NonMemberForbidden() {
	ctx := context.Background()
	orgID := uuid.NewString()
	requesterID := uuid.NewString()

	suite.mockUserSvc.On("GetUserByID", ctx, requesterID).
		Return(&domain.User{UserID: requesterID, Role: domain.RoleClient}, nil).Once()

	_, err := suite.service.GetOrganization(ctx, orgID, requesterID)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockOrgRepo.AssertNotCalled(suite.T(), "FindOrganizationByID", mock.Anything, mock.Anything)
}

func TestOrganizationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrganizationServiceTestSuite))
}
