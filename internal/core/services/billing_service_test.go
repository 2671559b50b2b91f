package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/swiftparcel/parcel_broker_app/internal/apperrors"
	"github.com/swiftparcel/parcel_broker_app/internal/core/domain"
	portssvc "github.com/swiftparcel/parcel_broker_app/internal/core/ports/services"
	"github.com/swiftparcel/parcel_broker_app/internal/core/services"
)

type BillingServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockUserRepo    *MockUserRepository
	mockOrgRepo     *MockOrganizationRepository
	service         portssvc.BillingSvcFacade
}

func (suite *BillingServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockOrgRepo = new(MockOrganizationRepository)
	suite.service = services.NewBillingService(suite.mockAccountRepo, suite.mockUserRepo, suite.mockOrgRepo)
}

func (suite *BillingServiceTestSuite) TestResolveBillingAccount_SoloUserBillsOwnAccount() {
	ctx := context.Background()
	user := &domain.User{UserID: uuid.NewString(), AccountID: uuid.NewString()}

	suite.mockAccountRepo.On("FindAccountByID", ctx, user.AccountID).
		Return(&domain.Account{AccountID: user.AccountID}, nil).Once()

	account, err := suite.service.ResolveBillingAccount(ctx, user)

	suite.Require().NoError(err)
	suite.Equal(user.AccountID, account.AccountID)
	suite.mockOrgRepo.AssertNotCalled(suite.T(), "FindOrganizationByID", mock.Anything, mock.Anything)
}

func (suite *BillingServiceTestSuite) TestResolveBillingAccount_MemberBillsOrganizationPool() {
	ctx := context.Background()
	orgID := uuid.NewString()
	orgAccountID := uuid.NewString()
	user := &domain.User{UserID: uuid.NewString(), AccountID: uuid.NewString(), OrganizationID: &orgID}

	suite.mockOrgRepo.On("FindOrganizationByID", ctx, orgID).
		Return(&domain.Organization{OrganizationID: orgID, AccountID: orgAccountID}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, orgAccountID).
		Return(&domain.Account{AccountID: orgAccountID}, nil).Once()

	account, err := suite.service.ResolveBillingAccount(ctx, user)

	suite.Require().NoError(err)
	suite.Equal(orgAccountID, account.AccountID)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, user.AccountID)
}

func (suite *BillingServiceTestSuite) TestAuthorize_CreditLimitExtendsBalance() {
	ctx := context.Background()
	user := &domain.User{UserID: uuid.NewString(), AccountID: uuid.NewString()}

	suite.mockAccountRepo.On("FindAccountByID", ctx, user.AccountID).
		Return(&domain.Account{
			AccountID:   user.AccountID,
			Balance:     decimal.NewFromInt(10),
			CreditLimit: decimal.NewFromInt(20),
		}, nil).Once()

	auth, err := suite.service.Authorize(ctx, user, decimal.NewFromInt(25))

	suite.Require().NoError(err)
	suite.True(auth.Approved)
}

func (suite *BillingServiceTestSuite) TestAuthorize_ShortfallReported() {
	ctx := context.Background()
	user := &domain.User{UserID: uuid.NewString(), AccountID: uuid.NewString()}

	suite.mockAccountRepo.On("FindAccountByID", ctx, user.AccountID).
		Return(&domain.Account{
			AccountID:   user.AccountID,
			Balance:     decimal.NewFromInt(10),
			CreditLimit: decimal.NewFromInt(20),
		}, nil).Once()

	auth, err := suite.service.Authorize(ctx, user, decimal.NewFromInt(45))

	suite.Require().NoError(err)
	suite.False(auth.Approved)
	suite.True(auth.Shortfall.Equal(decimal.NewFromInt(15)))
}

func (suite *BillingServiceTestSuite) TestPriceFor_CombinedMarkupRoundsHalfUp() {
	ctx := context.Background()
	user := &domain.User{UserID: uuid.NewString(), AccountID: uuid.NewString()}
	account := &domain.Account{
		AccountID: user.AccountID,
		Markup: domain.Markup{
			Type:            domain.MarkupCombined,
			PercentageValue: decimal.NewFromFloat(12.5),
			FlatValue:       decimal.NewFromFloat(0.99),
		},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, user.AccountID).Return(account, nil).Once()

	// 10.001 * 1.125 + 0.99 = 12.2411..., rounds to 12.241
	price, got, err := suite.service.PriceFor(ctx, user, decimal.NewFromFloat(10.001))

	suite.Require().NoError(err)
	suite.True(price.Equal(decimal.NewFromFloat(12.241)), "got %s", price.String())
	suite.Equal(account.AccountID, got.AccountID)
}

func (suite *BillingServiceTestSuite) TestUpdateAccountPricing_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	actorID := uuid.NewString()
	markup := domain.Markup{Type: domain.MarkupPercentage, PercentageValue: decimal.NewFromInt(15)}
	creditLimit := decimal.NewFromInt(500)

	suite.mockAccountRepo.On("UpdatePricing", ctx, accountID, markup, creditLimit, actorID, mock.Anything).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).
		Return(&domain.Account{AccountID: accountID, Markup: markup, CreditLimit: creditLimit}, nil).Once()

	account, err := suite.service.UpdateAccountPricing(ctx, accountID, markup, creditLimit, actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.MarkupPercentage, account.Markup.Type)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *BillingServiceTestSuite) TestUpdateAccountPricing_RejectsNegativeCreditLimit() {
	ctx := context.Background()
	markup := domain.Markup{Type: domain.MarkupFlat, FlatValue: decimal.NewFromInt(2)}

	_, err := suite.service.UpdateAccountPricing(ctx, uuid.NewString(), markup, decimal.NewFromInt(-1), uuid.NewString())

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdatePricing", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BillingServiceTestSuite) TestUpdateAccountPricing_RejectsUnknownMarkupType() {
	ctx := context.Background()
	markup := domain.Markup{Type: "DISCOUNT"}

	_, err := suite.service.UpdateAccountPricing(ctx, uuid.NewString(), markup, decimal.Zero, uuid.NewString())

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdatePricing", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBillingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BillingServiceTestSuite))
}
