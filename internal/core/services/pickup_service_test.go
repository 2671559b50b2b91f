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
	"github.com/swiftparcel/parcel_broker_app/internal/dto"
)

type PickupServiceTestSuite struct {
	suite.Suite
	mockPickupRepo *MockPickupRepository
	mockUserSvc    *MockUserSvc
	mockBillingSvc *MockBillingSvc
	service        portssvc.PickupSvcFacade
}

func (suite *PickupServiceTestSuite) SetupTest() {
	suite.mockPickupRepo = new(MockPickupRepository)
	suite.mockUserSvc = new(MockUserSvc)
	suite.mockBillingSvc = new(MockBillingSvc)
	suite.service = services.NewPickupService(suite.mockPickupRepo, suite.mockUserSvc, suite.mockBillingSvc)
}

func (suite *PickupServiceTestSuite) pickupInStatus(status domain.PickupRequestStatus) *domain.PickupRequest {
	return &domain.PickupRequest{
		RequestID:   uuid.NewString(),
		ClientID:    uuid.NewString(),
		ServiceCode: "N",
		Status:      status,
		Parcels: []domain.RequestedParcel{{
			ParcelID:    uuid.NewString(),
			Description: "Books",
			WeightKg:    decimal.NewFromInt(2),
			Quantity:    1,
		}},
	}
}

func (suite *PickupServiceTestSuite) TestCreatePickup_StartsRequested() {
	ctx := context.Background()
	clientID := uuid.NewString()

	suite.mockPickupRepo.On("SavePickup", ctx, mock.MatchedBy(func(r domain.PickupRequest) bool {
		return r.Status == domain.PickupRequested &&
			r.ClientID == clientID &&
			len(r.Parcels) == 1 &&
			r.Parcels[0].Quantity == 1
	})).Return(nil).Once()

	request, err := suite.service.CreatePickup(ctx, dto.CreatePickupRequest{
		ServiceCode: "N",
		Parcels: []dto.ParcelRequest{{
			Description: "Books",
			WeightKg:    decimal.NewFromInt(2),
		}},
	}, clientID)

	suite.Require().NoError(err)
	suite.Equal(domain.PickupRequested, request.Status)
	suite.mockPickupRepo.AssertExpectations(suite.T())
}

func (suite *PickupServiceTestSuite) TestGetPickup_OtherClientForbidden() {
	ctx := context.Background()
	requesterID := uuid.NewString()
	request := suite.pickupInStatus(domain.PickupRequested)

	suite.mockUserSvc.On("GetUserByID", ctx, requesterID).
		Return(&domain.User{UserID: requesterID, Role: domain.RoleClient}, nil).Once()
	suite.mockPickupRepo.On("FindPickupByID", ctx, request.RequestID).Return(request, nil).Once()

	_, err := suite.service.GetPickup(ctx, request.RequestID, requesterID)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *PickupServiceTestSuite) TestUpdatePickup_OnlyWhileRequested() {
	ctx := context.Background()
	request := suite.pickupInStatus(domain.PickupReadyForPickup)

	suite.mockPickupRepo.On("FindPickupByID", ctx, request.RequestID).Return(request, nil).Once()

	_, err := suite.service.UpdatePickup(ctx, request.RequestID, dto.UpdatePickupRequest{}, request.ClientID)

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.mockPickupRepo.AssertNotCalled(suite.T(), "UpdatePickup", mock.Anything, mock.Anything)
}

func (suite *PickupServiceTestSuite) TestApprove_PromotesToShipment() {
	ctx := context.Background()
	staffID := uuid.NewString()
	request := suite.pickupInStatus(domain.PickupReadyForPickup)
	client := &domain.User{UserID: request.ClientID, Role: domain.RoleClient, AccountID: uuid.NewString()}
	account := &domain.Account{AccountID: client.AccountID}
	costPrice := decimal.NewFromInt(10)
	price := decimal.NewFromInt(12)

	suite.mockUserSvc.On("RequireRole", ctx, staffID, mock.Anything).
		Return(&domain.User{UserID: staffID, Role: domain.RoleStaff}, nil).Once()
	suite.mockPickupRepo.On("FindPickupByID", ctx, request.RequestID).Return(request, nil).Once()
	suite.mockUserSvc.On("GetUserByID", ctx, request.ClientID).Return(client, nil).Once()
	suite.mockBillingSvc.On("PriceFor", ctx, client, costPrice).Return(price, account, nil).Once()
	suite.mockPickupRepo.On("PromoteToShipment", ctx, *request, mock.MatchedBy(func(s domain.Shipment) bool {
		return s.Status == domain.StatusReadyForPickup &&
			s.PickupRequestID == request.RequestID &&
			s.AccountID == account.AccountID &&
			s.UserID == request.ClientID &&
			s.Price.Equal(price) &&
			s.CostPrice.Equal(costPrice) &&
			len(s.Items) == 1
	})).Return(nil).Once()

	shipment, err := suite.service.Approve(ctx, request.RequestID, dto.ApprovePickupRequest{CostPrice: costPrice}, staffID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusReadyForPickup, shipment.Status)
	suite.NotEmpty(shipment.TrackingNumber)
	suite.Require().Len(shipment.History, 1)
	suite.Equal("Pickup request approved", shipment.History[0].Description)
	suite.mockPickupRepo.AssertExpectations(suite.T())
}

func (suite *PickupServiceTestSuite) TestApprove_RejectedRequestConflicts() {
	ctx := context.Background()
	staffID := uuid.NewString()
	request := suite.pickupInStatus(domain.PickupRejected)

	suite.mockUserSvc.On("RequireRole", ctx, staffID, mock.Anything).
		Return(&domain.User{UserID: staffID, Role: domain.RoleStaff}, nil).Once()
	suite.mockPickupRepo.On("FindPickupByID", ctx, request.RequestID).Return(request, nil).Once()

	_, err := suite.service.Approve(ctx, request.RequestID, dto.ApprovePickupRequest{CostPrice: decimal.NewFromInt(10)}, staffID)

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.mockPickupRepo.AssertNotCalled(suite.T(), "PromoteToShipment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PickupServiceTestSuite) TestMarkReady_TransitionsFromRequestedOnly() {
	ctx := context.Background()
	request := suite.pickupInStatus(domain.PickupRequested)
	ready := *request
	ready.Status = domain.PickupReadyForPickup

	suite.mockPickupRepo.On("FindPickupByID", ctx, request.RequestID).Return(request, nil).Once()
	suite.mockPickupRepo.On("UpdatePickupStatus", ctx, request.RequestID,
		[]domain.PickupRequestStatus{domain.PickupRequested},
		domain.PickupReadyForPickup, "", request.ClientID, mock.Anything).Return(nil).Once()
	suite.mockPickupRepo.On("FindPickupByID", ctx, request.RequestID).Return(&ready, nil).Once()

	got, err := suite.service.MarkReady(ctx, request.RequestID, request.ClientID)

	suite.Require().NoError(err)
	suite.Equal(domain.PickupReadyForPickup, got.Status)
	suite.mockPickupRepo.AssertExpectations(suite.T())
}

func (suite *PickupServiceTestSuite) TestReject_RequiresReason() {
	ctx := context.Background()
	staffID := uuid.NewString()

	suite.mockUserSvc.On("RequireRole", ctx, staffID, mock.Anything).
		Return(&domain.User{UserID: staffID, Role: domain.RoleStaff}, nil).Once()

	_, err := suite.service.Reject(ctx, uuid.NewString(), "", staffID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockPickupRepo.AssertNotCalled(suite.T(), "UpdatePickupStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PickupServiceTestSuite) TestDeletePickup_OwnerOnly() {
	ctx := context.Background()
	request := suite.pickupInStatus(domain.PickupRequested)

	suite.mockPickupRepo.On("FindPickupByID", ctx, request.RequestID).Return(request, nil).Once()

	err := suite.service.DeletePickup(ctx, request.RequestID, uuid.NewString())

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockPickupRepo.AssertNotCalled(suite.T(), "DeletePickup", mock.Anything, mock.Anything)
}

func TestPickupServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PickupServiceTestSuite))
}
