package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/swiftparcel/parcel_broker_app/internal/apperrors"
	"github.com/swiftparcel/parcel_broker_app/internal/core/domain"
	portsrepo "github.com/swiftparcel/parcel_broker_app/internal/core/ports/repositories"
	portssvc "github.com/swiftparcel/parcel_broker_app/internal/core/ports/services"
	"github.com/swiftparcel/parcel_broker_app/internal/dto"
	"github.com/swiftparcel/parcel_broker_app/internal/middleware"
	"github.com/swiftparcel/parcel_broker_app/internal/utils"
)

// pickupService models the pre-shipment request workflow, ending in the
// atomic promotion of an approved request into a live shipment.
type pickupService struct {
	pickupRepo portsrepo.PickupRepositoryFacade
	userSvc    portssvc.UserSvcFacade
	billingSvc portssvc.BillingSvcFacade
}

// NewPickupService creates a new PickupService.
func NewPickupService(pickupRepo portsrepo.PickupRepositoryFacade, userSvc portssvc.UserSvcFacade, billingSvc portssvc.BillingSvcFacade) portssvc.PickupSvcFacade {
	return &pickupService{
		pickupRepo: pickupRepo,
		userSvc:    userSvc,
		billingSvc: billingSvc,
	}
}

// Ensure pickupService implements the portssvc.PickupSvcFacade interface
var _ portssvc.PickupSvcFacade = (*pickupService)(nil)

// CreatePickup creates a new request in REQUESTED for the client.
func (s *pickupService) CreatePickup(ctx context.Context, req dto.CreatePickupRequest, clientUserID string) (*domain.PickupRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	requestID := uuid.NewString()

	parcels := make([]domain.RequestedParcel, len(req.Parcels))
	for i, p := range req.Parcels {
		quantity := p.Quantity
		if quantity == 0 {
			quantity = 1
		}
		parcels[i] = domain.RequestedParcel{
			ParcelID:    uuid.NewString(),
			Description: p.Description,
			WeightKg:    p.WeightKg,
			LengthCm:    p.LengthCm,
			WidthCm:     p.WidthCm,
			HeightCm:    p.HeightCm,
			Quantity:    quantity,
		}
	}

	request := domain.PickupRequest{
		RequestID:   requestID,
		ClientID:    clientUserID,
		Sender:      req.Sender.ToDomainAddress(),
		Receiver:    req.Receiver.ToDomainAddress(),
		Parcels:     parcels,
		ServiceCode: req.ServiceCode,
		Status:      domain.PickupRequested,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     clientUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: clientUserID,
		},
	}

	if err := s.pickupRepo.SavePickup(ctx, request); err != nil {
		logger.Error("Failed to save pickup request", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Pickup request created", slog.String("request_id", requestID), slog.String("client_id", clientUserID))
	return &request, nil
}

// GetPickup retrieves a request visible to the requesting user: staff see
// everything, clients only their own.
func (s *pickupService) GetPickup(ctx context.Context, requestID string, requestingUserID string) (*domain.PickupRequest, error) {
	requester, err := s.userSvc.GetUserByID(ctx, requestingUserID)
	if err != nil {
		return nil, err
	}

	request, err := s.pickupRepo.FindPickupByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !requester.IsStaff() && request.ClientID != requestingUserID {
		return nil, apperrors.ErrForbidden
	}
	return request, nil
}

// ListPickups returns a page of requests: all for staff, own otherwise.
func (s *pickupService) ListPickups(ctx context.Context, requestingUserID string, params dto.ListPickupsParams) (*dto.ListPickupsResponse, error) {
	requester, err := s.userSvc.GetUserByID(ctx, requestingUserID)
	if err != nil {
		return nil, err
	}

	var requests []domain.PickupRequest
	var next *string
	if requester.IsStaff() {
		requests, next, err = s.pickupRepo.ListAllPickups(ctx, params.Limit, params.NextToken)
	} else {
		requests, next, err = s.pickupRepo.ListPickupsByClient(ctx, requestingUserID, params.Limit, params.NextToken)
	}
	if err != nil {
		return nil, err
	}

	res := make([]dto.PickupResponse, len(requests))
	for i := range requests {
		res[i] = dto.ToPickupResponse(&requests[i])
	}
	return &dto.ListPickupsResponse{Requests: res, NextToken: next}, nil
}

// UpdatePickup edits a request; owning client only, REQUESTED only. Omitted
// fields keep their current value, parcels are replaced wholesale when given.
func (s *pickupService) UpdatePickup(ctx context.Context, requestID string, req dto.UpdatePickupRequest, requestingUserID string) (*domain.PickupRequest, error) {
	request, err := s.pickupRepo.FindPickupByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.ClientID != requestingUserID {
		return nil, apperrors.ErrForbidden
	}
	if !request.IsEditable() {
		return nil, fmt.Errorf("%w: pickup request in status %s is not editable", apperrors.ErrConflict, request.Status)
	}

	if req.Sender != nil {
		request.Sender = req.Sender.ToDomainAddress()
	}
	if req.Receiver != nil {
		request.Receiver = req.Receiver.ToDomainAddress()
	}
	if req.ServiceCode != nil {
		request.ServiceCode = *req.ServiceCode
	}
	if req.Parcels != nil {
		parcels := make([]domain.RequestedParcel, len(req.Parcels))
		for i, p := range req.Parcels {
			quantity := p.Quantity
			if quantity == 0 {
				quantity = 1
			}
			parcels[i] = domain.RequestedParcel{
				ParcelID:    uuid.NewString(),
				Description: p.Description,
				WeightKg:    p.WeightKg,
				LengthCm:    p.LengthCm,
				WidthCm:     p.WidthCm,
				HeightCm:    p.HeightCm,
				Quantity:    quantity,
			}
		}
		request.Parcels = parcels
	}

	now := time.Now().UTC()
	request.LastUpdatedAt = now
	request.LastUpdatedBy = requestingUserID

	if err := s.pickupRepo.UpdatePickup(ctx, *request); err != nil {
		return nil, err
	}
	return request, nil
}

// MarkReady moves an owned request from REQUESTED to READY_FOR_PICKUP.
func (s *pickupService) MarkReady(ctx context.Context, requestID string, requestingUserID string) (*domain.PickupRequest, error) {
	request, err := s.pickupRepo.FindPickupByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.ClientID != requestingUserID {
		return nil, apperrors.ErrForbidden
	}

	now := time.Now().UTC()
	err = s.pickupRepo.UpdatePickupStatus(ctx, requestID,
		[]domain.PickupRequestStatus{domain.PickupRequested},
		domain.PickupReadyForPickup, "", requestingUserID, now)
	if err != nil {
		return nil, err
	}

	return s.pickupRepo.FindPickupByID(ctx, requestID)
}

// Approve promotes the request into a shipment. The new shipment starts in
// ready_for_pickup carrying the request's addresses and parcels; its price is
// the staff-entered carrier cost run through the client's billing markup.
// The request flip and the shipment insert are one transaction: either the
// request ends APPROVED with its back-reference and the shipment exists, or
// neither happened.
func (s *pickupService) Approve(ctx context.Context, requestID string, req dto.ApprovePickupRequest, requestingUserID string) (*domain.Shipment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	staff, err := s.userSvc.RequireRole(ctx, requestingUserID, domain.RoleStaff, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	request, err := s.pickupRepo.FindPickupByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !request.IsApprovable() {
		return nil, fmt.Errorf("%w: pickup request in status %s cannot be approved", apperrors.ErrConflict, request.Status)
	}

	client, err := s.userSvc.GetUserByID(ctx, request.ClientID)
	if err != nil {
		return nil, err
	}
	price, account, err := s.billingSvc.PriceFor(ctx, client, req.CostPrice)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	trackingNumber, err := utils.GenerateTrackingNumber()
	if err != nil {
		return nil, fmt.Errorf("failed to generate tracking number: %w", err)
	}

	items := make([]domain.ShipmentItem, len(request.Parcels))
	for i, p := range request.Parcels {
		items[i] = domain.ShipmentItem{
			ItemID:      uuid.NewString(),
			Description: p.Description,
			WeightKg:    p.WeightKg,
			LengthCm:    p.LengthCm,
			WidthCm:     p.WidthCm,
			HeightCm:    p.HeightCm,
			Quantity:    p.Quantity,
		}
	}

	shipment := domain.Shipment{
		TrackingNumber:  trackingNumber,
		AccountID:       account.AccountID,
		UserID:          request.ClientID,
		Origin:          request.Sender,
		Destination:     request.Receiver,
		Items:           items,
		ServiceCode:     request.ServiceCode,
		Status:          domain.StatusReadyForPickup,
		Price:           price,
		CostPrice:       req.CostPrice,
		PickupRequestID: request.RequestID,
		History: []domain.ShipmentEvent{{
			EventID:     uuid.NewString(),
			Status:      domain.StatusReadyForPickup,
			Description: "Pickup request approved",
			Timestamp:   now,
			RecordedBy:  staff.UserID,
		}},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     staff.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: staff.UserID,
		},
	}

	if err := s.pickupRepo.PromoteToShipment(ctx, *request, shipment); err != nil {
		logger.Error("Failed to promote pickup request", slog.String("error", err.Error()), slog.String("request_id", requestID))
		return nil, err
	}

	logger.Info("Pickup request promoted to shipment",
		slog.String("request_id", requestID),
		slog.String("tracking_number", trackingNumber),
		slog.String("account_id", account.AccountID))
	return &shipment, nil
}

// Reject terminates the request with a mandatory reason.
func (s *pickupService) Reject(ctx context.Context, requestID string, reason string, requestingUserID string) (*domain.PickupRequest, error) {
	if _, err := s.userSvc.RequireRole(ctx, requestingUserID, domain.RoleStaff, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	err := s.pickupRepo.UpdatePickupStatus(ctx, requestID,
		[]domain.PickupRequestStatus{domain.PickupRequested, domain.PickupReadyForPickup},
		domain.PickupRejected, reason, requestingUserID, now)
	if err != nil {
		return nil, err
	}

	return s.pickupRepo.FindPickupByID(ctx, requestID)
}

// DeletePickup removes an owned request while still REQUESTED.
func (s *pickupService) DeletePickup(ctx context.Context, requestID string, requestingUserID string) error {
	request, err := s.pickupRepo.FindPickupByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.ClientID != requestingUserID {
		return apperrors.ErrForbidden
	}
	return s.pickupRepo.DeletePickup(ctx, requestID)
}
