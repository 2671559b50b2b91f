package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/swiftparcel/parcel_broker_app/internal/apperrors"
	"github.com/swiftparcel/parcel_broker_app/internal/core/domain"
	portsrepo "github.com/swiftparcel/parcel_broker_app/internal/core/ports/repositories"
	portssvc "github.com/swiftparcel/parcel_broker_app/internal/core/ports/services"
	"github.com/swiftparcel/parcel_broker_app/internal/dto"
	"github.com/swiftparcel/parcel_broker_app/internal/middleware"
	"github.com/swiftparcel/parcel_broker_app/internal/utils"
)

// shipmentService drives the shipment lifecycle state machine. Every
// transition locks the shipment row first, consults the transition table and
// appends a history event in the same transaction, so concurrent transitions
// serialize and the history stays consistent with the status column.
type shipmentService struct {
	shipmentRepo portsrepo.ShipmentRepositoryWithTx
	accountRepo  portsrepo.AccountReader
	ledgerSvc    portssvc.LedgerSvcFacade
	billingSvc   portssvc.BillingSvcFacade
	userSvc      portssvc.UserSvcFacade
	carrier      portssvc.CarrierBooker
}

// NewShipmentService creates a new ShipmentService.
func NewShipmentService(shipmentRepo portsrepo.ShipmentRepositoryWithTx, accountRepo portsrepo.AccountReader, ledgerSvc portssvc.LedgerSvcFacade, billingSvc portssvc.BillingSvcFacade, userSvc portssvc.UserSvcFacade, carrier portssvc.CarrierBooker) portssvc.ShipmentSvcFacade {
	return &shipmentService{
		shipmentRepo: shipmentRepo,
		accountRepo:  accountRepo,
		ledgerSvc:    ledgerSvc,
		billingSvc:   billingSvc,
		userSvc:      userSvc,
		carrier:      carrier,
	}
}

// Ensure shipmentService implements the portssvc.ShipmentSvcFacade interface
var _ portssvc.ShipmentSvcFacade = (*shipmentService)(nil)

func buildItems(reqs []dto.ShipmentItemRequest) []domain.ShipmentItem {
	items := make([]domain.ShipmentItem, len(reqs))
	for i, r := range reqs {
		quantity := r.Quantity
		if quantity == 0 {
			quantity = 1
		}
		items[i] = domain.ShipmentItem{
			ItemID:       uuid.NewString(),
			Description:  r.Description,
			WeightKg:     r.WeightKg,
			LengthCm:     r.LengthCm,
			WidthCm:      r.WidthCm,
			HeightCm:     r.HeightCm,
			Quantity:     quantity,
			CustomsValue: r.CustomsValue,
			HSCode:       r.HSCode,
		}
	}
	return items
}

// CreateShipment creates a draft shipment directly (not via a pickup
// request). The shipment bills against the creator's resolved billing
// account.
func (s *shipmentService) CreateShipment(ctx context.Context, req dto.CreateShipmentRequest, creatorUserID string) (*domain.Shipment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.billingSvc.ResolveBillingAccountByUserID(ctx, creatorUserID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	trackingNumber, err := utils.GenerateTrackingNumber()
	if err != nil {
		return nil, fmt.Errorf("failed to generate tracking number: %w", err)
	}

	shipment := domain.Shipment{
		TrackingNumber:            trackingNumber,
		AccountID:                 account.AccountID,
		UserID:                    creatorUserID,
		Origin:                    req.Origin.ToDomainAddress(),
		Destination:               req.Destination.ToDomainAddress(),
		Items:                     buildItems(req.Items),
		ServiceCode:               req.ServiceCode,
		Status:                    domain.StatusDraft,
		CostPrice:                 req.CostPrice,
		AllowPublicLocationUpdate: req.AllowPublicLocationUpdate,
		History: []domain.ShipmentEvent{{
			EventID:     uuid.NewString(),
			Status:      domain.StatusDraft,
			Description: "Shipment created",
			Timestamp:   now,
			RecordedBy:  creatorUserID,
		}},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.shipmentRepo.SaveShipment(ctx, shipment); err != nil {
		logger.Error("Failed to save shipment", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Shipment created", slog.String("tracking_number", trackingNumber), slog.String("account_id", account.AccountID))
	return &shipment, nil
}

// GetShipment retrieves a shipment visible to the requesting user: staff see
// everything, clients what their billing account pays for.
func (s *shipmentService) GetShipment(ctx context.Context, trackingNumber string, requestingUserID string) (*domain.Shipment, error) {
	requester, err := s.userSvc.GetUserByID(ctx, requestingUserID)
	if err != nil {
		return nil, err
	}

	shipment, err := s.shipmentRepo.FindByTracking(ctx, trackingNumber)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeView(ctx, requester, shipment); err != nil {
		return nil, err
	}
	return shipment, nil
}

func (s *shipmentService) authorizeView(ctx context.Context, requester *domain.User, shipment *domain.Shipment) error {
	if requester.IsStaff() || requester.Role == domain.RoleDriver {
		return nil
	}
	if shipment.UserID == requester.UserID {
		return nil
	}
	account, err := s.billingSvc.ResolveBillingAccount(ctx, requester)
	if err != nil {
		return err
	}
	if account.AccountID == shipment.AccountID {
		return nil
	}
	return apperrors.ErrForbidden
}

// GetPublicTracking retrieves the public tracking view, no auth. The handler
// strips prices and billing before responding.
func (s *shipmentService) GetPublicTracking(ctx context.Context, trackingNumber string) (*domain.Shipment, error) {
	return s.shipmentRepo.FindByTracking(ctx, trackingNumber)
}

// ListShipments returns a page of shipments: all of them for staff, the
// requesting user's billing account's otherwise.
func (s *shipmentService) ListShipments(ctx context.Context, requestingUserID string, params dto.ListShipmentsParams) (*dto.ListShipmentsResponse, error) {
	requester, err := s.userSvc.GetUserByID(ctx, requestingUserID)
	if err != nil {
		return nil, err
	}

	var shipments []domain.Shipment
	var next *string
	if requester.IsStaff() {
		shipments, next, err = s.shipmentRepo.ListAll(ctx, params.Limit, params.NextToken)
	} else {
		account, resolveErr := s.billingSvc.ResolveBillingAccount(ctx, requester)
		if resolveErr != nil {
			return nil, resolveErr
		}
		shipments, next, err = s.shipmentRepo.ListByAccount(ctx, account.AccountID, params.Limit, params.NextToken)
	}
	if err != nil {
		return nil, err
	}

	res := make([]dto.ShipmentResponse, len(shipments))
	for i := range shipments {
		res[i] = dto.ToShipmentResponse(&shipments[i])
	}
	return &dto.ListShipmentsResponse{Shipments: res, NextToken: next}, nil
}

// UpdateShipment applies a client edit. Allowed only in client-editable
// states; the edit moves a draft to pending and anything else to updated, so
// staff can see the shipment needs a fresh look before booking.
func (s *shipmentService) UpdateShipment(ctx context.Context, trackingNumber string, req dto.UpdateShipmentRequest, requestingUserID string) (*domain.Shipment, error) {
	requester, err := s.userSvc.GetUserByID(ctx, requestingUserID)
	if err != nil {
		return nil, err
	}

	tx, err := s.shipmentRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.shipmentRepo.Rollback(ctx, tx)

	shipment, err := s.shipmentRepo.FindByTrackingForUpdate(ctx, tx, trackingNumber)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeView(ctx, requester, shipment); err != nil {
		return nil, err
	}
	if !shipment.Status.IsClientEditable() {
		return nil, &apperrors.InvalidTransitionError{From: string(shipment.Status), To: string(domain.StatusUpdated)}
	}

	target := domain.StatusUpdated
	if shipment.Status == domain.StatusDraft {
		target = domain.StatusPending
	}
	newStatus, err := shipment.Status.TransitionTo(target)
	if err != nil {
		return nil, err
	}

	if req.Origin != nil {
		shipment.Origin = req.Origin.ToDomainAddress()
	}
	if req.Destination != nil {
		shipment.Destination = req.Destination.ToDomainAddress()
	}
	if req.ServiceCode != nil {
		shipment.ServiceCode = *req.ServiceCode
	}
	if req.Items != nil {
		shipment.Items = buildItems(req.Items)
	}
	if req.AllowPublicLocationUpdate != nil {
		shipment.AllowPublicLocationUpdate = *req.AllowPublicLocationUpdate
	}

	now := time.Now().UTC()
	shipment.LastUpdatedAt = now
	shipment.LastUpdatedBy = requestingUserID

	if err := s.shipmentRepo.UpdateDetailsInTx(ctx, tx, *shipment); err != nil {
		return nil, err
	}

	event := domain.ShipmentEvent{
		EventID:     uuid.NewString(),
		Status:      newStatus,
		Description: "Shipment details updated",
		Timestamp:   now,
		RecordedBy:  requestingUserID,
	}
	if err := s.applyTransition(ctx, tx, trackingNumber, portsrepo.ShipmentStatusUpdate{
		Status:    newStatus,
		UpdatedBy: requestingUserID,
		UpdatedAt: now,
	}, event); err != nil {
		return nil, err
	}

	if err := s.shipmentRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	shipment.Status = newStatus
	shipment.History = append(shipment.History, event)
	return shipment, nil
}

func (s *shipmentService) applyTransition(ctx context.Context, tx pgx.Tx, trackingNumber string, update portsrepo.ShipmentStatusUpdate, event domain.ShipmentEvent) error {
	if err := s.shipmentRepo.ApplyStatusInTx(ctx, tx, trackingNumber, update); err != nil {
		return err
	}
	return s.shipmentRepo.AppendEventInTx(ctx, tx, trackingNumber, event)
}

// UpdateStatus applies an explicit status transition with a history entry.
// Staff or driver only; the transition table decides legality, and an
// illegal move leaves status and history untouched.
func (s *shipmentService) UpdateStatus(ctx context.Context, trackingNumber string, req dto.UpdateStatusRequest, requestingUserID string) (*domain.Shipment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.userSvc.RequireRole(ctx, requestingUserID, domain.RoleStaff, domain.RoleAdmin, domain.RoleDriver)
	if err != nil {
		return nil, err
	}

	target, err := domain.ParseShipmentStatus(req.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, req.Status)
	}

	tx, err := s.shipmentRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.shipmentRepo.Rollback(ctx, tx)

	shipment, err := s.shipmentRepo.FindByTrackingForUpdate(ctx, tx, trackingNumber)
	if err != nil {
		return nil, err
	}

	newStatus, err := shipment.Status.TransitionTo(target)
	if err != nil {
		logger.Warn("Rejected status transition",
			slog.String("tracking_number", trackingNumber),
			slog.String("from", string(shipment.Status)),
			slog.String("to", string(target)))
		return nil, err
	}

	now := time.Now().UTC()
	update := portsrepo.ShipmentStatusUpdate{
		Status:    newStatus,
		UpdatedBy: actor.UserID,
		UpdatedAt: now,
	}
	if req.Location != "" {
		update.CurrentLocation = &req.Location
	}

	event := domain.ShipmentEvent{
		EventID:     uuid.NewString(),
		Status:      newStatus,
		Description: req.Description,
		Location:    req.Location,
		Timestamp:   now,
		RecordedBy:  actor.UserID,
	}
	if err := s.applyTransition(ctx, tx, trackingNumber, update, event); err != nil {
		return nil, err
	}

	if err := s.shipmentRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Shipment status updated",
		slog.String("tracking_number", trackingNumber),
		slog.String("from", string(shipment.Status)),
		slog.String("to", string(newStatus)))

	shipment.Status = newStatus
	if update.CurrentLocation != nil {
		shipment.CurrentLocation = *update.CurrentLocation
	}
	shipment.History = append(shipment.History, event)
	return shipment, nil
}

// ConfirmPickup is the driver scan: ready_for_pickup -> picked_up. A repeat
// scan of an already picked up shipment succeeds without writing anything,
// so flaky handheld retries do not surface errors to drivers.
func (s *shipmentService) ConfirmPickup(ctx context.Context, trackingNumber string, location string, requestingUserID string) (*domain.Shipment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.userSvc.RequireRole(ctx, requestingUserID, domain.RoleDriver, domain.RoleStaff, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	tx, err := s.shipmentRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.shipmentRepo.Rollback(ctx, tx)

	shipment, err := s.shipmentRepo.FindByTrackingForUpdate(ctx, tx, trackingNumber)
	if err != nil {
		return nil, err
	}

	if shipment.Status == domain.StatusPickedUp {
		// Repeat scan: nothing to do.
		return shipment, nil
	}

	newStatus, err := shipment.Status.TransitionTo(domain.StatusPickedUp)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	update := portsrepo.ShipmentStatusUpdate{
		Status:    newStatus,
		UpdatedBy: actor.UserID,
		UpdatedAt: now,
	}
	if location != "" {
		update.CurrentLocation = &location
	}

	event := domain.ShipmentEvent{
		EventID:     uuid.NewString(),
		Status:      newStatus,
		Description: "Parcel picked up",
		Location:    location,
		Timestamp:   now,
		RecordedBy:  actor.UserID,
	}
	if err := s.applyTransition(ctx, tx, trackingNumber, update, event); err != nil {
		return nil, err
	}

	if err := s.shipmentRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Pickup confirmed", slog.String("tracking_number", trackingNumber), slog.String("driver_id", actor.UserID))

	shipment.Status = newStatus
	if location != "" {
		shipment.CurrentLocation = location
	}
	shipment.History = append(shipment.History, event)
	return shipment, nil
}

// Book prices the shipment, debits the billing account and books with the
// external carrier. The debit happens first under the funds guard; if the
// carrier call then fails, a compensating REFUND credit reverses it and the
// shipment stays unbooked. Re-booking a shipment with an outstanding
// (un-refunded) fee skips the debit.
func (s *shipmentService) Book(ctx context.Context, trackingNumber string, req dto.BookShipmentRequest, requestingUserID string) (*domain.Shipment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	staff, err := s.userSvc.RequireRole(ctx, requestingUserID, domain.RoleStaff, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	tx, err := s.shipmentRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.shipmentRepo.Rollback(ctx, tx)

	shipment, err := s.shipmentRepo.FindByTrackingForUpdate(ctx, tx, trackingNumber)
	if err != nil {
		return nil, err
	}
	if !shipment.Status.IsBookable() {
		return nil, &apperrors.InvalidTransitionError{From: string(shipment.Status), To: string(domain.StatusReadyForPickup)}
	}

	costPrice := shipment.CostPrice
	if req.CostPrice != nil {
		costPrice = *req.CostPrice
	}
	if costPrice.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: a positive carrier cost price is required for booking", apperrors.ErrValidation)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, shipment.AccountID)
	if err != nil {
		return nil, err
	}
	price, err := domain.ComputePrice(costPrice, account.Markup)
	if err != nil {
		return nil, err
	}

	// Debit the fee unless an outstanding (un-refunded) fee already covers
	// this shipment.
	var feeEntry *domain.LedgerEntry
	feeDebited := false
	if existing, feeErr := s.ledgerSvc.FindFeeEntry(ctx, account.AccountID, trackingNumber); feeErr == nil {
		logger.Info("Shipment fee already debited, skipping", slog.String("tracking_number", trackingNumber))
		feeEntry = existing
	} else {
		feeEntry, err = s.ledgerSvc.AppendDebitGuarded(ctx, portssvc.AppendEntryParams{
			AccountID:   account.AccountID,
			EntryType:   domain.EntryDebit,
			Category:    domain.CategoryShipmentFee,
			Amount:      price,
			Description: fmt.Sprintf("Shipment fee for %s", trackingNumber),
			Reference:   trackingNumber,
			ActorUserID: staff.UserID,
		})
		if err != nil {
			return nil, err
		}
		feeDebited = true
	}

	shipment.CostPrice = costPrice
	shipment.Price = price

	booking, err := s.carrier.BookShipment(ctx, shipment)
	if err != nil {
		logger.Error("Carrier booking failed",
			slog.String("tracking_number", trackingNumber),
			slog.String("error", err.Error()))

		// Reverse only a fee this call debited. An outstanding fee from a
		// previous successful booking stays charged; the shipment it paid
		// for is still live.
		if feeDebited {
			if _, refundErr := s.ledgerSvc.Append(ctx, portssvc.AppendEntryParams{
				AccountID:   account.AccountID,
				EntryType:   domain.EntryCredit,
				Category:    domain.CategoryRefund,
				Amount:      feeEntry.Amount,
				Description: fmt.Sprintf("Refund: carrier booking failed for %s", trackingNumber),
				Reference:   trackingNumber,
				ActorUserID: staff.UserID,
			}); refundErr != nil {
				logger.Error("Failed to reverse shipment fee",
					slog.String("tracking_number", trackingNumber),
					slog.String("error", refundErr.Error()))
				return nil, fmt.Errorf("carrier booking failed and fee reversal failed: %w", refundErr)
			}
		}
		return nil, fmt.Errorf("carrier booking failed: %w", err)
	}

	newStatus, err := shipment.Status.TransitionTo(domain.StatusReadyForPickup)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	confirmed := true
	update := portsrepo.ShipmentStatusUpdate{
		Status:       newStatus,
		DHLConfirmed: &confirmed,
		Price:        &price,
		UpdatedBy:    staff.UserID,
		UpdatedAt:    now,
	}
	event := domain.ShipmentEvent{
		EventID:     uuid.NewString(),
		Status:      newStatus,
		Description: fmt.Sprintf("Booked with carrier (%s)", booking.CarrierReference),
		Timestamp:   now,
		RecordedBy:  staff.UserID,
	}
	if err := s.applyTransition(ctx, tx, trackingNumber, update, event); err != nil {
		return nil, err
	}

	if err := s.shipmentRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Shipment booked",
		slog.String("tracking_number", trackingNumber),
		slog.String("carrier_reference", booking.CarrierReference),
		slog.String("price", price.String()))

	shipment.Status = newStatus
	shipment.DHLConfirmed = true
	shipment.History = append(shipment.History, event)
	return shipment, nil
}

// Cancel moves a non-terminal shipment to cancelled, refunding any fee still
// outstanding on it. cancelled is terminal and the refund nets against the
// fee, so the refund cannot run twice.
func (s *shipmentService) Cancel(ctx context.Context, trackingNumber string, reason string, requestingUserID string) (*domain.Shipment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	staff, err := s.userSvc.RequireRole(ctx, requestingUserID, domain.RoleStaff, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	tx, err := s.shipmentRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.shipmentRepo.Rollback(ctx, tx)

	shipment, err := s.shipmentRepo.FindByTrackingForUpdate(ctx, tx, trackingNumber)
	if err != nil {
		return nil, err
	}

	newStatus, err := shipment.Status.TransitionTo(domain.StatusCancelled)
	if err != nil {
		return nil, err
	}

	description := "Shipment cancelled"
	if reason != "" {
		description = fmt.Sprintf("Shipment cancelled: %s", reason)
	}

	now := time.Now().UTC()
	event := domain.ShipmentEvent{
		EventID:     uuid.NewString(),
		Status:      newStatus,
		Description: description,
		Timestamp:   now,
		RecordedBy:  staff.UserID,
	}
	if err := s.applyTransition(ctx, tx, trackingNumber, portsrepo.ShipmentStatusUpdate{
		Status:    newStatus,
		UpdatedBy: staff.UserID,
		UpdatedAt: now,
	}, event); err != nil {
		return nil, err
	}

	// Refund the outstanding fee before committing the cancel: a refund
	// failure rolls the cancel back so the whole operation can be retried.
	// FindFeeEntry nets refunds against the fee, so a retry after a refund
	// that did land never refunds twice.
	if feeEntry, feeErr := s.ledgerSvc.FindFeeEntry(ctx, shipment.AccountID, trackingNumber); feeErr == nil {
		if _, refundErr := s.ledgerSvc.Append(ctx, portssvc.AppendEntryParams{
			AccountID:   shipment.AccountID,
			EntryType:   domain.EntryCredit,
			Category:    domain.CategoryRefund,
			Amount:      feeEntry.Amount,
			Description: fmt.Sprintf("Refund for cancelled shipment %s", trackingNumber),
			Reference:   trackingNumber,
			ActorUserID: staff.UserID,
		}); refundErr != nil {
			logger.Error("Failed to refund fee for cancelled shipment",
				slog.String("tracking_number", trackingNumber),
				slog.String("error", refundErr.Error()))
			return nil, refundErr
		}
	}

	if err := s.shipmentRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Shipment cancelled", slog.String("tracking_number", trackingNumber))

	shipment.Status = newStatus
	shipment.History = append(shipment.History, event)
	return shipment, nil
}

// UpdateLocation appends a checkpoint without changing status.
func (s *shipmentService) UpdateLocation(ctx context.Context, trackingNumber string, req dto.UpdateLocationRequest, requestingUserID string) (*domain.Shipment, error) {
	actor, err := s.userSvc.RequireRole(ctx, requestingUserID, domain.RoleDriver, domain.RoleStaff, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	tx, err := s.shipmentRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.shipmentRepo.Rollback(ctx, tx)

	shipment, err := s.shipmentRepo.FindByTrackingForUpdate(ctx, tx, trackingNumber)
	if err != nil {
		return nil, err
	}
	if shipment.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: shipment %s is in terminal status %s", apperrors.ErrConflict, trackingNumber, shipment.Status)
	}

	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Checkpoint: %s", req.Location)
	}

	now := time.Now().UTC()
	update := portsrepo.ShipmentStatusUpdate{
		Status:          shipment.Status,
		CurrentLocation: &req.Location,
		UpdatedBy:       actor.UserID,
		UpdatedAt:       now,
	}
	event := domain.ShipmentEvent{
		EventID:     uuid.NewString(),
		Status:      shipment.Status,
		Description: description,
		Location:    req.Location,
		Timestamp:   now,
		RecordedBy:  actor.UserID,
	}
	if err := s.applyTransition(ctx, tx, trackingNumber, update, event); err != nil {
		return nil, err
	}

	if err := s.shipmentRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	shipment.CurrentLocation = req.Location
	shipment.History = append(shipment.History, event)
	return shipment, nil
}

// DeleteShipment hard-deletes a shipment. Admin only; ledger entries
// referencing the tracking number stay untouched.
func (s *shipmentService) DeleteShipment(ctx context.Context, trackingNumber string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.userSvc.RequireRole(ctx, requestingUserID, domain.RoleAdmin); err != nil {
		return err
	}

	if err := s.shipmentRepo.DeleteShipment(ctx, trackingNumber); err != nil {
		return err
	}

	logger.Info("Shipment deleted", slog.String("tracking_number", trackingNumber))
	return nil
}
