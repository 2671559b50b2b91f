package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/swiftparcel/parcel_broker_app/internal/core/domain"
	portsrepo "github.com/swiftparcel/parcel_broker_app/internal/core/ports/repositories"
	portssvc "github.com/swiftparcel/parcel_broker_app/internal/core/ports/services"
	"github.com/swiftparcel/parcel_broker_app/internal/dto"
)

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdatePricing(ctx context.Context, accountID string, markup domain.Markup, creditLimit decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, markup, creditLimit, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// MockLedgerRepository is a mock type for the LedgerRepositoryFacade interface
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) AppendEntry(ctx context.Context, entry domain.LedgerEntry, enforceFunds bool) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entry, enforceFunds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	var entries []domain.LedgerEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.LedgerEntry)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return entries, next, args.Error(2)
}

func (m *MockLedgerRepository) FindEntriesByReference(ctx context.Context, accountID string, reference string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, accountID, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

// MockUserRepository is a mock type for the UserRepositoryFacade interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsersByOrganization(ctx context.Context, organizationID string) ([]domain.User, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SetOrganization(ctx context.Context, userID string, organizationID *string, updatedBy string, now time.Time) error {
	args := m.Called(ctx, userID, organizationID, updatedBy, now)
	return args.Error(0)
}

// MockOrganizationRepository is a mock type for the OrganizationRepositoryFacade interface
type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) SaveOrganization(ctx context.Context, organization domain.Organization) error {
	args := m.Called(ctx, organization)
	return args.Error(0)
}

// MockPickupRepository is a mock type for the PickupRepositoryFacade interface
type MockPickupRepository struct {
	mock.Mock
}

func (m *MockPickupRepository) FindPickupByID(ctx context.Context, requestID string) (*domain.PickupRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PickupRequest), args.Error(1)
}

func (m *MockPickupRepository) ListPickupsByClient(ctx context.Context, clientID string, limit int, nextToken *string) ([]domain.PickupRequest, *string, error) {
	args := m.Called(ctx, clientID, limit, nextToken)
	var requests []domain.PickupRequest
	if args.Get(0) != nil {
		requests = args.Get(0).([]domain.PickupRequest)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return requests, next, args.Error(2)
}

func (m *MockPickupRepository) ListAllPickups(ctx context.Context, limit int, nextToken *string) ([]domain.PickupRequest, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	var requests []domain.PickupRequest
	if args.Get(0) != nil {
		requests = args.Get(0).([]domain.PickupRequest)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return requests, next, args.Error(2)
}

func (m *MockPickupRepository) SavePickup(ctx context.Context, request domain.PickupRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockPickupRepository) UpdatePickup(ctx context.Context, request domain.PickupRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockPickupRepository) UpdatePickupStatus(ctx context.Context, requestID string, from []domain.PickupRequestStatus, to domain.PickupRequestStatus, rejectionReason string, userID string, now time.Time) error {
	args := m.Called(ctx, requestID, from, to, rejectionReason, userID, now)
	return args.Error(0)
}

func (m *MockPickupRepository) DeletePickup(ctx context.Context, requestID string) error {
	args := m.Called(ctx, requestID)
	return args.Error(0)
}

func (m *MockPickupRepository) PromoteToShipment(ctx context.Context, request domain.PickupRequest, shipment domain.Shipment) error {
	args := m.Called(ctx, request, shipment)
	return args.Error(0)
}

// MockShipmentRepository is a mock type for the ShipmentRepositoryWithTx interface
type MockShipmentRepository struct {
	mock.Mock
}

func (m *MockShipmentRepository) FindByTracking(ctx context.Context, trackingNumber string) (*domain.Shipment, error) {
	args := m.Called(ctx, trackingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) ListByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Shipment, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	var shipments []domain.Shipment
	if args.Get(0) != nil {
		shipments = args.Get(0).([]domain.Shipment)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return shipments, next, args.Error(2)
}

func (m *MockShipmentRepository) ListAll(ctx context.Context, limit int, nextToken *string) ([]domain.Shipment, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	var shipments []domain.Shipment
	if args.Get(0) != nil {
		shipments = args.Get(0).([]domain.Shipment)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return shipments, next, args.Error(2)
}

func (m *MockShipmentRepository) SaveShipment(ctx context.Context, shipment domain.Shipment) error {
	args := m.Called(ctx, shipment)
	return args.Error(0)
}

func (m *MockShipmentRepository) UpdateDetailsInTx(ctx context.Context, tx pgx.Tx, shipment domain.Shipment) error {
	args := m.Called(ctx, tx, shipment)
	return args.Error(0)
}

func (m *MockShipmentRepository) DeleteShipment(ctx context.Context, trackingNumber string) error {
	args := m.Called(ctx, trackingNumber)
	return args.Error(0)
}

func (m *MockShipmentRepository) FindByTrackingForUpdate(ctx context.Context, tx pgx.Tx, trackingNumber string) (*domain.Shipment, error) {
	args := m.Called(ctx, tx, trackingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) ApplyStatusInTx(ctx context.Context, tx pgx.Tx, trackingNumber string, update portsrepo.ShipmentStatusUpdate) error {
	args := m.Called(ctx, tx, trackingNumber, update)
	return args.Error(0)
}

func (m *MockShipmentRepository) AppendEventInTx(ctx context.Context, tx pgx.Tx, trackingNumber string, event domain.ShipmentEvent) error {
	args := m.Called(ctx, tx, trackingNumber, event)
	return args.Error(0)
}

func (m *MockShipmentRepository) InsertShipmentInTx(ctx context.Context, tx pgx.Tx, shipment domain.Shipment) error {
	args := m.Called(ctx, tx, shipment)
	return args.Error(0)
}

func (m *MockShipmentRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockShipmentRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockShipmentRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockUserSvc is a mock type for the UserSvcFacade interface
type MockUserSvc struct {
	mock.Mock
}

func (m *MockUserSvc) Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserSvc) Authenticate(ctx context.Context, email string, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserSvc) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserSvc) RequireRole(ctx context.Context, userID string, roles ...domain.UserRole) (*domain.User, error) {
	args := m.Called(ctx, userID, roles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockLedgerSvc is a mock type for the LedgerSvcFacade interface
type MockLedgerSvc struct {
	mock.Mock
}

func (m *MockLedgerSvc) Append(ctx context.Context, params portssvc.AppendEntryParams) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerSvc) AppendDebitGuarded(ctx context.Context, params portssvc.AppendEntryParams) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerSvc) ListEntries(ctx context.Context, accountID string, limit int, nextToken *string) (*dto.ListLedgerResponse, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListLedgerResponse), args.Error(1)
}

func (m *MockLedgerSvc) GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerSvc) FindFeeEntry(ctx context.Context, accountID string, trackingNumber string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, accountID, trackingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

// MockBillingSvc is a mock type for the BillingSvcFacade interface
type MockBillingSvc struct {
	mock.Mock
}

func (m *MockBillingSvc) ResolveBillingAccount(ctx context.Context, user *domain.User) (*domain.Account, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockBillingSvc) ResolveBillingAccountByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockBillingSvc) Authorize(ctx context.Context, user *domain.User, amount decimal.Decimal) (portssvc.Authorization, error) {
	args := m.Called(ctx, user, amount)
	return args.Get(0).(portssvc.Authorization), args.Error(1)
}

func (m *MockBillingSvc) PriceFor(ctx context.Context, user *domain.User, costPrice decimal.Decimal) (decimal.Decimal, *domain.Account, error) {
	args := m.Called(ctx, user, costPrice)
	var account *domain.Account
	if args.Get(1) != nil {
		account = args.Get(1).(*domain.Account)
	}
	return args.Get(0).(decimal.Decimal), account, args.Error(2)
}

func (m *MockBillingSvc) UpdateAccountPricing(ctx context.Context, accountID string, markup domain.Markup, creditLimit decimal.Decimal, actorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, markup, creditLimit, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// MockCarrier is a mock type for the CarrierBooker interface
type MockCarrier struct {
	mock.Mock
}

func (m *MockCarrier) BookShipment(ctx context.Context, shipment *domain.Shipment) (*portssvc.CarrierBooking, error) {
	args := m.Called(ctx, shipment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.CarrierBooking), args.Error(1)
}
