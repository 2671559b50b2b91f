package services

import (
	portsrepo "github.com/swiftparcel/parcel_broker_app/internal/core/ports/repositories"
	portssvc "github.com/swiftparcel/parcel_broker_app/internal/core/ports/services"
	"github.com/swiftparcel/parcel_broker_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, carrier portssvc.CarrierBooker) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// User and billing come first since most other services depend on them.
	container.User = NewUserService(repos.UserRepo, repos.AccountRepo)
	container.Billing = NewBillingService(repos.AccountRepo, repos.UserRepo, repos.OrganizationRepo)

	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.AccountRepo)
	container.Organization = NewOrganizationService(repos.OrganizationRepo, repos.AccountRepo, repos.UserRepo, container.User)
	container.Pickup = NewPickupService(repos.PickupRepo, container.User, container.Billing)
	container.Shipment = NewShipmentService(repos.ShipmentRepo, repos.AccountRepo, container.Ledger, container.Billing, container.User, carrier)

	container.Token = NewTokenService(cfg)

	return container
}
