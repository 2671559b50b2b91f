package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/swiftparcel/parcel_broker_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool, accountRepo)
	shipmentRepo := newPgxShipmentRepository(dbPool)
	pickupRepo := newPgxPickupRepository(dbPool, shipmentRepo)
	userRepo := newPgxUserRepository(dbPool)
	organizationRepo := newPgxOrganizationRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:      accountRepo,
		LedgerRepo:       ledgerRepo,
		ShipmentRepo:     shipmentRepo,
		PickupRepo:       pickupRepo,
		UserRepo:         userRepo,
		OrganizationRepo: organizationRepo,
	}
}
