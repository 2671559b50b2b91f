package repositories

// RepositoryProvider bundles all repositories handed to the service layer.
type RepositoryProvider struct {
	AccountRepo      AccountRepositoryFacade
	LedgerRepo       LedgerRepositoryFacade
	ShipmentRepo     ShipmentRepositoryWithTx
	PickupRepo       PickupRepositoryFacade
	UserRepo         UserRepositoryFacade
	OrganizationRepo OrganizationRepositoryFacade
}
