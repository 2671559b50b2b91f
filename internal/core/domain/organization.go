package domain

// Organization aggregates member users into one shared billing pool. Each
// organization owns exactly one account; member users' shipments debit that
// account for as long as the membership lasts. Removing a member only changes
// future billing resolution, past ledger entries keep their account ID.
type Organization struct {
	OrganizationID string `json:"organizationID"`
	Name           string `json:"name"`
	AccountID      string `json:"accountID"`
	AuditFields
}
