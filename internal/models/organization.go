package models

// Organization represents a row of the organizations table. Members are the
// users whose organization_id points here.
type Organization struct {
	OrganizationID string `db:"organization_id"` // Primary Key
	Name           string `db:"name"`
	AccountID      string `db:"account_id"`
	AuditFields
}
