package models

import "database/sql"

// User represents a row of the users table.
type User struct {
	UserID         string         `db:"user_id"`
	Name           string         `db:"name"`
	Email          string         `db:"email"`
	PasswordHash   string         `db:"password_hash"`
	Role           string         `db:"role"`
	AccountID      string         `db:"account_id"`
	OrganizationID sql.NullString `db:"organization_id"` // null while not a member
	AuditFields
}
