package domain

// UserRole controls which operations a user may perform.
type UserRole string

const (
	RoleClient UserRole = "CLIENT"
	RoleStaff  UserRole = "STAFF"
	RoleDriver UserRole = "DRIVER"
	RoleAdmin  UserRole = "ADMIN"
)

// User represents an application user. Every user owns an account, but a
// user belonging to an organization bills against the organization's pooled
// account instead; the personal account lies dormant until the user leaves.
type User struct {
	UserID         string   `json:"userID"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	PasswordHash   string   `json:"-"`
	Role           UserRole `json:"role"`
	AccountID      string   `json:"accountID"`
	OrganizationID *string  `json:"organizationID,omitempty"`
	AuditFields
}

// IsStaff reports whether the user can perform staff operations. Admins are
// staff with extra destructive permissions.
func (u User) IsStaff() bool {
	return u.Role == RoleStaff || u.Role == RoleAdmin
}
