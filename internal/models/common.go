package models

import "time"

// AuditFields holds standard audit columns embedded by every table model.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}

// Address is stored as a JSONB column, so it keeps json tags rather than db
// tags. Shape matches the domain Address one to one.
type Address struct {
	Name        string `json:"name"`
	CompanyName string `json:"companyName,omitempty"`
	Street      string `json:"street"`
	City        string `json:"city"`
	PostalCode  string `json:"postalCode"`
	CountryCode string `json:"countryCode"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
}
