package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/swiftparcel/parcel_broker_app/internal/core/domain"
)

// CreateOrganizationRequest creates an organization with its pooled account.
type CreateOrganizationRequest struct {
	Name         string          `json:"name" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3"`
	CreditLimit  decimal.Decimal `json:"creditLimit"`
	Markup       *MarkupRequest  `json:"markup"`
}

// MarkupRequest carries a pricing rule.
type MarkupRequest struct {
	Type            domain.MarkupType `json:"type" binding:"required,oneof=PERCENTAGE FLAT COMBINED"`
	PercentageValue decimal.Decimal   `json:"percentageValue"`
	FlatValue       decimal.Decimal   `json:"flatValue"`
}

// ToDomainMarkup converts a MarkupRequest to a domain.Markup.
func (r MarkupRequest) ToDomainMarkup() domain.Markup {
	return domain.Markup{
		Type:            r.Type,
		PercentageValue: r.PercentageValue,
		FlatValue:       r.FlatValue,
	}
}

// AddMemberRequest links a user into an organization.
type AddMemberRequest struct {
	UserID string `json:"userID" binding:"required"`
}

// OrganizationResponse mirrors domain.Organization.
type OrganizationResponse struct {
	OrganizationID string    `json:"organizationID"`
	Name           string    `json:"name"`
	AccountID      string    `json:"accountID"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToOrganizationResponse converts a domain.Organization to its DTO.
func ToOrganizationResponse(o *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		OrganizationID: o.OrganizationID,
		Name:           o.Name,
		AccountID:      o.AccountID,
		CreatedAt:      o.CreatedAt,
	}
}
