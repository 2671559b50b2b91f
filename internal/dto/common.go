package dto

import (
	"github.com/shopspring/decimal"

	"github.com/swiftparcel/parcel_broker_app/internal/core/domain"
)

// AddressRequest carries a postal address on create/update payloads.
type AddressRequest struct {
	Name        string `json:"name" binding:"required"`
	CompanyName string `json:"companyName"`
	Street      string `json:"street" binding:"required"`
	City        string `json:"city" binding:"required"`
	PostalCode  string `json:"postalCode" binding:"required"`
	CountryCode string `json:"countryCode" binding:"required,len=2"`
	Phone       string `json:"phone"`
	Email       string `json:"email" binding:"omitempty,email"`
}

// ToDomainAddress converts an AddressRequest to a domain.Address.
func (r AddressRequest) ToDomainAddress() domain.Address {
	return domain.Address{
		Name:        r.Name,
		CompanyName: r.CompanyName,
		Street:      r.Street,
		City:        r.City,
		PostalCode:  r.PostalCode,
		CountryCode: r.CountryCode,
		Phone:       r.Phone,
		Email:       r.Email,
	}
}

// ParcelRequest carries one parcel's dimensions on create/update payloads.
type ParcelRequest struct {
	Description string          `json:"description" binding:"required"`
	WeightKg    decimal.Decimal `json:"weightKg" binding:"required"`
	LengthCm    decimal.Decimal `json:"lengthCm" binding:"required"`
	WidthCm     decimal.Decimal `json:"widthCm" binding:"required"`
	HeightCm    decimal.Decimal `json:"heightCm" binding:"required"`
	Quantity    int             `json:"quantity" binding:"omitempty,min=1"`
}
