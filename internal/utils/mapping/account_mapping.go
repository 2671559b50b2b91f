package mapping

import (
	"github.com/swiftparcel/parcel_broker_app/internal/core/domain"
	"github.com/swiftparcel/parcel_broker_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:        d.AccountID,
		OwnerType:        models.AccountOwnerType(d.OwnerType),
		Name:             d.Name,
		CurrencyCode:     d.CurrencyCode,
		Balance:          d.Balance,
		CreditLimit:      d.CreditLimit,
		MarkupType:       string(d.Markup.Type),
		MarkupPercentage: d.Markup.PercentageValue,
		MarkupFlat:       d.Markup.FlatValue,
		IsActive:         d.IsActive,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:    m.AccountID,
		OwnerType:    domain.AccountOwnerType(m.OwnerType),
		Name:         m.Name,
		CurrencyCode: m.CurrencyCode,
		Balance:      m.Balance,
		CreditLimit:  m.CreditLimit,
		Markup: domain.Markup{
			Type:            domain.MarkupType(m.MarkupType),
			PercentageValue: m.MarkupPercentage,
			FlatValue:       m.MarkupFlat,
		},
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
