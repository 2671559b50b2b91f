package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/swiftparcel/parcel_broker_app/internal/apperrors"
)

// MarkupType selects which components of a Markup apply when pricing a
// shipment.
type MarkupType string

const (
	MarkupPercentage MarkupType = "PERCENTAGE"
	MarkupFlat       MarkupType = "FLAT"
	MarkupCombined   MarkupType = "COMBINED"
)

// priceScale is the minor-unit precision used for all money in this domain.
const priceScale = 3

// Markup describes how a carrier-quoted cost is transformed into the price
// billed to a client.
type Markup struct {
	Type            MarkupType      `json:"type"`
	PercentageValue decimal.Decimal `json:"percentageValue"` // >= 0
	FlatValue       decimal.Decimal `json:"flatValue"`       // >= 0
}

// ComputePrice turns a carrier cost price into a billable price.
//
// billed = cost * (1 + percentage/100) + flat, with the inapplicable
// component zero-forced: a PERCENTAGE markup ignores FlatValue even when it
// is non-zero, and a FLAT markup ignores PercentageValue. That is deliberate:
// the unused component may carry a stale value from a previous pricing rule.
// The result is rounded half-up to 3 decimal places.
func ComputePrice(costPrice decimal.Decimal, markup Markup) (decimal.Decimal, error) {
	if costPrice.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: cost price must not be negative, got %s", apperrors.ErrValidation, costPrice.String())
	}
	if markup.PercentageValue.IsNegative() || markup.FlatValue.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: markup components must not be negative", apperrors.ErrValidation)
	}

	percentage := decimal.Zero
	flat := decimal.Zero
	switch markup.Type {
	case MarkupPercentage:
		percentage = markup.PercentageValue
	case MarkupFlat:
		flat = markup.FlatValue
	case MarkupCombined:
		percentage = markup.PercentageValue
		flat = markup.FlatValue
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown markup type %q", apperrors.ErrValidation, markup.Type)
	}

	hundred := decimal.NewFromInt(100)
	price := costPrice.Mul(hundred.Add(percentage)).Div(hundred).Add(flat)
	return price.Round(priceScale), nil
}
