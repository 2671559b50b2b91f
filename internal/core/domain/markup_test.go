package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiftparcel/parcel_broker_app/internal/apperrors"
	"github.com/swiftparcel/parcel_broker_app/internal/core/domain"
)

func TestComputePrice(t *testing.T) {
	tests := []struct {
		name   string
		cost   decimal.Decimal
		markup domain.Markup
		want   string
	}{
		{
			name:   "percentage markup",
			cost:   decimal.NewFromInt(100),
			markup: domain.Markup{Type: domain.MarkupPercentage, PercentageValue: decimal.NewFromInt(15)},
			want:   "115.000",
		},
		{
			name:   "flat markup",
			cost:   decimal.NewFromInt(100),
			markup: domain.Markup{Type: domain.MarkupFlat, FlatValue: decimal.NewFromInt(5)},
			want:   "105.000",
		},
		{
			name: "combined markup",
			cost: decimal.NewFromInt(100),
			markup: domain.Markup{
				Type:            domain.MarkupCombined,
				PercentageValue: decimal.NewFromInt(10),
				FlatValue:       decimal.NewFromInt(2),
			},
			want: "112.000",
		},
		{
			name: "percentage markup ignores stale flat component",
			cost: decimal.NewFromInt(100),
			markup: domain.Markup{
				Type:            domain.MarkupPercentage,
				PercentageValue: decimal.NewFromInt(15),
				FlatValue:       decimal.NewFromInt(99),
			},
			want: "115.000",
		},
		{
			name: "flat markup ignores stale percentage component",
			cost: decimal.NewFromInt(100),
			markup: domain.Markup{
				Type:            domain.MarkupFlat,
				PercentageValue: decimal.NewFromInt(50),
				FlatValue:       decimal.NewFromInt(5),
			},
			want: "105.000",
		},
		{
			name:   "zero cost",
			cost:   decimal.Zero,
			markup: domain.Markup{Type: domain.MarkupPercentage, PercentageValue: decimal.NewFromInt(20)},
			want:   "0.000",
		},
		{
			name:   "rounds half up at the third decimal",
			cost:   decimal.RequireFromString("10.001"),
			markup: domain.Markup{Type: domain.MarkupPercentage, PercentageValue: decimal.RequireFromString("12.345")},
			want:   "11.236",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ComputePrice(tt.cost, tt.markup)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(3))
		})
	}
}

func TestComputePrice_NegativeCost(t *testing.T) {
	_, err := domain.ComputePrice(decimal.NewFromInt(-1), domain.Markup{Type: domain.MarkupFlat})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestComputePrice_UnknownMarkupType(t *testing.T) {
	_, err := domain.ComputePrice(decimal.NewFromInt(10), domain.Markup{Type: "WILD"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestComputePrice_NegativeMarkupComponent(t *testing.T) {
	_, err := domain.ComputePrice(decimal.NewFromInt(10), domain.Markup{
		Type:            domain.MarkupPercentage,
		PercentageValue: decimal.NewFromInt(-5),
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
