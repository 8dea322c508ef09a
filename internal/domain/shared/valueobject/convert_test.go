package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		from     Currency
		to       Currency
		rate     string
		expected string
	}{
		{"rmb to egp", "100", RMB, EGP, "7.1", "710"},
		{"usd to rmb", "250", USD, RMB, "7.25", "1812.5"},
		{"fractional rate", "33.33", RMB, EGP, "6.95", "231.6435"},
		{"zero amount", "0", RMB, EGP, "7.1", "0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tc.amount)
			rate := decimal.RequireFromString(tc.rate)

			got, err := Convert(amount, tc.from, tc.to, rate)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.expected)),
				"expected %s, got %s", tc.expected, got)
		})
	}
}

func TestConvert_SameCurrencyIgnoresRate(t *testing.T) {
	amount := decimal.RequireFromString("42.42")
	got, err := Convert(amount, EGP, EGP, decimal.NewFromInt(3))
	require.NoError(t, err)
	assert.True(t, got.Equal(amount))
}

func TestConvert_InvalidRate(t *testing.T) {
	tests := []struct {
		name string
		rate string
	}{
		{"zero rate", "0"},
		{"negative rate", "-1.5"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Convert(decimal.NewFromInt(100), RMB, EGP, decimal.RequireFromString(tc.rate))
			require.Error(t, err)

			var rateErr *InvalidRateError
			require.ErrorAs(t, err, &rateErr)
			assert.Equal(t, RMB, rateErr.From)
			assert.Equal(t, EGP, rateErr.To)
		})
	}
}

func TestConvertMoney(t *testing.T) {
	m := NewMoneyRMB(decimal.NewFromInt(200))
	got, err := ConvertMoney(m, EGP, decimal.RequireFromString("5"))
	require.NoError(t, err)
	assert.Equal(t, EGP, got.Currency())
	assert.True(t, got.Amount().Equal(decimal.NewFromInt(1000)))
}
