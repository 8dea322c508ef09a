package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrency_IsValid(t *testing.T) {
	tests := []struct {
		currency Currency
		expected bool
	}{
		{RMB, true},
		{USD, true},
		{EGP, true},
		{Currency("EUR"), false},
		{Currency(""), false},
	}

	for _, tc := range tests {
		t.Run(string(tc.currency), func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.currency.IsValid())
		})
	}
}

func TestNewMoney(t *testing.T) {
	m, err := NewMoney(decimal.RequireFromString("12.345"), RMB)
	require.NoError(t, err)
	assert.Equal(t, RMB, m.Currency())
	assert.Equal(t, "12.35", m.StringFixed(2))
}

func TestNewMoney_EmptyCurrency(t *testing.T) {
	_, err := NewMoney(decimal.NewFromInt(1), "")
	assert.Error(t, err)
}

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("99.99", EGP)
	require.NoError(t, err)
	assert.True(t, m.Amount().Equal(decimal.RequireFromString("99.99")))

	_, err = NewMoneyFromString("not-a-number", EGP)
	assert.Error(t, err)
}

func TestMoney_AddSubtract(t *testing.T) {
	a := NewMoneyEGP(decimal.RequireFromString("10.50"))
	b := NewMoneyEGP(decimal.RequireFromString("4.25"))

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "14.75", sum.StringFixed(2))

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.Equal(t, "6.25", diff.StringFixed(2))
}

func TestMoney_MismatchedCurrencies(t *testing.T) {
	a := NewMoneyEGP(decimal.NewFromInt(10))
	b := NewMoneyRMB(decimal.NewFromInt(10))

	_, err := a.Add(b)
	assert.Error(t, err)

	_, err = a.Subtract(b)
	assert.Error(t, err)
}

func TestMoney_Multiply(t *testing.T) {
	m := NewMoneyRMB(decimal.RequireFromString("2.50"))
	got := m.Multiply(decimal.NewFromInt(4))
	assert.Equal(t, "10.00", got.StringFixed(2))
}

func TestMoney_Round(t *testing.T) {
	m := NewMoneyEGP(decimal.RequireFromString("3.14159"))
	assert.Equal(t, "3.14", m.Round(2).StringFixed(2))
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m := NewMoneyRMB(decimal.RequireFromString("123.45"))

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"123.45","currency":"RMB"}`, string(data))

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoney_Scan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("55.60"))
	assert.Equal(t, DefaultCurrency, m.Currency())
	assert.Equal(t, "55.60", m.StringFixed(2))

	var nilMoney Money
	require.NoError(t, nilMoney.Scan(nil))
	assert.True(t, nilMoney.IsZero())
}
