package localtrade

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParty_Validation(t *testing.T) {
	tests := []struct {
		name    string
		build   func() (*Party, error)
		wantErr bool
	}{
		{
			"valid credit party",
			func() (*Party, error) {
				return NewParty("Al Noor", PartyTypeMerchant, PaymentTermsCredit,
					CreditLimitLimited, dec("5000"), dec("0"), OpeningBalanceDebit)
			},
			false,
		},
		{
			"limited credit with zero limit",
			func() (*Party, error) {
				return NewParty("Al Noor", PartyTypeMerchant, PaymentTermsCredit,
					CreditLimitLimited, decimal.Zero, dec("0"), OpeningBalanceDebit)
			},
			true,
		},
		{
			"negative opening balance",
			func() (*Party, error) {
				return NewParty("Al Noor", PartyTypeCustomer, PaymentTermsCash,
					CreditLimitUnlimited, decimal.Zero, dec("-10"), OpeningBalanceDebit)
			},
			true,
		},
		{
			"unknown type",
			func() (*Party, error) {
				return NewParty("Al Noor", PartyType("VENDOR"), PaymentTermsCash,
					CreditLimitUnlimited, decimal.Zero, dec("0"), OpeningBalanceDebit)
			},
			true,
		},
		{
			"empty name",
			func() (*Party, error) {
				return NewParty("  ", PartyTypeBoth, PaymentTermsCash,
					CreditLimitUnlimited, decimal.Zero, dec("0"), OpeningBalanceCredit)
			},
			true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.build()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParty_UnlimitedCreditZeroesLimit(t *testing.T) {
	p, err := NewParty("Al Noor", PartyTypeMerchant, PaymentTermsCredit,
		CreditLimitUnlimited, dec("5000"), dec("0"), OpeningBalanceDebit)
	require.NoError(t, err)
	assert.True(t, p.CreditLimitEgp.IsZero())
}

func TestParty_SetCreditTerms(t *testing.T) {
	p, err := NewParty("Al Noor", PartyTypeMerchant, PaymentTermsCash,
		CreditLimitUnlimited, decimal.Zero, dec("0"), OpeningBalanceDebit)
	require.NoError(t, err)

	require.NoError(t, p.SetCreditTerms(PaymentTermsCredit, CreditLimitLimited, dec("3000")))
	assert.Equal(t, "3000.00", p.CreditLimitEgp.StringFixed(2))

	assert.Error(t, p.SetCreditTerms(PaymentTermsCredit, CreditLimitLimited, decimal.Zero))
}

func TestInvoice_StatusFlow(t *testing.T) {
	p, err := NewParty("Al Noor", PartyTypeMerchant, PaymentTermsCash,
		CreditLimitUnlimited, decimal.Zero, dec("0"), OpeningBalanceDebit)
	require.NoError(t, err)

	inv, err := NewInvoice(p.ID, "INV-1", dec("100"), time.Now())
	require.NoError(t, err)
	assert.False(t, inv.AffectsBalance())

	assert.Error(t, inv.MarkReceived()) // draft cannot skip to received
	require.NoError(t, inv.Issue())
	assert.True(t, inv.AffectsBalance())
	assert.Error(t, inv.Issue())

	require.NoError(t, inv.MarkReceived())
	assert.True(t, inv.AffectsBalance())
}
