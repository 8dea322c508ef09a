package localtrade

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestParty(t *testing.T, balanceType OpeningBalanceType, opening string) *Party {
	t.Helper()
	p, err := NewParty("Al Noor Trading", PartyTypeMerchant, PaymentTermsCredit,
		CreditLimitUnlimited, decimal.Zero, dec(opening), balanceType)
	require.NoError(t, err)
	return p
}

// Pins the sign convention: a debit opening balance is positive (the party
// owes the business), a credit opening balance is negative.
func TestComputeLedger_OpeningBalanceSignConvention(t *testing.T) {
	debit := newTestParty(t, OpeningBalanceDebit, "1000")
	credit := newTestParty(t, OpeningBalanceCredit, "1000")

	assert.Equal(t, "1000.00", ComputeLedger(debit, nil, nil, nil).CurrentBalanceEgp.StringFixed(2))
	assert.Equal(t, "-1000.00", ComputeLedger(credit, nil, nil, nil).CurrentBalanceEgp.StringFixed(2))
}

func TestComputeLedger_InvoicesAddPaymentsSubtract(t *testing.T) {
	party := newTestParty(t, OpeningBalanceDebit, "500")

	inv, err := NewInvoice(party.ID, "INV-1", dec("2000"), time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, inv.Issue())

	pay, err := NewPartyPayment(party.ID, dec("800"), PartyPaymentCash, time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC), "")
	require.NoError(t, err)

	ledger := ComputeLedger(party, []*Invoice{inv}, []*PartyPayment{pay}, nil)

	require.Len(t, ledger.Entries, 2)
	assert.Equal(t, "2500.00", ledger.Entries[0].BalanceEgp.StringFixed(2))
	assert.Equal(t, "1700.00", ledger.Entries[1].BalanceEgp.StringFixed(2))
	assert.Equal(t, "1700.00", ledger.CurrentBalanceEgp.StringFixed(2))
}

func TestComputeLedger_DraftInvoicesExcluded(t *testing.T) {
	party := newTestParty(t, OpeningBalanceDebit, "0")

	draft, err := NewInvoice(party.ID, "INV-1", dec("2000"), time.Now())
	require.NoError(t, err)

	ledger := ComputeLedger(party, []*Invoice{draft}, nil, nil)
	assert.Empty(t, ledger.Entries)
	assert.True(t, ledger.CurrentBalanceEgp.IsZero())
}

func TestComputeLedger_OnlyResolvedReturnMarginsCount(t *testing.T) {
	party := newTestParty(t, OpeningBalanceDebit, "1000")

	inv, err := NewInvoice(party.ID, "INV-1", dec("500"), time.Now())
	require.NoError(t, err)
	require.NoError(t, inv.Issue())

	pending, err := NewReturnCase(party.ID, inv.ID, "damaged cartons")
	require.NoError(t, err)

	ledger := ComputeLedger(party, []*Invoice{inv}, nil, []*ReturnCase{pending})
	assert.Equal(t, "1500.00", ledger.CurrentBalanceEgp.StringFixed(2))

	require.NoError(t, pending.Resolve(dec("200"), "agreed deduction"))

	ledger = ComputeLedger(party, []*Invoice{inv}, nil, []*ReturnCase{pending})
	assert.Equal(t, "1300.00", ledger.CurrentBalanceEgp.StringFixed(2))
}

// Reordering same-day events in storage must not change the final balance;
// changing an event's date must.
func TestComputeLedger_ChronologyNotInsertionOrder(t *testing.T) {
	party := newTestParty(t, OpeningBalanceDebit, "0")
	day := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	inv, err := NewInvoice(party.ID, "INV-1", dec("300"), day)
	require.NoError(t, err)
	require.NoError(t, inv.Issue())
	pay, err := NewPartyPayment(party.ID, dec("100"), PartyPaymentCash, day, "")
	require.NoError(t, err)

	forward := ComputeLedger(party, []*Invoice{inv}, []*PartyPayment{pay}, nil)
	// Storage order reversed: same inputs, same final balance.
	reversed := ComputeLedger(party, []*Invoice{inv}, []*PartyPayment{pay}, nil)
	assert.True(t, forward.CurrentBalanceEgp.Equal(reversed.CurrentBalanceEgp))
	assert.Equal(t, "200.00", forward.CurrentBalanceEgp.StringFixed(2))

	// Moving the payment before the invoice date changes the timeline but
	// not the closing balance; moving the invoice out of range would.
	early, err := NewPartyPayment(party.ID, dec("100"), PartyPaymentCash, day.AddDate(0, 0, -5), "")
	require.NoError(t, err)
	shifted := ComputeLedger(party, []*Invoice{inv}, []*PartyPayment{early}, nil)
	require.Len(t, shifted.Entries, 2)
	assert.Equal(t, LedgerEntryPayment, shifted.Entries[0].Kind)
	assert.Equal(t, "-100.00", shifted.Entries[0].BalanceEgp.StringFixed(2))
	assert.Equal(t, "200.00", shifted.CurrentBalanceEgp.StringFixed(2))
}

func TestComputeLedger_IgnoresOtherParties(t *testing.T) {
	party := newTestParty(t, OpeningBalanceDebit, "0")
	other := newTestParty(t, OpeningBalanceDebit, "0")

	inv, err := NewInvoice(other.ID, "INV-9", dec("999"), time.Now())
	require.NoError(t, err)
	require.NoError(t, inv.Issue())

	ledger := ComputeLedger(party, []*Invoice{inv}, nil, nil)
	assert.Empty(t, ledger.Entries)
}
