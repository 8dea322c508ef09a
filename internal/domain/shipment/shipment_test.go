package shipment

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShipment(t *testing.T) {
	s, err := NewShipment("SH-001", "Spring import", time.Now(), dec("7"))
	require.NoError(t, err)

	assert.Equal(t, StatusNew, s.Status)
	assert.True(t, s.PartialDiscountRmb.IsZero())
	assert.Len(t, s.GetDomainEvents(), 1)
}

func TestNewShipment_Validation(t *testing.T) {
	tests := []struct {
		name  string
		code  string
		title string
		rate  decimal.Decimal
	}{
		{"empty code", "", "Import", dec("7")},
		{"empty name", "SH-001", "", dec("7")},
		{"zero rate", "SH-001", "Import", decimal.Zero},
		{"negative rate", "SH-001", "Import", dec("-2")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewShipment(tc.code, tc.title, time.Now(), tc.rate)
			assert.Error(t, err)
		})
	}
}

func TestAdvance_WalksTheFullLifecycle(t *testing.T) {
	s, err := NewShipment("SH-001", "Import", time.Now(), dec("7"))
	require.NoError(t, err)

	expected := []Status{StatusAwaitingShipping, StatusReadyForReceipt, StatusReceived, StatusArchived}
	for _, want := range expected {
		require.NoError(t, s.Advance())
		assert.Equal(t, want, s.Status)
	}

	assert.True(t, s.IsArchived())
	assert.Error(t, s.Advance())
}

func TestArchive_FromAnyNonTerminalStatus(t *testing.T) {
	s, err := NewShipment("SH-001", "Import", time.Now(), dec("7"))
	require.NoError(t, err)
	require.NoError(t, s.Advance()) // AWAITING_SHIPPING

	require.NoError(t, s.Archive())
	assert.Equal(t, StatusArchived, s.Status)
	assert.Error(t, s.Archive())
}

func TestArchivedShipmentRejectsEdits(t *testing.T) {
	s, err := NewShipment("SH-001", "Import", time.Now(), dec("7"))
	require.NoError(t, err)
	require.NoError(t, s.Archive())

	assert.Error(t, s.UpdateBasics("Renamed", time.Now(), dec("7")))
	assert.Error(t, s.SetPartialDiscount(dec("10"), ""))
	assert.Error(t, s.AssignShippingCompany(uuid.New()))
}

func TestSetPartialDiscount_RejectsNegative(t *testing.T) {
	s, err := NewShipment("SH-001", "Import", time.Now(), dec("7"))
	require.NoError(t, err)

	assert.Error(t, s.SetPartialDiscount(dec("-5"), ""))
	require.NoError(t, s.SetPartialDiscount(dec("50"), "goodwill"))
	assert.Equal(t, "50.00", s.PartialDiscountRmb.StringFixed(2))
}

func TestApplyCostTotals_RecomputesBalance(t *testing.T) {
	s, err := NewShipment("SH-001", "Import", time.Now(), dec("7"))
	require.NoError(t, err)

	s.ApplyPaymentTotal(dec("5000"))
	s.ApplyCostTotals(CostTotals{FinalTotalCostEgp: dec("21485.90")})

	assert.Equal(t, "16485.90", s.BalanceEgp.StringFixed(2))

	s.ApplyPaymentTotal(dec("21485.90"))
	assert.True(t, s.BalanceEgp.IsZero())
}

func TestApplyPaymentTotal_BalanceMayGoNegative(t *testing.T) {
	s, err := NewShipment("SH-001", "Import", time.Now(), dec("7"))
	require.NoError(t, err)

	s.ApplyCostTotals(CostTotals{FinalTotalCostEgp: dec("100")})
	s.ApplyPaymentTotal(dec("150"))

	assert.Equal(t, "-50.00", s.BalanceEgp.StringFixed(2))
}

func TestAdvance_IncrementsVersion(t *testing.T) {
	s, err := NewShipment("SH-001", "Import", time.Now(), dec("7"))
	require.NoError(t, err)

	before := s.Version
	require.NoError(t, s.Advance())
	assert.Equal(t, before+1, s.Version)
}
