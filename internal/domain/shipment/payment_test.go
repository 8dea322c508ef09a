package shipment

import (
	"testing"
	"time"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertFieldError(t *testing.T, err error, field string) {
	t.Helper()
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Contains(t, de.Fields, field)
}

func TestNewPayment_RmbConvertedThroughRate(t *testing.T) {
	p, err := NewPayment(uuid.New(), PartyTypeSupplier, uuid.New(), valueobject.RMB,
		dec("100"), dec("6.8"), CostComponentGoods, PaymentMethodCash, time.Now(), "")
	require.NoError(t, err)

	assert.True(t, p.Amount.Equals(valueobject.NewMoneyRMB(dec("100"))))
	assert.Equal(t, "680.00", p.AmountEgp.StringFixed(2))
	assert.Equal(t, "100.00", p.AmountInRmb().StringFixed(2))
}

func TestNewPayment_EgpFaceValueKeepsRateSnapshot(t *testing.T) {
	p, err := NewPayment(uuid.New(), PartyTypeSupplier, uuid.New(), valueobject.EGP,
		dec("1000"), dec("5"), CostComponentGoods, PaymentMethodBankTransfer, time.Now(), "")
	require.NoError(t, err)

	assert.Equal(t, valueobject.EGP, p.Amount.Currency())
	assert.Equal(t, "1000.00", p.AmountEgp.StringFixed(2))
	assert.Equal(t, "200.00", p.AmountInRmb().StringFixed(2))
}

func TestNewPayment_EgpWithoutRateCountsZeroRmb(t *testing.T) {
	p, err := NewPayment(uuid.New(), PartyTypeSupplier, uuid.New(), valueobject.EGP,
		dec("500"), decimal.Zero, CostComponentGoods, PaymentMethodCash, time.Now(), "")
	require.NoError(t, err)

	assert.Equal(t, "500.00", p.AmountEgp.StringFixed(2))
	assert.True(t, p.AmountInRmb().IsZero())
}

func TestNewPayment_UsdNeverCountsTowardRmb(t *testing.T) {
	p, err := NewPayment(uuid.New(), PartyTypeShippingCompany, uuid.New(), valueobject.USD,
		dec("200"), dec("49"), CostComponentShipping, PaymentMethodBankTransfer, time.Now(), "")
	require.NoError(t, err)

	assert.Equal(t, "9800.00", p.AmountEgp.StringFixed(2))
	assert.True(t, p.AmountInRmb().IsZero())
}

func TestNewPayment_Validation(t *testing.T) {
	now := time.Now()
	partyID := uuid.New()

	tests := []struct {
		name  string
		build func() (*Payment, error)
		field string
	}{
		{
			"missing shipment",
			func() (*Payment, error) {
				return NewPayment(uuid.Nil, PartyTypeSupplier, partyID, valueobject.RMB,
					dec("100"), dec("6.8"), CostComponentGoods, PaymentMethodCash, now, "")
			},
			"shipment_id",
		},
		{
			"zero amount",
			func() (*Payment, error) {
				return NewPayment(uuid.New(), PartyTypeSupplier, partyID, valueobject.RMB,
					decimal.Zero, dec("6.8"), CostComponentGoods, PaymentMethodCash, now, "")
			},
			"amount_original",
		},
		{
			"non-EGP without rate",
			func() (*Payment, error) {
				return NewPayment(uuid.New(), PartyTypeSupplier, partyID, valueobject.RMB,
					dec("100"), decimal.Zero, CostComponentGoods, PaymentMethodCash, now, "")
			},
			"exchange_rate_to_egp",
		},
		{
			"negative rate on EGP",
			func() (*Payment, error) {
				return NewPayment(uuid.New(), PartyTypeSupplier, partyID, valueobject.EGP,
					dec("100"), dec("-1"), CostComponentGoods, PaymentMethodCash, now, "")
			},
			"exchange_rate_to_egp",
		},
		{
			"unknown method",
			func() (*Payment, error) {
				return NewPayment(uuid.New(), PartyTypeSupplier, partyID, valueobject.RMB,
					dec("100"), dec("6.8"), CostComponentGoods, PaymentMethod("CHEQUE"), now, "")
			},
			"method",
		},
		{
			"unknown component",
			func() (*Payment, error) {
				return NewPayment(uuid.New(), PartyTypeSupplier, partyID, valueobject.RMB,
					dec("100"), dec("6.8"), CostComponent("FEES"), PaymentMethodCash, now, "")
			},
			"cost_component",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.build()
			require.Error(t, err)
			assertFieldError(t, err, tc.field)
		})
	}
}

func TestFinalizeAttachment_OnceOnly(t *testing.T) {
	p, err := NewPayment(uuid.New(), PartyTypeSupplier, uuid.New(), valueobject.RMB,
		dec("100"), dec("6.8"), CostComponentGoods, PaymentMethodCash, time.Now(), "")
	require.NoError(t, err)

	a := Attachment{URL: "s3://receipts/abc.jpg", OriginalName: "receipt.jpg", MimeType: "image/jpeg", Size: 1024}
	require.NoError(t, p.FinalizeAttachment(a))
	require.NotNil(t, p.Attachment)

	err = p.FinalizeAttachment(a)
	assert.Error(t, err)
}

func TestFinalizeAttachment_RequiresURL(t *testing.T) {
	p, err := NewPayment(uuid.New(), PartyTypeSupplier, uuid.New(), valueobject.RMB,
		dec("100"), dec("6.8"), CostComponentGoods, PaymentMethodCash, time.Now(), "")
	require.NoError(t, err)

	err = p.FinalizeAttachment(Attachment{OriginalName: "receipt.jpg"})
	assert.Error(t, err)
	assert.Nil(t, p.Attachment)
}
