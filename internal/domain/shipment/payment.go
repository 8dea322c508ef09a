package shipment

import (
	"time"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PartyType identifies which side of the shipment a payment targets
type PartyType string

const (
	PartyTypeSupplier        PartyType = "SUPPLIER"
	PartyTypeShippingCompany PartyType = "SHIPPING_COMPANY"
)

// IsValid checks if the party type is valid
func (p PartyType) IsValid() bool {
	return p == PartyTypeSupplier || p == PartyTypeShippingCompany
}

// CostComponent identifies which cost bucket a payment settles
type CostComponent string

const (
	CostComponentGoods           CostComponent = "GOODS"            // تكلفة البضاعة
	CostComponentShipping        CostComponent = "SHIPPING"         // الشحن
	CostComponentCustomsTakhreeg CostComponent = "CUSTOMS_TAKHREEG" // جمرك/تخريج
	CostComponentOther           CostComponent = "OTHER"
)

// IsValid checks if the cost component is valid
func (c CostComponent) IsValid() bool {
	switch c {
	case CostComponentGoods, CostComponentShipping, CostComponentCustomsTakhreeg, CostComponentOther:
		return true
	}
	return false
}

// PaymentMethod is how the payment was made
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodWallet       PaymentMethod = "WALLET"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodShortage     PaymentMethod = "SHORTAGE" // missing/shortage settlement
	PaymentMethodOther        PaymentMethod = "OTHER"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodWallet, PaymentMethodBankTransfer, PaymentMethodShortage, PaymentMethodOther:
		return true
	}
	return false
}

// Attachment holds metadata for a receipt image or document stored in object
// storage. The upload itself is handled outside the domain; only the final
// metadata lands here.
type Attachment struct {
	URL          string `json:"url"`
	OriginalName string `json:"original_name"`
	MimeType     string `json:"mime_type"`
	Size         int64  `json:"size"`
}

// Payment represents a payment recorded against a shipment for one party and
// one cost component. Payments are immutable once created except for the
// attachment finalize step.
type Payment struct {
	shared.BaseAggregateRoot
	ShipmentID        uuid.UUID         `json:"shipment_id"`
	PartyType         PartyType         `json:"party_type"`
	PartyID           uuid.UUID         `json:"party_id"`
	Amount            valueobject.Money `json:"amount"`
	ExchangeRateToEgp decimal.Decimal   `json:"exchange_rate_to_egp"`
	AmountEgp         decimal.Decimal   `json:"amount_egp"`
	CostComponent     CostComponent     `json:"cost_component"`
	Method            PaymentMethod     `json:"method"`
	PaidAt            time.Time         `json:"paid_at"`
	Notes             string            `json:"notes"`
	Attachment        *Attachment       `json:"attachment,omitempty"`
}

// NewPayment records a payment. The EGP amount is derived from the original
// amount: EGP payments pass through unchanged, any other currency requires a
// positive exchange rate to EGP.
func NewPayment(
	shipmentID uuid.UUID,
	partyType PartyType,
	partyID uuid.UUID,
	currency valueobject.Currency,
	amountOriginal decimal.Decimal,
	exchangeRateToEgp decimal.Decimal,
	component CostComponent,
	method PaymentMethod,
	paidAt time.Time,
	notes string,
) (*Payment, error) {
	fields := map[string]string{}
	if shipmentID == uuid.Nil {
		fields["shipment_id"] = "shipment is required"
	}
	if !partyType.IsValid() {
		fields["party_type"] = "party type must be SUPPLIER or SHIPPING_COMPANY"
	}
	if partyID == uuid.Nil {
		fields["party_id"] = "party is required"
	}
	if !currency.IsValid() {
		fields["currency"] = "currency must be RMB, USD or EGP"
	}
	if amountOriginal.LessThanOrEqual(decimal.Zero) {
		fields["amount_original"] = "amount must be greater than zero"
	}
	if !component.IsValid() {
		fields["cost_component"] = "unknown cost component"
	}
	if !method.IsValid() {
		fields["method"] = "unknown payment method"
	}
	if currency != valueobject.EGP && exchangeRateToEgp.LessThanOrEqual(decimal.Zero) {
		fields["exchange_rate_to_egp"] = "exchange rate to EGP is required for non-EGP payments"
	}
	if currency == valueobject.EGP && exchangeRateToEgp.IsNegative() {
		fields["exchange_rate_to_egp"] = "exchange rate cannot be negative"
	}
	if len(fields) > 0 {
		return nil, shared.NewValidationError("Invalid payment data", fields)
	}

	amount, err := valueobject.NewMoney(amountOriginal, currency)
	if err != nil {
		return nil, shared.NewValidationError("Invalid payment data", map[string]string{
			"currency": err.Error(),
		})
	}

	// EGP payments pass through at face value; the rate, when supplied,
	// is kept as the RMB equivalence snapshot for goods summaries.
	amountEgp := amountOriginal
	if currency != valueobject.EGP {
		converted, err := valueobject.ConvertMoney(amount, valueobject.EGP, exchangeRateToEgp)
		if err != nil {
			return nil, shared.NewValidationError("Invalid exchange rate", map[string]string{
				"exchange_rate_to_egp": err.Error(),
			})
		}
		amountEgp = converted.Amount()
	}

	if paidAt.IsZero() {
		paidAt = time.Now()
	}

	p := &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ShipmentID:        shipmentID,
		PartyType:         partyType,
		PartyID:           partyID,
		Amount:            amount,
		ExchangeRateToEgp: exchangeRateToEgp,
		AmountEgp:         amountEgp,
		CostComponent:     component,
		Method:            method,
		PaidAt:            paidAt,
		Notes:             notes,
	}
	p.AddDomainEvent(NewPaymentRecordedEvent(p))
	return p, nil
}

// FinalizeAttachment attaches the stored object's metadata to the payment.
// A payment carries at most one attachment; finalizing twice is rejected.
func (p *Payment) FinalizeAttachment(a Attachment) error {
	if p.Attachment != nil {
		return shared.NewDomainError("INVALID_STATE", "Payment already has an attachment")
	}
	if a.URL == "" {
		return shared.NewValidationError("Invalid attachment", map[string]string{"url": "attachment URL is required"})
	}

	p.Attachment = &a
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// AmountInRmb expresses the payment in RMB for goods-summary arithmetic.
// RMB payments count at face value; EGP payments are converted back through
// their captured rate (1 RMB = rate EGP).
func (p *Payment) AmountInRmb() decimal.Decimal {
	switch p.Amount.Currency() {
	case valueobject.RMB:
		return p.Amount.Amount()
	case valueobject.EGP:
		if p.ExchangeRateToEgp.GreaterThan(decimal.Zero) {
			return p.Amount.Amount().Div(p.ExchangeRateToEgp)
		}
		return decimal.Zero
	default:
		return decimal.Zero
	}
}
