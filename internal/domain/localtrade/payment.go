package localtrade

import (
	"time"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PartyPaymentMethod is how a local-trade payment was made
type PartyPaymentMethod string

const (
	PartyPaymentCash         PartyPaymentMethod = "CASH"
	PartyPaymentWallet       PartyPaymentMethod = "WALLET"
	PartyPaymentBankTransfer PartyPaymentMethod = "BANK_TRANSFER"
	PartyPaymentOther        PartyPaymentMethod = "OTHER"
)

// IsValid checks if the payment method is valid
func (m PartyPaymentMethod) IsValid() bool {
	switch m {
	case PartyPaymentCash, PartyPaymentWallet, PartyPaymentBankTransfer, PartyPaymentOther:
		return true
	}
	return false
}

// PartyPayment is an EGP payment recorded against a local-trade party.
// Payments reduce the party's debt in the ledger.
type PartyPayment struct {
	shared.BaseAggregateRoot
	PartyID   uuid.UUID          `json:"party_id"`
	AmountEgp decimal.Decimal    `json:"amount_egp"`
	Method    PartyPaymentMethod `json:"method"`
	PaidAt    time.Time          `json:"paid_at"`
	Notes     string             `json:"notes"`
}

// NewPartyPayment records a payment from or to a local-trade party
func NewPartyPayment(partyID uuid.UUID, amountEgp decimal.Decimal, method PartyPaymentMethod, paidAt time.Time, notes string) (*PartyPayment, error) {
	fields := map[string]string{}
	if partyID == uuid.Nil {
		fields["party_id"] = "party is required"
	}
	if amountEgp.LessThanOrEqual(decimal.Zero) {
		fields["amount_egp"] = "amount must be greater than zero"
	}
	if !method.IsValid() {
		fields["method"] = "unknown payment method"
	}
	if len(fields) > 0 {
		return nil, shared.NewValidationError("Invalid payment data", fields)
	}

	if paidAt.IsZero() {
		paidAt = time.Now()
	}

	return &PartyPayment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PartyID:           partyID,
		AmountEgp:         amountEgp,
		Method:            method,
		PaidAt:            paidAt,
		Notes:             notes,
	}, nil
}
