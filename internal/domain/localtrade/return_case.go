package localtrade

import (
	"time"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReturnCaseStatus is the lifecycle status of a return case
type ReturnCaseStatus string

const (
	ReturnCasePending  ReturnCaseStatus = "PENDING"
	ReturnCaseResolved ReturnCaseStatus = "RESOLVED"
)

// ReturnCase tracks a reported return or defect against a party's invoice.
// Resolution agrees a margin deduction; only resolved margins enter the
// party's ledger. Resolved cases are immutable.
type ReturnCase struct {
	shared.BaseAggregateRoot
	PartyID        uuid.UUID        `json:"party_id"`
	InvoiceID      uuid.UUID        `json:"invoice_id"`
	Description    string           `json:"description"`
	Status         ReturnCaseStatus `json:"status"`
	MarginEgp      decimal.Decimal  `json:"margin_egp"`
	ResolutionNote string           `json:"resolution_note"`
	ResolvedAt     *time.Time       `json:"resolved_at"`
}

// NewReturnCase opens a pending return case
func NewReturnCase(partyID, invoiceID uuid.UUID, description string) (*ReturnCase, error) {
	fields := map[string]string{}
	if partyID == uuid.Nil {
		fields["party_id"] = "party is required"
	}
	if invoiceID == uuid.Nil {
		fields["invoice_id"] = "invoice is required"
	}
	if description == "" {
		fields["description"] = "description is required"
	}
	if len(fields) > 0 {
		return nil, shared.NewValidationError("Invalid return case data", fields)
	}

	return &ReturnCase{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PartyID:           partyID,
		InvoiceID:         invoiceID,
		Description:       description,
		Status:            ReturnCasePending,
		MarginEgp:         decimal.Zero,
	}, nil
}

// Resolve closes the case with an agreed margin. The margin must be
// non-negative and the case must still be pending; resolved is terminal.
func (r *ReturnCase) Resolve(marginEgp decimal.Decimal, note string) error {
	if r.Status == ReturnCaseResolved {
		return shared.NewDomainError("INVALID_STATE", "Return case is already resolved")
	}
	if marginEgp.IsNegative() {
		return shared.NewValidationError("Invalid resolution", map[string]string{
			"margin_egp": "margin cannot be negative",
		})
	}

	now := time.Now()
	r.Status = ReturnCaseResolved
	r.MarginEgp = marginEgp
	r.ResolutionNote = note
	r.ResolvedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()
	return nil
}

// IsResolved returns true if the case is resolved
func (r *ReturnCase) IsResolved() bool {
	return r.Status == ReturnCaseResolved
}
