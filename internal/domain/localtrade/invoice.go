package localtrade

import (
	"time"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle status of a local-trade invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft    InvoiceStatus = "DRAFT"
	InvoiceStatusIssued   InvoiceStatus = "ISSUED"
	InvoiceStatusReceived InvoiceStatus = "RECEIVED"
)

// IsValid checks if the invoice status is valid
func (s InvoiceStatus) IsValid() bool {
	return s == InvoiceStatusDraft || s == InvoiceStatusIssued || s == InvoiceStatusReceived
}

// Invoice represents a local-trade invoice against a party. Issued and
// received invoices enter the party's ledger as debt.
type Invoice struct {
	shared.BaseAggregateRoot
	PartyID   uuid.UUID       `json:"party_id"`
	Number    string          `json:"number"`
	TotalEgp  decimal.Decimal `json:"total_egp"`
	Status    InvoiceStatus   `json:"status"`
	IssueDate time.Time       `json:"issue_date"`
	Notes     string          `json:"notes"`
}

// NewInvoice creates a draft invoice
func NewInvoice(partyID uuid.UUID, number string, totalEgp decimal.Decimal, issueDate time.Time) (*Invoice, error) {
	fields := map[string]string{}
	if partyID == uuid.Nil {
		fields["party_id"] = "party is required"
	}
	if number == "" {
		fields["number"] = "invoice number is required"
	}
	if totalEgp.LessThanOrEqual(decimal.Zero) {
		fields["total_egp"] = "total must be greater than zero"
	}
	if len(fields) > 0 {
		return nil, shared.NewValidationError("Invalid invoice data", fields)
	}

	if issueDate.IsZero() {
		issueDate = time.Now()
	}

	return &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PartyID:           partyID,
		Number:            number,
		TotalEgp:          totalEgp,
		Status:            InvoiceStatusDraft,
		IssueDate:         issueDate,
	}, nil
}

// Issue moves a draft invoice into the ledger
func (i *Invoice) Issue() error {
	if i.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft invoices can be issued")
	}

	i.Status = InvoiceStatusIssued
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// MarkReceived confirms the goods behind an issued invoice were received
func (i *Invoice) MarkReceived() error {
	if i.Status != InvoiceStatusIssued {
		return shared.NewDomainError("INVALID_STATE", "Only issued invoices can be received")
	}

	i.Status = InvoiceStatusReceived
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// AffectsBalance reports whether the invoice counts toward the party balance.
// Drafts are not yet debt.
func (i *Invoice) AffectsBalance() bool {
	return i.Status == InvoiceStatusIssued || i.Status == InvoiceStatusReceived
}
