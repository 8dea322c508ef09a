package shipment

import (
	"fmt"
	"time"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle status of a shipment.
// Shipments advance through the wizard one status at a time and are
// archived terminally; they are never hard-deleted.
type Status string

const (
	StatusNew              Status = "NEW"
	StatusAwaitingShipping Status = "AWAITING_SHIPPING"
	StatusReadyForReceipt  Status = "READY_FOR_RECEIPT"
	StatusReceived         Status = "RECEIVED"
	StatusArchived         Status = "ARCHIVED"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusAwaitingShipping, StatusReadyForReceipt, StatusReceived, StatusArchived:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true if the shipment is archived
func (s Status) IsTerminal() bool {
	return s == StatusArchived
}

// next returns the status that follows s in the wizard flow
func (s Status) next() (Status, bool) {
	switch s {
	case StatusNew:
		return StatusAwaitingShipping, true
	case StatusAwaitingShipping:
		return StatusReadyForReceipt, true
	case StatusReadyForReceipt:
		return StatusReceived, true
	case StatusReceived:
		return StatusArchived, true
	}
	return s, false
}

// CostTotals holds the derived cost rollup for a shipment. The values are
// recomputed by the cost aggregator on every write; they are never edited
// independently.
type CostTotals struct {
	TotalPurchaseCostRmb      decimal.Decimal `json:"total_purchase_cost_rmb"`
	PurchaseCostEgp           decimal.Decimal `json:"purchase_cost_egp"`
	DiscountEgp               decimal.Decimal `json:"discount_egp"`
	DiscountedPurchaseCostEgp decimal.Decimal `json:"discounted_purchase_cost_egp"`
	CommissionRmb             decimal.Decimal `json:"commission_rmb"`
	CommissionEgp             decimal.Decimal `json:"commission_egp"`
	ShippingCostUsd           decimal.Decimal `json:"shipping_cost_usd"`
	ShippingCostRmb           decimal.Decimal `json:"shipping_cost_rmb"`
	ShippingCostEgp           decimal.Decimal `json:"shipping_cost_egp"`
	TotalCustomsEgp           decimal.Decimal `json:"total_customs_egp"`
	TotalTakhreegEgp          decimal.Decimal `json:"total_takhreeg_egp"`
	TotalMissingCostEgp       decimal.Decimal `json:"total_missing_cost_egp"`
	FinalTotalCostEgp         decimal.Decimal `json:"final_total_cost_egp"`
}

// Shipment represents an import shipment aggregate root. It is created at
// step 1 of the wizard and mutated one wizard step at a time.
type Shipment struct {
	shared.BaseAggregateRoot
	Code               string          `json:"code"`
	Name               string          `json:"name"`
	Status             Status          `json:"status"`
	PurchaseDate       time.Time       `json:"purchase_date"`
	PurchaseRmbToEgp   decimal.Decimal `json:"purchase_rmb_to_egp"`
	PartialDiscountRmb decimal.Decimal `json:"partial_discount_rmb"`
	DiscountNotes      string          `json:"discount_notes"`
	ShippingCompanyID  *uuid.UUID      `json:"shipping_company_id"`
	Totals             CostTotals      `json:"totals"`
	TotalPaidEgp       decimal.Decimal `json:"total_paid_egp"`
	BalanceEgp         decimal.Decimal `json:"balance_egp"`
}

// NewShipment creates a new shipment at wizard step 1
func NewShipment(code, name string, purchaseDate time.Time, purchaseRate decimal.Decimal) (*Shipment, error) {
	fields := map[string]string{}
	if code == "" {
		fields["code"] = "code is required"
	}
	if len(code) > 50 {
		fields["code"] = "code cannot exceed 50 characters"
	}
	if name == "" {
		fields["name"] = "name is required"
	}
	if purchaseRate.LessThanOrEqual(decimal.Zero) {
		fields["purchase_rmb_to_egp"] = "purchase rate must be greater than zero"
	}
	if len(fields) > 0 {
		return nil, shared.NewValidationError("Invalid shipment data", fields)
	}

	s := &Shipment{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		Code:               code,
		Name:               name,
		Status:             StatusNew,
		PurchaseDate:       purchaseDate,
		PurchaseRmbToEgp:   purchaseRate,
		PartialDiscountRmb: decimal.Zero,
	}
	s.AddDomainEvent(NewShipmentCreatedEvent(s))
	return s, nil
}

// UpdateBasics updates the step-1 fields only
func (s *Shipment) UpdateBasics(name string, purchaseDate time.Time, purchaseRate decimal.Decimal) error {
	if s.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify an archived shipment")
	}
	if name == "" {
		return shared.NewValidationError("Invalid shipment data", map[string]string{"name": "name is required"})
	}
	if purchaseRate.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("Invalid shipment data", map[string]string{"purchase_rmb_to_egp": "purchase rate must be greater than zero"})
	}

	s.Name = name
	s.PurchaseDate = purchaseDate
	s.PurchaseRmbToEgp = purchaseRate
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// SetPartialDiscount sets the partial discount granted by the supplier in RMB
func (s *Shipment) SetPartialDiscount(amountRmb decimal.Decimal, notes string) error {
	if s.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify an archived shipment")
	}
	if amountRmb.IsNegative() {
		return shared.NewValidationError("Invalid discount", map[string]string{"partial_discount_rmb": "discount cannot be negative"})
	}

	s.PartialDiscountRmb = amountRmb
	s.DiscountNotes = notes
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// AssignShippingCompany links the shipment to the shipping company handling it
func (s *Shipment) AssignShippingCompany(companyID uuid.UUID) error {
	if s.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify an archived shipment")
	}
	if companyID == uuid.Nil {
		return shared.NewValidationError("Invalid shipping company", map[string]string{"shipping_company_id": "shipping company is required"})
	}

	s.ShippingCompanyID = &companyID
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// Advance moves the shipment to the next status in the wizard flow
func (s *Shipment) Advance() error {
	next, ok := s.Status.next()
	if !ok {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Shipment in %s status cannot advance", s.Status))
	}

	previous := s.Status
	s.Status = next
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	s.AddDomainEvent(NewShipmentStatusChangedEvent(s, previous))
	return nil
}

// Archive archives the shipment terminally
func (s *Shipment) Archive() error {
	if s.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Shipment is already archived")
	}

	previous := s.Status
	s.Status = StatusArchived
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	s.AddDomainEvent(NewShipmentStatusChangedEvent(s, previous))
	return nil
}

// ApplyCostTotals replaces the derived totals with a freshly computed rollup
// and recomputes the outstanding balance against what has been paid.
func (s *Shipment) ApplyCostTotals(totals CostTotals) {
	s.Totals = totals
	s.BalanceEgp = totals.FinalTotalCostEgp.Sub(s.TotalPaidEgp)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// ApplyPaymentTotal records the aggregate paid amount in EGP
func (s *Shipment) ApplyPaymentTotal(totalPaidEgp decimal.Decimal) {
	s.TotalPaidEgp = totalPaidEgp
	s.BalanceEgp = s.Totals.FinalTotalCostEgp.Sub(totalPaidEgp)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// IsArchived returns true if the shipment is archived
func (s *Shipment) IsArchived() bool {
	return s.Status == StatusArchived
}
