package shipment

import (
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentAllocation links one payment to a specific supplier's goods-cost
// balance. Allocation rows are append-only: they are only ever created by
// the auto-allocation flow and never updated or deleted.
type PaymentAllocation struct {
	shared.BaseEntity
	PaymentID       uuid.UUID            `json:"payment_id"`
	ShipmentID      uuid.UUID            `json:"shipment_id"`
	SupplierID      uuid.UUID            `json:"supplier_id"`
	CostComponent   CostComponent        `json:"cost_component"`
	Currency        valueobject.Currency `json:"currency"`
	AllocatedAmount decimal.Decimal      `json:"allocated_amount"`
}

// SupplierGoodsSummary is the goods-cost position of one supplier within a
// shipment, denominated in RMB. Remaining may be negative: overpayment is
// surfaced, never hidden.
type SupplierGoodsSummary struct {
	SupplierID    uuid.UUID       `json:"supplier_id"`
	GoodsTotalRmb decimal.Decimal `json:"supplier_goods_total_rmb"`
	PaidRmb       decimal.Decimal `json:"supplier_paid_rmb"`
	RemainingRmb  decimal.Decimal `json:"supplier_remaining_rmb"`
}

// ShouldShowAutoAllocation reports whether the auto-allocation section is
// offered for a payment being drafted. All four conditions must hold:
// goods-cost component, shipping-company party, a selected shipment, and a
// resolved shipping company.
func ShouldShowAutoAllocation(component CostComponent, partyType PartyType, shipmentID, shippingCompanyID *uuid.UUID) bool {
	return component == CostComponentGoods &&
		partyType == PartyTypeShippingCompany &&
		shipmentID != nil && *shipmentID != uuid.Nil &&
		shippingCompanyID != nil && *shippingCompanyID != uuid.Nil
}

// CanAutoAllocate reports whether a payment qualifies for auto-allocation:
// the section conditions plus an RMB-denominated payment.
func CanAutoAllocate(component CostComponent, partyType PartyType, shipmentID, shippingCompanyID *uuid.UUID, currency valueobject.Currency) bool {
	return ShouldShowAutoAllocation(component, partyType, shipmentID, shippingCompanyID) &&
		currency == valueobject.RMB
}

// GoodsSummaryFor computes the goods-cost position of one supplier within a
// shipment. Paid covers direct goods-cost payments to the supplier (RMB at
// face value, EGP converted back through the captured rate) plus allocation
// rows targeting the supplier.
func GoodsSummaryFor(supplierID uuid.UUID, items []*Item, payments []*Payment, allocations []PaymentAllocation) SupplierGoodsSummary {
	summary := SupplierGoodsSummary{SupplierID: supplierID}

	for _, it := range items {
		if it.SupplierID == supplierID {
			summary.GoodsTotalRmb = summary.GoodsTotalRmb.Add(it.TotalPurchaseCostRmb)
		}
	}
	for _, p := range payments {
		if p.PartyType == PartyTypeSupplier && p.PartyID == supplierID && p.CostComponent == CostComponentGoods {
			summary.PaidRmb = summary.PaidRmb.Add(p.AmountInRmb())
		}
	}
	for _, a := range allocations {
		if a.SupplierID == supplierID && a.CostComponent == CostComponentGoods {
			summary.PaidRmb = summary.PaidRmb.Add(a.AllocatedAmount)
		}
	}

	summary.RemainingRmb = summary.GoodsTotalRmb.Sub(summary.PaidRmb)
	return summary
}

// AutoAllocate splits a shipping-company RMB payment across the shipment's
// suppliers' outstanding goods-cost balances, in item order. Suppliers with
// nothing outstanding are skipped; any remainder of the payment stays
// unallocated. The returned rows are append-only.
func AutoAllocate(payment *Payment, items []*Item, priorPayments []*Payment, priorAllocations []PaymentAllocation) ([]PaymentAllocation, error) {
	shipmentID := payment.ShipmentID
	if !CanAutoAllocate(payment.CostComponent, payment.PartyType, &shipmentID, &payment.PartyID, payment.Amount.Currency()) {
		return nil, shared.NewDomainError("INVALID_STATE", "Payment does not qualify for auto-allocation")
	}

	// Suppliers in first-appearance item order.
	seen := make(map[uuid.UUID]bool)
	order := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		if it.ShipmentID != payment.ShipmentID {
			continue
		}
		if !seen[it.SupplierID] {
			seen[it.SupplierID] = true
			order = append(order, it.SupplierID)
		}
	}

	remaining := payment.Amount.Amount()
	allocations := make([]PaymentAllocation, 0, len(order))

	for _, supplierID := range order {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}

		summary := GoodsSummaryFor(supplierID, items, priorPayments, priorAllocations)
		outstanding := summary.RemainingRmb
		if outstanding.LessThanOrEqual(decimal.Zero) {
			continue
		}

		allocated := decimal.Min(outstanding, remaining)
		allocations = append(allocations, PaymentAllocation{
			BaseEntity:      shared.NewBaseEntity(),
			PaymentID:       payment.ID,
			ShipmentID:      payment.ShipmentID,
			SupplierID:      supplierID,
			CostComponent:   CostComponentGoods,
			Currency:        valueobject.RMB,
			AllocatedAmount: allocated,
		})
		remaining = remaining.Sub(allocated)
	}

	return allocations, nil
}
