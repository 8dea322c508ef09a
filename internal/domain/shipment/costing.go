package shipment

import (
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// ItemCost is the per-item slice of the cost rollup: the item's proportional
// share of shared costs and the resulting unit and missing-piece costs.
type ItemCost struct {
	ItemID           uuid.UUID       `json:"item_id"`
	TotalPieces      int64           `json:"total_pieces"`
	PieceRatio       decimal.Decimal `json:"piece_ratio"`
	ShareOfExtrasEgp decimal.Decimal `json:"share_of_extras_egp"`
	TotalCostEgp     decimal.Decimal `json:"total_cost_egp"`
	UnitCostEgp      decimal.Decimal `json:"unit_cost_egp"`
	MissingCostEgp   decimal.Decimal `json:"missing_cost_egp"`
}

// CostBreakdown is the full derived cost rollup for a shipment, including
// the per-item breakdown used for missing-piece pricing.
type CostBreakdown struct {
	CostTotals
	Items []ItemCost `json:"items"`
}

// ComputeCost runs the cost aggregator over a shipment's items and shipping
// inputs. It is a pure function: both the write path and the report path call
// it so that the formulas live in exactly one place.
//
// Rounding rule: per-item purchase totals and missing costs are rounded to
// 2 decimal places when stored on the item; shipment-level aggregates are
// carried unrounded and rounded only at presentation boundaries.
//
// Shipping details may be nil before wizard step 3; commission and freight
// then contribute zero.
func ComputeCost(items []*Item, shipping *ShippingDetails, purchaseRate, partialDiscountRmb decimal.Decimal) (*CostBreakdown, error) {
	if len(items) == 0 {
		return nil, shared.NewValidationError("At least one item required", map[string]string{
			"items": "a shipment must have at least one item",
		})
	}
	if partialDiscountRmb.IsNegative() {
		return nil, shared.NewValidationError("Invalid discount", map[string]string{
			"partial_discount_rmb": "discount cannot be negative",
		})
	}

	b := &CostBreakdown{}

	// Purchase side: item purchase costs are already stored rounded, the
	// shipment total is their exact sum.
	totalPieces := int64(0)
	for _, it := range items {
		b.TotalPurchaseCostRmb = b.TotalPurchaseCostRmb.Add(it.TotalPurchaseCostRmb)
		totalPieces += it.TotalPieces
	}

	purchaseEgp, err := valueobject.Convert(b.TotalPurchaseCostRmb, valueobject.RMB, valueobject.EGP, purchaseRate)
	if err != nil {
		return nil, shared.NewValidationError("Invalid purchase rate", map[string]string{
			"purchase_rmb_to_egp": "purchase rate must be greater than zero",
		})
	}
	b.PurchaseCostEgp = purchaseEgp
	b.DiscountEgp = partialDiscountRmb.Mul(purchaseRate)
	b.DiscountedPurchaseCostEgp = b.PurchaseCostEgp.Sub(b.DiscountEgp)

	// Commission and freight come from the shipping step; its rates are the
	// snapshot captured at shipping time, not the purchase-step rate.
	if shipping != nil {
		b.CommissionRmb = b.TotalPurchaseCostRmb.Mul(shipping.CommissionRatePercent).Div(oneHundred)
		b.CommissionEgp = b.CommissionRmb.Mul(shipping.RmbToEgpRate)

		b.ShippingCostUsd = shipping.ShippingAreaSqm.Mul(shipping.CostPerSqmUsd)
		b.ShippingCostRmb = b.ShippingCostUsd.Mul(shipping.UsdToRmbRate)
		b.ShippingCostEgp = b.ShippingCostRmb.Mul(shipping.RmbToEgpRate)
	}

	for _, it := range items {
		b.TotalCustomsEgp = b.TotalCustomsEgp.Add(it.ItemCustomsEgp())
		b.TotalTakhreegEgp = b.TotalTakhreegEgp.Add(it.ItemTakhreegEgp())
	}

	// Missing-piece pricing: distribute shared costs proportionally by piece
	// count, derive each item's unit cost fresh from the current totals, and
	// price out the declared missing pieces.
	extras := b.TotalCustomsEgp.Add(b.TotalTakhreegEgp).Add(b.ShippingCostEgp).Add(b.CommissionEgp)
	totalPiecesDec := decimal.NewFromInt(totalPieces)

	b.Items = make([]ItemCost, 0, len(items))
	for _, it := range items {
		ic := ItemCost{
			ItemID:      it.ID,
			TotalPieces: it.TotalPieces,
		}
		if totalPieces > 0 {
			ic.PieceRatio = decimal.NewFromInt(it.TotalPieces).Div(totalPiecesDec)
		}
		ic.ShareOfExtrasEgp = ic.PieceRatio.Mul(extras)
		ic.TotalCostEgp = it.TotalPurchaseCostRmb.Mul(purchaseRate).Add(ic.ShareOfExtrasEgp)
		if it.TotalPieces > 0 {
			ic.UnitCostEgp = ic.TotalCostEgp.Div(decimal.NewFromInt(it.TotalPieces))
		}
		ic.MissingCostEgp = decimal.NewFromInt(it.MissingPieces).Mul(ic.UnitCostEgp).Round(2)

		b.TotalMissingCostEgp = b.TotalMissingCostEgp.Add(ic.MissingCostEgp)
		b.Items = append(b.Items, ic)
	}

	b.FinalTotalCostEgp = b.DiscountedPurchaseCostEgp.
		Add(b.CommissionEgp).
		Add(b.ShippingCostEgp).
		Add(b.TotalCustomsEgp).
		Add(b.TotalTakhreegEgp).
		Sub(b.TotalMissingCostEgp)

	return b, nil
}

// ItemCostFor returns the per-item cost slice for the given item ID
func (b *CostBreakdown) ItemCostFor(itemID uuid.UUID) (ItemCost, bool) {
	for _, ic := range b.Items {
		if ic.ItemID == itemID {
			return ic, true
		}
	}
	return ItemCost{}, false
}
