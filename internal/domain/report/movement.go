package report

import (
	"sort"
	"time"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shipment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Direction tags a movement row as accrued cost or recorded payment
type Direction string

const (
	DirectionCost    Direction = "COST"
	DirectionPayment Direction = "PAYMENT"
)

// MovementEntry is one row of the movement report: either a cost component
// accrued by a shipment or a payment (or allocation) against it.
type MovementEntry struct {
	Date          time.Time              `json:"date"`
	Direction     Direction              `json:"direction"`
	ShipmentID    uuid.UUID              `json:"shipment_id"`
	ShipmentCode  string                 `json:"shipment_code"`
	CostComponent shipment.CostComponent `json:"cost_component"`
	PartyType     shipment.PartyType     `json:"party_type,omitempty"`
	PartyID       *uuid.UUID             `json:"party_id,omitempty"`
	Method        shipment.PaymentMethod `json:"method,omitempty"`
	IsAllocation  bool                   `json:"is_allocation"`
	AmountEgp     decimal.Decimal        `json:"amount_egp"`
	AmountRmb     decimal.Decimal        `json:"amount_rmb"`
}

// MovementTotals aggregates the filtered entry set only
type MovementTotals struct {
	TotalCostEgp   decimal.Decimal `json:"total_cost_egp"`
	TotalPaidEgp   decimal.Decimal `json:"total_paid_egp"`
	NetMovementEgp decimal.Decimal `json:"net_movement_egp"`
	TotalCostRmb   decimal.Decimal `json:"total_cost_rmb"`
	TotalPaidRmb   decimal.Decimal `json:"total_paid_rmb"`
}

// MovementReport is the merged, date-ascending movement ledger with totals
type MovementReport struct {
	Entries []MovementEntry `json:"entries"`
	Totals  MovementTotals  `json:"totals"`
}

// MovementFilter restricts the report before any aggregation happens.
// Totals are computed over the filtered set, never globally.
type MovementFilter struct {
	FromDate        *time.Time
	ToDate          *time.Time
	ShipmentID      *uuid.UUID
	PartyType       *shipment.PartyType
	PartyID         *uuid.UUID
	CostComponent   *shipment.CostComponent
	Method          *shipment.PaymentMethod
	IncludeArchived bool
}

// ShipmentCosts couples a shipment with its computed cost breakdown for
// report input. The breakdown comes from the cost aggregator, so the report
// and the write path always agree.
type ShipmentCosts struct {
	Shipment  *shipment.Shipment
	Breakdown *shipment.CostBreakdown
}

// BuildMovementReport merges the cost stream (one row per cost component per
// shipment, dated at the purchase date) with the payment stream (payments
// plus allocations, tagged IsAllocation) into a date-ascending ledger.
func BuildMovementReport(
	shipments []ShipmentCosts,
	payments []*shipment.Payment,
	allocations []shipment.PaymentAllocation,
	filter MovementFilter,
) *MovementReport {
	entries := make([]MovementEntry, 0, len(shipments)*4+len(payments)+len(allocations))

	for _, sc := range shipments {
		if sc.Shipment == nil || sc.Breakdown == nil {
			continue
		}
		if !filter.IncludeArchived && sc.Shipment.IsArchived() {
			continue
		}
		for _, row := range costRows(sc) {
			if filterMatchesCost(filter, sc.Shipment, row) {
				entries = append(entries, row)
			}
		}
	}

	paymentByID := make(map[uuid.UUID]*shipment.Payment, len(payments))
	for _, p := range payments {
		paymentByID[p.ID] = p
		row := MovementEntry{
			Date:          p.PaidAt,
			Direction:     DirectionPayment,
			ShipmentID:    p.ShipmentID,
			CostComponent: p.CostComponent,
			PartyType:     p.PartyType,
			PartyID:       ref(p.PartyID),
			Method:        p.Method,
			AmountEgp:     p.AmountEgp,
			AmountRmb:     p.AmountInRmb(),
		}
		if filterMatchesPayment(filter, row) {
			entries = append(entries, row)
		}
	}

	for _, a := range allocations {
		date := a.CreatedAt
		var method shipment.PaymentMethod
		if p, ok := paymentByID[a.PaymentID]; ok {
			date = p.PaidAt
			method = p.Method
		}
		row := MovementEntry{
			Date:          date,
			Direction:     DirectionPayment,
			ShipmentID:    a.ShipmentID,
			CostComponent: a.CostComponent,
			PartyType:     shipment.PartyTypeSupplier,
			PartyID:       ref(a.SupplierID),
			Method:        method,
			IsAllocation:  true,
			AmountRmb:     a.AllocatedAmount,
		}
		if filterMatchesPayment(filter, row) {
			entries = append(entries, row)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})

	totals := MovementTotals{}
	for _, e := range entries {
		switch e.Direction {
		case DirectionCost:
			totals.TotalCostEgp = totals.TotalCostEgp.Add(e.AmountEgp)
			totals.TotalCostRmb = totals.TotalCostRmb.Add(e.AmountRmb)
		case DirectionPayment:
			totals.TotalPaidEgp = totals.TotalPaidEgp.Add(e.AmountEgp)
			totals.TotalPaidRmb = totals.TotalPaidRmb.Add(e.AmountRmb)
		}
	}
	totals.NetMovementEgp = totals.TotalCostEgp.Sub(totals.TotalPaidEgp)

	return &MovementReport{Entries: entries, Totals: totals}
}

// costRows explodes one shipment's breakdown into per-component cost rows
func costRows(sc ShipmentCosts) []MovementEntry {
	s := sc.Shipment
	b := sc.Breakdown

	base := MovementEntry{
		Date:         s.PurchaseDate,
		Direction:    DirectionCost,
		ShipmentID:   s.ID,
		ShipmentCode: s.Code,
	}

	rows := make([]MovementEntry, 0, 3)

	goods := base
	goods.CostComponent = shipment.CostComponentGoods
	goods.AmountEgp = b.DiscountedPurchaseCostEgp
	goods.AmountRmb = b.TotalPurchaseCostRmb
	rows = append(rows, goods)

	if !b.ShippingCostEgp.IsZero() || !b.CommissionEgp.IsZero() {
		ship := base
		ship.CostComponent = shipment.CostComponentShipping
		ship.AmountEgp = b.ShippingCostEgp.Add(b.CommissionEgp)
		ship.AmountRmb = b.ShippingCostRmb.Add(b.CommissionRmb)
		rows = append(rows, ship)
	}

	clearance := b.TotalCustomsEgp.Add(b.TotalTakhreegEgp)
	if !clearance.IsZero() {
		cust := base
		cust.CostComponent = shipment.CostComponentCustomsTakhreeg
		cust.AmountEgp = clearance
		rows = append(rows, cust)
	}

	return rows
}

func filterMatchesCost(f MovementFilter, s *shipment.Shipment, e MovementEntry) bool {
	if !dateInRange(f, e.Date) {
		return false
	}
	if f.ShipmentID != nil && *f.ShipmentID != e.ShipmentID {
		return false
	}
	if f.CostComponent != nil && *f.CostComponent != e.CostComponent {
		return false
	}
	// Party and method filters only constrain the payment stream, except a
	// shipping-company party filter which keeps costs of that company's
	// shipments.
	if f.PartyID != nil {
		if s.ShippingCompanyID == nil || *s.ShippingCompanyID != *f.PartyID {
			return false
		}
	}
	if f.Method != nil {
		return false
	}
	return true
}

func filterMatchesPayment(f MovementFilter, e MovementEntry) bool {
	if !dateInRange(f, e.Date) {
		return false
	}
	if f.ShipmentID != nil && *f.ShipmentID != e.ShipmentID {
		return false
	}
	if f.CostComponent != nil && *f.CostComponent != e.CostComponent {
		return false
	}
	if f.PartyType != nil && *f.PartyType != e.PartyType {
		return false
	}
	if f.PartyID != nil && (e.PartyID == nil || *e.PartyID != *f.PartyID) {
		return false
	}
	if f.Method != nil && *f.Method != e.Method {
		return false
	}
	return true
}

func dateInRange(f MovementFilter, d time.Time) bool {
	if f.FromDate != nil && d.Before(*f.FromDate) {
		return false
	}
	if f.ToDate != nil && d.After(*f.ToDate) {
		return false
	}
	return true
}

func ref(id uuid.UUID) *uuid.UUID {
	return &id
}
