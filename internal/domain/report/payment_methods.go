package report

import (
	"sort"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shipment"
	"github.com/shopspring/decimal"
)

// MethodBucket aggregates payments recorded through one payment method
type MethodBucket struct {
	Method       shipment.PaymentMethod `json:"method"`
	Count        int                    `json:"count"`
	TotalEgp     decimal.Decimal        `json:"total_egp"`
	TotalRmb     decimal.Decimal        `json:"total_rmb"`
	ShareOfTotal decimal.Decimal        `json:"share_of_total"`
}

// PaymentMethodsReport groups the filtered payment set by method
type PaymentMethodsReport struct {
	Buckets  []MethodBucket  `json:"buckets"`
	TotalEgp decimal.Decimal `json:"total_egp"`
}

// BuildPaymentMethodsReport groups payments by method over the same filter
// surface as the movement report. Shares are percentages of the filtered
// EGP total.
func BuildPaymentMethodsReport(payments []*shipment.Payment, filter MovementFilter) *PaymentMethodsReport {
	byMethod := make(map[shipment.PaymentMethod]*MethodBucket)

	for _, p := range payments {
		row := MovementEntry{
			Date:          p.PaidAt,
			Direction:     DirectionPayment,
			ShipmentID:    p.ShipmentID,
			CostComponent: p.CostComponent,
			PartyType:     p.PartyType,
			PartyID:       ref(p.PartyID),
			Method:        p.Method,
		}
		if !filterMatchesPayment(filter, row) {
			continue
		}

		b, ok := byMethod[p.Method]
		if !ok {
			b = &MethodBucket{Method: p.Method}
			byMethod[p.Method] = b
		}
		b.Count++
		b.TotalEgp = b.TotalEgp.Add(p.AmountEgp)
		b.TotalRmb = b.TotalRmb.Add(p.AmountInRmb())
	}

	report := &PaymentMethodsReport{}
	for _, b := range byMethod {
		report.TotalEgp = report.TotalEgp.Add(b.TotalEgp)
	}
	hundred := decimal.NewFromInt(100)
	for _, b := range byMethod {
		if report.TotalEgp.GreaterThan(decimal.Zero) {
			b.ShareOfTotal = b.TotalEgp.Mul(hundred).Div(report.TotalEgp)
		}
		report.Buckets = append(report.Buckets, *b)
	}

	sort.Slice(report.Buckets, func(i, j int) bool {
		return report.Buckets[i].TotalEgp.GreaterThan(report.Buckets[j].TotalEgp)
	})

	return report
}
