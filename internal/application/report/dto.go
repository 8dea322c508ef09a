package report

import (
	"time"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/report"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shipment"
	"github.com/google/uuid"
)

// MovementReportFilter restricts both accounting reports. Totals are always
// computed over the filtered set.
type MovementReportFilter struct {
	FromDate        *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate          *time.Time `form:"to_date" time_format:"2006-01-02"`
	ShipmentID      *uuid.UUID `form:"shipment_id"`
	PartyType       string     `form:"party_type" binding:"omitempty,oneof=SUPPLIER SHIPPING_COMPANY"`
	PartyID         *uuid.UUID `form:"party_id"`
	CostComponent   string     `form:"cost_component" binding:"omitempty,oneof=GOODS SHIPPING CUSTOMS_TAKHREEG OTHER"`
	Method          string     `form:"method" binding:"omitempty,oneof=CASH WALLET BANK_TRANSFER SHORTAGE OTHER"`
	IncludeArchived bool       `form:"include_archived"`
}

func (f MovementReportFilter) toDomain() report.MovementFilter {
	domainFilter := report.MovementFilter{
		FromDate:        f.FromDate,
		ToDate:          f.ToDate,
		ShipmentID:      f.ShipmentID,
		PartyID:         f.PartyID,
		IncludeArchived: f.IncludeArchived,
	}
	if f.PartyType != "" {
		partyType := shipment.PartyType(f.PartyType)
		domainFilter.PartyType = &partyType
	}
	if f.CostComponent != "" {
		component := shipment.CostComponent(f.CostComponent)
		domainFilter.CostComponent = &component
	}
	if f.Method != "" {
		method := shipment.PaymentMethod(f.Method)
		domainFilter.Method = &method
	}
	return domainFilter
}

// MovementEntryResponse is one row of the movement ledger
type MovementEntryResponse struct {
	Date          time.Time  `json:"date"`
	Direction     string     `json:"direction"`
	ShipmentID    uuid.UUID  `json:"shipment_id"`
	ShipmentCode  string     `json:"shipment_code,omitempty"`
	CostComponent string     `json:"cost_component"`
	PartyType     string     `json:"party_type,omitempty"`
	PartyID       *uuid.UUID `json:"party_id,omitempty"`
	Method        string     `json:"method,omitempty"`
	IsAllocation  bool       `json:"is_allocation"`
	AmountEgp     string     `json:"amount_egp"`
	AmountRmb     string     `json:"amount_rmb"`
}

// MovementTotalsResponse aggregates the filtered entry set
type MovementTotalsResponse struct {
	TotalCostEgp   string `json:"total_cost_egp"`
	TotalPaidEgp   string `json:"total_paid_egp"`
	NetMovementEgp string `json:"net_movement_egp"`
	TotalCostRmb   string `json:"total_cost_rmb"`
	TotalPaidRmb   string `json:"total_paid_rmb"`
}

// MovementReportResponse is the merged, date-ascending movement ledger
type MovementReportResponse struct {
	Entries []MovementEntryResponse `json:"entries"`
	Totals  MovementTotalsResponse  `json:"totals"`
}

func toMovementReportResponse(r *report.MovementReport) MovementReportResponse {
	resp := MovementReportResponse{
		Entries: make([]MovementEntryResponse, 0, len(r.Entries)),
		Totals: MovementTotalsResponse{
			TotalCostEgp:   r.Totals.TotalCostEgp.StringFixed(2),
			TotalPaidEgp:   r.Totals.TotalPaidEgp.StringFixed(2),
			NetMovementEgp: r.Totals.NetMovementEgp.StringFixed(2),
			TotalCostRmb:   r.Totals.TotalCostRmb.StringFixed(2),
			TotalPaidRmb:   r.Totals.TotalPaidRmb.StringFixed(2),
		},
	}
	for _, e := range r.Entries {
		resp.Entries = append(resp.Entries, MovementEntryResponse{
			Date:          e.Date,
			Direction:     string(e.Direction),
			ShipmentID:    e.ShipmentID,
			ShipmentCode:  e.ShipmentCode,
			CostComponent: string(e.CostComponent),
			PartyType:     string(e.PartyType),
			PartyID:       e.PartyID,
			Method:        string(e.Method),
			IsAllocation:  e.IsAllocation,
			AmountEgp:     e.AmountEgp.StringFixed(2),
			AmountRmb:     e.AmountRmb.StringFixed(2),
		})
	}
	return resp
}

// MethodBucketResponse aggregates payments recorded through one method
type MethodBucketResponse struct {
	Method       string `json:"method"`
	Count        int    `json:"count"`
	TotalEgp     string `json:"total_egp"`
	TotalRmb     string `json:"total_rmb"`
	ShareOfTotal string `json:"share_of_total"`
}

// PaymentMethodsReportResponse groups the filtered payment set by method
type PaymentMethodsReportResponse struct {
	Buckets  []MethodBucketResponse `json:"buckets"`
	TotalEgp string                 `json:"total_egp"`
}

func toPaymentMethodsResponse(r *report.PaymentMethodsReport) PaymentMethodsReportResponse {
	resp := PaymentMethodsReportResponse{
		Buckets:  make([]MethodBucketResponse, 0, len(r.Buckets)),
		TotalEgp: r.TotalEgp.StringFixed(2),
	}
	for _, b := range r.Buckets {
		resp.Buckets = append(resp.Buckets, MethodBucketResponse{
			Method:       string(b.Method),
			Count:        b.Count,
			TotalEgp:     b.TotalEgp.StringFixed(2),
			TotalRmb:     b.TotalRmb.StringFixed(2),
			ShareOfTotal: b.ShareOfTotal.StringFixed(2),
		})
	}
	return resp
}
