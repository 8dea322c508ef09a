package shipment

import (
	"time"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shipment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateShipmentRequest creates a shipment at wizard step 1
type CreateShipmentRequest struct {
	Code               string           `json:"code" binding:"required,min=1,max=50"`
	Name               string           `json:"name" binding:"required,min=1,max=200"`
	PurchaseDate       time.Time        `json:"purchase_date" binding:"required"`
	PurchaseRmbToEgp   decimal.Decimal  `json:"purchase_rmb_to_egp" binding:"required"`
	PartialDiscountRmb *decimal.Decimal `json:"partial_discount_rmb"`
	DiscountNotes      string           `json:"discount_notes"`
}

// UpdateBasicsRequest rewrites the step-1 fields of an existing shipment
type UpdateBasicsRequest struct {
	Name               string           `json:"name" binding:"required,min=1,max=200"`
	PurchaseDate       time.Time        `json:"purchase_date" binding:"required"`
	PurchaseRmbToEgp   decimal.Decimal  `json:"purchase_rmb_to_egp" binding:"required"`
	PartialDiscountRmb *decimal.Decimal `json:"partial_discount_rmb"`
	DiscountNotes      *string          `json:"discount_notes"`
}

// ItemInput is one line item in a step-2 write. Inputs carrying an ID update
// the existing row in place so item order (and with it allocation order) is
// preserved; inputs without an ID append new rows.
type ItemInput struct {
	ID                   *uuid.UUID      `json:"id"`
	ProductName          string          `json:"product_name" binding:"required,min=1,max=200"`
	SupplierID           uuid.UUID       `json:"supplier_id" binding:"required"`
	ProductTypeID        *uuid.UUID      `json:"product_type_id"`
	OriginCountry        string          `json:"origin_country" binding:"max=100"`
	Cartons              int64           `json:"cartons" binding:"required,gt=0"`
	PiecesPerCarton      int64           `json:"pieces_per_carton" binding:"required,gt=0"`
	PricePerPieceRmb     decimal.Decimal `json:"price_per_piece_rmb"`
	CustomsPerPieceEgp   decimal.Decimal `json:"customs_per_piece_egp"`
	TakhreegPerCartonEgp decimal.Decimal `json:"takhreeg_per_carton_egp"`
}

// ReplaceItemsRequest is the step-2 write: the full item list of the shipment
type ReplaceItemsRequest struct {
	Items []ItemInput `json:"items" binding:"required,min=1,dive"`
}

// ShippingDetailsRequest is the step-3 write
type ShippingDetailsRequest struct {
	ShippingCompanyID     uuid.UUID       `json:"shipping_company_id" binding:"required"`
	CommissionRatePercent decimal.Decimal `json:"commission_rate_percent"`
	ShippingAreaSqm       decimal.Decimal `json:"shipping_area_sqm"`
	CostPerSqmUsd         decimal.Decimal `json:"cost_per_sqm_usd"`
	UsdToRmbRate          decimal.Decimal `json:"usd_to_rmb_rate" binding:"required"`
	RmbToEgpRate          decimal.Decimal `json:"rmb_to_egp_rate" binding:"required"`
}

// MissingPieceInput declares missing pieces for one item
type MissingPieceInput struct {
	ItemID        uuid.UUID `json:"item_id" binding:"required"`
	MissingPieces int64     `json:"missing_pieces" binding:"min=0"`
}

// MissingPiecesRequest is the isolated missing-pieces write: it touches only
// the missing fields and the derived totals, never the other item inputs.
type MissingPiecesRequest struct {
	Items []MissingPieceInput `json:"items" binding:"required,min=1,dive"`
}

// ListFilter represents filter options for shipment lists
type ListFilter struct {
	Status            string     `form:"status"`
	ShippingCompanyID *uuid.UUID `form:"shipping_company_id"`
	FromDate          *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate            *time.Time `form:"to_date" time_format:"2006-01-02"`
	IncludeArchived   bool       `form:"include_archived"`
	Search            string     `form:"search"`
	Page              int        `form:"page"`
	PageSize          int        `form:"page_size" binding:"omitempty,max=100"`
}

func (f ListFilter) toDomain() (shipment.Filter, error) {
	domainFilter := shipment.Filter{
		ShippingCompany: f.ShippingCompanyID,
		FromDate:        f.FromDate,
		ToDate:          f.ToDate,
		IncludeArchived: f.IncludeArchived,
		Search:          f.Search,
		Page:            f.Page,
		PageSize:        f.PageSize,
	}
	if domainFilter.Page <= 0 {
		domainFilter.Page = 1
	}
	if domainFilter.PageSize <= 0 {
		domainFilter.PageSize = 20
	}
	if f.Status != "" {
		status := shipment.Status(f.Status)
		if !status.IsValid() {
			return shipment.Filter{}, errInvalidStatus
		}
		domainFilter.Status = &status
	}
	return domainFilter, nil
}

// CostTotalsResponse is the derived cost rollup with 2-decimal amounts
type CostTotalsResponse struct {
	TotalPurchaseCostRmb      string `json:"total_purchase_cost_rmb"`
	PurchaseCostEgp           string `json:"purchase_cost_egp"`
	DiscountEgp               string `json:"discount_egp"`
	DiscountedPurchaseCostEgp string `json:"discounted_purchase_cost_egp"`
	CommissionRmb             string `json:"commission_rmb"`
	CommissionEgp             string `json:"commission_egp"`
	ShippingCostUsd           string `json:"shipping_cost_usd"`
	ShippingCostRmb           string `json:"shipping_cost_rmb"`
	ShippingCostEgp           string `json:"shipping_cost_egp"`
	TotalCustomsEgp           string `json:"total_customs_egp"`
	TotalTakhreegEgp          string `json:"total_takhreeg_egp"`
	TotalMissingCostEgp       string `json:"total_missing_cost_egp"`
	FinalTotalCostEgp         string `json:"final_total_cost_egp"`
}

func toCostTotalsResponse(t shipment.CostTotals) CostTotalsResponse {
	return CostTotalsResponse{
		TotalPurchaseCostRmb:      t.TotalPurchaseCostRmb.StringFixed(2),
		PurchaseCostEgp:           t.PurchaseCostEgp.StringFixed(2),
		DiscountEgp:               t.DiscountEgp.StringFixed(2),
		DiscountedPurchaseCostEgp: t.DiscountedPurchaseCostEgp.StringFixed(2),
		CommissionRmb:             t.CommissionRmb.StringFixed(2),
		CommissionEgp:             t.CommissionEgp.StringFixed(2),
		ShippingCostUsd:           t.ShippingCostUsd.StringFixed(2),
		ShippingCostRmb:           t.ShippingCostRmb.StringFixed(2),
		ShippingCostEgp:           t.ShippingCostEgp.StringFixed(2),
		TotalCustomsEgp:           t.TotalCustomsEgp.StringFixed(2),
		TotalTakhreegEgp:          t.TotalTakhreegEgp.StringFixed(2),
		TotalMissingCostEgp:       t.TotalMissingCostEgp.StringFixed(2),
		FinalTotalCostEgp:         t.FinalTotalCostEgp.StringFixed(2),
	}
}

// ShipmentResponse represents a shipment in API responses
type ShipmentResponse struct {
	ID                 uuid.UUID          `json:"id"`
	Code               string             `json:"code"`
	Name               string             `json:"name"`
	Status             string             `json:"status"`
	PurchaseDate       time.Time          `json:"purchase_date"`
	PurchaseRmbToEgp   string             `json:"purchase_rmb_to_egp"`
	PartialDiscountRmb string             `json:"partial_discount_rmb"`
	DiscountNotes      string             `json:"discount_notes"`
	ShippingCompanyID  *uuid.UUID         `json:"shipping_company_id"`
	Totals             CostTotalsResponse `json:"totals"`
	TotalPaidEgp       string             `json:"total_paid_egp"`
	BalanceEgp         string             `json:"balance_egp"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
	Version            int                `json:"version"`
}

// ToShipmentResponse converts a domain shipment to its response form
func ToShipmentResponse(s *shipment.Shipment) ShipmentResponse {
	return ShipmentResponse{
		ID:                 s.ID,
		Code:               s.Code,
		Name:               s.Name,
		Status:             string(s.Status),
		PurchaseDate:       s.PurchaseDate,
		PurchaseRmbToEgp:   s.PurchaseRmbToEgp.String(),
		PartialDiscountRmb: s.PartialDiscountRmb.StringFixed(2),
		DiscountNotes:      s.DiscountNotes,
		ShippingCompanyID:  s.ShippingCompanyID,
		Totals:             toCostTotalsResponse(s.Totals),
		TotalPaidEgp:       s.TotalPaidEgp.StringFixed(2),
		BalanceEgp:         s.BalanceEgp.StringFixed(2),
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
		Version:            s.Version,
	}
}

// ItemResponse represents a line item in API responses. Unit cost and the
// share of extras come from the cost aggregator and are present only when the
// shipment has a computable breakdown.
type ItemResponse struct {
	ID                   uuid.UUID  `json:"id"`
	ShipmentID           uuid.UUID  `json:"shipment_id"`
	ProductName          string     `json:"product_name"`
	SupplierID           uuid.UUID  `json:"supplier_id"`
	ProductTypeID        *uuid.UUID `json:"product_type_id"`
	OriginCountry        string     `json:"origin_country"`
	Cartons              int64      `json:"cartons"`
	PiecesPerCarton      int64      `json:"pieces_per_carton"`
	TotalPieces          int64      `json:"total_pieces"`
	PricePerPieceRmb     string     `json:"price_per_piece_rmb"`
	TotalPurchaseCostRmb string     `json:"total_purchase_cost_rmb"`
	CustomsPerPieceEgp   string     `json:"customs_per_piece_egp"`
	TakhreegPerCartonEgp string     `json:"takhreeg_per_carton_egp"`
	MissingPieces        int64      `json:"missing_pieces"`
	MissingCostEgp       string     `json:"missing_cost_egp"`
	UnitCostEgp          string     `json:"unit_cost_egp,omitempty"`
	ShareOfExtrasEgp     string     `json:"share_of_extras_egp,omitempty"`
}

func toItemResponse(it *shipment.Item, breakdown *shipment.CostBreakdown) ItemResponse {
	resp := ItemResponse{
		ID:                   it.ID,
		ShipmentID:           it.ShipmentID,
		ProductName:          it.ProductName,
		SupplierID:           it.SupplierID,
		ProductTypeID:        it.ProductTypeID,
		OriginCountry:        it.OriginCountry,
		Cartons:              it.Cartons,
		PiecesPerCarton:      it.PiecesPerCarton,
		TotalPieces:          it.TotalPieces,
		PricePerPieceRmb:     it.PricePerPieceRmb.StringFixed(2),
		TotalPurchaseCostRmb: it.TotalPurchaseCostRmb.StringFixed(2),
		CustomsPerPieceEgp:   it.CustomsPerPieceEgp.StringFixed(2),
		TakhreegPerCartonEgp: it.TakhreegPerCartonEgp.StringFixed(2),
		MissingPieces:        it.MissingPieces,
		MissingCostEgp:       it.MissingCostEgp.StringFixed(2),
	}
	if breakdown != nil {
		if ic, ok := breakdown.ItemCostFor(it.ID); ok {
			resp.UnitCostEgp = ic.UnitCostEgp.StringFixed(2)
			resp.ShareOfExtrasEgp = ic.ShareOfExtrasEgp.StringFixed(2)
		}
	}
	return resp
}

// ShippingDetailsResponse represents step-3 shipping inputs in API responses
type ShippingDetailsResponse struct {
	CommissionRatePercent string    `json:"commission_rate_percent"`
	ShippingAreaSqm       string    `json:"shipping_area_sqm"`
	CostPerSqmUsd         string    `json:"cost_per_sqm_usd"`
	UsdToRmbRate          string    `json:"usd_to_rmb_rate"`
	RmbToEgpRate          string    `json:"rmb_to_egp_rate"`
	RatesUpdatedAt        time.Time `json:"rates_updated_at"`
}

func toShippingDetailsResponse(d *shipment.ShippingDetails) *ShippingDetailsResponse {
	if d == nil {
		return nil
	}
	return &ShippingDetailsResponse{
		CommissionRatePercent: d.CommissionRatePercent.String(),
		ShippingAreaSqm:       d.ShippingAreaSqm.String(),
		CostPerSqmUsd:         d.CostPerSqmUsd.StringFixed(2),
		UsdToRmbRate:          d.UsdToRmbRate.String(),
		RmbToEgpRate:          d.RmbToEgpRate.String(),
		RatesUpdatedAt:        d.RatesUpdatedAt,
	}
}

// ShipmentDetailResponse bundles the shipment with its items and shipping step
type ShipmentDetailResponse struct {
	ShipmentResponse
	Items           []ItemResponse           `json:"items"`
	ShippingDetails *ShippingDetailsResponse `json:"shipping_details"`
}

// SupplierGoodsSummaryResponse is one supplier's goods-cost position within a
// shipment, denominated in RMB. Remaining may be negative.
type SupplierGoodsSummaryResponse struct {
	SupplierID    uuid.UUID `json:"supplier_id"`
	GoodsTotalRmb string    `json:"supplier_goods_total_rmb"`
	PaidRmb       string    `json:"supplier_paid_rmb"`
	RemainingRmb  string    `json:"supplier_remaining_rmb"`
}

func toGoodsSummaryResponse(s shipment.SupplierGoodsSummary) SupplierGoodsSummaryResponse {
	return SupplierGoodsSummaryResponse{
		SupplierID:    s.SupplierID,
		GoodsTotalRmb: s.GoodsTotalRmb.StringFixed(2),
		PaidRmb:       s.PaidRmb.StringFixed(2),
		RemainingRmb:  s.RemainingRmb.StringFixed(2),
	}
}

// CreatePaymentRequest records a payment against a shipment
type CreatePaymentRequest struct {
	ShipmentID        uuid.UUID       `json:"shipment_id" binding:"required"`
	PartyType         string          `json:"party_type" binding:"required,oneof=SUPPLIER SHIPPING_COMPANY"`
	PartyID           uuid.UUID       `json:"party_id" binding:"required"`
	Currency          string          `json:"currency" binding:"required,oneof=RMB USD EGP"`
	AmountOriginal    decimal.Decimal `json:"amount_original" binding:"required"`
	ExchangeRateToEgp decimal.Decimal `json:"exchange_rate_to_egp"`
	CostComponent     string          `json:"cost_component" binding:"required,oneof=GOODS SHIPPING CUSTOMS_TAKHREEG OTHER"`
	Method            string          `json:"method" binding:"required,oneof=CASH WALLET BANK_TRANSFER SHORTAGE OTHER"`
	PaidAt            time.Time       `json:"paid_at"`
	Notes             string          `json:"notes"`
	AutoAllocate      bool            `json:"auto_allocate"`

	// Set from the Idempotency-Key header by the handler, never from the body.
	IdempotencyKey string `json:"-"`
}

// AttachmentResponse is the stored receipt metadata
type AttachmentResponse struct {
	URL          string `json:"url"`
	OriginalName string `json:"original_name"`
	MimeType     string `json:"mime_type"`
	Size         int64  `json:"size"`
}

// AllocationResponse is one append-only allocation row
type AllocationResponse struct {
	ID              uuid.UUID `json:"id"`
	PaymentID       uuid.UUID `json:"payment_id"`
	ShipmentID      uuid.UUID `json:"shipment_id"`
	SupplierID      uuid.UUID `json:"supplier_id"`
	CostComponent   string    `json:"cost_component"`
	Currency        string    `json:"currency"`
	AllocatedAmount string    `json:"allocated_amount"`
	CreatedAt       time.Time `json:"created_at"`
}

func toAllocationResponse(a shipment.PaymentAllocation) AllocationResponse {
	return AllocationResponse{
		ID:              a.ID,
		PaymentID:       a.PaymentID,
		ShipmentID:      a.ShipmentID,
		SupplierID:      a.SupplierID,
		CostComponent:   string(a.CostComponent),
		Currency:        string(a.Currency),
		AllocatedAmount: a.AllocatedAmount.StringFixed(2),
		CreatedAt:       a.CreatedAt,
	}
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID                uuid.UUID            `json:"id"`
	ShipmentID        uuid.UUID            `json:"shipment_id"`
	PartyType         string               `json:"party_type"`
	PartyID           uuid.UUID            `json:"party_id"`
	Currency          string               `json:"currency"`
	AmountOriginal    string               `json:"amount_original"`
	ExchangeRateToEgp string               `json:"exchange_rate_to_egp"`
	AmountEgp         string               `json:"amount_egp"`
	CostComponent     string               `json:"cost_component"`
	Method            string               `json:"method"`
	PaidAt            time.Time            `json:"paid_at"`
	Notes             string               `json:"notes"`
	Attachment        *AttachmentResponse  `json:"attachment,omitempty"`
	Allocations       []AllocationResponse `json:"allocations,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
}

// ToPaymentResponse converts a domain payment to its response form
func ToPaymentResponse(p *shipment.Payment, allocations []shipment.PaymentAllocation) PaymentResponse {
	resp := PaymentResponse{
		ID:                p.ID,
		ShipmentID:        p.ShipmentID,
		PartyType:         string(p.PartyType),
		PartyID:           p.PartyID,
		Currency:          string(p.Amount.Currency()),
		AmountOriginal:    p.Amount.StringFixed(2),
		ExchangeRateToEgp: p.ExchangeRateToEgp.String(),
		AmountEgp:         p.AmountEgp.StringFixed(2),
		CostComponent:     string(p.CostComponent),
		Method:            string(p.Method),
		PaidAt:            p.PaidAt,
		Notes:             p.Notes,
		CreatedAt:         p.CreatedAt,
	}
	if p.Attachment != nil {
		resp.Attachment = &AttachmentResponse{
			URL:          p.Attachment.URL,
			OriginalName: p.Attachment.OriginalName,
			MimeType:     p.Attachment.MimeType,
			Size:         p.Attachment.Size,
		}
	}
	for _, a := range allocations {
		resp.Allocations = append(resp.Allocations, toAllocationResponse(a))
	}
	return resp
}

// PaymentListFilter represents filter options for payment lists
type PaymentListFilter struct {
	ShipmentID    *uuid.UUID `form:"shipment_id"`
	PartyType     string     `form:"party_type" binding:"omitempty,oneof=SUPPLIER SHIPPING_COMPANY"`
	PartyID       *uuid.UUID `form:"party_id"`
	CostComponent string     `form:"cost_component" binding:"omitempty,oneof=GOODS SHIPPING CUSTOMS_TAKHREEG OTHER"`
	Method        string     `form:"method" binding:"omitempty,oneof=CASH WALLET BANK_TRANSFER SHORTAGE OTHER"`
	FromDate      *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate        *time.Time `form:"to_date" time_format:"2006-01-02"`
}

func (f PaymentListFilter) toDomain() shipment.PaymentFilter {
	domainFilter := shipment.PaymentFilter{
		ShipmentID: f.ShipmentID,
		PartyID:    f.PartyID,
		FromDate:   f.FromDate,
		ToDate:     f.ToDate,
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
