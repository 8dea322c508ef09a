package shipment

import (
	"time"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShippingDetails holds the step-3 shipping inputs for a shipment, one-to-one
// with the shipment. Exchange rates are snapshotted at capture time and are
// not recomputed afterwards.
type ShippingDetails struct {
	shared.BaseEntity
	ShipmentID            uuid.UUID       `json:"shipment_id"`
	CommissionRatePercent decimal.Decimal `json:"commission_rate_percent"`
	ShippingAreaSqm       decimal.Decimal `json:"shipping_area_sqm"`
	CostPerSqmUsd         decimal.Decimal `json:"cost_per_sqm_usd"`
	UsdToRmbRate          decimal.Decimal `json:"usd_to_rmb_rate"`
	RmbToEgpRate          decimal.Decimal `json:"rmb_to_egp_rate"`
	RatesUpdatedAt        time.Time       `json:"rates_updated_at"`
}

// NewShippingDetails creates shipping details with a fresh rate snapshot
func NewShippingDetails(
	shipmentID uuid.UUID,
	commissionRatePercent, shippingAreaSqm, costPerSqmUsd, usdToRmbRate, rmbToEgpRate decimal.Decimal,
) (*ShippingDetails, error) {
	fields := map[string]string{}
	if shipmentID == uuid.Nil {
		fields["shipment_id"] = "shipment is required"
	}
	if commissionRatePercent.IsNegative() {
		fields["commission_rate_percent"] = "commission rate cannot be negative"
	}
	if shippingAreaSqm.IsNegative() {
		fields["shipping_area_sqm"] = "shipping area cannot be negative"
	}
	if costPerSqmUsd.IsNegative() {
		fields["cost_per_sqm_usd"] = "cost per square meter cannot be negative"
	}
	if usdToRmbRate.LessThanOrEqual(decimal.Zero) {
		fields["usd_to_rmb_rate"] = "USD to RMB rate must be greater than zero"
	}
	if rmbToEgpRate.LessThanOrEqual(decimal.Zero) {
		fields["rmb_to_egp_rate"] = "RMB to EGP rate must be greater than zero"
	}
	if len(fields) > 0 {
		return nil, shared.NewValidationError("Invalid shipping details", fields)
	}

	return &ShippingDetails{
		BaseEntity:            shared.NewBaseEntity(),
		ShipmentID:            shipmentID,
		CommissionRatePercent: commissionRatePercent,
		ShippingAreaSqm:       shippingAreaSqm,
		CostPerSqmUsd:         costPerSqmUsd,
		UsdToRmbRate:          usdToRmbRate,
		RmbToEgpRate:          rmbToEgpRate,
		RatesUpdatedAt:        time.Now(),
	}, nil
}

// Update replaces the shipping inputs and snapshots the rates again
func (d *ShippingDetails) Update(
	commissionRatePercent, shippingAreaSqm, costPerSqmUsd, usdToRmbRate, rmbToEgpRate decimal.Decimal,
) error {
	if usdToRmbRate.LessThanOrEqual(decimal.Zero) || rmbToEgpRate.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("Invalid shipping details", map[string]string{
			"rates": "exchange rates must be greater than zero",
		})
	}
	if commissionRatePercent.IsNegative() || shippingAreaSqm.IsNegative() || costPerSqmUsd.IsNegative() {
		return shared.NewValidationError("Invalid shipping details", map[string]string{
			"inputs": "shipping inputs cannot be negative",
		})
	}

	d.CommissionRatePercent = commissionRatePercent
	d.ShippingAreaSqm = shippingAreaSqm
	d.CostPerSqmUsd = costPerSqmUsd
	d.UsdToRmbRate = usdToRmbRate
	d.RmbToEgpRate = rmbToEgpRate
	d.RatesUpdatedAt = time.Now()
	d.UpdatedAt = time.Now()
	return nil
}
