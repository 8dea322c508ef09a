package shipment

import (
	"time"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item represents a single line item of a shipment. Quantity totals and the
// purchase cost are always derived from their inputs, never edited directly.
type Item struct {
	shared.BaseEntity
	ShipmentID           uuid.UUID       `json:"shipment_id"`
	ProductName          string          `json:"product_name"`
	SupplierID           uuid.UUID       `json:"supplier_id"`
	ProductTypeID        *uuid.UUID      `json:"product_type_id"`
	OriginCountry        string          `json:"origin_country"`
	Cartons              int64           `json:"cartons"`           // CTN
	PiecesPerCarton      int64           `json:"pieces_per_carton"` // PCS
	TotalPieces          int64           `json:"total_pieces"`      // COU = CTN x PCS
	PricePerPieceRmb     decimal.Decimal `json:"price_per_piece_rmb"`
	TotalPurchaseCostRmb decimal.Decimal `json:"total_purchase_cost_rmb"`
	CustomsPerPieceEgp   decimal.Decimal `json:"customs_per_piece_egp"`
	TakhreegPerCartonEgp decimal.Decimal `json:"takhreeg_per_carton_egp"`
	MissingPieces        int64           `json:"missing_pieces"`
	MissingCostEgp       decimal.Decimal `json:"missing_cost_egp"`
}

// NewItem creates a new shipment line item with derived totals
func NewItem(
	shipmentID uuid.UUID,
	productName string,
	supplierID uuid.UUID,
	productTypeID *uuid.UUID,
	originCountry string,
	cartons, piecesPerCarton int64,
	pricePerPieceRmb, customsPerPieceEgp, takhreegPerCartonEgp decimal.Decimal,
) (*Item, error) {
	fields := map[string]string{}
	if shipmentID == uuid.Nil {
		fields["shipment_id"] = "shipment is required"
	}
	if productName == "" {
		fields["product_name"] = "product name is required"
	}
	if supplierID == uuid.Nil {
		fields["supplier_id"] = "supplier is required"
	}
	if cartons <= 0 {
		fields["cartons"] = "cartons must be greater than zero"
	}
	if piecesPerCarton <= 0 {
		fields["pieces_per_carton"] = "pieces per carton must be greater than zero"
	}
	if pricePerPieceRmb.IsNegative() {
		fields["price_per_piece_rmb"] = "price per piece cannot be negative"
	}
	if customsPerPieceEgp.IsNegative() {
		fields["customs_per_piece_egp"] = "customs per piece cannot be negative"
	}
	if takhreegPerCartonEgp.IsNegative() {
		fields["takhreeg_per_carton_egp"] = "takhreeg per carton cannot be negative"
	}
	if len(fields) > 0 {
		return nil, shared.NewValidationError("Invalid item data", fields)
	}

	it := &Item{
		BaseEntity:           shared.NewBaseEntity(),
		ShipmentID:           shipmentID,
		ProductName:          productName,
		SupplierID:           supplierID,
		ProductTypeID:        productTypeID,
		OriginCountry:        originCountry,
		Cartons:              cartons,
		PiecesPerCarton:      piecesPerCarton,
		PricePerPieceRmb:     pricePerPieceRmb,
		CustomsPerPieceEgp:   customsPerPieceEgp,
		TakhreegPerCartonEgp: takhreegPerCartonEgp,
		MissingCostEgp:       decimal.Zero,
	}
	it.recompute()
	return it, nil
}

// UpdateQuantities replaces the quantity and pricing inputs and rederives
// the item totals. Missing pieces are re-clamped to the new piece count.
func (it *Item) UpdateQuantities(cartons, piecesPerCarton int64, pricePerPieceRmb decimal.Decimal) error {
	if cartons <= 0 || piecesPerCarton <= 0 {
		return shared.NewValidationError("Invalid item quantities", map[string]string{
			"cartons": "cartons and pieces per carton must be greater than zero",
		})
	}
	if pricePerPieceRmb.IsNegative() {
		return shared.NewValidationError("Invalid item price", map[string]string{
			"price_per_piece_rmb": "price per piece cannot be negative",
		})
	}

	it.Cartons = cartons
	it.PiecesPerCarton = piecesPerCarton
	it.PricePerPieceRmb = pricePerPieceRmb
	it.recompute()
	it.MissingPieces = clampMissing(it.MissingPieces, it.TotalPieces)
	it.UpdatedAt = time.Now()
	return nil
}

// SetClearanceCosts updates the per-piece customs and per-carton takhreeg inputs
func (it *Item) SetClearanceCosts(customsPerPieceEgp, takhreegPerCartonEgp decimal.Decimal) error {
	if customsPerPieceEgp.IsNegative() || takhreegPerCartonEgp.IsNegative() {
		return shared.NewValidationError("Invalid clearance costs", map[string]string{
			"customs_per_piece_egp": "clearance costs cannot be negative",
		})
	}

	it.CustomsPerPieceEgp = customsPerPieceEgp
	it.TakhreegPerCartonEgp = takhreegPerCartonEgp
	it.UpdatedAt = time.Now()
	return nil
}

// SetMissingPieces records declared missing/damaged pieces, clamped to
// [0, TotalPieces]. The missing cost itself is derived by the cost
// aggregator from current shipment totals, never cached here.
func (it *Item) SetMissingPieces(n int64) {
	it.MissingPieces = clampMissing(n, it.TotalPieces)
	it.UpdatedAt = time.Now()
}

// ApplyMissingCost stores the freshly derived missing cost for the item
func (it *Item) ApplyMissingCost(costEgp decimal.Decimal) {
	it.MissingCostEgp = costEgp.Round(2)
	it.UpdatedAt = time.Now()
}

// ItemCustomsEgp returns total customs for the item (COU x customs per piece)
func (it *Item) ItemCustomsEgp() decimal.Decimal {
	return decimal.NewFromInt(it.TotalPieces).Mul(it.CustomsPerPieceEgp)
}

// ItemTakhreegEgp returns total takhreeg for the item (CTN x takhreeg per carton)
func (it *Item) ItemTakhreegEgp() decimal.Decimal {
	return decimal.NewFromInt(it.Cartons).Mul(it.TakhreegPerCartonEgp)
}

// recompute rederives COU and the purchase cost from the inputs.
// The purchase cost is stored rounded to 2 decimal places.
func (it *Item) recompute() {
	it.TotalPieces = it.Cartons * it.PiecesPerCarton
	it.TotalPurchaseCostRmb = decimal.NewFromInt(it.TotalPieces).Mul(it.PricePerPieceRmb).Round(2)
}

func clampMissing(n, totalPieces int64) int64 {
	if n < 0 {
		return 0
	}
	if n > totalPieces {
		return totalPieces
	}
	return n
}
