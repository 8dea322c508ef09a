package shipment

import (
	"context"
	"errors"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shipment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var errInvalidStatus = shared.NewValidationError("Invalid filter", map[string]string{
	"status": "unknown shipment status",
})

// ShipmentService orchestrates the shipment wizard: step-partial writes, the
// cost recompute that follows every write, and the archive flow.
type ShipmentService struct {
	shipments   shipment.Repository
	items       shipment.ItemRepository
	details     shipment.ShippingDetailsRepository
	payments    shipment.PaymentRepository
	allocations shipment.AllocationRepository
	tx          shared.TransactionManager
	logger      *zap.Logger
}

// NewShipmentService creates a new ShipmentService
func NewShipmentService(
	shipments shipment.Repository,
	items shipment.ItemRepository,
	details shipment.ShippingDetailsRepository,
	payments shipment.PaymentRepository,
	allocations shipment.AllocationRepository,
	tx shared.TransactionManager,
	logger *zap.Logger,
) *ShipmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShipmentService{
		shipments:   shipments,
		items:       items,
		details:     details,
		payments:    payments,
		allocations: allocations,
		tx:          tx,
		logger:      logger,
	}
}

// Create creates a shipment at wizard step 1. Codes are unique.
func (s *ShipmentService) Create(ctx context.Context, req CreateShipmentRequest) (*ShipmentResponse, error) {
	exists, err := s.shipments.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("CONFLICT", "A shipment with this code already exists")
	}

	sh, err := shipment.NewShipment(req.Code, req.Name, req.PurchaseDate, req.PurchaseRmbToEgp)
	if err != nil {
		return nil, err
	}
	if req.PartialDiscountRmb != nil {
		if err := sh.SetPartialDiscount(*req.PartialDiscountRmb, req.DiscountNotes); err != nil {
			return nil, err
		}
	}

	if err := s.shipments.Save(ctx, sh); err != nil {
		return nil, err
	}

	s.logger.Info("shipment created",
		zap.String("shipment_id", sh.ID.String()),
		zap.String("code", sh.Code))

	response := ToShipmentResponse(sh)
	return &response, nil
}

// UpdateBasics rewrites the step-1 fields and recomputes the cost rollup,
// since the purchase rate and discount feed the aggregator.
func (s *ShipmentService) UpdateBasics(ctx context.Context, id uuid.UUID, req UpdateBasicsRequest) (*ShipmentResponse, error) {
	sh, err := s.shipments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := sh.UpdateBasics(req.Name, req.PurchaseDate, req.PurchaseRmbToEgp); err != nil {
		return nil, err
	}
	if req.PartialDiscountRmb != nil {
		notes := sh.DiscountNotes
		if req.DiscountNotes != nil {
			notes = *req.DiscountNotes
		}
		if err := sh.SetPartialDiscount(*req.PartialDiscountRmb, notes); err != nil {
			return nil, err
		}
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.recomputeAndSave(ctx, sh)
	})
	if err != nil {
		return nil, err
	}

	response := ToShipmentResponse(sh)
	return &response, nil
}

// ReplaceItems is the step-2 write: the submitted list becomes the shipment's
// full item set. Items with an ID are updated in place; the rest are created;
// stored items absent from the list are removed. All rows and the recomputed
// totals commit atomically.
func (s *ShipmentService) ReplaceItems(ctx context.Context, id uuid.UUID, req ReplaceItemsRequest) (*ShipmentDetailResponse, error) {
	sh, err := s.shipments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sh.Status.IsTerminal() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot modify an archived shipment")
	}

	existing, err := s.items.FindByShipment(ctx, id)
	if err != nil {
		return nil, err
	}
	existingByID := make(map[uuid.UUID]*shipment.Item, len(existing))
	for _, it := range existing {
		existingByID[it.ID] = it
	}

	keep := make(map[uuid.UUID]bool, len(req.Items))
	upserts := make([]*shipment.Item, 0, len(req.Items))
	for _, input := range req.Items {
		if input.ID != nil {
			it, ok := existingByID[*input.ID]
			if !ok {
				return nil, shared.NewValidationError("Invalid item data", map[string]string{
					"id": "item does not belong to this shipment",
				})
			}
			it.ProductName = input.ProductName
			it.SupplierID = input.SupplierID
			it.ProductTypeID = input.ProductTypeID
			it.OriginCountry = input.OriginCountry
			if err := it.UpdateQuantities(input.Cartons, input.PiecesPerCarton, input.PricePerPieceRmb); err != nil {
				return nil, err
			}
			if err := it.SetClearanceCosts(input.CustomsPerPieceEgp, input.TakhreegPerCartonEgp); err != nil {
				return nil, err
			}
			keep[it.ID] = true
			upserts = append(upserts, it)
			continue
		}

		it, err := shipment.NewItem(
			id,
			input.ProductName,
			input.SupplierID,
			input.ProductTypeID,
			input.OriginCountry,
			input.Cartons,
			input.PiecesPerCarton,
			input.PricePerPieceRmb,
			input.CustomsPerPieceEgp,
			input.TakhreegPerCartonEgp,
		)
		if err != nil {
			return nil, err
		}
		upserts = append(upserts, it)
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, it := range existing {
			if !keep[it.ID] {
				if err := s.items.Delete(ctx, it.ID); err != nil {
					return err
				}
			}
		}
		if err := s.items.SaveAll(ctx, upserts); err != nil {
			return err
		}
		return s.recomputeAndSave(ctx, sh)
	})
	if err != nil {
		return nil, err
	}

	return s.detail(ctx, sh)
}

// SetShippingDetails is the step-3 write: it links the shipping company and
// snapshots the shipping inputs and exchange rates.
func (s *ShipmentService) SetShippingDetails(ctx context.Context, id uuid.UUID, req ShippingDetailsRequest) (*ShipmentDetailResponse, error) {
	sh, err := s.shipments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := sh.AssignShippingCompany(req.ShippingCompanyID); err != nil {
		return nil, err
	}

	details, err := s.details.FindByShipment(ctx, id)
	switch {
	case err == nil:
		if err := details.Update(req.CommissionRatePercent, req.ShippingAreaSqm, req.CostPerSqmUsd, req.UsdToRmbRate, req.RmbToEgpRate); err != nil {
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		details, err = shipment.NewShippingDetails(id, req.CommissionRatePercent, req.ShippingAreaSqm, req.CostPerSqmUsd, req.UsdToRmbRate, req.RmbToEgpRate)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.details.Save(ctx, details); err != nil {
			return err
		}
		return s.recomputeAndSave(ctx, sh)
	})
	if err != nil {
		return nil, err
	}

	return s.detail(ctx, sh)
}

// UpdateMissingPieces is the isolated step-4 write: it records declared
// missing pieces and rederives the missing costs and totals, touching nothing
// else on the items.
func (s *ShipmentService) UpdateMissingPieces(ctx context.Context, id uuid.UUID, req MissingPiecesRequest) (*ShipmentDetailResponse, error) {
	sh, err := s.shipments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sh.Status.IsTerminal() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot modify an archived shipment")
	}

	items, err := s.items.FindByShipment(ctx, id)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*shipment.Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	touched := make([]*shipment.Item, 0, len(req.Items))
	for _, input := range req.Items {
		it, ok := byID[input.ItemID]
		if !ok {
			return nil, shared.NewValidationError("Invalid item data", map[string]string{
				"item_id": "item does not belong to this shipment",
			})
		}
		it.SetMissingPieces(input.MissingPieces)
		touched = append(touched, it)
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.items.SaveAll(ctx, touched); err != nil {
			return err
		}
		return s.recomputeAndSave(ctx, sh)
	})
	if err != nil {
		return nil, err
	}

	return s.detail(ctx, sh)
}

// Advance moves the shipment to the next wizard status
func (s *ShipmentService) Advance(ctx context.Context, id uuid.UUID) (*ShipmentResponse, error) {
	sh, err := s.shipments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := sh.Advance(); err != nil {
		return nil, err
	}
	if err := s.shipments.SaveWithLock(ctx, sh); err != nil {
		return nil, err
	}

	s.logger.Info("shipment advanced",
		zap.String("shipment_id", sh.ID.String()),
		zap.String("status", string(sh.Status)))

	response := ToShipmentResponse(sh)
	return &response, nil
}

// Archive archives the shipment terminally; archived shipments are hidden
// from lists unless explicitly requested.
func (s *ShipmentService) Archive(ctx context.Context, id uuid.UUID) (*ShipmentResponse, error) {
	sh, err := s.shipments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := sh.Archive(); err != nil {
		return nil, err
	}
	if err := s.shipments.SaveWithLock(ctx, sh); err != nil {
		return nil, err
	}

	response := ToShipmentResponse(sh)
	return &response, nil
}

// GetByID retrieves a shipment with its items, shipping step and per-item costs
func (s *ShipmentService) GetByID(ctx context.Context, id uuid.UUID) (*ShipmentDetailResponse, error) {
	sh, err := s.shipments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, sh)
}

// List retrieves shipments with filtering and pagination
func (s *ShipmentService) List(ctx context.Context, filter ListFilter) ([]ShipmentResponse, int64, error) {
	domainFilter, err := filter.toDomain()
	if err != nil {
		return nil, 0, err
	}

	shipments, err := s.shipments.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.shipments.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ShipmentResponse, 0, len(shipments))
	for i := range shipments {
		responses = append(responses, ToShipmentResponse(&shipments[i]))
	}
	return responses, total, nil
}

// GoodsSummary computes the goods-cost position of every supplier appearing
// in the shipment, in item order.
func (s *ShipmentService) GoodsSummary(ctx context.Context, id uuid.UUID) ([]SupplierGoodsSummaryResponse, error) {
	if _, err := s.shipments.FindByID(ctx, id); err != nil {
		return nil, err
	}

	items, err := s.items.FindByShipment(ctx, id)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.FindByShipment(ctx, id)
	if err != nil {
		return nil, err
	}
	allocations, err := s.allocations.FindByShipment(ctx, id)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool)
	summaries := make([]SupplierGoodsSummaryResponse, 0)
	for _, it := range items {
		if seen[it.SupplierID] {
			continue
		}
		seen[it.SupplierID] = true
		summary := shipment.GoodsSummaryFor(it.SupplierID, items, payments, allocations)
		summaries = append(summaries, toGoodsSummaryResponse(summary))
	}
	return summaries, nil
}

// SupplierGoodsSummary computes the goods-cost position of one supplier
// within a shipment. The supplier must have items on the shipment.
func (s *ShipmentService) SupplierGoodsSummary(ctx context.Context, id, supplierID uuid.UUID) (*SupplierGoodsSummaryResponse, error) {
	if _, err := s.shipments.FindByID(ctx, id); err != nil {
		return nil, err
	}

	items, err := s.items.FindByShipment(ctx, id)
	if err != nil {
		return nil, err
	}
	found := false
	for _, it := range items {
		if it.SupplierID == supplierID {
			found = true
			break
		}
	}
	if !found {
		return nil, shared.ErrNotFound
	}

	payments, err := s.payments.FindByShipment(ctx, id)
	if err != nil {
		return nil, err
	}
	allocations, err := s.allocations.FindByShipment(ctx, id)
	if err != nil {
		return nil, err
	}

	summary := shipment.GoodsSummaryFor(supplierID, items, payments, allocations)
	resp := toGoodsSummaryResponse(summary)
	return &resp, nil
}

// recomputeAndSave reruns the cost aggregator over the shipment's current
// items and shipping inputs, persists the rederived missing costs, and saves
// the shipment under its optimistic lock. Zero-item shipments carry zero
// totals rather than an aggregation error.
func (s *ShipmentService) recomputeAndSave(ctx context.Context, sh *shipment.Shipment) error {
	items, err := s.items.FindByShipment(ctx, sh.ID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		sh.ApplyCostTotals(shipment.CostTotals{})
		return s.shipments.SaveWithLock(ctx, sh)
	}

	details, err := s.details.FindByShipment(ctx, sh.ID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		details = nil
	}

	breakdown, err := shipment.ComputeCost(items, details, sh.PurchaseRmbToEgp, sh.PartialDiscountRmb)
	if err != nil {
		return err
	}

	changed := make([]*shipment.Item, 0, len(items))
	for _, it := range items {
		ic, ok := breakdown.ItemCostFor(it.ID)
		if !ok {
			continue
		}
		if !ic.MissingCostEgp.Equal(it.MissingCostEgp) || it.MissingPieces > 0 {
			it.ApplyMissingCost(ic.MissingCostEgp)
			changed = append(changed, it)
		}
	}
	if len(changed) > 0 {
		if err := s.items.SaveAll(ctx, changed); err != nil {
			return err
		}
	}

	sh.ApplyCostTotals(breakdown.CostTotals)
	return s.shipments.SaveWithLock(ctx, sh)
}

func (s *ShipmentService) detail(ctx context.Context, sh *shipment.Shipment) (*ShipmentDetailResponse, error) {
	items, err := s.items.FindByShipment(ctx, sh.ID)
	if err != nil {
		return nil, err
	}

	details, err := s.details.FindByShipment(ctx, sh.ID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		details = nil
	}

	var breakdown *shipment.CostBreakdown
	if len(items) > 0 {
		breakdown, err = shipment.ComputeCost(items, details, sh.PurchaseRmbToEgp, sh.PartialDiscountRmb)
		if err != nil {
			return nil, err
		}
	}

	resp := &ShipmentDetailResponse{
		ShipmentResponse: ToShipmentResponse(sh),
		Items:            make([]ItemResponse, 0, len(items)),
		ShippingDetails:  toShippingDetailsResponse(details),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, toItemResponse(it, breakdown))
	}
	return resp, nil
}

// sumPaidEgp totals a payment set in EGP
func sumPaidEgp(payments []*shipment.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.AmountEgp)
	}
	return total
}
