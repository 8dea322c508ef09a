package report

import (
	"context"
	"errors"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/report"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shipment"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReportService builds the accounting reports. Costs come from the same cost
// aggregator the write path uses, so the reports never drift from the stored
// shipment totals.
type ReportService struct {
	shipments   shipment.Repository
	items       shipment.ItemRepository
	details     shipment.ShippingDetailsRepository
	payments    shipment.PaymentRepository
	allocations shipment.AllocationRepository
	logger      *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(
	shipments shipment.Repository,
	items shipment.ItemRepository,
	details shipment.ShippingDetailsRepository,
	payments shipment.PaymentRepository,
	allocations shipment.AllocationRepository,
	logger *zap.Logger,
) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		shipments:   shipments,
		items:       items,
		details:     details,
		payments:    payments,
		allocations: allocations,
		logger:      logger,
	}
}

// Movement builds the movement report: the cost stream merged with the
// payment stream, date-ascending, with totals over the filtered set.
func (s *ReportService) Movement(ctx context.Context, filter MovementReportFilter) (*MovementReportResponse, error) {
	domainFilter := filter.toDomain()

	costs, shipmentIDs, err := s.loadShipmentCosts(ctx, filter)
	if err != nil {
		return nil, err
	}

	payments, err := s.payments.FindAll(ctx, shipment.PaymentFilter{ShipmentID: filter.ShipmentID})
	if err != nil {
		return nil, err
	}

	allocations := make([]shipment.PaymentAllocation, 0)
	for _, id := range shipmentIDs {
		rows, err := s.allocations.FindByShipment(ctx, id)
		if err != nil {
			return nil, err
		}
		allocations = append(allocations, rows...)
	}

	built := report.BuildMovementReport(costs, payments, allocations, domainFilter)
	response := toMovementReportResponse(built)
	return &response, nil
}

// PaymentMethods groups the filtered payment set by payment method
func (s *ReportService) PaymentMethods(ctx context.Context, filter MovementReportFilter) (*PaymentMethodsReportResponse, error) {
	payments, err := s.payments.FindAll(ctx, shipment.PaymentFilter{ShipmentID: filter.ShipmentID})
	if err != nil {
		return nil, err
	}

	built := report.BuildPaymentMethodsReport(payments, filter.toDomain())
	response := toPaymentMethodsResponse(built)
	return &response, nil
}

// loadShipmentCosts runs the cost aggregator over every shipment in scope.
// Shipments without items have no computable breakdown and contribute no
// cost rows.
func (s *ReportService) loadShipmentCosts(ctx context.Context, filter MovementReportFilter) ([]report.ShipmentCosts, []uuid.UUID, error) {
	listFilter := shipment.Filter{IncludeArchived: filter.IncludeArchived}
	if filter.ShipmentID != nil {
		sh, err := s.shipments.FindByID(ctx, *filter.ShipmentID)
		if err != nil {
			return nil, nil, err
		}
		return s.costsFor(ctx, []shipment.Shipment{*sh})
	}

	shipments, err := s.shipments.FindAll(ctx, listFilter)
	if err != nil {
		return nil, nil, err
	}
	return s.costsFor(ctx, shipments)
}

func (s *ReportService) costsFor(ctx context.Context, shipments []shipment.Shipment) ([]report.ShipmentCosts, []uuid.UUID, error) {
	costs := make([]report.ShipmentCosts, 0, len(shipments))
	ids := make([]uuid.UUID, 0, len(shipments))

	for i := range shipments {
		sh := &shipments[i]
		ids = append(ids, sh.ID)

		items, err := s.items.FindByShipment(ctx, sh.ID)
		if err != nil {
			return nil, nil, err
		}
		if len(items) == 0 {
			continue
		}

		details, err := s.details.FindByShipment(ctx, sh.ID)
		if err != nil {
			if !errors.Is(err, shared.ErrNotFound) {
				return nil, nil, err
			}
			details = nil
		}

		breakdown, err := shipment.ComputeCost(items, details, sh.PurchaseRmbToEgp, sh.PartialDiscountRmb)
		if err != nil {
			return nil, nil, err
		}
		costs = append(costs, report.ShipmentCosts{Shipment: sh, Breakdown: breakdown})
	}
	return costs, ids, nil
}
