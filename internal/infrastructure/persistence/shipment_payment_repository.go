package persistence

import (
	"context"
	"errors"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shipment"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormShipmentPaymentRepository implements shipment.PaymentRepository using GORM
type GormShipmentPaymentRepository struct {
	db *gorm.DB
}

// NewGormShipmentPaymentRepository creates a new GormShipmentPaymentRepository
func NewGormShipmentPaymentRepository(db *gorm.DB) *GormShipmentPaymentRepository {
	return &GormShipmentPaymentRepository{db: db}
}

// FindByID finds a payment by its ID
func (r *GormShipmentPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipment.Payment, error) {
	var m models.ShipmentPaymentModel
	if err := dbFromContext(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByShipment finds all payments of a shipment, oldest first
func (r *GormShipmentPaymentRepository) FindByShipment(ctx context.Context, shipmentID uuid.UUID) ([]*shipment.Payment, error) {
	var rows []models.ShipmentPaymentModel
	if err := dbFromContext(ctx, r.db).
		Where("shipment_id = ?", shipmentID).
		Order("paid_at ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return paymentsToDomain(rows), nil
}

// FindAll finds all payments matching the filter, oldest first
func (r *GormShipmentPaymentRepository) FindAll(ctx context.Context, filter shipment.PaymentFilter) ([]*shipment.Payment, error) {
	query := dbFromContext(ctx, r.db).Model(&models.ShipmentPaymentModel{})

	if filter.ShipmentID != nil {
		query = query.Where("shipment_id = ?", *filter.ShipmentID)
	}
	if filter.PartyType != nil {
		query = query.Where("party_type = ?", *filter.PartyType)
	}
	if filter.PartyID != nil {
		query = query.Where("party_id = ?", *filter.PartyID)
	}
	if filter.CostComponent != nil {
		query = query.Where("cost_component = ?", *filter.CostComponent)
	}
	if filter.Method != nil {
		query = query.Where("method = ?", *filter.Method)
	}
	if filter.FromDate != nil {
		query = query.Where("paid_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("paid_at <= ?", *filter.ToDate)
	}

	var rows []models.ShipmentPaymentModel
	if err := query.Order("paid_at ASC, created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return paymentsToDomain(rows), nil
}

// Save creates or updates a payment
func (r *GormShipmentPaymentRepository) Save(ctx context.Context, p *shipment.Payment) error {
	m := models.ShipmentPaymentModelFromDomain(p)
	return dbFromContext(ctx, r.db).Save(m).Error
}

func paymentsToDomain(rows []models.ShipmentPaymentModel) []*shipment.Payment {
	payments := make([]*shipment.Payment, len(rows))
	for i := range rows {
		payments[i] = rows[i].ToDomain()
	}
	return payments
}

var _ shipment.PaymentRepository = (*GormShipmentPaymentRepository)(nil)

// GormPaymentAllocationRepository implements shipment.AllocationRepository
// using GORM. Allocation rows are append-only.
type GormPaymentAllocationRepository struct {
	db *gorm.DB
}

// NewGormPaymentAllocationRepository creates a new GormPaymentAllocationRepository
func NewGormPaymentAllocationRepository(db *gorm.DB) *GormPaymentAllocationRepository {
	return &GormPaymentAllocationRepository{db: db}
}

// FindByPayment finds all allocations created for a payment
func (r *GormPaymentAllocationRepository) FindByPayment(ctx context.Context, paymentID uuid.UUID) ([]shipment.PaymentAllocation, error) {
	var rows []models.PaymentAllocationModel
	if err := dbFromContext(ctx, r.db).
		Where("payment_id = ?", paymentID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return allocationsToDomain(rows), nil
}

// FindByShipment finds all allocations against a shipment
func (r *GormPaymentAllocationRepository) FindByShipment(ctx context.Context, shipmentID uuid.UUID) ([]shipment.PaymentAllocation, error) {
	var rows []models.PaymentAllocationModel
	if err := dbFromContext(ctx, r.db).
		Where("shipment_id = ?", shipmentID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return allocationsToDomain(rows), nil
}

// SaveAll inserts a batch of allocation rows. Inserts only: allocations are
// never updated after creation.
func (r *GormPaymentAllocationRepository) SaveAll(ctx context.Context, allocations []shipment.PaymentAllocation) error {
	if len(allocations) == 0 {
		return nil
	}

	rows := make([]models.PaymentAllocationModel, len(allocations))
	for i, a := range allocations {
		rows[i] = *models.PaymentAllocationModelFromDomain(a)
	}
	return dbFromContext(ctx, r.db).Create(&rows).Error
}

func allocationsToDomain(rows []models.PaymentAllocationModel) []shipment.PaymentAllocation {
	allocations := make([]shipment.PaymentAllocation, len(rows))
	for i := range rows {
		allocations[i] = rows[i].ToDomain()
	}
	return allocations
}

var _ shipment.AllocationRepository = (*GormPaymentAllocationRepository)(nil)
