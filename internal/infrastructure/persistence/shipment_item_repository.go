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

// GormShipmentItemRepository implements shipment.ItemRepository using GORM
type GormShipmentItemRepository struct {
	db *gorm.DB
}

// NewGormShipmentItemRepository creates a new GormShipmentItemRepository
func NewGormShipmentItemRepository(db *gorm.DB) *GormShipmentItemRepository {
	return &GormShipmentItemRepository{db: db}
}

// FindByID finds a line item by its ID
func (r *GormShipmentItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipment.Item, error) {
	var m models.ShipmentItemModel
	if err := dbFromContext(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByShipment finds all line items of a shipment in insertion order.
// Item order matters: auto-allocation walks suppliers by first appearance.
func (r *GormShipmentItemRepository) FindByShipment(ctx context.Context, shipmentID uuid.UUID) ([]*shipment.Item, error) {
	var rows []models.ShipmentItemModel
	if err := dbFromContext(ctx, r.db).
		Where("shipment_id = ?", shipmentID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]*shipment.Item, len(rows))
	for i := range rows {
		items[i] = rows[i].ToDomain()
	}
	return items, nil
}

// Save creates or updates a line item
func (r *GormShipmentItemRepository) Save(ctx context.Context, item *shipment.Item) error {
	m := models.ShipmentItemModelFromDomain(item)
	return dbFromContext(ctx, r.db).Save(m).Error
}

// SaveAll creates or updates a batch of line items
func (r *GormShipmentItemRepository) SaveAll(ctx context.Context, items []*shipment.Item) error {
	if len(items) == 0 {
		return nil
	}

	rows := make([]models.ShipmentItemModel, len(items))
	for i, item := range items {
		rows[i] = *models.ShipmentItemModelFromDomain(item)
	}
	return dbFromContext(ctx, r.db).Save(&rows).Error
}

// Delete deletes a line item
func (r *GormShipmentItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFromContext(ctx, r.db).Delete(&models.ShipmentItemModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByShipment deletes all line items of a shipment
func (r *GormShipmentItemRepository) DeleteByShipment(ctx context.Context, shipmentID uuid.UUID) error {
	return dbFromContext(ctx, r.db).
		Delete(&models.ShipmentItemModel{}, "shipment_id = ?", shipmentID).Error
}

var _ shipment.ItemRepository = (*GormShipmentItemRepository)(nil)

// GormShippingDetailsRepository implements shipment.ShippingDetailsRepository
// using GORM
type GormShippingDetailsRepository struct {
	db *gorm.DB
}

// NewGormShippingDetailsRepository creates a new GormShippingDetailsRepository
func NewGormShippingDetailsRepository(db *gorm.DB) *GormShippingDetailsRepository {
	return &GormShippingDetailsRepository{db: db}
}

// FindByShipment finds the shipping details of a shipment
func (r *GormShippingDetailsRepository) FindByShipment(ctx context.Context, shipmentID uuid.UUID) (*shipment.ShippingDetails, error) {
	var m models.ShippingDetailsModel
	if err := dbFromContext(ctx, r.db).First(&m, "shipment_id = ?", shipmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// Save creates or updates the shipping details
func (r *GormShippingDetailsRepository) Save(ctx context.Context, details *shipment.ShippingDetails) error {
	m := models.ShippingDetailsModelFromDomain(details)
	return dbFromContext(ctx, r.db).Save(m).Error
}

var _ shipment.ShippingDetailsRepository = (*GormShippingDetailsRepository)(nil)
