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

// GormShipmentRepository implements shipment.Repository using GORM
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewGormShipmentRepository creates a new GormShipmentRepository
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// FindByID finds a shipment by its ID
func (r *GormShipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipment.Shipment, error) {
	var m models.ShipmentModel
	if err := dbFromContext(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByCode finds a shipment by its unique code
func (r *GormShipmentRepository) FindByCode(ctx context.Context, code string) (*shipment.Shipment, error) {
	var m models.ShipmentModel
	if err := dbFromContext(ctx, r.db).First(&m, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll finds all shipments matching the filter
func (r *GormShipmentRepository) FindAll(ctx context.Context, filter shipment.Filter) ([]shipment.Shipment, error) {
	var rows []models.ShipmentModel
	query := r.applyFilter(dbFromContext(ctx, r.db).Model(&models.ShipmentModel{}), filter, true)

	if err := query.Order("purchase_date DESC, created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	shipments := make([]shipment.Shipment, len(rows))
	for i := range rows {
		shipments[i] = *rows[i].ToDomain()
	}
	return shipments, nil
}

// Count counts shipments matching the filter, ignoring pagination
func (r *GormShipmentRepository) Count(ctx context.Context, filter shipment.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(dbFromContext(ctx, r.db).Model(&models.ShipmentModel{}), filter, false)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a shipment
func (r *GormShipmentRepository) Save(ctx context.Context, s *shipment.Shipment) error {
	m := models.ShipmentModelFromDomain(s)
	return dbFromContext(ctx, r.db).Save(m).Error
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormShipmentRepository) SaveWithLock(ctx context.Context, s *shipment.Shipment) error {
	m := models.ShipmentModelFromDomain(s)
	result := dbFromContext(ctx, r.db).
		Model(&models.ShipmentModel{}).
		Where("id = ? AND version = ?", s.ID, s.Version-1).
		Updates(m)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// ExistsByCode checks if a shipment with the given code exists
func (r *GormShipmentRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := dbFromContext(ctx, r.db).
		Model(&models.ShipmentModel{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies the shipment filter to a query. Archived shipments are
// hidden unless explicitly requested or directly filtered by status.
func (r *GormShipmentRepository) applyFilter(query *gorm.DB, filter shipment.Filter, paginate bool) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	} else if !filter.IncludeArchived {
		query = query.Where("status <> ?", shipment.StatusArchived)
	}
	if filter.ShippingCompany != nil {
		query = query.Where("shipping_company_id = ?", *filter.ShippingCompany)
	}
	if filter.FromDate != nil {
		query = query.Where("purchase_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("purchase_date <= ?", *filter.ToDate)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("code ILIKE ? OR name ILIKE ?", pattern, pattern)
	}

	if paginate && filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	return query
}

var _ shipment.Repository = (*GormShipmentRepository)(nil)
