package persistence

import (
	"context"
	"errors"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/partner"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shipment"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSupplierRepository implements partner.SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// FindByID finds a supplier by its ID
func (r *GormSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	var m models.SupplierModel
	if err := dbFromContext(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByName finds a supplier by its exact name
func (r *GormSupplierRepository) FindByName(ctx context.Context, name string) (*partner.Supplier, error) {
	var m models.SupplierModel
	if err := dbFromContext(ctx, r.db).First(&m, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll finds all suppliers matching the filter
func (r *GormSupplierRepository) FindAll(ctx context.Context, filter partner.Filter) ([]partner.Supplier, error) {
	var rows []models.SupplierModel
	query := applyPartnerFilter(dbFromContext(ctx, r.db).Model(&models.SupplierModel{}), filter, true)

	if err := query.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	suppliers := make([]partner.Supplier, len(rows))
	for i := range rows {
		suppliers[i] = *rows[i].ToDomain()
	}
	return suppliers, nil
}

// Count counts suppliers matching the filter, ignoring pagination
func (r *GormSupplierRepository) Count(ctx context.Context, filter partner.Filter) (int64, error) {
	var count int64
	query := applyPartnerFilter(dbFromContext(ctx, r.db).Model(&models.SupplierModel{}), filter, false)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a supplier
func (r *GormSupplierRepository) Save(ctx context.Context, s *partner.Supplier) error {
	m := models.SupplierModelFromDomain(s)
	return dbFromContext(ctx, r.db).Save(m).Error
}

// ExistsByName checks for a name collision, optionally excluding one supplier
// (the one being renamed)
func (r *GormSupplierRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	query := dbFromContext(ctx, r.db).Model(&models.SupplierModel{}).Where("name = ?", name)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// IsReferenced reports whether any shipment item, payment or allocation row
// points at the supplier. Referenced suppliers are deactivated, not deleted.
func (r *GormSupplierRepository) IsReferenced(ctx context.Context, id uuid.UUID) (bool, error) {
	db := dbFromContext(ctx, r.db)

	var count int64
	if err := db.Model(&models.ShipmentItemModel{}).
		Where("supplier_id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	if err := db.Model(&models.ShipmentPaymentModel{}).
		Where("party_type = ? AND party_id = ?", shipment.PartyTypeSupplier, id).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	if err := db.Model(&models.PaymentAllocationModel{}).
		Where("supplier_id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete hard-deletes a supplier. Callers must check IsReferenced first.
func (r *GormSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFromContext(ctx, r.db).Delete(&models.SupplierModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyPartnerFilter applies the shared partner list filter
func applyPartnerFilter(query *gorm.DB, filter partner.Filter, paginate bool) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR contact_name ILIKE ? OR phone ILIKE ?", pattern, pattern, pattern)
	}
	if filter.ActiveOnly {
		query = query.Where("active = ?", true)
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

var _ partner.SupplierRepository = (*GormSupplierRepository)(nil)
