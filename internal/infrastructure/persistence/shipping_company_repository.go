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

// GormShippingCompanyRepository implements partner.ShippingCompanyRepository
// using GORM
type GormShippingCompanyRepository struct {
	db *gorm.DB
}

// NewGormShippingCompanyRepository creates a new GormShippingCompanyRepository
func NewGormShippingCompanyRepository(db *gorm.DB) *GormShippingCompanyRepository {
	return &GormShippingCompanyRepository{db: db}
}

// FindByID finds a shipping company by its ID
func (r *GormShippingCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.ShippingCompany, error) {
	var m models.ShippingCompanyModel
	if err := dbFromContext(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByName finds a shipping company by its exact name
func (r *GormShippingCompanyRepository) FindByName(ctx context.Context, name string) (*partner.ShippingCompany, error) {
	var m models.ShippingCompanyModel
	if err := dbFromContext(ctx, r.db).First(&m, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll finds all shipping companies matching the filter
func (r *GormShippingCompanyRepository) FindAll(ctx context.Context, filter partner.Filter) ([]partner.ShippingCompany, error) {
	var rows []models.ShippingCompanyModel
	query := applyPartnerFilter(dbFromContext(ctx, r.db).Model(&models.ShippingCompanyModel{}), filter, true)

	if err := query.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	companies := make([]partner.ShippingCompany, len(rows))
	for i := range rows {
		companies[i] = *rows[i].ToDomain()
	}
	return companies, nil
}

// Count counts shipping companies matching the filter, ignoring pagination
func (r *GormShippingCompanyRepository) Count(ctx context.Context, filter partner.Filter) (int64, error) {
	var count int64
	query := applyPartnerFilter(dbFromContext(ctx, r.db).Model(&models.ShippingCompanyModel{}), filter, false)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a shipping company
func (r *GormShippingCompanyRepository) Save(ctx context.Context, c *partner.ShippingCompany) error {
	m := models.ShippingCompanyModelFromDomain(c)
	return dbFromContext(ctx, r.db).Save(m).Error
}

// ExistsByName checks for a name collision, optionally excluding one company
func (r *GormShippingCompanyRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	query := dbFromContext(ctx, r.db).Model(&models.ShippingCompanyModel{}).Where("name = ?", name)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// IsReferenced reports whether any shipment or payment points at the company.
// Referenced companies are deactivated, not deleted.
func (r *GormShippingCompanyRepository) IsReferenced(ctx context.Context, id uuid.UUID) (bool, error) {
	db := dbFromContext(ctx, r.db)

	var count int64
	if err := db.Model(&models.ShipmentModel{}).
		Where("shipping_company_id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	if err := db.Model(&models.ShipmentPaymentModel{}).
		Where("party_type = ? AND party_id = ?", shipment.PartyTypeShippingCompany, id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete hard-deletes a shipping company. Callers must check IsReferenced first.
func (r *GormShippingCompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFromContext(ctx, r.db).Delete(&models.ShippingCompanyModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ partner.ShippingCompanyRepository = (*GormShippingCompanyRepository)(nil)
