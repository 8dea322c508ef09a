package persistence

import (
	"context"
	"errors"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/localtrade"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPartyRepository implements localtrade.PartyRepository using GORM
type GormPartyRepository struct {
	db *gorm.DB
}

// NewGormPartyRepository creates a new GormPartyRepository
func NewGormPartyRepository(db *gorm.DB) *GormPartyRepository {
	return &GormPartyRepository{db: db}
}

// FindByID finds a party by its ID
func (r *GormPartyRepository) FindByID(ctx context.Context, id uuid.UUID) (*localtrade.Party, error) {
	var m models.PartyModel
	if err := dbFromContext(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll finds all parties matching the filter
func (r *GormPartyRepository) FindAll(ctx context.Context, filter localtrade.PartyFilter) ([]localtrade.Party, error) {
	var rows []models.PartyModel
	query := r.applyFilter(dbFromContext(ctx, r.db).Model(&models.PartyModel{}), filter, true)

	if err := query.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	parties := make([]localtrade.Party, len(rows))
	for i := range rows {
		parties[i] = *rows[i].ToDomain()
	}
	return parties, nil
}

// Count counts parties matching the filter, ignoring pagination
func (r *GormPartyRepository) Count(ctx context.Context, filter localtrade.PartyFilter) (int64, error) {
	var count int64
	query := r.applyFilter(dbFromContext(ctx, r.db).Model(&models.PartyModel{}), filter, false)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a party
func (r *GormPartyRepository) Save(ctx context.Context, p *localtrade.Party) error {
	m := models.PartyModelFromDomain(p)
	return dbFromContext(ctx, r.db).Save(m).Error
}

// ExistsByName checks for a name collision, optionally excluding one party
func (r *GormPartyRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	query := dbFromContext(ctx, r.db).Model(&models.PartyModel{}).Where("name = ?", name)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormPartyRepository) applyFilter(query *gorm.DB, filter localtrade.PartyFilter, paginate bool) *gorm.DB {
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR phone ILIKE ?", pattern, pattern)
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

var _ localtrade.PartyRepository = (*GormPartyRepository)(nil)

// GormInvoiceRepository implements localtrade.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice by its ID
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*localtrade.Invoice, error) {
	var m models.InvoiceModel
	if err := dbFromContext(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByParty finds all invoices of a party, oldest first
func (r *GormInvoiceRepository) FindByParty(ctx context.Context, partyID uuid.UUID) ([]*localtrade.Invoice, error) {
	var rows []models.InvoiceModel
	if err := dbFromContext(ctx, r.db).
		Where("party_id = ?", partyID).
		Order("issue_date ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return invoicesToDomain(rows), nil
}

// FindAll finds all invoices matching the filter, oldest first
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter localtrade.InvoiceFilter) ([]*localtrade.Invoice, error) {
	query := dbFromContext(ctx, r.db).Model(&models.InvoiceModel{})

	if filter.PartyID != nil {
		query = query.Where("party_id = ?", *filter.PartyID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.FromDate != nil {
		query = query.Where("issue_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("issue_date <= ?", *filter.ToDate)
	}

	var rows []models.InvoiceModel
	if err := query.Order("issue_date ASC, created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return invoicesToDomain(rows), nil
}

// Save creates or updates an invoice
func (r *GormInvoiceRepository) Save(ctx context.Context, i *localtrade.Invoice) error {
	m := models.InvoiceModelFromDomain(i)
	return dbFromContext(ctx, r.db).Save(m).Error
}

func invoicesToDomain(rows []models.InvoiceModel) []*localtrade.Invoice {
	invoices := make([]*localtrade.Invoice, len(rows))
	for i := range rows {
		invoices[i] = rows[i].ToDomain()
	}
	return invoices
}

var _ localtrade.InvoiceRepository = (*GormInvoiceRepository)(nil)

// GormPartyPaymentRepository implements localtrade.PartyPaymentRepository
// using GORM
type GormPartyPaymentRepository struct {
	db *gorm.DB
}

// NewGormPartyPaymentRepository creates a new GormPartyPaymentRepository
func NewGormPartyPaymentRepository(db *gorm.DB) *GormPartyPaymentRepository {
	return &GormPartyPaymentRepository{db: db}
}

// FindByID finds a party payment by its ID
func (r *GormPartyPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*localtrade.PartyPayment, error) {
	var m models.PartyPaymentModel
	if err := dbFromContext(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByParty finds all payments of a party, oldest first
func (r *GormPartyPaymentRepository) FindByParty(ctx context.Context, partyID uuid.UUID) ([]*localtrade.PartyPayment, error) {
	var rows []models.PartyPaymentModel
	if err := dbFromContext(ctx, r.db).
		Where("party_id = ?", partyID).
		Order("paid_at ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	payments := make([]*localtrade.PartyPayment, len(rows))
	for i := range rows {
		payments[i] = rows[i].ToDomain()
	}
	return payments, nil
}

// Save creates or updates a party payment
func (r *GormPartyPaymentRepository) Save(ctx context.Context, p *localtrade.PartyPayment) error {
	m := models.PartyPaymentModelFromDomain(p)
	return dbFromContext(ctx, r.db).Save(m).Error
}

var _ localtrade.PartyPaymentRepository = (*GormPartyPaymentRepository)(nil)

// GormReturnCaseRepository implements localtrade.ReturnCaseRepository using GORM
type GormReturnCaseRepository struct {
	db *gorm.DB
}

// NewGormReturnCaseRepository creates a new GormReturnCaseRepository
func NewGormReturnCaseRepository(db *gorm.DB) *GormReturnCaseRepository {
	return &GormReturnCaseRepository{db: db}
}

// FindByID finds a return case by its ID
func (r *GormReturnCaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*localtrade.ReturnCase, error) {
	var m models.ReturnCaseModel
	if err := dbFromContext(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByParty finds all return cases of a party, oldest first
func (r *GormReturnCaseRepository) FindByParty(ctx context.Context, partyID uuid.UUID) ([]*localtrade.ReturnCase, error) {
	var rows []models.ReturnCaseModel
	if err := dbFromContext(ctx, r.db).
		Where("party_id = ?", partyID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return returnCasesToDomain(rows), nil
}

// FindAll finds all return cases matching the filter, oldest first
func (r *GormReturnCaseRepository) FindAll(ctx context.Context, filter localtrade.ReturnCaseFilter) ([]*localtrade.ReturnCase, error) {
	query := dbFromContext(ctx, r.db).Model(&models.ReturnCaseModel{})

	if filter.PartyID != nil {
		query = query.Where("party_id = ?", *filter.PartyID)
	}
	if filter.InvoiceID != nil {
		query = query.Where("invoice_id = ?", *filter.InvoiceID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var rows []models.ReturnCaseModel
	if err := query.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return returnCasesToDomain(rows), nil
}

// Save creates or updates a return case
func (r *GormReturnCaseRepository) Save(ctx context.Context, rc *localtrade.ReturnCase) error {
	m := models.ReturnCaseModelFromDomain(rc)
	return dbFromContext(ctx, r.db).Save(m).Error
}

func returnCasesToDomain(rows []models.ReturnCaseModel) []*localtrade.ReturnCase {
	cases := make([]*localtrade.ReturnCase, len(rows))
	for i := range rows {
		cases[i] = rows[i].ToDomain()
	}
	return cases
}

var _ localtrade.ReturnCaseRepository = (*GormReturnCaseRepository)(nil)
