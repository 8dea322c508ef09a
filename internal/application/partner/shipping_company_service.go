package partner

import (
	"context"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/partner"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ShippingCompanyService handles shipping company business operations
type ShippingCompanyService struct {
	companies partner.ShippingCompanyRepository
	logger    *zap.Logger
}

// NewShippingCompanyService creates a new ShippingCompanyService
func NewShippingCompanyService(companies partner.ShippingCompanyRepository, logger *zap.Logger) *ShippingCompanyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShippingCompanyService{companies: companies, logger: logger}
}

// Create creates a new shipping company. Names are unique among shipping
// companies, independently of supplier names.
func (s *ShippingCompanyService) Create(ctx context.Context, req CreateShippingCompanyRequest) (*ShippingCompanyResponse, error) {
	exists, err := s.companies.ExistsByName(ctx, req.Name, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("CONFLICT", "A shipping company with this name already exists")
	}

	company, err := partner.NewShippingCompany(req.Name)
	if err != nil {
		return nil, err
	}
	if req.ContactName != "" || req.Phone != "" || req.Email != "" || req.Address != "" || req.Country != "" {
		if err := company.SetContact(req.ContactName, req.Phone, req.Email, req.Address, req.Country); err != nil {
			return nil, err
		}
	}
	if req.DefaultCommissionRate != nil {
		if err := company.SetDefaultCommissionRate(*req.DefaultCommissionRate); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		company.SetNotes(req.Notes)
	}

	if err := s.companies.Save(ctx, company); err != nil {
		return nil, err
	}

	s.logger.Info("shipping company created",
		zap.String("shipping_company_id", company.ID.String()),
		zap.String("name", company.Name))

	response := ToShippingCompanyResponse(company)
	return &response, nil
}

// GetByID retrieves a shipping company by ID
func (s *ShippingCompanyService) GetByID(ctx context.Context, id uuid.UUID) (*ShippingCompanyResponse, error) {
	company, err := s.companies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToShippingCompanyResponse(company)
	return &response, nil
}

// List retrieves shipping companies with filtering and pagination
func (s *ShippingCompanyService) List(ctx context.Context, filter ListFilter) ([]ShippingCompanyResponse, int64, error) {
	domainFilter := filter.toDomain()

	companies, err := s.companies.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.companies.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ShippingCompanyResponse, 0, len(companies))
	for i := range companies {
		responses = append(responses, ToShippingCompanyResponse(&companies[i]))
	}
	return responses, total, nil
}

// Update applies a partial update to a shipping company
func (s *ShippingCompanyService) Update(ctx context.Context, id uuid.UUID, req UpdateShippingCompanyRequest) (*ShippingCompanyResponse, error) {
	company, err := s.companies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != company.Name {
		exists, err := s.companies.ExistsByName(ctx, *req.Name, &id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("CONFLICT", "A shipping company with this name already exists")
		}
		if err := company.Rename(*req.Name); err != nil {
			return nil, err
		}
	}

	if req.ContactName != nil || req.Phone != nil || req.Email != nil || req.Address != nil || req.Country != nil {
		contactName := orCurrent(req.ContactName, company.ContactName)
		phone := orCurrent(req.Phone, company.Phone)
		email := orCurrent(req.Email, company.Email)
		address := orCurrent(req.Address, company.Address)
		country := orCurrent(req.Country, company.Country)
		if err := company.SetContact(contactName, phone, email, address, country); err != nil {
			return nil, err
		}
	}
	if req.DefaultCommissionRate != nil {
		if err := company.SetDefaultCommissionRate(*req.DefaultCommissionRate); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		company.SetNotes(*req.Notes)
	}
	if req.Active != nil && *req.Active != company.Active {
		if *req.Active {
			err = company.Activate()
		} else {
			err = company.Deactivate()
		}
		if err != nil {
			return nil, err
		}
	}

	if err := s.companies.Save(ctx, company); err != nil {
		return nil, err
	}

	response := ToShippingCompanyResponse(company)
	return &response, nil
}

// Delete removes a shipping company, deactivating instead when referenced by
// shipments or payments.
func (s *ShippingCompanyService) Delete(ctx context.Context, id uuid.UUID) (*DeleteResult, error) {
	company, err := s.companies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	referenced, err := s.companies.IsReferenced(ctx, id)
	if err != nil {
		return nil, err
	}
	if referenced {
		if company.Active {
			if err := company.Deactivate(); err != nil {
				return nil, err
			}
			if err := s.companies.Save(ctx, company); err != nil {
				return nil, err
			}
		}
		s.logger.Info("shipping company deactivated instead of deleted",
			zap.String("shipping_company_id", id.String()))
		return &DeleteResult{Deactivated: true}, nil
	}

	if err := s.companies.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &DeleteResult{Deleted: true}, nil
}
