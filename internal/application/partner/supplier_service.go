package partner

import (
	"context"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/partner"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SupplierService handles supplier business operations
type SupplierService struct {
	suppliers partner.SupplierRepository
	logger    *zap.Logger
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(suppliers partner.SupplierRepository, logger *zap.Logger) *SupplierService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SupplierService{suppliers: suppliers, logger: logger}
}

// Create creates a new supplier. Names are unique among suppliers.
func (s *SupplierService) Create(ctx context.Context, req CreateSupplierRequest) (*SupplierResponse, error) {
	exists, err := s.suppliers.ExistsByName(ctx, req.Name, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("CONFLICT", "A supplier with this name already exists")
	}

	supplier, err := partner.NewSupplier(req.Name)
	if err != nil {
		return nil, err
	}
	if req.ContactName != "" || req.Phone != "" || req.Email != "" || req.Address != "" || req.Country != "" {
		if err := supplier.SetContact(req.ContactName, req.Phone, req.Email, req.Address, req.Country); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		supplier.SetNotes(req.Notes)
	}

	if err := s.suppliers.Save(ctx, supplier); err != nil {
		return nil, err
	}

	s.logger.Info("supplier created",
		zap.String("supplier_id", supplier.ID.String()),
		zap.String("name", supplier.Name))

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// GetByID retrieves a supplier by ID
func (s *SupplierService) GetByID(ctx context.Context, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// List retrieves suppliers with filtering and pagination
func (s *SupplierService) List(ctx context.Context, filter ListFilter) ([]SupplierResponse, int64, error) {
	domainFilter := filter.toDomain()

	suppliers, err := s.suppliers.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.suppliers.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		responses = append(responses, ToSupplierResponse(&suppliers[i]))
	}
	return responses, total, nil
}

// Update applies a partial update to a supplier
func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != supplier.Name {
		exists, err := s.suppliers.ExistsByName(ctx, *req.Name, &id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("CONFLICT", "A supplier with this name already exists")
		}
		if err := supplier.Rename(*req.Name); err != nil {
			return nil, err
		}
	}

	if req.ContactName != nil || req.Phone != nil || req.Email != nil || req.Address != nil || req.Country != nil {
		contactName := orCurrent(req.ContactName, supplier.ContactName)
		phone := orCurrent(req.Phone, supplier.Phone)
		email := orCurrent(req.Email, supplier.Email)
		address := orCurrent(req.Address, supplier.Address)
		country := orCurrent(req.Country, supplier.Country)
		if err := supplier.SetContact(contactName, phone, email, address, country); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		supplier.SetNotes(*req.Notes)
	}
	if req.Active != nil && *req.Active != supplier.Active {
		if *req.Active {
			err = supplier.Activate()
		} else {
			err = supplier.Deactivate()
		}
		if err != nil {
			return nil, err
		}
	}

	if err := s.suppliers.Save(ctx, supplier); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Delete removes a supplier. Suppliers referenced by shipment items, payments
// or allocations are deactivated instead so historical data stays resolvable.
func (s *SupplierService) Delete(ctx context.Context, id uuid.UUID) (*DeleteResult, error) {
	supplier, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	referenced, err := s.suppliers.IsReferenced(ctx, id)
	if err != nil {
		return nil, err
	}
	if referenced {
		if supplier.Active {
			if err := supplier.Deactivate(); err != nil {
				return nil, err
			}
			if err := s.suppliers.Save(ctx, supplier); err != nil {
				return nil, err
			}
		}
		s.logger.Info("supplier deactivated instead of deleted",
			zap.String("supplier_id", id.String()))
		return &DeleteResult{Deactivated: true}, nil
	}

	if err := s.suppliers.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &DeleteResult{Deleted: true}, nil
}

func orCurrent(updated *string, current string) string {
	if updated != nil {
		return *updated
	}
	return current
}
