package partner

import (
	"context"

	"github.com/google/uuid"
)

// Filter holds list filtering options for partners
type Filter struct {
	Search     string
	ActiveOnly bool
	Page       int
	PageSize   int
}

// SupplierRepository defines persistence operations for suppliers
type SupplierRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)
	FindByName(ctx context.Context, name string) (*Supplier, error)
	FindAll(ctx context.Context, filter Filter) ([]Supplier, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	Save(ctx context.Context, s *Supplier) error
	ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)
	IsReferenced(ctx context.Context, id uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ShippingCompanyRepository defines persistence operations for shipping companies
type ShippingCompanyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ShippingCompany, error)
	FindByName(ctx context.Context, name string) (*ShippingCompany, error)
	FindAll(ctx context.Context, filter Filter) ([]ShippingCompany, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	Save(ctx context.Context, c *ShippingCompany) error
	ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)
	IsReferenced(ctx context.Context, id uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
