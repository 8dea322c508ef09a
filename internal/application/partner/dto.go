package partner

import (
	"time"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateSupplierRequest represents a request to create a supplier
type CreateSupplierRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	ContactName string `json:"contact_name" binding:"max=100"`
	Phone       string `json:"phone" binding:"max=50"`
	Email       string `json:"email" binding:"omitempty,email,max=200"`
	Address     string `json:"address" binding:"max=500"`
	Country     string `json:"country" binding:"max=100"`
	Notes       string `json:"notes"`
}

// UpdateSupplierRequest represents a partial update of a supplier
type UpdateSupplierRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	ContactName *string `json:"contact_name" binding:"omitempty,max=100"`
	Phone       *string `json:"phone" binding:"omitempty,max=50"`
	Email       *string `json:"email" binding:"omitempty,email,max=200"`
	Address     *string `json:"address" binding:"omitempty,max=500"`
	Country     *string `json:"country" binding:"omitempty,max=100"`
	Notes       *string `json:"notes"`
	Active      *bool   `json:"active"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	Country     string    `json:"country"`
	Notes       string    `json:"notes"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Version     int       `json:"version"`
}

// ToSupplierResponse converts a domain supplier to its response form
func ToSupplierResponse(s *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:          s.ID,
		Name:        s.Name,
		ContactName: s.ContactName,
		Phone:       s.Phone,
		Email:       s.Email,
		Address:     s.Address,
		Country:     s.Country,
		Notes:       s.Notes,
		Active:      s.Active,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		Version:     s.Version,
	}
}

// CreateShippingCompanyRequest represents a request to create a shipping company
type CreateShippingCompanyRequest struct {
	Name                  string           `json:"name" binding:"required,min=1,max=200"`
	ContactName           string           `json:"contact_name" binding:"max=100"`
	Phone                 string           `json:"phone" binding:"max=50"`
	Email                 string           `json:"email" binding:"omitempty,email,max=200"`
	Address               string           `json:"address" binding:"max=500"`
	Country               string           `json:"country" binding:"max=100"`
	DefaultCommissionRate *decimal.Decimal `json:"default_commission_rate"`
	Notes                 string           `json:"notes"`
}

// UpdateShippingCompanyRequest represents a partial update of a shipping company
type UpdateShippingCompanyRequest struct {
	Name                  *string          `json:"name" binding:"omitempty,min=1,max=200"`
	ContactName           *string          `json:"contact_name" binding:"omitempty,max=100"`
	Phone                 *string          `json:"phone" binding:"omitempty,max=50"`
	Email                 *string          `json:"email" binding:"omitempty,email,max=200"`
	Address               *string          `json:"address" binding:"omitempty,max=500"`
	Country               *string          `json:"country" binding:"omitempty,max=100"`
	DefaultCommissionRate *decimal.Decimal `json:"default_commission_rate"`
	Notes                 *string          `json:"notes"`
	Active                *bool            `json:"active"`
}

// ShippingCompanyResponse represents a shipping company in API responses
type ShippingCompanyResponse struct {
	ID                    uuid.UUID `json:"id"`
	Name                  string    `json:"name"`
	ContactName           string    `json:"contact_name"`
	Phone                 string    `json:"phone"`
	Email                 string    `json:"email"`
	Address               string    `json:"address"`
	Country               string    `json:"country"`
	DefaultCommissionRate string    `json:"default_commission_rate"`
	Notes                 string    `json:"notes"`
	Active                bool      `json:"active"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
	Version               int       `json:"version"`
}

// ToShippingCompanyResponse converts a domain shipping company to its response form
func ToShippingCompanyResponse(c *partner.ShippingCompany) ShippingCompanyResponse {
	return ShippingCompanyResponse{
		ID:                    c.ID,
		Name:                  c.Name,
		ContactName:           c.ContactName,
		Phone:                 c.Phone,
		Email:                 c.Email,
		Address:               c.Address,
		Country:               c.Country,
		DefaultCommissionRate: c.DefaultCommissionRate.StringFixed(2),
		Notes:                 c.Notes,
		Active:                c.Active,
		CreatedAt:             c.CreatedAt,
		UpdatedAt:             c.UpdatedAt,
		Version:               c.Version,
	}
}

// ListFilter represents filter options for partner lists
type ListFilter struct {
	Search     string `form:"search"`
	ActiveOnly bool   `form:"active_only"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size" binding:"omitempty,max=100"`
}

func (f ListFilter) toDomain() partner.Filter {
	page := f.Page
	if page <= 0 {
		page = 1
	}
	pageSize := f.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	return partner.Filter{
		Search:     f.Search,
		ActiveOnly: f.ActiveOnly,
		Page:       page,
		PageSize:   pageSize,
	}
}

// DeleteResult reports whether a delete removed the row or fell back to
// deactivation because the partner is referenced by shipment history.
type DeleteResult struct {
	Deleted     bool `json:"deleted"`
	Deactivated bool `json:"deactivated"`
}
