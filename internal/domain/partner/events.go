package partner

import (
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared"
)

// Event type constants
const (
	EventSupplierCreated        = "partner.supplier_created"
	EventShippingCompanyCreated = "partner.shipping_company_created"
)

// SupplierCreatedEvent is raised when a supplier is created
type SupplierCreatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewSupplierCreatedEvent creates a new SupplierCreatedEvent
func NewSupplierCreatedEvent(s *Supplier) *SupplierCreatedEvent {
	return &SupplierCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventSupplierCreated, "Supplier", s.ID),
		Name:            s.Name,
	}
}

// ShippingCompanyCreatedEvent is raised when a shipping company is created
type ShippingCompanyCreatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewShippingCompanyCreatedEvent creates a new ShippingCompanyCreatedEvent
func NewShippingCompanyCreatedEvent(c *ShippingCompany) *ShippingCompanyCreatedEvent {
	return &ShippingCompanyCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventShippingCompanyCreated, "ShippingCompany", c.ID),
		Name:            c.Name,
	}
}
