package shipment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Filter holds list filtering options for shipments
type Filter struct {
	Status          *Status
	ShippingCompany *uuid.UUID
	FromDate        *time.Time
	ToDate          *time.Time
	IncludeArchived bool
	Search          string
	Page            int
	PageSize        int
}

// Repository defines persistence operations for the Shipment aggregate
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Shipment, error)
	FindByCode(ctx context.Context, code string) (*Shipment, error)
	FindAll(ctx context.Context, filter Filter) ([]Shipment, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	Save(ctx context.Context, s *Shipment) error
	SaveWithLock(ctx context.Context, s *Shipment) error
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// ItemRepository defines persistence operations for shipment line items
type ItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	FindByShipment(ctx context.Context, shipmentID uuid.UUID) ([]*Item, error)
	Save(ctx context.Context, item *Item) error
	SaveAll(ctx context.Context, items []*Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByShipment(ctx context.Context, shipmentID uuid.UUID) error
}

// ShippingDetailsRepository defines persistence for the one-to-one shipping step
type ShippingDetailsRepository interface {
	FindByShipment(ctx context.Context, shipmentID uuid.UUID) (*ShippingDetails, error)
	Save(ctx context.Context, details *ShippingDetails) error
}

// PaymentFilter holds list filtering options for shipment payments
type PaymentFilter struct {
	ShipmentID    *uuid.UUID
	PartyType     *PartyType
	PartyID       *uuid.UUID
	CostComponent *CostComponent
	Method        *PaymentMethod
	FromDate      *time.Time
	ToDate        *time.Time
}

// PaymentRepository defines persistence operations for shipment payments
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindByShipment(ctx context.Context, shipmentID uuid.UUID) ([]*Payment, error)
	FindAll(ctx context.Context, filter PaymentFilter) ([]*Payment, error)
	Save(ctx context.Context, p *Payment) error
}

// AllocationRepository defines persistence operations for payment allocations.
// Rows are append-only; there is no update or delete.
type AllocationRepository interface {
	FindByPayment(ctx context.Context, paymentID uuid.UUID) ([]PaymentAllocation, error)
	FindByShipment(ctx context.Context, shipmentID uuid.UUID) ([]PaymentAllocation, error)
	SaveAll(ctx context.Context, allocations []PaymentAllocation) error
}
