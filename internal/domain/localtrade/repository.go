package localtrade

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PartyFilter holds list filtering options for parties
type PartyFilter struct {
	Type       *PartyType
	Search     string
	ActiveOnly bool
	Page       int
	PageSize   int
}

// PartyRepository defines persistence operations for local-trade parties
type PartyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Party, error)
	FindAll(ctx context.Context, filter PartyFilter) ([]Party, error)
	Count(ctx context.Context, filter PartyFilter) (int64, error)
	Save(ctx context.Context, p *Party) error
	ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)
}

// InvoiceFilter holds list filtering options for invoices
type InvoiceFilter struct {
	PartyID  *uuid.UUID
	Status   *InvoiceStatus
	FromDate *time.Time
	ToDate   *time.Time
}

// InvoiceRepository defines persistence operations for invoices
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindByParty(ctx context.Context, partyID uuid.UUID) ([]*Invoice, error)
	FindAll(ctx context.Context, filter InvoiceFilter) ([]*Invoice, error)
	Save(ctx context.Context, i *Invoice) error
}

// PartyPaymentRepository defines persistence operations for party payments
type PartyPaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PartyPayment, error)
	FindByParty(ctx context.Context, partyID uuid.UUID) ([]*PartyPayment, error)
	Save(ctx context.Context, p *PartyPayment) error
}

// ReturnCaseFilter holds list filtering options for return cases
type ReturnCaseFilter struct {
	PartyID   *uuid.UUID
	InvoiceID *uuid.UUID
	Status    *ReturnCaseStatus
}

// ReturnCaseRepository defines persistence operations for return cases
type ReturnCaseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReturnCase, error)
	FindByParty(ctx context.Context, partyID uuid.UUID) ([]*ReturnCase, error)
	FindAll(ctx context.Context, filter ReturnCaseFilter) ([]*ReturnCase, error)
	Save(ctx context.Context, r *ReturnCase) error
}
