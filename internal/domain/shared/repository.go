package shared

import "context"

// TransactionManager runs a unit of work atomically.
// Multi-entity writes (shipment + items, payment + allocations) must go
// through it so that all rows commit or none do.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
