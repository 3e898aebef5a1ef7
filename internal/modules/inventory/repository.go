package inventory

import (
	"context"
	"time"
)

// BatchRepository defines data access for inventory batches.
type BatchRepository interface {
	Create(ctx context.Context, b *Batch) error
	GetByID(ctx context.Context, id string) (*Batch, error)
	ListByRetailer(ctx context.Context, retailerID string) ([]*Batch, error)
	ListByRetailerProduct(ctx context.Context, retailerID, productID string) ([]*Batch, error)
	Update(ctx context.Context, b *Batch) error
	Delete(ctx context.Context, id string) error
}

// SalesReader is the slice of the sales module the aggregator depends on.
type SalesReader interface {
	LinesSince(ctx context.Context, retailerID string, since time.Time) ([]SaleLine, error)
}
