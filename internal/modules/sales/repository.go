package sales

import (
	"context"
	"time"

	"github.com/vitrinedata/varejo-backend/internal/modules/inventory"
)

// Repository defines data access for sales. CreateSale persists the sale and
// applies its FEFO stock draws as a single unit of work: either both land or
// neither does.
type Repository interface {
	CreateSale(ctx context.Context, s *Sale, draws []inventory.BatchDraw) error
	GetByID(ctx context.Context, id string) (*Sale, error)
	ListByRetailerSince(ctx context.Context, retailerID string, since time.Time) ([]*Sale, error)
	ListSince(ctx context.Context, since time.Time) ([]*Sale, error)
	CountByRetailerSince(ctx context.Context, retailerID string, since time.Time) (int, error)
	DeleteByRetailer(ctx context.Context, retailerID string) (int64, error)
}
