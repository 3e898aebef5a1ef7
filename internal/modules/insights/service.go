package insights

import (
	"context"
	"time"

	"github.com/vitrinedata/varejo-backend/internal/modules/inventory"
)

// Service produces prioritized advisory messages for a retailer.
type Service interface {
	ForRetailer(ctx context.Context, retailerID string) ([]*Insight, error)
}

type service struct {
	inventory inventory.Service
	now       func() time.Time
}

// NewService creates a new insights service.
func NewService(inventorySvc inventory.Service) Service {
	return &service{inventory: inventorySvc, now: time.Now}
}

func (s *service) ForRetailer(ctx context.Context, retailerID string) ([]*Insight, error) {
	views, err := s.inventory.ProductViews(ctx, retailerID)
	if err != nil {
		return nil, err
	}
	c := &Context{Views: views, Now: s.now()}

	var out []*Insight
	for _, r := range rules {
		if ins := r(c); ins != nil {
			out = append(out, ins)
		}
	}
	if len(out) == 0 {
		out = append(out, noInsight())
	}
	return out, nil
}
