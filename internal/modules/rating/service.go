package rating

import (
	"context"
	"time"

	"github.com/vitrinedata/varejo-backend/internal/modules/inventory"
	"github.com/vitrinedata/varejo-backend/internal/modules/sales"
)

// ratingWindowDays is the trailing window over which recent sales are counted.
const ratingWindowDays = 90

// Ordered threshold rules, highest tier first; the first rule a retailer
// meets wins. Thresholds are inclusive.
var thresholds = []struct {
	tier        Tier
	minSales    int
	minCoverage float64
}{
	{TierDiamante, 300, 80},
	{TierOuro, 150, 60},
	{TierPrata, 60, 40},
}

// Service computes retailer rating tiers. No state is persisted; every call
// re-derives the tier from current sales and stock.
type Service interface {
	RetailerScore(ctx context.Context, retailerID string) (*Score, error)
	RetailerTier(ctx context.Context, retailerID string) (Tier, error)
}

type service struct {
	sales   sales.Repository
	batches inventory.BatchRepository
	now     func() time.Time
}

// NewService creates a new rating service.
func NewService(salesRepo sales.Repository, batches inventory.BatchRepository) Service {
	return &service{sales: salesRepo, batches: batches, now: time.Now}
}

func (s *service) RetailerScore(ctx context.Context, retailerID string) (*Score, error) {
	since := s.now().AddDate(0, 0, -ratingWindowDays)
	recent, err := s.sales.CountByRetailerSince(ctx, retailerID, since)
	if err != nil {
		return nil, err
	}

	batches, err := s.batches.ListByRetailer(ctx, retailerID)
	if err != nil {
		return nil, err
	}
	coverage := 0.0
	if len(batches) > 0 {
		stocked := 0
		for _, b := range batches {
			if b.Quantity > 0 {
				stocked++
			}
		}
		coverage = float64(stocked) / float64(len(batches)) * 100
	}

	tier := TierBronze
	for _, th := range thresholds {
		if recent >= th.minSales && coverage >= th.minCoverage {
			tier = th.tier
			break
		}
	}

	return &Score{
		RetailerID:      retailerID,
		Tier:            tier,
		RecentSales:     recent,
		StockCoveragePc: coverage,
	}, nil
}

func (s *service) RetailerTier(ctx context.Context, retailerID string) (Tier, error) {
	score, err := s.RetailerScore(ctx, retailerID)
	if err != nil {
		return "", err
	}
	return score.Tier, nil
}
