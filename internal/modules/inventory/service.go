package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/vitrinedata/varejo-backend/internal/modules/actor"
	"github.com/vitrinedata/varejo-backend/internal/modules/catalog"
)

// velocityWindowDays is the trailing window for sales-velocity metrics.
const velocityWindowDays = 30

// Service defines inventory business logic: batch CRUD plus the per-product
// aggregated stock view.
type Service interface {
	AddBatch(ctx context.Context, req CreateBatchRequest) (*Batch, error)
	GetBatch(ctx context.Context, id string) (*Batch, error)
	ListBatches(ctx context.Context, retailerID string) ([]*Batch, error)
	UpdateBatch(ctx context.Context, id string, req UpdateBatchRequest) (*Batch, error)
	RemoveBatch(ctx context.Context, id string) error

	// ProductViews merges a retailer's batches into one row per product with
	// weighted averages and trailing-30-day velocity metrics.
	ProductViews(ctx context.Context, retailerID string) ([]*ProductView, error)
}

type service struct {
	batches BatchRepository
	catalog catalog.Repository
	actors  actor.Repository
	sales   SalesReader
	now     func() time.Time
}

// NewService creates a new inventory service.
func NewService(batches BatchRepository, catalogRepo catalog.Repository, actors actor.Repository, sales SalesReader) Service {
	return &service{batches: batches, catalog: catalogRepo, actors: actors, sales: sales, now: time.Now}
}

func (s *service) AddBatch(ctx context.Context, req CreateBatchRequest) (*Batch, error) {
	retailerID, err := uuid.Parse(req.RetailerID)
	if err != nil {
		return nil, fmt.Errorf("invalid retailer_id: %w", err)
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("invalid product_id: %w", err)
	}
	if req.Quantity < 0 {
		return nil, fmt.Errorf("quantity must not be negative")
	}
	if req.UnitCost.IsNegative() || req.SalePrice.IsNegative() {
		return nil, fmt.Errorf("unit_cost and sale_price must not be negative")
	}
	if _, err := s.catalog.GetByID(ctx, req.ProductID); err != nil {
		return nil, fmt.Errorf("product not in catalog: %w", err)
	}
	expiresAt, err := time.Parse("2006-01-02", req.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("invalid expires_at: %w", err)
	}

	b := &Batch{
		ID:         uuid.New(),
		RetailerID: retailerID,
		ProductID:  productID,
		Quantity:   req.Quantity,
		UnitCost:   req.UnitCost,
		SalePrice:  req.SalePrice,
		ExpiresAt:  expiresAt,
	}
	if err := s.batches.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) GetBatch(ctx context.Context, id string) (*Batch, error) {
	return s.batches.GetByID(ctx, id)
}

func (s *service) ListBatches(ctx context.Context, retailerID string) ([]*Batch, error) {
	return s.batches.ListByRetailer(ctx, retailerID)
}

func (s *service) UpdateBatch(ctx context.Context, id string, req UpdateBatchRequest) (*Batch, error) {
	b, err := s.batches.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("batch not found: %w", err)
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, fmt.Errorf("quantity must not be negative")
		}
		b.Quantity = *req.Quantity
	}
	if req.UnitCost != nil {
		if req.UnitCost.IsNegative() {
			return nil, fmt.Errorf("unit_cost must not be negative")
		}
		b.UnitCost = *req.UnitCost
	}
	if req.SalePrice != nil {
		if req.SalePrice.IsNegative() {
			return nil, fmt.Errorf("sale_price must not be negative")
		}
		b.SalePrice = *req.SalePrice
	}
	if req.ExpiresAt != "" {
		expiresAt, err := time.Parse("2006-01-02", req.ExpiresAt)
		if err != nil {
			return nil, fmt.Errorf("invalid expires_at: %w", err)
		}
		b.ExpiresAt = expiresAt
	}
	if err := s.batches.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) RemoveBatch(ctx context.Context, id string) error {
	return s.batches.Delete(ctx, id)
}

func (s *service) ProductViews(ctx context.Context, retailerID string) ([]*ProductView, error) {
	batches, err := s.batches.ListByRetailer(ctx, retailerID)
	if err != nil {
		return nil, err
	}

	byProduct := make(map[uuid.UUID][]*Batch)
	for _, b := range batches {
		byProduct[b.ProductID] = append(byProduct[b.ProductID], b)
	}

	brands := make(map[uuid.UUID]string)
	if industries, err := s.actors.ListByKind(ctx, actor.KindIndustry); err == nil {
		for _, ind := range industries {
			name := ind.TradeName
			if name == "" {
				name = ind.Name
			}
			brands[ind.ID] = name
		}
	}

	since := s.now().AddDate(0, 0, -velocityWindowDays)
	lines, err := s.sales.LinesSince(ctx, retailerID, since)
	if err != nil {
		return nil, err
	}
	type velocity struct {
		quantity int
		revenue  decimal.Decimal
		saleIDs  map[uuid.UUID]struct{}
	}
	velocities := make(map[uuid.UUID]*velocity)
	for _, ln := range lines {
		v := velocities[ln.ProductID]
		if v == nil {
			v = &velocity{saleIDs: make(map[uuid.UUID]struct{})}
			velocities[ln.ProductID] = v
		}
		v.quantity += ln.Quantity
		v.revenue = v.revenue.Add(ln.UnitPrice.Mul(decimal.NewFromInt(int64(ln.Quantity))))
		v.saleIDs[ln.SaleID] = struct{}{}
	}

	var views []*ProductView
	for productID, group := range byProduct {
		p, err := s.catalog.GetByID(ctx, productID.String())
		if err != nil {
			// batch references a product missing from the catalog; skip the row
			continue
		}

		view := &ProductView{
			ProductID: productID,
			SKU:       p.SKU,
			Name:      p.Name,
			Category:  p.Category,
			Brand:     brands[p.IndustryID],
			Batches:   group,
		}

		var weightedPrice, weightedCost decimal.Decimal
		for _, b := range group {
			qty := decimal.NewFromInt(int64(b.Quantity))
			view.TotalStock += b.Quantity
			weightedPrice = weightedPrice.Add(b.SalePrice.Mul(qty))
			weightedCost = weightedCost.Add(b.UnitCost.Mul(qty))
			if view.NextExpiry == nil || b.ExpiresAt.Before(*view.NextExpiry) {
				exp := b.ExpiresAt
				view.NextExpiry = &exp
			}
		}
		if view.TotalStock > 0 {
			total := decimal.NewFromInt(int64(view.TotalStock))
			view.AvgPrice = weightedPrice.Div(total)
			view.AvgCost = weightedCost.Div(total)
		}

		if v := velocities[productID]; v != nil {
			view.QuantitySold30d = v.quantity
			view.SalesCount30d = len(v.saleIDs)
			view.Revenue30d = v.revenue
			if v.quantity > 0 {
				view.AvgSalePrice30d = v.revenue.Div(decimal.NewFromInt(int64(v.quantity)))
				profit := view.AvgSalePrice30d.Sub(view.AvgCost)
				if profit.IsNegative() {
					profit = decimal.Zero
				}
				view.AvgProfit30d = profit
			}
		}

		views = append(views, view)
	}

	coll := collate.New(language.BrazilianPortuguese)
	sort.Slice(views, func(i, j int) bool {
		return coll.CompareString(views[i].Name, views[j].Name) < 0
	})
	return views, nil
}
