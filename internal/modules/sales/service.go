package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vitrinedata/varejo-backend/internal/modules/catalog"
	"github.com/vitrinedata/varejo-backend/internal/modules/customer"
	"github.com/vitrinedata/varejo-backend/internal/modules/inventory"
)

// Service defines sales business logic.
type Service interface {
	RecordSale(ctx context.Context, req RecordSaleRequest) (*Sale, error)
	GetSale(ctx context.Context, id string) (*Sale, error)
	ListSales(ctx context.Context, retailerID string, days int) ([]*Sale, error)
	BulkDelete(ctx context.Context, retailerID string) (int64, error)
}

type service struct {
	repo    Repository
	batches inventory.BatchRepository
	catalog catalog.Repository
	now     func() time.Time
}

// NewService creates a new sales service.
func NewService(repo Repository, batches inventory.BatchRepository, catalogRepo catalog.Repository) Service {
	return &service{repo: repo, batches: batches, catalog: catalogRepo, now: time.Now}
}

func (s *service) RecordSale(ctx context.Context, req RecordSaleRequest) (*Sale, error) {
	retailerID, err := uuid.Parse(req.RetailerID)
	if err != nil {
		return nil, fmt.Errorf("invalid retailer_id: %w", err)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("at least one item is required")
	}

	customerID := customer.FinalConsumer
	if req.CustomerID != "" {
		customerID, err = uuid.Parse(req.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("invalid customer_id: %w", err)
		}
	}

	method := PaymentMethod(strings.ToUpper(req.PaymentMethod))
	switch method {
	case PaymentCash, PaymentDebit, PaymentCredit, PaymentPix, PaymentVoucher:
		// valid
	default:
		return nil, fmt.Errorf("invalid payment_method: %s (allowed: CASH, DEBIT, CREDIT, PIX, VOUCHER)", req.PaymentMethod)
	}

	soldAt := s.now()
	if req.SoldAt != "" {
		soldAt, err = time.Parse(time.RFC3339, req.SoldAt)
		if err != nil {
			return nil, fmt.Errorf("invalid sold_at: %w", err)
		}
	}
	if req.Discount.IsNegative() {
		return nil, fmt.Errorf("discount must not be negative")
	}

	// Build line items; every item must reference a catalog product.
	var items []LineItem
	quantities := make(map[uuid.UUID]int)
	var gross decimal.Decimal
	for i, it := range req.Items {
		productID, err := uuid.Parse(it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("item %d: invalid product_id: %w", i, err)
		}
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("item %d: quantity must be positive", i)
		}
		p, err := s.catalog.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("item %d: product not in catalog: %w", i, err)
		}
		price := p.SuggestedPrice
		if it.UnitPrice != nil {
			if it.UnitPrice.IsNegative() {
				return nil, fmt.Errorf("item %d: unit_price must not be negative", i)
			}
			price = *it.UnitPrice
		}
		total := price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		items = append(items, LineItem{
			ProductID: productID,
			SKU:       p.SKU,
			Quantity:  it.Quantity,
			UnitPrice: price,
			Total:     total,
		})
		quantities[productID] += it.Quantity
		gross = gross.Add(total)
	}

	// FEFO plan per product over the retailer's batches. The plan is applied
	// together with the sale insert in a single unit of work.
	var draws []inventory.BatchDraw
	for productID, qty := range quantities {
		batches, err := s.batches.ListByRetailerProduct(ctx, req.RetailerID, productID.String())
		if err != nil {
			return nil, err
		}
		plan, err := inventory.PlanDeduction(batches, qty)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", productID, err)
		}
		draws = append(draws, plan...)
	}

	net := gross.Sub(req.Discount)
	if net.IsNegative() {
		return nil, fmt.Errorf("discount exceeds gross total")
	}

	sale := &Sale{
		ID:            uuid.New(),
		RetailerID:    retailerID,
		CustomerID:    customerID,
		Items:         items,
		GrossTotal:    gross,
		Discount:      req.Discount,
		NetTotal:      net,
		PaymentMethod: method,
		SoldAt:        soldAt,
	}
	if err := s.repo.CreateSale(ctx, sale, draws); err != nil {
		return nil, err
	}
	return sale, nil
}

func (s *service) GetSale(ctx context.Context, id string) (*Sale, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListSales(ctx context.Context, retailerID string, days int) ([]*Sale, error) {
	since := time.Time{}
	if days > 0 {
		since = s.now().AddDate(0, 0, -days)
	}
	return s.repo.ListByRetailerSince(ctx, retailerID, since)
}

func (s *service) BulkDelete(ctx context.Context, retailerID string) (int64, error) {
	if _, err := uuid.Parse(retailerID); err != nil {
		return 0, fmt.Errorf("invalid retailer_id: %w", err)
	}
	return s.repo.DeleteByRetailer(ctx, retailerID)
}

// VelocityReader adapts the sales repository to the inventory aggregator's
// SalesReader contract.
type VelocityReader struct{ repo Repository }

func NewVelocityReader(repo Repository) *VelocityReader { return &VelocityReader{repo: repo} }

func (v *VelocityReader) LinesSince(ctx context.Context, retailerID string, since time.Time) ([]inventory.SaleLine, error) {
	sls, err := v.repo.ListByRetailerSince(ctx, retailerID, since)
	if err != nil {
		return nil, err
	}
	var lines []inventory.SaleLine
	for _, sale := range sls {
		for _, it := range sale.Items {
			lines = append(lines, inventory.SaleLine{
				SaleID:    sale.ID,
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
				SoldAt:    sale.SoldAt,
			})
		}
	}
	return lines, nil
}
