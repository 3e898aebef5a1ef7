package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Batch is one stock lot of a product held by a retailer. A retailer may hold
// several batches of the same product from different purchase lots, each with
// its own cost, price, and expiry.
type Batch struct {
	ID         uuid.UUID       `json:"id"`
	RetailerID uuid.UUID       `json:"retailer_id"`
	ProductID  uuid.UUID       `json:"product_id"`
	Quantity   int             `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	SalePrice  decimal.Decimal `json:"sale_price"`
	ExpiresAt  time.Time       `json:"expires_at"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// BatchDraw is one step of a FEFO deduction plan: take Quantity units out of
// the batch identified by BatchID.
type BatchDraw struct {
	BatchID  uuid.UUID `json:"batch_id"`
	Quantity int       `json:"quantity"`
}

// SaleLine is the slice of a sale the inventory aggregator needs to compute
// sales-velocity metrics. The sales module adapts its records into this shape.
type SaleLine struct {
	SaleID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
	SoldAt    time.Time
}

// ProductView is the merged per-product row returned by the aggregator:
// all of a retailer's batches for one product collapsed into totals, weighted
// averages, and trailing-30-day velocity metrics.
type ProductView struct {
	ProductID       uuid.UUID       `json:"product_id"`
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	Brand           string          `json:"brand,omitempty"`
	TotalStock      int             `json:"total_stock"`
	AvgPrice        decimal.Decimal `json:"avg_price"`
	AvgCost         decimal.Decimal `json:"avg_cost"`
	NextExpiry      *time.Time      `json:"next_expiry,omitempty"`
	Batches         []*Batch        `json:"batches"`
	QuantitySold30d int             `json:"quantity_sold_30d"`
	SalesCount30d   int             `json:"sales_count_30d"`
	Revenue30d      decimal.Decimal `json:"revenue_30d"`
	AvgSalePrice30d decimal.Decimal `json:"avg_sale_price_30d"`
	AvgProfit30d    decimal.Decimal `json:"avg_profit_30d"`
}

// CreateBatchRequest is the payload for registering a stock lot.
type CreateBatchRequest struct {
	RetailerID string          `json:"retailer_id"`
	ProductID  string          `json:"product_id"`
	Quantity   int             `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	SalePrice  decimal.Decimal `json:"sale_price"`
	ExpiresAt  string          `json:"expires_at"` // YYYY-MM-DD
}

// UpdateBatchRequest adjusts a batch's quantity or pricing.
type UpdateBatchRequest struct {
	Quantity  *int             `json:"quantity,omitempty"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
	SalePrice *decimal.Decimal `json:"sale_price,omitempty"`
	ExpiresAt string           `json:"expires_at,omitempty"`
}
