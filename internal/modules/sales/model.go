package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a sale was paid.
type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "CASH"
	PaymentDebit   PaymentMethod = "DEBIT"
	PaymentCredit  PaymentMethod = "CREDIT"
	PaymentPix     PaymentMethod = "PIX"
	PaymentVoucher PaymentMethod = "VOUCHER"
)

// LineItem is one product line within a sale.
type LineItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	SKU       string          `json:"sku"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// Sale is a completed point-of-sale transaction. Sales are immutable once
// recorded; the only mutation the module allows is bulk delete per retailer.
type Sale struct {
	ID            uuid.UUID       `json:"id"`
	RetailerID    uuid.UUID       `json:"retailer_id"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	Items         []LineItem      `json:"items"`
	GrossTotal    decimal.Decimal `json:"gross_total"`
	Discount      decimal.Decimal `json:"discount"`
	NetTotal      decimal.Decimal `json:"net_total"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	SoldAt        time.Time       `json:"sold_at"`
	CreatedAt     time.Time       `json:"created_at"`
}

// SaleItemRequest is one line of a RecordSaleRequest. UnitPrice falls back to
// the catalog suggested price when omitted.
type SaleItemRequest struct {
	ProductID string           `json:"product_id"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// RecordSaleRequest is the payload for recording a sale. An empty customer_id
// attributes the sale to the anonymous final consumer.
type RecordSaleRequest struct {
	RetailerID    string            `json:"retailer_id"`
	CustomerID    string            `json:"customer_id,omitempty"`
	PaymentMethod string            `json:"payment_method"`
	Discount      decimal.Decimal   `json:"discount,omitempty"`
	SoldAt        string            `json:"sold_at,omitempty"` // RFC 3339, defaults to now
	Items         []SaleItemRequest `json:"items"`
}
