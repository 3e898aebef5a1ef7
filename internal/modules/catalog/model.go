package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is an entry in the global catalog. Products are owned by the
// industry that manufactures them; retailers carry them as inventory batches.
type Product struct {
	ID             uuid.UUID       `json:"id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Subcategory    string          `json:"subcategory,omitempty"`
	IndustryID     uuid.UUID       `json:"industry_id"`
	SuggestedPrice decimal.Decimal `json:"suggested_price"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CreateProductRequest is the payload for adding a product to the catalog.
type CreateProductRequest struct {
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Subcategory    string          `json:"subcategory,omitempty"`
	IndustryID     string          `json:"industry_id"`
	SuggestedPrice decimal.Decimal `json:"suggested_price"`
}
