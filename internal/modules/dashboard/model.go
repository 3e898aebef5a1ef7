package dashboard

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// KPIs are the headline numbers for a retailer's dashboard. They react to the
// category and exact-date filters.
type KPIs struct {
	NumberOfSales int             `json:"number_of_sales"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	AverageTicket decimal.Decimal `json:"average_ticket"`
}

// ChartPoint is one chart-ready name/value pair.
type ChartPoint struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// TopProduct is a row of the best-sellers table.
type TopProduct struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// Overview is the full dashboard payload. KPIs honor the query filters; the
// series, the category breakdown, and the top-products table are always
// derived from the unfiltered lookback window so the charts stay stable while
// the KPIs react.
type Overview struct {
	KPIs            KPIs         `json:"kpis"`
	DailyRevenue    []ChartPoint `json:"daily_revenue"`
	CategoryRevenue []ChartPoint `json:"category_revenue"`
	TopProducts     []TopProduct `json:"top_products"`
}

// Query selects the dashboard window and optional filters. Day and Month
// match calendar day/month year-agnostically; zero means no filter.
type Query struct {
	RetailerID string
	Days       int
	Category   string
	Day        int
	Month      int
}
