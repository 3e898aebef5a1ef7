package vision

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ComboPair is a pair of the industry's products frequently bought together
// in the same sale.
type ComboPair struct {
	ProductA string `json:"product_a"`
	ProductB string `json:"product_b"`
	Count    int    `json:"count"`
}

// RegionStat aggregates industry-scoped revenue and units by the selling
// retailer's state code.
type RegionStat struct {
	State   string          `json:"state"`
	Revenue decimal.Decimal `json:"revenue"`
	Units   int             `json:"units"`
}

// WeekdayStat is industry-scoped revenue bucketed into one calendar weekday.
type WeekdayStat struct {
	Weekday string          `json:"weekday"`
	Revenue decimal.Decimal `json:"revenue"`
}

// ProductRank is a name/quantity row used for favorite-product lists.
type ProductRank struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// DemographicBucket aggregates industry-scoped revenue for one demographic
// segment (a gender, an age band, or a declared purchase habit).
type DemographicBucket struct {
	Name        string          `json:"name"`
	Revenue     decimal.Decimal `json:"revenue"`
	Customers   int             `json:"customers"`
	TopProducts []ProductRank   `json:"top_products"`
}

// CustomerRollup is the per-customer spending summary over the industry's
// products. Anonymous final-consumer sales never appear here.
type CustomerRollup struct {
	CustomerID       uuid.UUID       `json:"customer_id"`
	Name             string          `json:"name"`
	TotalSpent       decimal.Decimal `json:"total_spent"`
	Purchases        int             `json:"purchases"`
	FavoriteRetailer string          `json:"favorite_retailer,omitempty"`
}

// Report is the full cross-retailer analytics payload for an industry.
type Report struct {
	Combos    []ComboPair         `json:"combos"`
	Regions   []RegionStat        `json:"regions"`
	Weekdays  []WeekdayStat       `json:"weekdays"`
	ByGender  []DemographicBucket `json:"by_gender"`
	ByAgeBand []DemographicBucket `json:"by_age_band"`
	ByHabit   []DemographicBucket `json:"by_habit"`
	Customers []CustomerRollup    `json:"customers"`
}

// KPIs are the headline numbers of the industry dashboard.
type KPIs struct {
	NumberOfSales int             `json:"number_of_sales"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	AverageTicket decimal.Decimal `json:"average_ticket"`
}

// RetailerRevenue is one row of the industry dashboard's per-retailer table.
type RetailerRevenue struct {
	RetailerID uuid.UUID       `json:"retailer_id"`
	Name       string          `json:"name"`
	Revenue    decimal.Decimal `json:"revenue"`
	Units      int             `json:"units"`
}

// TopProduct ranks an industry product by units sold across all retailers.
type TopProduct struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// Overview is the industry dashboard payload.
type Overview struct {
	KPIs        KPIs              `json:"kpis"`
	ByRetailer  []RetailerRevenue `json:"by_retailer"`
	TopProducts []TopProduct      `json:"top_products"`
}

// OverviewQuery selects the industry dashboard window. RetailerName, when
// set, restricts the per-retailer table by case-insensitive substring match.
type OverviewQuery struct {
	IndustryID   string
	Days         int
	RetailerName string
}
