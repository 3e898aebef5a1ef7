package rating

// Tier is a retailer's data-quality classification. Tiers gate incentive
// program eligibility and advertise the value of the retailer's data.
type Tier string

const (
	TierBronze   Tier = "Bronze"
	TierPrata    Tier = "Prata"
	TierOuro     Tier = "Ouro"
	TierDiamante Tier = "Diamante"
)

var tierRank = map[Tier]int{
	TierBronze:   0,
	TierPrata:    1,
	TierOuro:     2,
	TierDiamante: 3,
}

// Rank returns the tier's position in the strict Bronze < Prata < Ouro <
// Diamante ordering. Unknown tiers rank below Bronze.
func (t Tier) Rank() int {
	if r, ok := tierRank[t]; ok {
		return r
	}
	return -1
}

// AtLeast reports whether t is equal to or above other.
func (t Tier) AtLeast(other Tier) bool { return t.Rank() >= other.Rank() }

// Score is the full rating output: the tier plus the inputs it was derived
// from, recomputed fresh on every call.
type Score struct {
	RetailerID      string  `json:"retailer_id"`
	Tier            Tier    `json:"tier"`
	RecentSales     int     `json:"recent_sales"`
	StockCoveragePc float64 `json:"stock_coverage_pct"`
}
