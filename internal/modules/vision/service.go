package vision

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vitrinedata/varejo-backend/internal/modules/actor"
	"github.com/vitrinedata/varejo-backend/internal/modules/catalog"
	"github.com/vitrinedata/varejo-backend/internal/modules/customer"
	"github.com/vitrinedata/varejo-backend/internal/modules/sales"
)

const comboTopN = 5
const favoriteTopN = 3

// Service computes cross-retailer analytics scoped to one industry's own
// products.
type Service interface {
	Report(ctx context.Context, industryID string) (*Report, error)
	Overview(ctx context.Context, q OverviewQuery) (*Overview, error)
}

type service struct {
	sales     sales.Repository
	catalog   catalog.Repository
	actors    actor.Repository
	customers customer.Repository
	now       func() time.Time
}

// NewService creates a new vision service.
func NewService(salesRepo sales.Repository, catalogRepo catalog.Repository, actors actor.Repository, customers customer.Repository) Service {
	return &service{sales: salesRepo, catalog: catalogRepo, actors: actors, customers: customers, now: time.Now}
}

// scopedSale is a sale reduced to the industry's own line items.
type scopedSale struct {
	sale     *sales.Sale
	items    []sales.LineItem
	subtotal decimal.Decimal
	units    int
}

// scopedSales keeps, for every sale since the given time, only the line items
// whose product belongs to the industry. Sales with no matching item are
// dropped entirely. Also returns the industry's product-name index.
func (s *service) scopedSales(ctx context.Context, industryID string, since time.Time) ([]scopedSale, map[uuid.UUID]string, error) {
	products, err := s.catalog.List(ctx, "", industryID)
	if err != nil {
		return nil, nil, err
	}
	names := make(map[uuid.UUID]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	all, err := s.sales.ListSince(ctx, since)
	if err != nil {
		return nil, nil, err
	}

	var scoped []scopedSale
	for _, sale := range all {
		var kept []sales.LineItem
		var subtotal decimal.Decimal
		units := 0
		for _, it := range sale.Items {
			if _, ok := names[it.ProductID]; !ok {
				continue
			}
			kept = append(kept, it)
			subtotal = subtotal.Add(it.Total)
			units += it.Quantity
		}
		if len(kept) == 0 {
			continue
		}
		scoped = append(scoped, scopedSale{sale: sale, items: kept, subtotal: subtotal, units: units})
	}
	return scoped, names, nil
}

func (s *service) Report(ctx context.Context, industryID string) (*Report, error) {
	if _, err := uuid.Parse(industryID); err != nil {
		return nil, fmt.Errorf("invalid industry id: %w", err)
	}
	scoped, names, err := s.scopedSales(ctx, industryID, time.Time{})
	if err != nil {
		return nil, err
	}

	retailers, err := s.actors.ListByKind(ctx, actor.KindRetailer)
	if err != nil {
		return nil, err
	}
	states := make(map[uuid.UUID]string, len(retailers))
	retailerNames := make(map[uuid.UUID]string, len(retailers))
	for _, r := range retailers {
		states[r.ID] = r.State
		retailerNames[r.ID] = r.Name
	}

	customers, err := s.customers.List(ctx)
	if err != nil {
		return nil, err
	}
	profiles := make(map[uuid.UUID]*customer.Customer, len(customers))
	for _, c := range customers {
		profiles[c.ID] = c
	}

	report := &Report{
		Combos:   combos(scoped, names),
		Regions:  regions(scoped, states),
		Weekdays: weekdays(scoped),
	}
	report.ByGender, report.ByAgeBand, report.ByHabit = s.demographics(scoped, names, profiles)
	report.Customers = rollups(scoped, profiles, retailerNames)
	return report, nil
}

// combos counts unordered product pairs within each multi-item sale and
// returns the most frequent ones.
func combos(scoped []scopedSale, names map[uuid.UUID]string) []ComboPair {
	type pairKey struct{ a, b uuid.UUID }
	counts := make(map[pairKey]int)
	for _, sc := range scoped {
		distinct := make(map[uuid.UUID]struct{})
		for _, it := range sc.items {
			distinct[it.ProductID] = struct{}{}
		}
		if len(distinct) < 2 {
			continue
		}
		ids := make([]uuid.UUID, 0, len(distinct))
		for id := range distinct {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				counts[pairKey{ids[i], ids[j]}]++
			}
		}
	}

	pairs := make([]ComboPair, 0, len(counts))
	for k, n := range counts {
		a, b := names[k.a], names[k.b]
		if b < a {
			a, b = b, a
		}
		pairs = append(pairs, ComboPair{ProductA: a, ProductB: b, Count: n})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Count != pairs[j].Count {
			return pairs[i].Count > pairs[j].Count
		}
		if pairs[i].ProductA != pairs[j].ProductA {
			return pairs[i].ProductA < pairs[j].ProductA
		}
		return pairs[i].ProductB < pairs[j].ProductB
	})
	if len(pairs) > comboTopN {
		pairs = pairs[:comboTopN]
	}
	return pairs
}

func regions(scoped []scopedSale, states map[uuid.UUID]string) []RegionStat {
	type acc struct {
		revenue decimal.Decimal
		units   int
	}
	byState := make(map[string]*acc)
	for _, sc := range scoped {
		state := states[sc.sale.RetailerID]
		if state == "" {
			state = "N/A"
		}
		a := byState[state]
		if a == nil {
			a = &acc{}
			byState[state] = a
		}
		a.revenue = a.revenue.Add(sc.subtotal)
		a.units += sc.units
	}
	stats := make([]RegionStat, 0, len(byState))
	for state, a := range byState {
		stats = append(stats, RegionStat{State: state, Revenue: a.revenue, Units: a.units})
	}
	sort.Slice(stats, func(i, j int) bool {
		if !stats[i].Revenue.Equal(stats[j].Revenue) {
			return stats[i].Revenue.GreaterThan(stats[j].Revenue)
		}
		return stats[i].State < stats[j].State
	})
	return stats
}

func weekdays(scoped []scopedSale) []WeekdayStat {
	buckets := make([]decimal.Decimal, 7)
	for _, sc := range scoped {
		wd := int(sc.sale.SoldAt.Weekday())
		buckets[wd] = buckets[wd].Add(sc.subtotal)
	}
	stats := make([]WeekdayStat, 7)
	for i := 0; i < 7; i++ {
		stats[i] = WeekdayStat{Weekday: time.Weekday(i).String(), Revenue: buckets[i]}
	}
	return stats
}

// demographics buckets revenue by gender, age band, and declared habit.
// Sales attributed to the anonymous final consumer are skipped: there is no
// profile to attribute them to.
func (s *service) demographics(scoped []scopedSale, names map[uuid.UUID]string, profiles map[uuid.UUID]*customer.Customer) (byGender, byAge, byHabit []DemographicBucket) {
	now := s.now()
	gender := newBucketSet()
	age := newBucketSet()
	habit := newBucketSet()

	for _, sc := range scoped {
		if customer.IsFinalConsumer(sc.sale.CustomerID) {
			continue
		}
		c, ok := profiles[sc.sale.CustomerID]
		if !ok {
			continue
		}
		if c.Gender != "" {
			gender.add(string(c.Gender), sc)
		}
		if band := c.AgeBand(now); band != "" {
			age.add(band, sc)
		}
		if c.Habit != "" {
			habit.add(c.Habit, sc)
		}
	}
	return gender.rows(names), age.rows(names), habit.rows(names)
}

type bucket struct {
	revenue   decimal.Decimal
	customers map[uuid.UUID]struct{}
	products  map[uuid.UUID]int
}

type bucketSet struct{ m map[string]*bucket }

func newBucketSet() *bucketSet { return &bucketSet{m: make(map[string]*bucket)} }

func (bs *bucketSet) add(name string, sc scopedSale) {
	b := bs.m[name]
	if b == nil {
		b = &bucket{customers: make(map[uuid.UUID]struct{}), products: make(map[uuid.UUID]int)}
		bs.m[name] = b
	}
	b.revenue = b.revenue.Add(sc.subtotal)
	b.customers[sc.sale.CustomerID] = struct{}{}
	for _, it := range sc.items {
		b.products[it.ProductID] += it.Quantity
	}
}

func (bs *bucketSet) rows(names map[uuid.UUID]string) []DemographicBucket {
	rows := make([]DemographicBucket, 0, len(bs.m))
	for name, b := range bs.m {
		rows = append(rows, DemographicBucket{
			Name:        name,
			Revenue:     b.revenue,
			Customers:   len(b.customers),
			TopProducts: topRanks(b.products, names, favoriteTopN),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Revenue.Equal(rows[j].Revenue) {
			return rows[i].Revenue.GreaterThan(rows[j].Revenue)
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}

func topRanks(quantities map[uuid.UUID]int, names map[uuid.UUID]string, n int) []ProductRank {
	ranks := make([]ProductRank, 0, len(quantities))
	for id, qty := range quantities {
		ranks = append(ranks, ProductRank{Name: names[id], Quantity: qty})
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Quantity != ranks[j].Quantity {
			return ranks[i].Quantity > ranks[j].Quantity
		}
		return ranks[i].Name < ranks[j].Name
	})
	if len(ranks) > n {
		ranks = ranks[:n]
	}
	return ranks
}

func rollups(scoped []scopedSale, profiles map[uuid.UUID]*customer.Customer, retailerNames map[uuid.UUID]string) []CustomerRollup {
	type acc struct {
		spent      decimal.Decimal
		purchases  int
		byRetailer map[uuid.UUID]decimal.Decimal
	}
	byCustomer := make(map[uuid.UUID]*acc)
	for _, sc := range scoped {
		if customer.IsFinalConsumer(sc.sale.CustomerID) {
			continue
		}
		a := byCustomer[sc.sale.CustomerID]
		if a == nil {
			a = &acc{byRetailer: make(map[uuid.UUID]decimal.Decimal)}
			byCustomer[sc.sale.CustomerID] = a
		}
		a.spent = a.spent.Add(sc.subtotal)
		a.purchases++
		a.byRetailer[sc.sale.RetailerID] = a.byRetailer[sc.sale.RetailerID].Add(sc.subtotal)
	}

	rows := make([]CustomerRollup, 0, len(byCustomer))
	for id, a := range byCustomer {
		row := CustomerRollup{CustomerID: id, TotalSpent: a.spent, Purchases: a.purchases}
		if c, ok := profiles[id]; ok {
			row.Name = c.Name
		}
		var bestRevenue decimal.Decimal
		var bestID uuid.UUID
		for rid, rev := range a.byRetailer {
			if rev.GreaterThan(bestRevenue) || (rev.Equal(bestRevenue) && rid.String() < bestID.String()) {
				bestRevenue = rev
				bestID = rid
			}
		}
		row.FavoriteRetailer = retailerNames[bestID]
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].TotalSpent.Equal(rows[j].TotalSpent) {
			return rows[i].TotalSpent.GreaterThan(rows[j].TotalSpent)
		}
		return rows[i].CustomerID.String() < rows[j].CustomerID.String()
	})
	return rows
}

func (s *service) Overview(ctx context.Context, q OverviewQuery) (*Overview, error) {
	if _, err := uuid.Parse(q.IndustryID); err != nil {
		return nil, fmt.Errorf("invalid industry id: %w", err)
	}
	days := q.Days
	if days <= 0 {
		days = 30
	}
	since := s.now().AddDate(0, 0, -days)
	scoped, names, err := s.scopedSales(ctx, q.IndustryID, since)
	if err != nil {
		return nil, err
	}

	retailers, err := s.actors.ListByKind(ctx, actor.KindRetailer)
	if err != nil {
		return nil, err
	}
	retailerNames := make(map[uuid.UUID]string, len(retailers))
	for _, r := range retailers {
		retailerNames[r.ID] = r.Name
	}

	overview := &Overview{}
	overview.KPIs.NumberOfSales = len(scoped)
	for _, sc := range scoped {
		overview.KPIs.TotalRevenue = overview.KPIs.TotalRevenue.Add(sc.subtotal)
	}
	if len(scoped) > 0 {
		overview.KPIs.AverageTicket = overview.KPIs.TotalRevenue.Div(decimal.NewFromInt(int64(len(scoped))))
	}

	// Per-retailer table, optionally narrowed by name.
	type acc struct {
		revenue decimal.Decimal
		units   int
	}
	byRetailer := make(map[uuid.UUID]*acc)
	for _, sc := range scoped {
		a := byRetailer[sc.sale.RetailerID]
		if a == nil {
			a = &acc{}
			byRetailer[sc.sale.RetailerID] = a
		}
		a.revenue = a.revenue.Add(sc.subtotal)
		a.units += sc.units
	}
	filter := strings.ToLower(q.RetailerName)
	for id, a := range byRetailer {
		name := retailerNames[id]
		if filter != "" && !strings.Contains(strings.ToLower(name), filter) {
			continue
		}
		overview.ByRetailer = append(overview.ByRetailer, RetailerRevenue{
			RetailerID: id, Name: name, Revenue: a.revenue, Units: a.units,
		})
	}
	sort.Slice(overview.ByRetailer, func(i, j int) bool {
		if !overview.ByRetailer[i].Revenue.Equal(overview.ByRetailer[j].Revenue) {
			return overview.ByRetailer[i].Revenue.GreaterThan(overview.ByRetailer[j].Revenue)
		}
		return overview.ByRetailer[i].Name < overview.ByRetailer[j].Name
	})

	// Top products by units across all retailers.
	type pacc struct {
		quantity int
		revenue  decimal.Decimal
	}
	byProduct := make(map[uuid.UUID]*pacc)
	for _, sc := range scoped {
		for _, it := range sc.items {
			a := byProduct[it.ProductID]
			if a == nil {
				a = &pacc{}
				byProduct[it.ProductID] = a
			}
			a.quantity += it.Quantity
			a.revenue = a.revenue.Add(it.Total)
		}
	}
	for id, a := range byProduct {
		overview.TopProducts = append(overview.TopProducts, TopProduct{
			ProductID: id, Name: names[id], Quantity: a.quantity, Revenue: a.revenue,
		})
	}
	sort.Slice(overview.TopProducts, func(i, j int) bool {
		if overview.TopProducts[i].Quantity != overview.TopProducts[j].Quantity {
			return overview.TopProducts[i].Quantity > overview.TopProducts[j].Quantity
		}
		return overview.TopProducts[i].Name < overview.TopProducts[j].Name
	})
	if len(overview.TopProducts) > comboTopN {
		overview.TopProducts = overview.TopProducts[:comboTopN]
	}
	return overview, nil
}
