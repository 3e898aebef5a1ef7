package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vitrinedata/varejo-backend/internal/modules/catalog"
	"github.com/vitrinedata/varejo-backend/internal/modules/sales"
)

// defaultWindowDays is the lookback used when the query does not set one.
const defaultWindowDays = 30

// Service computes retailer dashboards.
type Service interface {
	Overview(ctx context.Context, q Query) (*Overview, error)
}

type service struct {
	sales   sales.Repository
	catalog catalog.Repository
	now     func() time.Time
}

// NewService creates a new dashboard service.
func NewService(salesRepo sales.Repository, catalogRepo catalog.Repository) Service {
	return &service{sales: salesRepo, catalog: catalogRepo, now: time.Now}
}

func (s *service) Overview(ctx context.Context, q Query) (*Overview, error) {
	if q.RetailerID == "" {
		return nil, fmt.Errorf("retailer id is required")
	}
	days := q.Days
	if days <= 0 {
		days = defaultWindowDays
	}
	if q.Month < 0 || q.Month > 12 || q.Day < 0 || q.Day > 31 {
		return nil, fmt.Errorf("invalid day/month filter")
	}

	since := s.now().AddDate(0, 0, -days)
	window, err := s.sales.ListByRetailerSince(ctx, q.RetailerID, since)
	if err != nil {
		return nil, err
	}

	products, err := s.catalog.List(ctx, "", "")
	if err != nil {
		return nil, err
	}
	categories := make(map[uuid.UUID]string, len(products))
	names := make(map[uuid.UUID]string, len(products))
	for _, p := range products {
		categories[p.ID] = p.Category
		names[p.ID] = p.Name
	}

	// Filtered set drives the KPIs only.
	kpis := s.computeKPIs(window, q, categories)

	// Charts and top products always come off the unfiltered window.
	overview := &Overview{
		KPIs:            kpis,
		DailyRevenue:    dailySeries(window),
		CategoryRevenue: categoryBreakdown(window, categories),
		TopProducts:     topProducts(window, names, 5),
	}
	return overview, nil
}

func (s *service) computeKPIs(window []*sales.Sale, q Query, categories map[uuid.UUID]string) KPIs {
	var count int
	var revenue decimal.Decimal
	for _, sale := range window {
		if q.Day > 0 && sale.SoldAt.Day() != q.Day {
			continue
		}
		if q.Month > 0 && int(sale.SoldAt.Month()) != q.Month {
			continue
		}
		if q.Category == "" {
			count++
			revenue = revenue.Add(sale.NetTotal)
			continue
		}
		// Category filter: re-total the sale over matching items and drop
		// sales with no matching item.
		var matched decimal.Decimal
		any := false
		for _, it := range sale.Items {
			if categories[it.ProductID] == q.Category {
				matched = matched.Add(it.Total)
				any = true
			}
		}
		if !any {
			continue
		}
		count++
		revenue = revenue.Add(matched)
	}

	kpis := KPIs{NumberOfSales: count, TotalRevenue: revenue}
	if count > 0 {
		kpis.AverageTicket = revenue.Div(decimal.NewFromInt(int64(count)))
	}
	return kpis
}

func dailySeries(window []*sales.Sale) []ChartPoint {
	byDay := make(map[string]decimal.Decimal)
	for _, sale := range window {
		day := sale.SoldAt.Format("2006-01-02")
		byDay[day] = byDay[day].Add(sale.NetTotal)
	}
	points := make([]ChartPoint, 0, len(byDay))
	for day, value := range byDay {
		points = append(points, ChartPoint{Name: day, Value: value})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Name < points[j].Name })
	return points
}

func categoryBreakdown(window []*sales.Sale, categories map[uuid.UUID]string) []ChartPoint {
	byCategory := make(map[string]decimal.Decimal)
	for _, sale := range window {
		for _, it := range sale.Items {
			cat, ok := categories[it.ProductID]
			if !ok {
				continue
			}
			byCategory[cat] = byCategory[cat].Add(it.Total)
		}
	}
	points := make([]ChartPoint, 0, len(byCategory))
	for cat, value := range byCategory {
		points = append(points, ChartPoint{Name: cat, Value: value})
	}
	sort.Slice(points, func(i, j int) bool {
		if !points[i].Value.Equal(points[j].Value) {
			return points[i].Value.GreaterThan(points[j].Value)
		}
		return points[i].Name < points[j].Name
	})
	return points
}

func topProducts(window []*sales.Sale, names map[uuid.UUID]string, n int) []TopProduct {
	type acc struct {
		quantity int
		revenue  decimal.Decimal
	}
	byProduct := make(map[uuid.UUID]*acc)
	for _, sale := range window {
		for _, it := range sale.Items {
			if _, ok := names[it.ProductID]; !ok {
				continue
			}
			a := byProduct[it.ProductID]
			if a == nil {
				a = &acc{}
				byProduct[it.ProductID] = a
			}
			a.quantity += it.Quantity
			a.revenue = a.revenue.Add(it.Total)
		}
	}

	rows := make([]TopProduct, 0, len(byProduct))
	for id, a := range byProduct {
		rows = append(rows, TopProduct{ProductID: id, Name: names[id], Quantity: a.quantity, Revenue: a.revenue})
	}
	// quantity desc, name asc on ties
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Quantity != rows[j].Quantity {
			return rows[i].Quantity > rows[j].Quantity
		}
		return rows[i].Name < rows[j].Name
	})
	if len(rows) > n {
		rows = rows[:n]
	}
	return rows
}
