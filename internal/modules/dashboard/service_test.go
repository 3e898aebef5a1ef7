package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrinedata/varejo-backend/internal/modules/catalog"
	"github.com/vitrinedata/varejo-backend/internal/modules/inventory"
	"github.com/vitrinedata/varejo-backend/internal/modules/sales"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type dashFixture struct {
	svc        *service
	salesRepo  *sales.MemoryRepository
	catalog    *catalog.MemoryRepository
	retailerID uuid.UUID
	now        time.Time
}

func newDashFixture(t *testing.T) *dashFixture {
	t.Helper()
	f := &dashFixture{
		salesRepo:  sales.NewMemoryRepository(inventory.NewMemoryRepository()),
		catalog:    catalog.NewMemoryRepository(),
		retailerID: uuid.New(),
		now:        time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC),
	}
	svc := NewService(f.salesRepo, f.catalog).(*service)
	svc.now = func() time.Time { return f.now }
	f.svc = svc
	return f
}

func (f *dashFixture) addProduct(t *testing.T, name, category string) uuid.UUID {
	t.Helper()
	p := &catalog.Product{ID: uuid.New(), SKU: name, Name: name, Category: category}
	require.NoError(t, f.catalog.Create(context.Background(), p))
	return p.ID
}

func (f *dashFixture) addSale(t *testing.T, soldAt time.Time, items ...sales.LineItem) {
	t.Helper()
	var net decimal.Decimal
	for _, it := range items {
		net = net.Add(it.Total)
	}
	err := f.salesRepo.CreateSale(context.Background(), &sales.Sale{
		ID:         uuid.New(),
		RetailerID: f.retailerID,
		Items:      items,
		GrossTotal: net,
		NetTotal:   net,
		SoldAt:     soldAt,
	}, nil)
	require.NoError(t, err)
}

func item(productID uuid.UUID, qty int, unit string) sales.LineItem {
	price := dec(unit)
	return sales.LineItem{
		ProductID: productID,
		Quantity:  qty,
		UnitPrice: price,
		Total:     price.Mul(decimal.NewFromInt(int64(qty))),
	}
}

func TestOverviewEmptyWindow(t *testing.T) {
	f := newDashFixture(t)

	o, err := f.svc.Overview(context.Background(), Query{RetailerID: f.retailerID.String()})
	require.NoError(t, err)
	assert.Equal(t, 0, o.KPIs.NumberOfSales)
	assert.True(t, o.KPIs.TotalRevenue.IsZero())
	assert.True(t, o.KPIs.AverageTicket.IsZero())
	assert.Empty(t, o.DailyRevenue)
	assert.Empty(t, o.TopProducts)
}

func TestOverviewAverageTicketIdentity(t *testing.T) {
	f := newDashFixture(t)
	arroz := f.addProduct(t, "Arroz Integral 1kg", "Mercearia")
	f.addSale(t, f.now.AddDate(0, 0, -1), item(arroz, 2, "20"))
	f.addSale(t, f.now.AddDate(0, 0, -3), item(arroz, 1, "20"))

	o, err := f.svc.Overview(context.Background(), Query{RetailerID: f.retailerID.String()})
	require.NoError(t, err)
	assert.Equal(t, 2, o.KPIs.NumberOfSales)
	assert.True(t, o.KPIs.TotalRevenue.Equal(dec("60")))
	assert.True(t, o.KPIs.AverageTicket.Equal(dec("30")))
}

func TestOverviewCategoryFilterRetotalsKPIsOnly(t *testing.T) {
	f := newDashFixture(t)
	arroz := f.addProduct(t, "Arroz Integral 1kg", "Mercearia")
	sabao := f.addProduct(t, "Sabão em Pó 1kg", "Limpeza")
	// mixed sale: 40 grocery + 15 cleaning
	f.addSale(t, f.now.AddDate(0, 0, -2), item(arroz, 2, "20"), item(sabao, 1, "15"))
	// cleaning-only sale
	f.addSale(t, f.now.AddDate(0, 0, -4), item(sabao, 2, "15"))

	o, err := f.svc.Overview(context.Background(), Query{
		RetailerID: f.retailerID.String(),
		Category:   "Mercearia",
	})
	require.NoError(t, err)

	// KPIs: only the mixed sale matches, re-totaled to its grocery items.
	assert.Equal(t, 1, o.KPIs.NumberOfSales)
	assert.True(t, o.KPIs.TotalRevenue.Equal(dec("40")))

	// Charts stay unfiltered.
	assert.Len(t, o.DailyRevenue, 2)
	require.Len(t, o.CategoryRevenue, 2)
	assert.Equal(t, "Limpeza", o.CategoryRevenue[0].Name)
	assert.True(t, o.CategoryRevenue[0].Value.Equal(dec("45")))
	assert.Len(t, o.TopProducts, 2)
}

func TestOverviewDayMonthFilters(t *testing.T) {
	f := newDashFixture(t)
	arroz := f.addProduct(t, "Arroz Integral 1kg", "Mercearia")
	f.addSale(t, time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC), item(arroz, 1, "20"))
	f.addSale(t, time.Date(2026, 6, 12, 9, 0, 0, 0, time.UTC), item(arroz, 1, "20"))

	o, err := f.svc.Overview(context.Background(), Query{
		RetailerID: f.retailerID.String(),
		Day:        10,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, o.KPIs.NumberOfSales)

	o, err = f.svc.Overview(context.Background(), Query{
		RetailerID: f.retailerID.String(),
		Month:      5,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, o.KPIs.NumberOfSales)
	// charts still show the whole window
	assert.Len(t, o.DailyRevenue, 2)
}

func TestOverviewTopProductsRankedByQuantity(t *testing.T) {
	f := newDashFixture(t)
	arroz := f.addProduct(t, "Arroz Integral 1kg", "Mercearia")
	feijao := f.addProduct(t, "Feijão Preto 1kg", "Mercearia")
	cafe := f.addProduct(t, "Café Torrado 500g", "Mercearia")
	f.addSale(t, f.now.AddDate(0, 0, -1),
		item(arroz, 5, "20"), item(feijao, 2, "14"), item(cafe, 5, "25"))

	o, err := f.svc.Overview(context.Background(), Query{RetailerID: f.retailerID.String()})
	require.NoError(t, err)
	require.Len(t, o.TopProducts, 3)
	// tie on quantity resolved by name
	assert.Equal(t, "Arroz Integral 1kg", o.TopProducts[0].Name)
	assert.Equal(t, "Café Torrado 500g", o.TopProducts[1].Name)
	assert.Equal(t, "Feijão Preto 1kg", o.TopProducts[2].Name)
}

func TestOverviewTopProductsCappedAtFive(t *testing.T) {
	f := newDashFixture(t)
	var items []sales.LineItem
	for i := 0; i < 7; i++ {
		id := f.addProduct(t, string(rune('A'+i))+" produto", "Mercearia")
		items = append(items, item(id, i+1, "10"))
	}
	f.addSale(t, f.now.AddDate(0, 0, -1), items...)

	o, err := f.svc.Overview(context.Background(), Query{RetailerID: f.retailerID.String()})
	require.NoError(t, err)
	assert.Len(t, o.TopProducts, 5)
	assert.Equal(t, 7, o.TopProducts[0].Quantity)
}

func TestOverviewRejectsBadFilters(t *testing.T) {
	f := newDashFixture(t)

	_, err := f.svc.Overview(context.Background(), Query{RetailerID: f.retailerID.String(), Month: 13})
	assert.Error(t, err)

	_, err = f.svc.Overview(context.Background(), Query{RetailerID: f.retailerID.String(), Day: 32})
	assert.Error(t, err)

	_, err = f.svc.Overview(context.Background(), Query{})
	assert.Error(t, err)
}
