package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrinedata/varejo-backend/internal/modules/actor"
	"github.com/vitrinedata/varejo-backend/internal/modules/catalog"
)

type stubSalesReader struct{ lines []SaleLine }

func (s stubSalesReader) LinesSince(context.Context, string, time.Time) ([]SaleLine, error) {
	return s.lines, nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type viewFixture struct {
	svc        *service
	batches    *MemoryBatchRepository
	catalog    *catalog.MemoryRepository
	actors     *actor.MemoryRepository
	retailerID uuid.UUID
	industryID uuid.UUID
	now        time.Time
}

func newViewFixture(t *testing.T, lines []SaleLine) *viewFixture {
	t.Helper()
	f := &viewFixture{
		batches:    NewMemoryRepository(),
		catalog:    catalog.NewMemoryRepository(),
		actors:     actor.NewMemoryRepository(),
		retailerID: uuid.New(),
		industryID: uuid.New(),
		now:        time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, f.actors.Create(context.Background(), &actor.Actor{
		ID:        f.industryID,
		Kind:      actor.KindIndustry,
		Name:      "Alimentos Aurora SA",
		TradeName: "Aurora",
	}))
	svc := NewService(f.batches, f.catalog, f.actors, stubSalesReader{lines: lines}).(*service)
	svc.now = func() time.Time { return f.now }
	f.svc = svc
	return f
}

func (f *viewFixture) addProduct(t *testing.T, name, sku string) uuid.UUID {
	t.Helper()
	p := &catalog.Product{
		ID:         uuid.New(),
		SKU:        sku,
		Name:       name,
		Category:   "Mercearia",
		IndustryID: f.industryID,
	}
	require.NoError(t, f.catalog.Create(context.Background(), p))
	return p.ID
}

func (f *viewFixture) addBatch(t *testing.T, productID uuid.UUID, qty int, cost, price string, expires time.Time) *Batch {
	t.Helper()
	b := &Batch{
		ID:         uuid.New(),
		RetailerID: f.retailerID,
		ProductID:  productID,
		Quantity:   qty,
		UnitCost:   dec(cost),
		SalePrice:  dec(price),
		ExpiresAt:  expires,
	}
	require.NoError(t, f.batches.Create(context.Background(), b))
	return b
}

func TestProductViewsWeightedAverages(t *testing.T) {
	f := newViewFixture(t, nil)
	productID := f.addProduct(t, "Arroz Integral 1kg", "ARZ-001")
	f.addBatch(t, productID, 5, "10", "20", f.now.AddDate(0, 1, 0))
	f.addBatch(t, productID, 15, "8", "18", f.now.AddDate(0, 2, 0))

	views, err := f.svc.ProductViews(context.Background(), f.retailerID.String())
	require.NoError(t, err)
	require.Len(t, views, 1)

	v := views[0]
	assert.Equal(t, 20, v.TotalStock)
	assert.True(t, v.AvgCost.Equal(dec("8.5")), "avg cost = %s", v.AvgCost)
	assert.True(t, v.AvgPrice.Equal(dec("18.5")), "avg price = %s", v.AvgPrice)
	require.NotNil(t, v.NextExpiry)
	assert.True(t, v.NextExpiry.Equal(f.now.AddDate(0, 1, 0)))
	assert.Equal(t, "Aurora", v.Brand)

	sum := 0
	for _, b := range v.Batches {
		sum += b.Quantity
	}
	assert.Equal(t, v.TotalStock, sum)
}

func TestProductViewsZeroStockHasZeroAverages(t *testing.T) {
	f := newViewFixture(t, nil)
	productID := f.addProduct(t, "Feijão Preto 1kg", "FJP-001")
	f.addBatch(t, productID, 0, "7", "14", f.now.AddDate(0, 1, 0))

	views, err := f.svc.ProductViews(context.Background(), f.retailerID.String())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, 0, views[0].TotalStock)
	assert.True(t, views[0].AvgCost.IsZero())
	assert.True(t, views[0].AvgPrice.IsZero())
}

func TestProductViewsVelocityMetrics(t *testing.T) {
	saleA, saleB := uuid.New(), uuid.New()
	f := newViewFixture(t, nil)
	productID := f.addProduct(t, "Café Torrado 500g", "CAF-001")

	f.svc.sales = stubSalesReader{lines: []SaleLine{
		{SaleID: saleA, ProductID: productID, Quantity: 3, UnitPrice: dec("25")},
		{SaleID: saleB, ProductID: productID, Quantity: 1, UnitPrice: dec("25")},
	}}
	f.addBatch(t, productID, 10, "8.5", "25", f.now.AddDate(0, 1, 0))

	views, err := f.svc.ProductViews(context.Background(), f.retailerID.String())
	require.NoError(t, err)
	require.Len(t, views, 1)

	v := views[0]
	assert.Equal(t, 4, v.QuantitySold30d)
	assert.Equal(t, 2, v.SalesCount30d)
	assert.True(t, v.Revenue30d.Equal(dec("100")))
	assert.True(t, v.AvgSalePrice30d.Equal(dec("25")))
	assert.True(t, v.AvgProfit30d.Equal(dec("16.5")), "avg profit = %s", v.AvgProfit30d)
}

func TestProductViewsNegativeProfitFloorsAtZero(t *testing.T) {
	saleID := uuid.New()
	f := newViewFixture(t, nil)
	productID := f.addProduct(t, "Leite UHT 1L", "LTE-001")

	// sold below cost
	f.svc.sales = stubSalesReader{lines: []SaleLine{
		{SaleID: saleID, ProductID: productID, Quantity: 2, UnitPrice: dec("3")},
	}}
	f.addBatch(t, productID, 6, "5", "6", f.now.AddDate(0, 0, 20))

	views, err := f.svc.ProductViews(context.Background(), f.retailerID.String())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.True(t, views[0].AvgProfit30d.IsZero())
}

func TestProductViewsSortedByName(t *testing.T) {
	f := newViewFixture(t, nil)
	feijao := f.addProduct(t, "Feijão Preto 1kg", "FJP-001")
	acucar := f.addProduct(t, "Açúcar Cristal 1kg", "ACR-001")
	f.addBatch(t, feijao, 3, "7", "14", f.now.AddDate(0, 1, 0))
	f.addBatch(t, acucar, 3, "4", "8", f.now.AddDate(0, 1, 0))

	views, err := f.svc.ProductViews(context.Background(), f.retailerID.String())
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Açúcar Cristal 1kg", views[0].Name)
	assert.Equal(t, "Feijão Preto 1kg", views[1].Name)
}

func TestProductViewsSkipsProductsMissingFromCatalog(t *testing.T) {
	f := newViewFixture(t, nil)
	known := f.addProduct(t, "Macarrão Espaguete 500g", "MAC-001")
	f.addBatch(t, known, 2, "2", "4", f.now.AddDate(0, 1, 0))
	f.addBatch(t, uuid.New(), 9, "1", "2", f.now.AddDate(0, 1, 0))

	views, err := f.svc.ProductViews(context.Background(), f.retailerID.String())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, known, views[0].ProductID)
}

func TestAddBatchValidation(t *testing.T) {
	f := newViewFixture(t, nil)
	productID := f.addProduct(t, "Arroz Integral 1kg", "ARZ-001")

	_, err := f.svc.AddBatch(context.Background(), CreateBatchRequest{
		RetailerID: f.retailerID.String(),
		ProductID:  productID.String(),
		Quantity:   -1,
		ExpiresAt:  "2026-12-01",
	})
	assert.ErrorContains(t, err, "quantity")

	_, err = f.svc.AddBatch(context.Background(), CreateBatchRequest{
		RetailerID: f.retailerID.String(),
		ProductID:  uuid.New().String(),
		Quantity:   5,
		ExpiresAt:  "2026-12-01",
	})
	assert.ErrorContains(t, err, "catalog")

	b, err := f.svc.AddBatch(context.Background(), CreateBatchRequest{
		RetailerID: f.retailerID.String(),
		ProductID:  productID.String(),
		Quantity:   5,
		UnitCost:   dec("10"),
		SalePrice:  dec("20"),
		ExpiresAt:  "2026-12-01",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, b.Quantity)
}
