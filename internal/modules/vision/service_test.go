package vision

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
	"github.com/vitrinedata/varejo-backend/internal/modules/customer"
	"github.com/vitrinedata/varejo-backend/internal/modules/inventory"
	"github.com/vitrinedata/varejo-backend/internal/modules/sales"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type visionFixture struct {
	svc        *service
	salesRepo  *sales.MemoryRepository
	catalog    *catalog.MemoryRepository
	actors     *actor.MemoryRepository
	customers  *customer.MemoryRepository
	industryID uuid.UUID
	now        time.Time
}

func newVisionFixture(t *testing.T) *visionFixture {
	t.Helper()
	f := &visionFixture{
		salesRepo:  sales.NewMemoryRepository(inventory.NewMemoryRepository()),
		catalog:    catalog.NewMemoryRepository(),
		actors:     actor.NewMemoryRepository(),
		customers:  customer.NewMemoryRepository(),
		industryID: uuid.New(),
		now:        time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC),
	}
	svc := NewService(f.salesRepo, f.catalog, f.actors, f.customers).(*service)
	svc.now = func() time.Time { return f.now }
	f.svc = svc
	return f
}

func (f *visionFixture) addRetailer(t *testing.T, name, state string) uuid.UUID {
	t.Helper()
	a := &actor.Actor{ID: uuid.New(), Kind: actor.KindRetailer, Name: name, State: state}
	require.NoError(t, f.actors.Create(context.Background(), a))
	return a.ID
}

func (f *visionFixture) addProduct(t *testing.T, name string, industryID uuid.UUID) uuid.UUID {
	t.Helper()
	p := &catalog.Product{ID: uuid.New(), SKU: name, Name: name, Category: "Mercearia", IndustryID: industryID}
	require.NoError(t, f.catalog.Create(context.Background(), p))
	return p.ID
}

func (f *visionFixture) addCustomer(t *testing.T, c *customer.Customer) uuid.UUID {
	t.Helper()
	c.ID = uuid.New()
	require.NoError(t, f.customers.Create(context.Background(), c))
	return c.ID
}

func (f *visionFixture) addSale(t *testing.T, retailerID, customerID uuid.UUID, soldAt time.Time, items ...sales.LineItem) {
	t.Helper()
	var net decimal.Decimal
	for _, it := range items {
		net = net.Add(it.Total)
	}
	err := f.salesRepo.CreateSale(context.Background(), &sales.Sale{
		ID:         uuid.New(),
		RetailerID: retailerID,
		CustomerID: customerID,
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

func birth(year int) *time.Time {
	d := time.Date(year, 3, 10, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestReportCombos(t *testing.T) {
	f := newVisionFixture(t)
	r := f.addRetailer(t, "Mercado Central", "SP")
	arroz := f.addProduct(t, "Arroz Integral 1kg", f.industryID)
	feijao := f.addProduct(t, "Feijão Preto 1kg", f.industryID)
	cafe := f.addProduct(t, "Café Torrado 500g", f.industryID)
	alien := f.addProduct(t, "Sabão em Pó 1kg", uuid.New())

	// arroz+feijao twice (one of them anonymous), arroz+cafe once
	f.addSale(t, r, customer.FinalConsumer, f.now.AddDate(0, 0, -1),
		item(arroz, 1, "20"), item(feijao, 1, "14"))
	f.addSale(t, r, uuid.New(), f.now.AddDate(0, 0, -2),
		item(arroz, 1, "20"), item(feijao, 2, "14"), item(alien, 1, "15"))
	f.addSale(t, r, customer.FinalConsumer, f.now.AddDate(0, 0, -3),
		item(arroz, 1, "20"), item(cafe, 1, "25"))

	report, err := f.svc.Report(context.Background(), f.industryID.String())
	require.NoError(t, err)

	require.Len(t, report.Combos, 2)
	top := report.Combos[0]
	assert.Equal(t, 2, top.Count)
	assert.Equal(t, "Arroz Integral 1kg", top.ProductA)
	assert.Equal(t, "Feijão Preto 1kg", top.ProductB)

	// the other industry's product never appears in a pair
	for _, c := range report.Combos {
		assert.NotEqual(t, "Sabão em Pó 1kg", c.ProductA)
		assert.NotEqual(t, "Sabão em Pó 1kg", c.ProductB)
	}
}

func TestReportRegionsAndWeekdays(t *testing.T) {
	f := newVisionFixture(t)
	sp := f.addRetailer(t, "Mercado Central", "SP")
	mg := f.addRetailer(t, "Empório Mineiro", "MG")
	arroz := f.addProduct(t, "Arroz Integral 1kg", f.industryID)

	monday := time.Date(2026, 6, 8, 10, 0, 0, 0, time.UTC)
	f.addSale(t, sp, customer.FinalConsumer, monday, item(arroz, 3, "20"))
	f.addSale(t, mg, customer.FinalConsumer, monday.AddDate(0, 0, 1), item(arroz, 1, "20"))

	report, err := f.svc.Report(context.Background(), f.industryID.String())
	require.NoError(t, err)

	require.Len(t, report.Regions, 2)
	assert.Equal(t, "SP", report.Regions[0].State)
	assert.True(t, report.Regions[0].Revenue.Equal(dec("60")))
	assert.Equal(t, 3, report.Regions[0].Units)

	require.Len(t, report.Weekdays, 7)
	assert.Equal(t, "Sunday", report.Weekdays[0].Weekday)
	assert.True(t, report.Weekdays[1].Revenue.Equal(dec("60")), "Monday")
	assert.True(t, report.Weekdays[2].Revenue.Equal(dec("20")), "Tuesday")
	assert.True(t, report.Weekdays[0].Revenue.IsZero())
}

func TestReportDemographicsSkipAnonymousAndUnknown(t *testing.T) {
	f := newVisionFixture(t)
	r := f.addRetailer(t, "Mercado Central", "SP")
	arroz := f.addProduct(t, "Arroz Integral 1kg", f.industryID)

	ana := f.addCustomer(t, &customer.Customer{
		Name: "Ana", Gender: customer.GenderFemale, BirthDate: birth(1996), Habit: "semanal",
	})
	f.addSale(t, r, ana, f.now.AddDate(0, 0, -1), item(arroz, 2, "20"))
	f.addSale(t, r, customer.FinalConsumer, f.now.AddDate(0, 0, -1), item(arroz, 5, "20"))
	f.addSale(t, r, uuid.New(), f.now.AddDate(0, 0, -1), item(arroz, 5, "20"))

	report, err := f.svc.Report(context.Background(), f.industryID.String())
	require.NoError(t, err)

	require.Len(t, report.ByGender, 1)
	g := report.ByGender[0]
	assert.Equal(t, string(customer.GenderFemale), g.Name)
	assert.True(t, g.Revenue.Equal(dec("40")))
	assert.Equal(t, 1, g.Customers)
	require.NotEmpty(t, g.TopProducts)
	assert.Equal(t, "Arroz Integral 1kg", g.TopProducts[0].Name)

	require.Len(t, report.ByAgeBand, 1)
	assert.Equal(t, "26-35", report.ByAgeBand[0].Name)

	require.Len(t, report.ByHabit, 1)
	assert.Equal(t, "semanal", report.ByHabit[0].Name)
}

func TestReportCustomerRollups(t *testing.T) {
	f := newVisionFixture(t)
	central := f.addRetailer(t, "Mercado Central", "SP")
	bairro := f.addRetailer(t, "Mercadinho do Bairro", "SP")
	arroz := f.addProduct(t, "Arroz Integral 1kg", f.industryID)

	ana := f.addCustomer(t, &customer.Customer{Name: "Ana"})
	bruno := f.addCustomer(t, &customer.Customer{Name: "Bruno"})

	f.addSale(t, central, ana, f.now.AddDate(0, 0, -1), item(arroz, 3, "20"))
	f.addSale(t, bairro, ana, f.now.AddDate(0, 0, -2), item(arroz, 1, "20"))
	f.addSale(t, central, bruno, f.now.AddDate(0, 0, -3), item(arroz, 1, "20"))
	f.addSale(t, central, customer.FinalConsumer, f.now.AddDate(0, 0, -4), item(arroz, 9, "20"))

	report, err := f.svc.Report(context.Background(), f.industryID.String())
	require.NoError(t, err)

	require.Len(t, report.Customers, 2)
	first := report.Customers[0]
	assert.Equal(t, "Ana", first.Name)
	assert.True(t, first.TotalSpent.Equal(dec("80")))
	assert.Equal(t, 2, first.Purchases)
	assert.Equal(t, "Mercado Central", first.FavoriteRetailer)
	assert.Equal(t, "Bruno", report.Customers[1].Name)
}

func TestOverviewScopesAndFilters(t *testing.T) {
	f := newVisionFixture(t)
	central := f.addRetailer(t, "Mercado Central", "SP")
	bairro := f.addRetailer(t, "Mercadinho do Bairro", "MG")
	arroz := f.addProduct(t, "Arroz Integral 1kg", f.industryID)
	alien := f.addProduct(t, "Sabão em Pó 1kg", uuid.New())

	f.addSale(t, central, customer.FinalConsumer, f.now.AddDate(0, 0, -1),
		item(arroz, 2, "20"), item(alien, 1, "15"))
	f.addSale(t, bairro, customer.FinalConsumer, f.now.AddDate(0, 0, -2), item(arroz, 1, "20"))
	// a sale with none of the industry's products is invisible
	f.addSale(t, central, customer.FinalConsumer, f.now.AddDate(0, 0, -3), item(alien, 4, "15"))
	// outside the window
	f.addSale(t, central, customer.FinalConsumer, f.now.AddDate(0, 0, -45), item(arroz, 8, "20"))

	o, err := f.svc.Overview(context.Background(), OverviewQuery{IndustryID: f.industryID.String()})
	require.NoError(t, err)
	assert.Equal(t, 2, o.KPIs.NumberOfSales)
	assert.True(t, o.KPIs.TotalRevenue.Equal(dec("60")))
	assert.True(t, o.KPIs.AverageTicket.Equal(dec("30")))
	assert.Len(t, o.ByRetailer, 2)
	require.NotEmpty(t, o.TopProducts)
	assert.Equal(t, arroz, o.TopProducts[0].ProductID)
	assert.Equal(t, 3, o.TopProducts[0].Quantity)

	filtered, err := f.svc.Overview(context.Background(), OverviewQuery{
		IndustryID:   f.industryID.String(),
		RetailerName: "bairro",
	})
	require.NoError(t, err)
	require.Len(t, filtered.ByRetailer, 1)
	assert.Equal(t, "Mercadinho do Bairro", filtered.ByRetailer[0].Name)
	// KPIs are not narrowed by the name filter
	assert.Equal(t, 2, filtered.KPIs.NumberOfSales)
}

func TestReportRejectsBadIndustryID(t *testing.T) {
	f := newVisionFixture(t)
	_, err := f.svc.Report(context.Background(), "not-a-uuid")
	assert.Error(t, err)
}
