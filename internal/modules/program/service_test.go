package program

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
	"github.com/vitrinedata/varejo-backend/internal/modules/rating"
	"github.com/vitrinedata/varejo-backend/internal/modules/sales"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type programFixture struct {
	svc        *service
	repo       *MemoryRepository
	salesRepo  *sales.MemoryRepository
	batches    *inventory.MemoryBatchRepository
	catalog    *catalog.MemoryRepository
	industryID uuid.UUID
	retailerID uuid.UUID
	now        time.Time
}

func newProgramFixture(t *testing.T) *programFixture {
	t.Helper()
	batches := inventory.NewMemoryRepository()
	f := &programFixture{
		repo:       NewMemoryRepository(),
		salesRepo:  sales.NewMemoryRepository(batches),
		batches:    batches,
		catalog:    catalog.NewMemoryRepository(),
		industryID: uuid.New(),
		retailerID: uuid.New(),
		now:        time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC),
	}
	ratingSvc := rating.NewService(f.salesRepo, f.batches)
	svc := NewService(f.repo, ratingSvc, f.salesRepo, f.catalog).(*service)
	svc.now = func() time.Time { return f.now }
	f.svc = svc
	return f
}

func (f *programFixture) launch(t *testing.T, req CreateProgramRequest) *Program {
	t.Helper()
	if req.IndustryID == "" {
		req.IndustryID = f.industryID.String()
	}
	p, err := f.svc.Launch(context.Background(), req)
	require.NoError(t, err)
	return p
}

func (f *programFixture) addSale(t *testing.T, soldAt time.Time, items ...sales.LineItem) {
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

func skuVolumeRequest(target string) CreateProgramRequest {
	return CreateProgramRequest{
		Title:       "Verão Aurora",
		Metric:      "SKU_VOLUME",
		TargetSKU:   "ARZ-001",
		TargetValue: dec(target),
		StartsAt:    "2026-06-01",
		EndsAt:      "2026-06-30",
	}
}

func TestLaunchValidation(t *testing.T) {
	f := newProgramFixture(t)

	cases := []struct {
		name   string
		mutate func(*CreateProgramRequest)
		errMsg string
	}{
		{"missing title", func(r *CreateProgramRequest) { r.Title = "" }, "title"},
		{"bad metric", func(r *CreateProgramRequest) { r.Metric = "CLICKS" }, "invalid metric"},
		{"sku metric without sku", func(r *CreateProgramRequest) { r.TargetSKU = "" }, "target_sku"},
		{"zero target", func(r *CreateProgramRequest) { r.TargetValue = dec("0") }, "target_value"},
		{"inverted dates", func(r *CreateProgramRequest) { r.EndsAt = "2026-05-01" }, "ends_at"},
		{"bad tier", func(r *CreateProgramRequest) { r.MinTier = "Platina" }, "min_tier"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := skuVolumeRequest("500")
			req.IndustryID = f.industryID.String()
			tc.mutate(&req)
			_, err := f.svc.Launch(context.Background(), req)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestLaunchDefaultsMinTierToBronze(t *testing.T) {
	f := newProgramFixture(t)
	p := f.launch(t, skuVolumeRequest("500"))
	assert.Equal(t, rating.TierBronze, p.MinTier)
	assert.Equal(t, MetricSKUVolume, p.Metric)
}

func TestLaunchCategoryGrowthNeedsCategory(t *testing.T) {
	f := newProgramFixture(t)
	_, err := f.svc.Launch(context.Background(), CreateProgramRequest{
		IndustryID:  f.industryID.String(),
		Title:       "Crescimento Mercearia",
		Metric:      "category_growth",
		TargetValue: dec("20"),
		StartsAt:    "2026-06-01",
		EndsAt:      "2026-06-30",
	})
	assert.ErrorContains(t, err, "target_category")
}

func TestSubscribeTierGate(t *testing.T) {
	f := newProgramFixture(t)
	req := skuVolumeRequest("500")
	req.MinTier = "Ouro"
	p := f.launch(t, req)

	// fresh retailer is Bronze
	_, err := f.svc.Subscribe(context.Background(), p.ID.String(), f.retailerID.String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not meet program minimum")
}

func TestSubscribeLifecycle(t *testing.T) {
	f := newProgramFixture(t)
	p := f.launch(t, skuVolumeRequest("500"))

	sub, err := f.svc.Subscribe(context.Background(), p.ID.String(), f.retailerID.String())
	require.NoError(t, err)
	assert.Equal(t, p.ID, sub.ProgramID)

	_, err = f.svc.Subscribe(context.Background(), p.ID.String(), f.retailerID.String())
	assert.ErrorContains(t, err, "already subscribed")

	subs, err := f.svc.Subscribers(context.Background(), p.ID.String())
	require.NoError(t, err)
	assert.Len(t, subs, 1)
}

func TestSubscribeRejectsInactiveProgram(t *testing.T) {
	f := newProgramFixture(t)
	req := skuVolumeRequest("500")
	req.StartsAt = "2026-01-01"
	req.EndsAt = "2026-01-31"
	p := f.launch(t, req)

	_, err := f.svc.Subscribe(context.Background(), p.ID.String(), f.retailerID.String())
	assert.ErrorContains(t, err, "not active")
}

func TestProgressSKUVolume(t *testing.T) {
	f := newProgramFixture(t)
	p := f.launch(t, skuVolumeRequest("100"))
	_, err := f.svc.Subscribe(context.Background(), p.ID.String(), f.retailerID.String())
	require.NoError(t, err)

	inWindow := time.Date(2026, 6, 10, 10, 0, 0, 0, time.UTC)
	outOfWindow := time.Date(2026, 5, 10, 10, 0, 0, 0, time.UTC)
	target := sales.LineItem{ProductID: uuid.New(), SKU: "ARZ-001", Quantity: 30, UnitPrice: dec("20"), Total: dec("600")}
	other := sales.LineItem{ProductID: uuid.New(), SKU: "FJP-001", Quantity: 50, UnitPrice: dec("14"), Total: dec("700")}
	f.addSale(t, inWindow, target, other)
	f.addSale(t, inWindow, target)
	f.addSale(t, outOfWindow, target)

	progress, err := f.svc.Progress(context.Background(), p.ID.String(), f.retailerID.String())
	require.NoError(t, err)
	assert.True(t, progress.Current.Equal(dec("60")), "current = %s", progress.Current)
	assert.True(t, progress.Percent.Equal(dec("60")), "percent = %s", progress.Percent)
}

func TestProgressCategoryGrowth(t *testing.T) {
	f := newProgramFixture(t)
	product := &catalog.Product{ID: uuid.New(), SKU: "ARZ-001", Name: "Arroz Integral 1kg", Category: "Mercearia"}
	require.NoError(t, f.catalog.Create(context.Background(), product))

	p := f.launch(t, CreateProgramRequest{
		Title:          "Crescimento Mercearia",
		Metric:         "CATEGORY_GROWTH",
		TargetCategory: "Mercearia",
		TargetValue:    dec("50"),
		StartsAt:       "2026-06-01",
		EndsAt:         "2026-06-30",
	})
	_, err := f.svc.Subscribe(context.Background(), p.ID.String(), f.retailerID.String())
	require.NoError(t, err)

	line := func(qty int) sales.LineItem {
		return sales.LineItem{
			ProductID: product.ID, SKU: product.SKU, Quantity: qty,
			UnitPrice: dec("20"), Total: dec("20").Mul(decimal.NewFromInt(int64(qty))),
		}
	}
	// previous period (early May): 100 in revenue; window: 180
	f.addSale(t, time.Date(2026, 5, 10, 10, 0, 0, 0, time.UTC), line(5))
	f.addSale(t, time.Date(2026, 6, 10, 10, 0, 0, 0, time.UTC), line(9))

	progress, err := f.svc.Progress(context.Background(), p.ID.String(), f.retailerID.String())
	require.NoError(t, err)
	assert.True(t, progress.Current.Equal(dec("80")), "growth = %s", progress.Current)
	assert.True(t, progress.Percent.Equal(dec("160")), "percent = %s", progress.Percent)
}

func TestProgressCategoryGrowthFromZeroBaseline(t *testing.T) {
	f := newProgramFixture(t)
	product := &catalog.Product{ID: uuid.New(), SKU: "ARZ-001", Name: "Arroz Integral 1kg", Category: "Mercearia"}
	require.NoError(t, f.catalog.Create(context.Background(), product))

	p := f.launch(t, CreateProgramRequest{
		Title:          "Crescimento Mercearia",
		Metric:         "CATEGORY_GROWTH",
		TargetCategory: "Mercearia",
		TargetValue:    dec("50"),
		StartsAt:       "2026-06-01",
		EndsAt:         "2026-06-30",
	})
	_, err := f.svc.Subscribe(context.Background(), p.ID.String(), f.retailerID.String())
	require.NoError(t, err)

	f.addSale(t, time.Date(2026, 6, 10, 10, 0, 0, 0, time.UTC), sales.LineItem{
		ProductID: product.ID, SKU: product.SKU, Quantity: 1, UnitPrice: dec("20"), Total: dec("20"),
	})

	progress, err := f.svc.Progress(context.Background(), p.ID.String(), f.retailerID.String())
	require.NoError(t, err)
	assert.True(t, progress.Current.Equal(dec("100")))
}

func TestProgressRequiresSubscription(t *testing.T) {
	f := newProgramFixture(t)
	p := f.launch(t, skuVolumeRequest("100"))

	_, err := f.svc.Progress(context.Background(), p.ID.String(), f.retailerID.String())
	assert.ErrorContains(t, err, "subscription not found")
}
