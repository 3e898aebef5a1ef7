package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProductNormalizesAndGuardsSKU(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	industryID := uuid.New().String()

	p, err := svc.CreateProduct(context.Background(), CreateProductRequest{
		SKU:            " arz-001 ",
		Name:           "Arroz Integral 1kg",
		Category:       "Mercearia",
		IndustryID:     industryID,
		SuggestedPrice: decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	assert.Equal(t, "ARZ-001", p.SKU)

	_, err = svc.CreateProduct(context.Background(), CreateProductRequest{
		SKU:        "ARZ-001",
		Name:       "Arroz Branco 1kg",
		Category:   "Mercearia",
		IndustryID: industryID,
	})
	assert.ErrorContains(t, err, "sku already in use")
}

func TestCreateProductValidation(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	_, err := svc.CreateProduct(context.Background(), CreateProductRequest{
		Name: "Sem SKU", Category: "Mercearia", IndustryID: uuid.New().String(),
	})
	assert.ErrorContains(t, err, "sku is required")

	_, err = svc.CreateProduct(context.Background(), CreateProductRequest{
		SKU: "X-1", Name: "Produto", Category: "Mercearia", IndustryID: "nope",
	})
	assert.ErrorContains(t, err, "industry_id")
}

func TestListProductsFilters(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	industryA, industryB := uuid.New().String(), uuid.New().String()

	seed := []struct {
		sku, category, industry string
	}{
		{"ARZ-001", "Mercearia", industryA},
		{"SAB-001", "Limpeza", industryA},
		{"FJP-001", "Mercearia", industryB},
	}
	for _, s := range seed {
		_, err := svc.CreateProduct(context.Background(), CreateProductRequest{
			SKU: s.sku, Name: s.sku, Category: s.category, IndustryID: s.industry,
		})
		require.NoError(t, err)
	}

	all, err := svc.ListProducts(context.Background(), "", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	grocery, err := svc.ListProducts(context.Background(), "Mercearia", "")
	require.NoError(t, err)
	assert.Len(t, grocery, 2)

	fromA, err := svc.ListProducts(context.Background(), "", industryA)
	require.NoError(t, err)
	assert.Len(t, fromA, 2)

	both, err := svc.ListProducts(context.Background(), "Mercearia", industryA)
	require.NoError(t, err)
	assert.Len(t, both, 1)
}
