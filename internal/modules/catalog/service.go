package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Service defines catalog business logic.
type Service interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context, category, industryID string) ([]*Product, error)
	UpdateProduct(ctx context.Context, id string, req CreateProductRequest) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type service struct{ repo Repository }

// NewService creates a new catalog service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	if req.SKU == "" {
		return nil, fmt.Errorf("sku is required")
	}
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.Category == "" {
		return nil, fmt.Errorf("category is required")
	}
	industryID, err := uuid.Parse(req.IndustryID)
	if err != nil {
		return nil, fmt.Errorf("invalid industry_id: %w", err)
	}
	if req.SuggestedPrice.IsNegative() {
		return nil, fmt.Errorf("suggested_price must not be negative")
	}

	sku := strings.ToUpper(strings.TrimSpace(req.SKU))
	if existing, err := s.repo.GetBySKU(ctx, sku); err == nil && existing != nil {
		return nil, fmt.Errorf("sku already in use: %s", sku)
	}

	p := &Product{
		ID:             uuid.New(),
		SKU:            sku,
		Name:           req.Name,
		Category:       req.Category,
		Subcategory:    req.Subcategory,
		IndustryID:     industryID,
		SuggestedPrice: req.SuggestedPrice,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListProducts(ctx context.Context, category, industryID string) ([]*Product, error) {
	return s.repo.List(ctx, category, industryID)
}

func (s *service) UpdateProduct(ctx context.Context, id string, req CreateProductRequest) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}
	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Category != "" {
		p.Category = req.Category
	}
	if req.Subcategory != "" {
		p.Subcategory = req.Subcategory
	}
	if !req.SuggestedPrice.IsZero() {
		if req.SuggestedPrice.IsNegative() {
			return nil, fmt.Errorf("suggested_price must not be negative")
		}
		p.SuggestedPrice = req.SuggestedPrice
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
