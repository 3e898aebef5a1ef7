package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory Repository used by tests and demo mode.
type MemoryRepository struct {
	mu sync.RWMutex
	m  map[uuid.UUID]*Product
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{m: make(map[uuid.UUID]*Product)}
}

func (r *MemoryRepository) Create(_ context.Context, p *Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.m[p.ID] = &cp
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.m[uid]
	if !ok {
		return nil, fmt.Errorf("product %s not found", id)
	}
	cp := *p
	return &cp, nil
}

func (r *MemoryRepository) GetBySKU(_ context.Context, sku string) (*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.m {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("product with sku %s not found", sku)
}

func (r *MemoryRepository) List(_ context.Context, category, industryID string) ([]*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var products []*Product
	for _, p := range r.m {
		if category != "" && p.Category != category {
			continue
		}
		if industryID != "" && p.IndustryID.String() != industryID {
			continue
		}
		cp := *p
		products = append(products, &cp)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return products, nil
}

func (r *MemoryRepository) Update(_ context.Context, p *Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.m[p.ID]; !ok {
		return fmt.Errorf("product %s not found", p.ID)
	}
	cp := *p
	r.m[p.ID] = &cp
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.m, uid)
	return nil
}
