package customer

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
	m  map[uuid.UUID]*Customer
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{m: make(map[uuid.UUID]*Customer)}
}

func (r *MemoryRepository) Create(_ context.Context, c *Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.m[c.ID] = &cp
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*Customer, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.m[uid]
	if !ok {
		return nil, fmt.Errorf("customer %s not found", id)
	}
	cp := *c
	return &cp, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]*Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var customers []*Customer
	for _, c := range r.m {
		cp := *c
		customers = append(customers, &cp)
	}
	sort.Slice(customers, func(i, j int) bool { return customers[i].Name < customers[j].Name })
	return customers, nil
}

func (r *MemoryRepository) Update(_ context.Context, c *Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.m[c.ID]; !ok {
		return fmt.Errorf("customer %s not found", c.ID)
	}
	cp := *c
	r.m[c.ID] = &cp
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
