package sales

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vitrinedata/varejo-backend/internal/modules/inventory"
)

// MemoryRepository is an in-memory Repository used by tests and demo mode.
// It holds a reference to the in-memory batch repository so CreateSale can
// apply stock draws as the same unit of work the Postgres implementation
// performs in a transaction.
type MemoryRepository struct {
	mu      sync.RWMutex
	m       map[uuid.UUID]*Sale
	batches *inventory.MemoryBatchRepository
}

func NewMemoryRepository(batches *inventory.MemoryBatchRepository) *MemoryRepository {
	return &MemoryRepository{m: make(map[uuid.UUID]*Sale), batches: batches}
}

func (r *MemoryRepository) CreateSale(_ context.Context, s *Sale, draws []inventory.BatchDraw) error {
	if err := r.batches.ApplyDraws(draws); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	cp.Items = append([]LineItem(nil), s.Items...)
	r.m[s.ID] = &cp
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*Sale, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.m[uid]
	if !ok {
		return nil, fmt.Errorf("sale %s not found", id)
	}
	return copySale(s), nil
}

func (r *MemoryRepository) ListByRetailerSince(_ context.Context, retailerID string, since time.Time) ([]*Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*Sale
	for _, s := range r.m {
		if s.RetailerID.String() == retailerID && !s.SoldAt.Before(since) {
			list = append(list, copySale(s))
		}
	}
	sortBySoldAtDesc(list)
	return list, nil
}

func (r *MemoryRepository) ListSince(_ context.Context, since time.Time) ([]*Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*Sale
	for _, s := range r.m {
		if !s.SoldAt.Before(since) {
			list = append(list, copySale(s))
		}
	}
	sortBySoldAtDesc(list)
	return list, nil
}

func (r *MemoryRepository) CountByRetailerSince(_ context.Context, retailerID string, since time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, s := range r.m {
		if s.RetailerID.String() == retailerID && !s.SoldAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (r *MemoryRepository) DeleteByRetailer(_ context.Context, retailerID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, s := range r.m {
		if s.RetailerID.String() == retailerID {
			delete(r.m, id)
			n++
		}
	}
	return n, nil
}

func copySale(s *Sale) *Sale {
	cp := *s
	cp.Items = append([]LineItem(nil), s.Items...)
	return &cp
}

func sortBySoldAtDesc(list []*Sale) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].SoldAt.Equal(list[j].SoldAt) {
			return list[i].SoldAt.After(list[j].SoldAt)
		}
		return list[i].ID.String() < list[j].ID.String()
	})
}
