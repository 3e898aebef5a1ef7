package inventory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryBatchRepository is an in-memory BatchRepository used by tests and
// demo mode. The sales module's in-memory repository applies FEFO draws
// through ApplyDraws so a recorded sale and its deduction stay consistent.
type MemoryBatchRepository struct {
	mu sync.RWMutex
	m  map[uuid.UUID]*Batch
}

func NewMemoryRepository() *MemoryBatchRepository {
	return &MemoryBatchRepository{m: make(map[uuid.UUID]*Batch)}
}

func (r *MemoryBatchRepository) Create(_ context.Context, b *Batch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *b
	r.m[b.ID] = &cp
	return nil
}

func (r *MemoryBatchRepository) GetByID(_ context.Context, id string) (*Batch, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.m[uid]
	if !ok {
		return nil, fmt.Errorf("batch %s not found", id)
	}
	cp := *b
	return &cp, nil
}

func (r *MemoryBatchRepository) ListByRetailer(_ context.Context, retailerID string) ([]*Batch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var batches []*Batch
	for _, b := range r.m {
		if b.RetailerID.String() == retailerID {
			cp := *b
			batches = append(batches, &cp)
		}
	}
	sortByExpiry(batches)
	return batches, nil
}

func (r *MemoryBatchRepository) ListByRetailerProduct(_ context.Context, retailerID, productID string) ([]*Batch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var batches []*Batch
	for _, b := range r.m {
		if b.RetailerID.String() == retailerID && b.ProductID.String() == productID {
			cp := *b
			batches = append(batches, &cp)
		}
	}
	sortByExpiry(batches)
	return batches, nil
}

func (r *MemoryBatchRepository) Update(_ context.Context, b *Batch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.m[b.ID]; !ok {
		return fmt.Errorf("batch %s not found", b.ID)
	}
	cp := *b
	r.m[b.ID] = &cp
	return nil
}

func (r *MemoryBatchRepository) Delete(_ context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.m, uid)
	return nil
}

// ApplyDraws subtracts a FEFO plan from the stored batches. All draws are
// validated before any is applied, so a failing plan leaves stock untouched.
func (r *MemoryBatchRepository) ApplyDraws(draws []BatchDraw) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range draws {
		b, ok := r.m[d.BatchID]
		if !ok {
			return fmt.Errorf("batch %s not found", d.BatchID)
		}
		if b.Quantity < d.Quantity {
			return fmt.Errorf("batch %s has %d units, cannot draw %d", d.BatchID, b.Quantity, d.Quantity)
		}
	}
	for _, d := range draws {
		r.m[d.BatchID].Quantity -= d.Quantity
	}
	return nil
}

func sortByExpiry(batches []*Batch) {
	sort.Slice(batches, func(i, j int) bool {
		if !batches[i].ExpiresAt.Equal(batches[j].ExpiresAt) {
			return batches[i].ExpiresAt.Before(batches[j].ExpiresAt)
		}
		return batches[i].ID.String() < batches[j].ID.String()
	})
}
