package actor

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
	m  map[uuid.UUID]*Actor
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{m: make(map[uuid.UUID]*Actor)}
}

func (r *MemoryRepository) Create(_ context.Context, a *Actor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.m[a.ID] = &cp
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*Actor, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.m[uid]
	if !ok {
		return nil, fmt.Errorf("actor %s not found", id)
	}
	cp := *a
	return &cp, nil
}

func (r *MemoryRepository) ListByKind(_ context.Context, kind Kind) ([]*Actor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var actors []*Actor
	for _, a := range r.m {
		if a.Kind == kind {
			cp := *a
			actors = append(actors, &cp)
		}
	}
	sort.Slice(actors, func(i, j int) bool { return actors[i].Name < actors[j].Name })
	return actors, nil
}

func (r *MemoryRepository) Update(_ context.Context, a *Actor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.m[a.ID]; !ok {
		return fmt.Errorf("actor %s not found", a.ID)
	}
	cp := *a
	r.m[a.ID] = &cp
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
