package program

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory Repository used by tests and demo mode.
type MemoryRepository struct {
	mu       sync.RWMutex
	programs map[uuid.UUID]*Program
	subs     map[uuid.UUID]*Subscription
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		programs: make(map[uuid.UUID]*Program),
		subs:     make(map[uuid.UUID]*Subscription),
	}
}

func (r *MemoryRepository) CreateProgram(_ context.Context, p *Program) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	cp.Tags = append([]string(nil), p.Tags...)
	r.programs[p.ID] = &cp
	return nil
}

func (r *MemoryRepository) GetProgram(_ context.Context, id string) (*Program, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.programs[uid]
	if !ok {
		return nil, fmt.Errorf("program %s not found", id)
	}
	cp := *p
	cp.Tags = append([]string(nil), p.Tags...)
	return &cp, nil
}

func (r *MemoryRepository) ListByIndustry(_ context.Context, industryID string) ([]*Program, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var programs []*Program
	for _, p := range r.programs {
		if p.IndustryID.String() == industryID {
			cp := *p
			cp.Tags = append([]string(nil), p.Tags...)
			programs = append(programs, &cp)
		}
	}
	sort.Slice(programs, func(i, j int) bool { return programs[i].StartsAt.After(programs[j].StartsAt) })
	return programs, nil
}

func (r *MemoryRepository) DeleteProgram(_ context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.programs, uid)
	return nil
}

func (r *MemoryRepository) CreateSubscription(_ context.Context, sub *Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *sub
	r.subs[sub.ID] = &cp
	return nil
}

func (r *MemoryRepository) GetSubscription(_ context.Context, programID, retailerID string) (*Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, sub := range r.subs {
		if sub.ProgramID.String() == programID && sub.RetailerID.String() == retailerID {
			cp := *sub
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("subscription not found")
}

func (r *MemoryRepository) ListSubscriptions(_ context.Context, programID string) ([]*Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var subs []*Subscription
	for _, sub := range r.subs {
		if sub.ProgramID.String() == programID {
			cp := *sub
			subs = append(subs, &cp)
		}
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].CreatedAt.Before(subs[j].CreatedAt) })
	return subs, nil
}
