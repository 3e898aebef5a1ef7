package monetization

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryProposalRepository is an in-memory ProposalRepository used by tests
// and demo mode.
type MemoryProposalRepository struct {
	mu        sync.RWMutex
	proposals map[uuid.UUID]*Proposal
}

func NewMemoryProposalRepository() *MemoryProposalRepository {
	return &MemoryProposalRepository{proposals: make(map[uuid.UUID]*Proposal)}
}

func (r *MemoryProposalRepository) Create(_ context.Context, p *Proposal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	cp := *p
	r.proposals[p.ID] = &cp
	return nil
}

func (r *MemoryProposalRepository) GetByID(_ context.Context, id string) (*Proposal, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.proposals[uid]
	if !ok {
		return nil, fmt.Errorf("proposal %s not found", id)
	}
	cp := *p
	return &cp, nil
}

func (r *MemoryProposalRepository) ListByIndustry(_ context.Context, industryID string) ([]*Proposal, error) {
	return r.list(func(p *Proposal) bool { return p.IndustryID.String() == industryID })
}

func (r *MemoryProposalRepository) ListByRetailer(_ context.Context, retailerID string) ([]*Proposal, error) {
	return r.list(func(p *Proposal) bool {
		return p.RetailerID != nil && p.RetailerID.String() == retailerID
	})
}

func (r *MemoryProposalRepository) ListByFund(_ context.Context, fundID string) ([]*Proposal, error) {
	return r.list(func(p *Proposal) bool {
		return p.FundID != nil && p.FundID.String() == fundID
	})
}

func (r *MemoryProposalRepository) list(match func(*Proposal) bool) ([]*Proposal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var proposals []*Proposal
	for _, p := range r.proposals {
		if match(p) {
			cp := *p
			proposals = append(proposals, &cp)
		}
	}
	sort.Slice(proposals, func(i, j int) bool {
		return proposals[i].CreatedAt.After(proposals[j].CreatedAt)
	})
	return proposals, nil
}

func (r *MemoryProposalRepository) Update(_ context.Context, p *Proposal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.proposals[p.ID]; !ok {
		return fmt.Errorf("proposal %s not found", p.ID)
	}
	cp := *p
	r.proposals[p.ID] = &cp
	return nil
}

// MemoryFundRepository is an in-memory FundRepository used by tests and demo
// mode.
type MemoryFundRepository struct {
	mu    sync.RWMutex
	funds map[uuid.UUID]*DataFund
}

func NewMemoryFundRepository() *MemoryFundRepository {
	return &MemoryFundRepository{funds: make(map[uuid.UUID]*DataFund)}
}

func (r *MemoryFundRepository) Create(_ context.Context, f *DataFund) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
		f.UpdatedAt = f.CreatedAt
	}
	r.funds[f.ID] = copyFund(f)
	return nil
}

func (r *MemoryFundRepository) GetByID(_ context.Context, id string) (*DataFund, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.funds[uid]
	if !ok {
		return nil, fmt.Errorf("fund %s not found", id)
	}
	return copyFund(f), nil
}

func (r *MemoryFundRepository) List(_ context.Context) ([]*DataFund, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var funds []*DataFund
	for _, f := range r.funds {
		funds = append(funds, copyFund(f))
	}
	sort.Slice(funds, func(i, j int) bool { return funds[i].CreatedAt.After(funds[j].CreatedAt) })
	return funds, nil
}

func (r *MemoryFundRepository) Update(_ context.Context, f *DataFund) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.funds[f.ID]; !ok {
		return fmt.Errorf("fund %s not found", f.ID)
	}
	f.UpdatedAt = time.Now()
	r.funds[f.ID] = copyFund(f)
	return nil
}

func copyFund(f *DataFund) *DataFund {
	cp := *f
	cp.MemberIDs = append([]uuid.UUID(nil), f.MemberIDs...)
	return &cp
}
