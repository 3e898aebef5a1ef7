package monetization

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service defines monetization business logic.
type Service interface {
	Propose(ctx context.Context, req CreateProposalRequest) (*Proposal, error)
	GetProposal(ctx context.Context, id string) (*Proposal, error)
	RetailerProposals(ctx context.Context, retailerID string) ([]*Proposal, error)
	IndustryProposals(ctx context.Context, industryID string) ([]*Proposal, error)
	Decide(ctx context.Context, id string, accept bool) (*Proposal, error)

	OpenFund(ctx context.Context, req CreateFundRequest) (*DataFund, error)
	GetFund(ctx context.Context, id string) (*DataFund, error)
	ListFunds(ctx context.Context) ([]*DataFund, error)
	AddMember(ctx context.Context, fundID, retailerID string) (*DataFund, error)
	RemoveMember(ctx context.Context, fundID, retailerID string) (*DataFund, error)
	CloseFund(ctx context.Context, fundID string) (*DataFund, error)
	FundHistory(ctx context.Context, fundID string) ([]*Proposal, error)
}

type service struct {
	proposals ProposalRepository
	funds     FundRepository
	now       func() time.Time
}

// NewService creates a new monetization service.
func NewService(proposals ProposalRepository, funds FundRepository) Service {
	return &service{proposals: proposals, funds: funds, now: time.Now}
}

func (s *service) Propose(ctx context.Context, req CreateProposalRequest) (*Proposal, error) {
	industryID, err := uuid.Parse(req.IndustryID)
	if err != nil {
		return nil, fmt.Errorf("invalid industry_id: %w", err)
	}
	if (req.RetailerID == "") == (req.FundID == "") {
		return nil, fmt.Errorf("exactly one of retailer_id and fund_id must be set")
	}
	if !req.Value.IsPositive() {
		return nil, fmt.Errorf("value must be positive")
	}

	p := &Proposal{
		ID:          uuid.New(),
		IndustryID:  industryID,
		Value:       req.Value,
		Status:      ProposalPending,
		Description: req.Description,
	}
	if req.RetailerID != "" {
		rid, err := uuid.Parse(req.RetailerID)
		if err != nil {
			return nil, fmt.Errorf("invalid retailer_id: %w", err)
		}
		p.RetailerID = &rid
	}
	if req.FundID != "" {
		fund, err := s.funds.GetByID(ctx, req.FundID)
		if err != nil {
			return nil, fmt.Errorf("fund not found: %w", err)
		}
		if fund.Status != FundOpen {
			return nil, fmt.Errorf("fund is closed")
		}
		p.FundID = &fund.ID
	}

	if err := s.proposals.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetProposal(ctx context.Context, id string) (*Proposal, error) {
	return s.proposals.GetByID(ctx, id)
}

func (s *service) RetailerProposals(ctx context.Context, retailerID string) ([]*Proposal, error) {
	return s.proposals.ListByRetailer(ctx, retailerID)
}

func (s *service) IndustryProposals(ctx context.Context, industryID string) ([]*Proposal, error) {
	return s.proposals.ListByIndustry(ctx, industryID)
}

func (s *service) Decide(ctx context.Context, id string, accept bool) (*Proposal, error) {
	p, err := s.proposals.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("proposal not found: %w", err)
	}
	if p.Status != ProposalPending {
		return nil, fmt.Errorf("only PENDING proposals can be decided, current status: %s", p.Status)
	}
	if accept {
		p.Status = ProposalAccepted
	} else {
		p.Status = ProposalRejected
	}
	decidedAt := s.now()
	p.DecidedAt = &decidedAt
	if err := s.proposals.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) OpenFund(ctx context.Context, req CreateFundRequest) (*DataFund, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	f := &DataFund{
		ID:     uuid.New(),
		Name:   req.Name,
		Status: FundOpen,
	}
	if err := s.funds.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) GetFund(ctx context.Context, id string) (*DataFund, error) {
	return s.funds.GetByID(ctx, id)
}

func (s *service) ListFunds(ctx context.Context) ([]*DataFund, error) {
	return s.funds.List(ctx)
}

func (s *service) AddMember(ctx context.Context, fundID, retailerID string) (*DataFund, error) {
	rid, err := uuid.Parse(retailerID)
	if err != nil {
		return nil, fmt.Errorf("invalid retailer_id: %w", err)
	}
	f, err := s.funds.GetByID(ctx, fundID)
	if err != nil {
		return nil, fmt.Errorf("fund not found: %w", err)
	}
	if f.Status != FundOpen {
		return nil, fmt.Errorf("fund is closed")
	}
	for _, id := range f.MemberIDs {
		if id == rid {
			return nil, fmt.Errorf("retailer already a member")
		}
	}
	f.MemberIDs = append(f.MemberIDs, rid)
	if err := s.funds.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) RemoveMember(ctx context.Context, fundID, retailerID string) (*DataFund, error) {
	rid, err := uuid.Parse(retailerID)
	if err != nil {
		return nil, fmt.Errorf("invalid retailer_id: %w", err)
	}
	f, err := s.funds.GetByID(ctx, fundID)
	if err != nil {
		return nil, fmt.Errorf("fund not found: %w", err)
	}
	if f.Status != FundOpen {
		return nil, fmt.Errorf("fund is closed")
	}
	kept := f.MemberIDs[:0]
	found := false
	for _, id := range f.MemberIDs {
		if id == rid {
			found = true
			continue
		}
		kept = append(kept, id)
	}
	if !found {
		return nil, fmt.Errorf("retailer is not a member")
	}
	f.MemberIDs = kept
	if err := s.funds.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) CloseFund(ctx context.Context, fundID string) (*DataFund, error) {
	f, err := s.funds.GetByID(ctx, fundID)
	if err != nil {
		return nil, fmt.Errorf("fund not found: %w", err)
	}
	if f.Status == FundClosed {
		return nil, fmt.Errorf("fund is already closed")
	}
	f.Status = FundClosed
	if err := s.funds.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) FundHistory(ctx context.Context, fundID string) ([]*Proposal, error) {
	return s.proposals.ListByFund(ctx, fundID)
}
