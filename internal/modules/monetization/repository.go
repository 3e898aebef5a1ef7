package monetization

import "context"

// ProposalRepository defines data access for proposals.
type ProposalRepository interface {
	Create(ctx context.Context, p *Proposal) error
	GetByID(ctx context.Context, id string) (*Proposal, error)
	ListByIndustry(ctx context.Context, industryID string) ([]*Proposal, error)
	ListByRetailer(ctx context.Context, retailerID string) ([]*Proposal, error)
	ListByFund(ctx context.Context, fundID string) ([]*Proposal, error)
	Update(ctx context.Context, p *Proposal) error
}

// FundRepository defines data access for data funds.
type FundRepository interface {
	Create(ctx context.Context, f *DataFund) error
	GetByID(ctx context.Context, id string) (*DataFund, error)
	List(ctx context.Context) ([]*DataFund, error)
	Update(ctx context.Context, f *DataFund) error
}
