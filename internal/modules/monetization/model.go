package monetization

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProposalStatus is the lifecycle state of a data-monetization offer.
type ProposalStatus string

const (
	ProposalPending  ProposalStatus = "PENDING"
	ProposalAccepted ProposalStatus = "ACCEPTED"
	ProposalRejected ProposalStatus = "REJECTED"
)

// Proposal is an offer from an industry to buy access to sales data, directed
// at either a single retailer or a data fund (never both).
type Proposal struct {
	ID          uuid.UUID       `json:"id"`
	IndustryID  uuid.UUID       `json:"industry_id"`
	RetailerID  *uuid.UUID      `json:"retailer_id,omitempty"`
	FundID      *uuid.UUID      `json:"fund_id,omitempty"`
	Value       decimal.Decimal `json:"value"`
	Status      ProposalStatus  `json:"status"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	DecidedAt   *time.Time      `json:"decided_at,omitempty"`
}

// FundStatus is the lifecycle state of a data fund.
type FundStatus string

const (
	FundOpen   FundStatus = "OPEN"
	FundClosed FundStatus = "CLOSED"
)

// DataFund pools retailers for collective data monetization. Membership can
// only change while the fund is open.
type DataFund struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Status    FundStatus  `json:"status"`
	MemberIDs []uuid.UUID `json:"member_ids"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// CreateProposalRequest is the payload for making an offer. Exactly one of
// retailer_id and fund_id must be set.
type CreateProposalRequest struct {
	IndustryID  string          `json:"industry_id"`
	RetailerID  string          `json:"retailer_id,omitempty"`
	FundID      string          `json:"fund_id,omitempty"`
	Value       decimal.Decimal `json:"value"`
	Description string          `json:"description,omitempty"`
}

// CreateFundRequest is the payload for opening a data fund.
type CreateFundRequest struct {
	Name string `json:"name"`
}
