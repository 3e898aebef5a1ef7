package program

import "context"

// Repository defines data access for programs and subscriptions.
type Repository interface {
	CreateProgram(ctx context.Context, p *Program) error
	GetProgram(ctx context.Context, id string) (*Program, error)
	ListByIndustry(ctx context.Context, industryID string) ([]*Program, error)
	DeleteProgram(ctx context.Context, id string) error

	CreateSubscription(ctx context.Context, sub *Subscription) error
	GetSubscription(ctx context.Context, programID, retailerID string) (*Subscription, error)
	ListSubscriptions(ctx context.Context, programID string) ([]*Subscription, error)
}
