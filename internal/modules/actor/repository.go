package actor

import "context"

// Repository defines data access for actors.
type Repository interface {
	Create(ctx context.Context, a *Actor) error
	GetByID(ctx context.Context, id string) (*Actor, error)
	ListByKind(ctx context.Context, kind Kind) ([]*Actor, error)
	Update(ctx context.Context, a *Actor) error
	Delete(ctx context.Context, id string) error
}
