package customer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service defines customer business logic.
type Service interface {
	Register(ctx context.Context, req CreateCustomerRequest) (*Customer, error)
	Get(ctx context.Context, id string) (*Customer, error)
	List(ctx context.Context) ([]*Customer, error)
	Update(ctx context.Context, id string, req CreateCustomerRequest) (*Customer, error)
	Remove(ctx context.Context, id string) error
}

type service struct{ repo Repository }

// NewService creates a new customer service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) Register(ctx context.Context, req CreateCustomerRequest) (*Customer, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	c := &Customer{
		ID:    uuid.New(),
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Habit: req.Habit,
	}
	if req.Gender != "" {
		g := Gender(strings.ToUpper(req.Gender))
		switch g {
		case GenderFemale, GenderMale, GenderOther, GenderUndisclosed:
			c.Gender = g
		default:
			return nil, fmt.Errorf("invalid gender: %s", req.Gender)
		}
	}
	if req.BirthDate != "" {
		bd, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return nil, fmt.Errorf("invalid birth_date: %w", err)
		}
		c.BirthDate = &bd
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Get(ctx context.Context, id string) (*Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*Customer, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id string, req CreateCustomerRequest) (*Customer, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("customer not found: %w", err)
	}
	if req.Name != "" {
		c.Name = req.Name
	}
	if req.Email != "" {
		c.Email = req.Email
	}
	if req.Phone != "" {
		c.Phone = req.Phone
	}
	if req.Habit != "" {
		c.Habit = req.Habit
	}
	if req.Gender != "" {
		g := Gender(strings.ToUpper(req.Gender))
		switch g {
		case GenderFemale, GenderMale, GenderOther, GenderUndisclosed:
			c.Gender = g
		default:
			return nil, fmt.Errorf("invalid gender: %s", req.Gender)
		}
	}
	if req.BirthDate != "" {
		bd, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return nil, fmt.Errorf("invalid birth_date: %w", err)
		}
		c.BirthDate = &bd
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Remove(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
