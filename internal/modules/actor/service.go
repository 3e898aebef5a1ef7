package actor

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Service defines actor business logic.
type Service interface {
	Register(ctx context.Context, req CreateActorRequest) (*Actor, error)
	Get(ctx context.Context, id string) (*Actor, error)
	ListRetailers(ctx context.Context) ([]*Actor, error)
	ListSuppliers(ctx context.Context) ([]*Actor, error)
	ListIndustries(ctx context.Context) ([]*Actor, error)
	Update(ctx context.Context, id string, req CreateActorRequest) (*Actor, error)
	Remove(ctx context.Context, id string) error
}

type service struct{ repo Repository }

// NewService creates a new actor service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) Register(ctx context.Context, req CreateActorRequest) (*Actor, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	kind := Kind(strings.ToUpper(req.Kind))
	switch kind {
	case KindRetailer, KindSupplier, KindIndustry:
		// valid
	default:
		return nil, fmt.Errorf("invalid kind: %s (allowed: RETAILER, SUPPLIER, INDUSTRY)", req.Kind)
	}

	a := &Actor{
		ID:        uuid.New(),
		Kind:      kind,
		Name:      req.Name,
		TradeName: req.TradeName,
		TaxID:     req.TaxID,
		Email:     req.Email,
		Phone:     req.Phone,
		Street:    req.Street,
		City:      req.City,
		State:     strings.ToUpper(req.State),
		ZipCode:   req.ZipCode,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Get(ctx context.Context, id string) (*Actor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListRetailers(ctx context.Context) ([]*Actor, error) {
	return s.repo.ListByKind(ctx, KindRetailer)
}

func (s *service) ListSuppliers(ctx context.Context) ([]*Actor, error) {
	return s.repo.ListByKind(ctx, KindSupplier)
}

func (s *service) ListIndustries(ctx context.Context) ([]*Actor, error) {
	return s.repo.ListByKind(ctx, KindIndustry)
}

func (s *service) Update(ctx context.Context, id string, req CreateActorRequest) (*Actor, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("actor not found: %w", err)
	}
	if req.Name != "" {
		a.Name = req.Name
	}
	if req.TradeName != "" {
		a.TradeName = req.TradeName
	}
	if req.TaxID != "" {
		a.TaxID = req.TaxID
	}
	if req.Email != "" {
		a.Email = req.Email
	}
	if req.Phone != "" {
		a.Phone = req.Phone
	}
	if req.Street != "" {
		a.Street = req.Street
	}
	if req.City != "" {
		a.City = req.City
	}
	if req.State != "" {
		a.State = strings.ToUpper(req.State)
	}
	if req.ZipCode != "" {
		a.ZipCode = req.ZipCode
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Remove(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
