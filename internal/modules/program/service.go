package program

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vitrinedata/varejo-backend/internal/modules/catalog"
	"github.com/vitrinedata/varejo-backend/internal/modules/rating"
	"github.com/vitrinedata/varejo-backend/internal/modules/sales"
)

// Service defines program business logic.
type Service interface {
	Launch(ctx context.Context, req CreateProgramRequest) (*Program, error)
	Get(ctx context.Context, id string) (*Program, error)
	ListByIndustry(ctx context.Context, industryID string) ([]*Program, error)
	Remove(ctx context.Context, id string) error

	// Subscribe enrolls a retailer; the retailer's current rating tier must
	// meet the program's minimum.
	Subscribe(ctx context.Context, programID, retailerID string) (*Subscription, error)
	Subscribers(ctx context.Context, programID string) ([]*Subscription, error)
	Progress(ctx context.Context, programID, retailerID string) (*Progress, error)
}

type service struct {
	repo    Repository
	rating  rating.Service
	sales   sales.Repository
	catalog catalog.Repository
	now     func() time.Time
}

// NewService creates a new program service.
func NewService(repo Repository, ratingSvc rating.Service, salesRepo sales.Repository, catalogRepo catalog.Repository) Service {
	return &service{repo: repo, rating: ratingSvc, sales: salesRepo, catalog: catalogRepo, now: time.Now}
}

func (s *service) Launch(ctx context.Context, req CreateProgramRequest) (*Program, error) {
	industryID, err := uuid.Parse(req.IndustryID)
	if err != nil {
		return nil, fmt.Errorf("invalid industry_id: %w", err)
	}
	if req.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	startsAt, err := time.Parse("2006-01-02", req.StartsAt)
	if err != nil {
		return nil, fmt.Errorf("invalid starts_at: %w", err)
	}
	endsAt, err := time.Parse("2006-01-02", req.EndsAt)
	if err != nil {
		return nil, fmt.Errorf("invalid ends_at: %w", err)
	}
	if endsAt.Before(startsAt) {
		return nil, fmt.Errorf("ends_at must not precede starts_at")
	}

	metric := MetricType(strings.ToUpper(req.Metric))
	switch metric {
	case MetricSKUVolume:
		if req.TargetSKU == "" {
			return nil, fmt.Errorf("target_sku is required for %s programs", MetricSKUVolume)
		}
	case MetricCategoryGrowth:
		if req.TargetCategory == "" {
			return nil, fmt.Errorf("target_category is required for %s programs", MetricCategoryGrowth)
		}
	default:
		return nil, fmt.Errorf("invalid metric: %s (allowed: SKU_VOLUME, CATEGORY_GROWTH)", req.Metric)
	}
	if !req.TargetValue.IsPositive() {
		return nil, fmt.Errorf("target_value must be positive")
	}

	minTier := rating.TierBronze
	if req.MinTier != "" {
		minTier = rating.Tier(req.MinTier)
		if minTier.Rank() < 0 {
			return nil, fmt.Errorf("invalid min_tier: %s", req.MinTier)
		}
	}

	p := &Program{
		ID:             uuid.New(),
		IndustryID:     industryID,
		Title:          req.Title,
		Description:    req.Description,
		Rules:          req.Rules,
		Reward:         req.Reward,
		StartsAt:       startsAt,
		EndsAt:         endsAt,
		Metric:         metric,
		TargetSKU:      strings.ToUpper(req.TargetSKU),
		TargetCategory: req.TargetCategory,
		TargetValue:    req.TargetValue,
		MinTier:        minTier,
		Tags:           req.Tags,
	}
	if err := s.repo.CreateProgram(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Get(ctx context.Context, id string) (*Program, error) {
	return s.repo.GetProgram(ctx, id)
}

func (s *service) ListByIndustry(ctx context.Context, industryID string) ([]*Program, error) {
	return s.repo.ListByIndustry(ctx, industryID)
}

func (s *service) Remove(ctx context.Context, id string) error {
	return s.repo.DeleteProgram(ctx, id)
}

func (s *service) Subscribe(ctx context.Context, programID, retailerID string) (*Subscription, error) {
	p, err := s.repo.GetProgram(ctx, programID)
	if err != nil {
		return nil, fmt.Errorf("program not found: %w", err)
	}
	rid, err := uuid.Parse(retailerID)
	if err != nil {
		return nil, fmt.Errorf("invalid retailer_id: %w", err)
	}
	if !p.Active(s.now()) {
		return nil, fmt.Errorf("program is not active")
	}
	if existing, err := s.repo.GetSubscription(ctx, programID, retailerID); err == nil && existing != nil {
		return nil, fmt.Errorf("retailer already subscribed")
	}

	tier, err := s.rating.RetailerTier(ctx, retailerID)
	if err != nil {
		return nil, err
	}
	if !tier.AtLeast(p.MinTier) {
		return nil, fmt.Errorf("rating tier %s does not meet program minimum %s", tier, p.MinTier)
	}

	sub := &Subscription{
		ID:         uuid.New(),
		ProgramID:  p.ID,
		RetailerID: rid,
	}
	if err := s.repo.CreateSubscription(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *service) Subscribers(ctx context.Context, programID string) ([]*Subscription, error) {
	return s.repo.ListSubscriptions(ctx, programID)
}

func (s *service) Progress(ctx context.Context, programID, retailerID string) (*Progress, error) {
	p, err := s.repo.GetProgram(ctx, programID)
	if err != nil {
		return nil, fmt.Errorf("program not found: %w", err)
	}
	sub, err := s.repo.GetSubscription(ctx, programID, retailerID)
	if err != nil {
		return nil, fmt.Errorf("subscription not found: %w", err)
	}

	var current decimal.Decimal
	switch p.Metric {
	case MetricSKUVolume:
		current, err = s.skuVolume(ctx, p, retailerID)
	case MetricCategoryGrowth:
		current, err = s.categoryGrowth(ctx, p, retailerID)
	default:
		err = fmt.Errorf("unknown metric: %s", p.Metric)
	}
	if err != nil {
		return nil, err
	}

	progress := &Progress{
		ProgramID:  p.ID,
		RetailerID: sub.RetailerID,
		Metric:     p.Metric,
		Current:    current,
		Target:     p.TargetValue,
	}
	if p.TargetValue.IsPositive() {
		progress.Percent = current.Div(p.TargetValue).Mul(decimal.NewFromInt(100))
	}
	return progress, nil
}

func (s *service) skuVolume(ctx context.Context, p *Program, retailerID string) (decimal.Decimal, error) {
	window, err := s.windowSales(ctx, retailerID, p.StartsAt, p.EndsAt)
	if err != nil {
		return decimal.Zero, err
	}
	total := 0
	for _, sale := range window {
		for _, it := range sale.Items {
			if it.SKU == p.TargetSKU {
				total += it.Quantity
			}
		}
	}
	return decimal.NewFromInt(int64(total)), nil
}

// categoryGrowth compares category revenue in the program window against the
// preceding period of equal length, as a percentage.
func (s *service) categoryGrowth(ctx context.Context, p *Program, retailerID string) (decimal.Decimal, error) {
	products, err := s.catalog.List(ctx, p.TargetCategory, "")
	if err != nil {
		return decimal.Zero, err
	}
	inCategory := make(map[uuid.UUID]struct{}, len(products))
	for _, pr := range products {
		inCategory[pr.ID] = struct{}{}
	}

	span := p.EndsAt.Sub(p.StartsAt)
	currentRevenue, err := s.categoryRevenue(ctx, retailerID, inCategory, p.StartsAt, p.EndsAt)
	if err != nil {
		return decimal.Zero, err
	}
	previousRevenue, err := s.categoryRevenue(ctx, retailerID, inCategory, p.StartsAt.Add(-span), p.StartsAt)
	if err != nil {
		return decimal.Zero, err
	}

	if previousRevenue.IsZero() {
		if currentRevenue.IsPositive() {
			return decimal.NewFromInt(100), nil
		}
		return decimal.Zero, nil
	}
	return currentRevenue.Sub(previousRevenue).Div(previousRevenue).Mul(decimal.NewFromInt(100)), nil
}

func (s *service) categoryRevenue(ctx context.Context, retailerID string, inCategory map[uuid.UUID]struct{}, from, to time.Time) (decimal.Decimal, error) {
	window, err := s.windowSales(ctx, retailerID, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	var revenue decimal.Decimal
	for _, sale := range window {
		for _, it := range sale.Items {
			if _, ok := inCategory[it.ProductID]; ok {
				revenue = revenue.Add(it.Total)
			}
		}
	}
	return revenue, nil
}

func (s *service) windowSales(ctx context.Context, retailerID string, from, to time.Time) ([]*sales.Sale, error) {
	list, err := s.sales.ListByRetailerSince(ctx, retailerID, from)
	if err != nil {
		return nil, err
	}
	var window []*sales.Sale
	for _, sale := range list {
		if sale.SoldAt.After(to) {
			continue
		}
		window = append(window, sale)
	}
	return window, nil
}
