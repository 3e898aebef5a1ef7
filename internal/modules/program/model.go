package program

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vitrinedata/varejo-backend/internal/modules/rating"
)

// MetricType defines how a program measures subscriber performance.
type MetricType string

const (
	// MetricSKUVolume targets total units sold of one SKU.
	MetricSKUVolume MetricType = "SKU_VOLUME"
	// MetricCategoryGrowth targets percentage revenue growth of a category
	// against the preceding period of equal length.
	MetricCategoryGrowth MetricType = "CATEGORY_GROWTH"
)

// Program is an incentive campaign created by an industry for retailers.
type Program struct {
	ID             uuid.UUID       `json:"id"`
	IndustryID     uuid.UUID       `json:"industry_id"`
	Title          string          `json:"title"`
	Description    string          `json:"description,omitempty"`
	Rules          string          `json:"rules,omitempty"`
	Reward         string          `json:"reward,omitempty"`
	StartsAt       time.Time       `json:"starts_at"`
	EndsAt         time.Time       `json:"ends_at"`
	Metric         MetricType      `json:"metric"`
	TargetSKU      string          `json:"target_sku,omitempty"`
	TargetCategory string          `json:"target_category,omitempty"`
	TargetValue    decimal.Decimal `json:"target_value"`
	MinTier        rating.Tier     `json:"min_tier"`
	Tags           []string        `json:"tags,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Active reports whether the program is running at the given instant.
func (p *Program) Active(at time.Time) bool {
	return !at.Before(p.StartsAt) && !at.After(p.EndsAt)
}

// Subscription enrolls a retailer in a program.
type Subscription struct {
	ID         uuid.UUID `json:"id"`
	ProgramID  uuid.UUID `json:"program_id"`
	RetailerID uuid.UUID `json:"retailer_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Progress is a snapshot of a subscriber's performance against the program
// metric, recomputed from sales on every read.
type Progress struct {
	ProgramID  uuid.UUID       `json:"program_id"`
	RetailerID uuid.UUID       `json:"retailer_id"`
	Metric     MetricType      `json:"metric"`
	Current    decimal.Decimal `json:"current"`
	Target     decimal.Decimal `json:"target"`
	Percent    decimal.Decimal `json:"percent"`
}

// CreateProgramRequest is the payload for launching a program.
type CreateProgramRequest struct {
	IndustryID     string          `json:"industry_id"`
	Title          string          `json:"title"`
	Description    string          `json:"description,omitempty"`
	Rules          string          `json:"rules,omitempty"`
	Reward         string          `json:"reward,omitempty"`
	StartsAt       string          `json:"starts_at"` // YYYY-MM-DD
	EndsAt         string          `json:"ends_at"`   // YYYY-MM-DD
	Metric         string          `json:"metric"`
	TargetSKU      string          `json:"target_sku,omitempty"`
	TargetCategory string          `json:"target_category,omitempty"`
	TargetValue    decimal.Decimal `json:"target_value"`
	MinTier        string          `json:"min_tier,omitempty"`
	Tags           []string        `json:"tags,omitempty"`
}
