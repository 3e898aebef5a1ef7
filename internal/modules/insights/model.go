package insights

import (
	"time"

	"github.com/vitrinedata/varejo-backend/internal/modules/inventory"
)

// Kind is the severity of an advisory message.
type Kind string

const (
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindNeutral Kind = "neutral"
)

// Insight is one advisory message for a retailer.
type Insight struct {
	Kind        Kind   `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Metric      string `json:"metric,omitempty"`
	Action      string `json:"action,omitempty"`
}

// Context is the read-only snapshot every rule is evaluated against.
type Context struct {
	Views []*inventory.ProductView
	Now   time.Time
}
