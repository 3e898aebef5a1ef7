package customer

import (
	"time"

	"github.com/google/uuid"
)

// FinalConsumer is the placeholder id attached to anonymous counter sales.
// Sales carrying it count toward aggregate figures but are excluded from any
// per-customer or demographic analysis.
var FinalConsumer = uuid.Nil

// IsFinalConsumer reports whether id is the anonymous placeholder.
func IsFinalConsumer(id uuid.UUID) bool { return id == FinalConsumer }

// Gender of a customer profile, as declared.
type Gender string

const (
	GenderFemale      Gender = "FEMALE"
	GenderMale        Gender = "MALE"
	GenderOther       Gender = "OTHER"
	GenderUndisclosed Gender = "UNDISCLOSED"
)

// Customer is a retail client with optional profile attributes used by
// demographic analytics.
type Customer struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	Gender    Gender     `json:"gender,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Habit     string     `json:"habit,omitempty"` // declared purchase habit, free-form tag
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// AgeBand buckets a customer's age into the five analytics bands.
// Customers younger than 18 or without a birth date fall into the empty band
// and are left out of age breakdowns.
func (c *Customer) AgeBand(now time.Time) string {
	if c.BirthDate == nil {
		return ""
	}
	age := now.Year() - c.BirthDate.Year()
	if now.YearDay() < c.BirthDate.YearDay() {
		age--
	}
	switch {
	case age < 18:
		return ""
	case age <= 25:
		return "18-25"
	case age <= 35:
		return "26-35"
	case age <= 45:
		return "36-45"
	case age <= 55:
		return "46-55"
	default:
		return "55+"
	}
}

// CreateCustomerRequest is the payload for registering a customer.
type CreateCustomerRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Gender    string `json:"gender,omitempty"`
	BirthDate string `json:"birth_date,omitempty"` // YYYY-MM-DD
	Habit     string `json:"habit,omitempty"`
}
