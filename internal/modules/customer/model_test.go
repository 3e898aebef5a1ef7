package customer

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAgeBands(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	born := func(year, month, day int) *time.Time {
		d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		return &d
	}

	cases := []struct {
		name  string
		birth *time.Time
		want  string
	}{
		{"no birth date", nil, ""},
		{"minor", born(2010, 1, 1), ""},
		{"just turned 18", born(2008, 6, 1), "18-25"},
		{"turns 18 tomorrow", born(2008, 6, 16), ""},
		{"25", born(2001, 1, 1), "18-25"},
		{"26", born(2000, 1, 1), "26-35"},
		{"35", born(1991, 1, 1), "26-35"},
		{"45", born(1981, 1, 1), "36-45"},
		{"55", born(1971, 1, 1), "46-55"},
		{"56", born(1970, 1, 1), "55+"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := &Customer{BirthDate: tc.birth}
			assert.Equal(t, tc.want, c.AgeBand(now))
		})
	}
}

func TestFinalConsumerPlaceholder(t *testing.T) {
	assert.True(t, IsFinalConsumer(FinalConsumer))
	assert.True(t, IsFinalConsumer(uuid.Nil))
	assert.False(t, IsFinalConsumer(uuid.New()))
}
