package inventory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(offset int) time.Time {
	return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func TestPlanDeductionDrainsEarliestExpiryFirst(t *testing.T) {
	early := &Batch{ID: uuid.New(), Quantity: 5, ExpiresAt: day(3)}
	late := &Batch{ID: uuid.New(), Quantity: 20, ExpiresAt: day(30)}

	plan, err := PlanDeduction([]*Batch{late, early}, 12)
	require.NoError(t, err)

	assert.Equal(t, 5, drawnQuantity(plan, early.ID))
	assert.Equal(t, 7, drawnQuantity(plan, late.ID))

	// input untouched
	assert.Equal(t, 5, early.Quantity)
	assert.Equal(t, 20, late.Quantity)
}

func TestPlanDeductionInsufficientStock(t *testing.T) {
	b := &Batch{ID: uuid.New(), Quantity: 10, ExpiresAt: day(5)}

	_, err := PlanDeduction([]*Batch{b}, 11)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient stock")
}

func TestPlanDeductionSkipsEmptyBatches(t *testing.T) {
	empty := &Batch{ID: uuid.New(), Quantity: 0, ExpiresAt: day(1)}
	stocked := &Batch{ID: uuid.New(), Quantity: 8, ExpiresAt: day(10)}

	plan, err := PlanDeduction([]*Batch{empty, stocked}, 8)
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, stocked.ID, plan[0].BatchID)
	assert.Equal(t, 8, plan[0].Quantity)
}

func TestPlanDeductionExactDrain(t *testing.T) {
	a := &Batch{ID: uuid.New(), Quantity: 3, ExpiresAt: day(1)}
	b := &Batch{ID: uuid.New(), Quantity: 4, ExpiresAt: day(2)}

	plan, err := PlanDeduction([]*Batch{a, b}, 7)
	require.NoError(t, err)
	assert.Equal(t, 3, drawnQuantity(plan, a.ID))
	assert.Equal(t, 4, drawnQuantity(plan, b.ID))
}

func TestPlanDeductionRejectsNonPositiveQuantity(t *testing.T) {
	b := &Batch{ID: uuid.New(), Quantity: 10, ExpiresAt: day(1)}

	_, err := PlanDeduction([]*Batch{b}, 0)
	assert.Error(t, err)

	_, err = PlanDeduction([]*Batch{b}, -2)
	assert.Error(t, err)
}

func TestPlanDeductionDeterministicOnEqualExpiry(t *testing.T) {
	idA := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	idB := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	a := &Batch{ID: idA, Quantity: 6, ExpiresAt: day(4)}
	b := &Batch{ID: idB, Quantity: 6, ExpiresAt: day(4)}

	plan, err := PlanDeduction([]*Batch{b, a}, 6)
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, idA, plan[0].BatchID)
}
