package inventory

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// PlanDeduction builds a FEFO deduction plan for taking qty units of a single
// product out of the given batches. Batches are walked in ascending expiry
// order, each consumed fully before the next is touched. The input slice is
// not modified. Returns an error when the batches cannot cover qty, so stock
// never goes negative.
func PlanDeduction(batches []*Batch, qty int) ([]BatchDraw, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("deduction quantity must be positive, got %d", qty)
	}

	ordered := make([]*Batch, 0, len(batches))
	available := 0
	for _, b := range batches {
		if b.Quantity > 0 {
			ordered = append(ordered, b)
			available += b.Quantity
		}
	}
	if available < qty {
		return nil, fmt.Errorf("insufficient stock: need %d, have %d", qty, available)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if !ordered[i].ExpiresAt.Equal(ordered[j].ExpiresAt) {
			return ordered[i].ExpiresAt.Before(ordered[j].ExpiresAt)
		}
		// deterministic order for equal expiries
		return ordered[i].ID.String() < ordered[j].ID.String()
	})

	var plan []BatchDraw
	remaining := qty
	for _, b := range ordered {
		if remaining == 0 {
			break
		}
		take := b.Quantity
		if take > remaining {
			take = remaining
		}
		plan = append(plan, BatchDraw{BatchID: b.ID, Quantity: take})
		remaining -= take
	}
	return plan, nil
}

// drawnQuantity sums the units a plan takes from the batch with the given id.
func drawnQuantity(plan []BatchDraw, batchID uuid.UUID) int {
	total := 0
	for _, d := range plan {
		if d.BatchID == batchID {
			total += d.Quantity
		}
	}
	return total
}
