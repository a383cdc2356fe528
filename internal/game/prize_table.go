// Package game holds the pure quiz rules: the prize ladder, the
// per-question letter shuffle, and the help generators. Nothing in here
// touches storage or transport.
package game

import "fmt"

// PrizeTable is the payout ladder. Levels are zero-based; level i pays
// amounts[i] when cleared. Checkpoint levels keep their prize even after a
// later wrong answer.
type PrizeTable struct {
	amounts     []int
	checkpoints map[int]bool
}

// NewPrizeTable builds a ladder from payout amounts and checkpoint levels.
// Amounts must be positive and non-decreasing; every checkpoint must be a
// valid level. Checkpoints may be empty, which makes every failure pay
// zero.
func NewPrizeTable(amounts []int, checkpoints []int) (*PrizeTable, error) {
	if len(amounts) == 0 {
		return nil, fmt.Errorf("prize table needs at least one level")
	}
	prev := 0
	for i, amount := range amounts {
		if amount <= 0 {
			return nil, fmt.Errorf("prize at level %d must be positive, got %d", i, amount)
		}
		if amount < prev {
			return nil, fmt.Errorf("prize at level %d (%d) decreases from %d", i, amount, prev)
		}
		prev = amount
	}

	cps := make(map[int]bool, len(checkpoints))
	for _, level := range checkpoints {
		if level < 0 || level >= len(amounts) {
			return nil, fmt.Errorf("checkpoint %d outside ladder 0..%d", level, len(amounts)-1)
		}
		cps[level] = true
	}

	return &PrizeTable{amounts: amounts, checkpoints: cps}, nil
}

// DefaultPrizeTable is the classic 15-rung ladder with fire-proof prizes
// at levels 4, 9 and 14.
func DefaultPrizeTable() *PrizeTable {
	t, err := NewPrizeTable(
		[]int{
			100, 200, 300, 500, 1000,
			2000, 4000, 8000, 16000, 32000,
			64000, 125000, 250000, 500000, 1000000,
		},
		[]int{4, 9, 14},
	)
	if err != nil {
		panic(err)
	}
	return t
}

// Height is the number of ladder rungs.
func (t *PrizeTable) Height() int {
	return len(t.amounts)
}

// LastLevel is the highest playable level.
func (t *PrizeTable) LastLevel() int {
	return len(t.amounts) - 1
}

// PrizeAt returns the payout for clearing the given level, zero outside
// the ladder.
func (t *PrizeTable) PrizeAt(level int) int {
	if level < 0 || level >= len(t.amounts) {
		return 0
	}
	return t.amounts[level]
}

// TopPrize is the payout for clearing the whole ladder.
func (t *PrizeTable) TopPrize() int {
	return t.amounts[len(t.amounts)-1]
}

// IsCheckpoint reports whether the level is fire-proof.
func (t *PrizeTable) IsCheckpoint(level int) bool {
	return t.checkpoints[level]
}

// CheckpointPrizeBelow returns the prize of the highest checkpoint at or
// below the given level, or zero when no checkpoint was reached.
func (t *PrizeTable) CheckpointPrizeBelow(level int) int {
	best := -1
	for cp := range t.checkpoints {
		if cp <= level && cp > best {
			best = cp
		}
	}
	if best < 0 {
		return 0
	}
	return t.amounts[best]
}
