package game_test

import (
	"testing"

	"github.com/lbraga/millionaire/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPrizeTable(t *testing.T) {
	table := game.DefaultPrizeTable()

	assert.Equal(t, 15, table.Height())
	assert.Equal(t, 14, table.LastLevel())
	assert.Equal(t, 100, table.PrizeAt(0))
	assert.Equal(t, 1000, table.PrizeAt(4))
	assert.Equal(t, 32000, table.PrizeAt(9))
	assert.Equal(t, 1000000, table.TopPrize())
	assert.True(t, table.IsCheckpoint(4))
	assert.True(t, table.IsCheckpoint(9))
	assert.True(t, table.IsCheckpoint(14))
	assert.False(t, table.IsCheckpoint(5))
}

func TestPrizeTable_PrizeAt_OutsideLadder(t *testing.T) {
	table := game.DefaultPrizeTable()

	assert.Equal(t, 0, table.PrizeAt(-1))
	assert.Equal(t, 0, table.PrizeAt(15))
}

func TestPrizeTable_CheckpointPrizeBelow(t *testing.T) {
	table := game.DefaultPrizeTable()

	tests := []struct {
		level int
		prize int
	}{
		{level: 0, prize: 0},
		{level: 3, prize: 0},
		{level: 4, prize: 1000},
		{level: 8, prize: 1000},
		{level: 9, prize: 32000},
		{level: 13, prize: 32000},
		{level: 14, prize: 1000000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.prize, table.CheckpointPrizeBelow(tt.level), "level %d", tt.level)
	}
}

func TestPrizeTable_EmptyCheckpoints(t *testing.T) {
	table, err := game.NewPrizeTable([]int{100, 200, 300}, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, table.CheckpointPrizeBelow(0))
	assert.Equal(t, 0, table.CheckpointPrizeBelow(2))
}

func TestNewPrizeTable_Validation(t *testing.T) {
	tests := []struct {
		name        string
		amounts     []int
		checkpoints []int
	}{
		{name: "empty ladder", amounts: nil},
		{name: "non-positive prize", amounts: []int{100, 0, 300}},
		{name: "decreasing prize", amounts: []int{100, 50}},
		{name: "checkpoint below ladder", amounts: []int{100, 200}, checkpoints: []int{-1}},
		{name: "checkpoint above ladder", amounts: []int{100, 200}, checkpoints: []int{2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := game.NewPrizeTable(tt.amounts, tt.checkpoints)
			assert.Error(t, err)
		})
	}
}

func TestNewPrizeTable_EqualPrizesAllowed(t *testing.T) {
	_, err := game.NewPrizeTable([]int{100, 100, 200}, []int{1})
	assert.NoError(t, err)
}
