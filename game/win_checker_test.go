package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playMoves(t *testing.T, moves ...int) *Board {
	t.Helper()
	b := NewBoard()
	for _, column := range moves {
		require.True(t, b.IsLegal(column))
		b.MakeMove(column)
	}
	return b
}

func TestVerticalWin(t *testing.T) {
	b := playMoves(t, 0, 1, 0, 1, 0, 1)
	assert.Equal(t, NoToken, b.Winner())

	b.MakeMove(0)
	assert.Equal(t, Player1, b.Winner())
}

func TestHorizontalWin(t *testing.T) {
	b := playMoves(t, 0, 0, 1, 1, 2, 2)
	assert.Equal(t, NoToken, b.Winner())

	b.MakeMove(3)
	assert.Equal(t, Player1, b.Winner())
}

func TestDiagonalUpRightWin(t *testing.T) {
	// Player1 builds (0,0) (1,1) (2,2) (3,3).
	b := playMoves(t, 0, 1, 1, 2, 2, 3, 2, 3, 3, 6)
	assert.Equal(t, NoToken, b.Winner())

	b.MakeMove(3)
	assert.Equal(t, Player1, b.Winner())
}

func TestDiagonalDownRightWin(t *testing.T) {
	// Player1 builds (0,3) (1,2) (2,1) (3,0).
	b := playMoves(t, 3, 2, 2, 1, 1, 0, 1, 0, 0, 6)
	assert.Equal(t, NoToken, b.Winner())

	b.MakeMove(0)
	assert.Equal(t, Player1, b.Winner())
}

func TestPlayer2Win(t *testing.T) {
	b := playMoves(t, 6, 0, 6, 1, 5, 2, 5, 3)
	assert.Equal(t, Player2, b.Winner())
}

func TestUndoRemovesWin(t *testing.T) {
	b := playMoves(t, 0, 1, 0, 1, 0, 1, 0)
	require.Equal(t, Player1, b.Winner())

	b.UndoMove()
	assert.Equal(t, NoToken, b.Winner())
}

func TestNoWinAcrossColumnBoundary(t *testing.T) {
	// Player1 holds the top three cells of column 0 and the bottom of
	// column 1. Without the guard row those bits would be consecutive
	// and read as a vertical four.
	b := playMoves(t, 1, 0, 5, 0, 5, 0, 0, 6, 0, 6, 0)
	require.Equal(t, Player1, b.TokenAt(5, 0))
	require.Equal(t, Player1, b.TokenAt(0, 1))
	assert.Equal(t, NoToken, b.Winner())
}

func TestIsWinExactlyFourCells(t *testing.T) {
	bit := func(row, column int) Bitboard {
		return 1 << (row + column*(Height+1))
	}
	lines := map[string][4]Bitboard{
		"vertical":   {bit(0, 3), bit(1, 3), bit(2, 3), bit(3, 3)},
		"horizontal": {bit(2, 1), bit(2, 2), bit(2, 3), bit(2, 4)},
		"diag up":    {bit(0, 0), bit(1, 1), bit(2, 2), bit(3, 3)},
		"diag down":  {bit(3, 0), bit(2, 1), bit(1, 2), bit(0, 3)},
	}

	for name, cells := range lines {
		var full Bitboard
		for _, c := range cells {
			full |= c
		}
		assert.True(t, isWin(full), "%s: four cells must win", name)

		// Dropping any single cell breaks the line.
		for i, c := range cells {
			assert.False(t, isWin(full&^c), "%s: cell %d removed must not win", name, i)
		}
	}
}

func TestIsWinningCell(t *testing.T) {
	// Player1 stacked three high in column 0, Player2 in column 1.
	b := playMoves(t, 0, 1, 0, 1, 0, 1)

	assert.True(t, b.IsWinningCell(0, Player1))
	assert.False(t, b.IsWinningCell(0, Player2))
	assert.True(t, b.IsWinningCell(1, Player2))
	assert.False(t, b.IsWinningCell(1, Player1))
	assert.False(t, b.IsWinningCell(3, Player1))
}

func TestIsWinningCellIgnoresTurn(t *testing.T) {
	// Player2 to move, but the query asks about Player1's drop.
	b := playMoves(t, 0, 1, 0, 1, 0)
	require.Equal(t, Player2, b.CurrentPlayer())
	assert.False(t, b.IsWinningCell(0, Player1))

	b.MakeMove(1)
	require.Equal(t, Player1, b.CurrentPlayer())
	assert.True(t, b.IsWinningCell(1, Player2))
}
