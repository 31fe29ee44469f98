package game

import (
	"math/bits"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func legalColumns(b *Board) []int {
	var columns []int
	for c := range b.LegalMoves() {
		columns = append(columns, c)
	}
	return columns
}

func TestNewBoardIsEmpty(t *testing.T) {
	b := NewBoard()

	assert.Equal(t, 0, b.Ply())
	assert.Equal(t, Player1, b.CurrentPlayer())
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, legalColumns(b))

	for row := 0; row < Height; row++ {
		for column := 0; column < Width; column++ {
			assert.Equal(t, NoToken, b.TokenAt(row, column))
		}
	}
}

func TestMakeMoveAlternatesPlayers(t *testing.T) {
	b := NewBoard()

	b.MakeMove(3)
	assert.Equal(t, Player1, b.TokenAt(0, 3))
	assert.Equal(t, Player2, b.CurrentPlayer())

	b.MakeMove(3)
	assert.Equal(t, Player2, b.TokenAt(1, 3))
	assert.Equal(t, Player1, b.CurrentPlayer())

	assert.Equal(t, 2, b.Ply())
	assert.Equal(t, 2, b.ColumnHeight(3))
	assert.Equal(t, 0, b.ColumnHeight(0))
}

func TestColumnFillsAfterSixMoves(t *testing.T) {
	b := NewBoard()
	for i := 0; i < Height; i++ {
		require.True(t, b.HasSpace(0))
		b.MakeMove(0)
	}

	assert.False(t, b.HasSpace(0))
	assert.False(t, b.IsLegal(0))
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, legalColumns(b))
	assert.Panics(t, func() { b.MakeMove(0) })
}

func TestIsLegalBounds(t *testing.T) {
	b := NewBoard()

	assert.False(t, b.IsLegal(-1))
	assert.False(t, b.IsLegal(Width))
	assert.True(t, b.IsLegal(0))
	assert.True(t, b.IsLegal(Width-1))

	assert.Panics(t, func() { b.HasSpace(-1) })
	assert.Panics(t, func() { b.HasSpace(Width) })
}

func TestUndoMoveRestoresState(t *testing.T) {
	b := NewBoard()
	b.MakeMove(4)
	b.MakeMove(4)
	b.MakeMove(2)

	b.UndoMove()
	assert.Equal(t, NoToken, b.TokenAt(0, 2))
	assert.Equal(t, 2, b.Ply())
	assert.Equal(t, Player1, b.CurrentPlayer())

	b.UndoMove()
	b.UndoMove()
	assert.Equal(t, 0, b.Ply())
	assert.Equal(t, Bitboard(0), b.players[0])
	assert.Equal(t, Bitboard(0), b.players[1])

	assert.Panics(t, func() { b.UndoMove() })
}

func TestRandomPlayoutApplyUndoRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 50; trial++ {
		b := NewBoard()
		played := 0
		for b.Ply() < BoardSize && b.Winner() == NoToken {
			columns := legalColumns(b)
			b.MakeMove(columns[rng.Intn(len(columns))])
			played++

			// Both bitboards stay disjoint and account for every move.
			require.Zero(t, b.players[0]&b.players[1])
			require.Equal(t, b.Ply(),
				bits.OnesCount64(uint64(b.players[0]))+bits.OnesCount64(uint64(b.players[1])))
		}

		for i := 0; i < played; i++ {
			b.UndoMove()
		}
		fresh := NewBoard()
		assert.Equal(t, fresh.players, b.players)
		assert.Equal(t, fresh.heights, b.heights)
		assert.Equal(t, 0, b.Ply())
	}
}

func TestWithMoveAlwaysUndoes(t *testing.T) {
	b := NewBoard()
	b.MakeMove(1)
	before := *b

	result := b.WithMove(3, func() int {
		assert.Equal(t, Player2, b.TokenAt(0, 3))
		return 7
	})

	assert.Equal(t, 7, result)
	assert.Equal(t, before.players, b.players)
	assert.Equal(t, before.heights, b.heights)
	assert.Equal(t, before.ply, b.ply)
}

func TestCloneIsIndependent(t *testing.T) {
	b := NewBoard()
	b.MakeMove(0)

	c := b.Clone()
	c.MakeMove(1)

	assert.Equal(t, 1, b.Ply())
	assert.Equal(t, 2, c.Ply())
	assert.Equal(t, NoToken, b.TokenAt(0, 1))
	assert.Equal(t, Player2, c.TokenAt(0, 1))
}

func TestPositionCodeIdentifiesPositionAndTurn(t *testing.T) {
	a := NewBoard()
	a.MakeMove(0)
	a.MakeMove(1)
	a.MakeMove(2)
	a.MakeMove(3)

	// Same position reached by a transposed move order.
	b := NewBoard()
	b.MakeMove(2)
	b.MakeMove(3)
	b.MakeMove(0)
	b.MakeMove(1)

	assert.Equal(t, a.PositionCode(), b.PositionCode())

	b.MakeMove(4)
	assert.NotEqual(t, a.PositionCode(), b.PositionCode())
}

func TestPositionCodeChangesWithTurnOnly(t *testing.T) {
	seen := make(map[Bitboard]bool)
	b := NewBoard()
	seen[b.PositionCode()] = true

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 30 && b.Winner() == NoToken; i++ {
		columns := legalColumns(b)
		b.MakeMove(columns[rng.Intn(len(columns))])
		code := b.PositionCode()
		assert.False(t, seen[code], "position code repeated during a playout")
		seen[code] = true
	}
}

func TestGridIsTopRowFirst(t *testing.T) {
	b := NewBoard()
	b.MakeMove(0) // Player1 at bottom of column 0
	b.MakeMove(0) // Player2 above it

	grid := b.Grid()
	require.Len(t, grid, Height)
	require.Len(t, grid[0], Width)

	assert.Equal(t, 1, grid[Height-1][0])
	assert.Equal(t, 2, grid[Height-2][0])
	assert.Equal(t, 0, grid[0][0])
}

func TestStringRendering(t *testing.T) {
	b := NewBoard()
	b.MakeMove(0)
	b.MakeMove(1)

	s := b.String()
	assert.Contains(t, s, "x o . . . . .")
	assert.Contains(t, s, "1 2 3 4 5 6 7")
}
