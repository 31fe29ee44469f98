package bot

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fourline/game"
)

func playMoves(t *testing.T, moves ...int) *game.Board {
	t.Helper()
	b := game.NewBoard()
	for _, column := range moves {
		require.True(t, b.IsLegal(column))
		b.MakeMove(column)
	}
	return b
}

func randomPosition(rng *rand.Rand, plies int) *game.Board {
	b := game.NewBoard()
	for i := 0; i < plies && b.Winner() == game.NoToken && !b.IsFull(); i++ {
		var columns []int
		for c := range b.LegalMoves() {
			columns = append(columns, c)
		}
		b.MakeMove(columns[rng.Intn(len(columns))])
	}
	return b
}

func TestEvaluateEmptyBoardIsZero(t *testing.T) {
	b := game.NewBoard()
	assert.Equal(t, 0, evaluate(b, game.Player1, game.NoToken, false))
	assert.Equal(t, 0, evaluate(b, game.Player2, game.NoToken, false))
}

func TestEvaluateTerminalWin(t *testing.T) {
	b := playMoves(t, 0, 1, 0, 1, 0, 1, 0)
	require.Equal(t, game.Player1, b.Winner())

	assert.Equal(t, winScore, evaluate(b, game.Player1, game.Player1, false))
	assert.Equal(t, -winScore, evaluate(b, game.Player2, game.Player1, false))
}

func TestEvaluateFullBoardDrawIsZero(t *testing.T) {
	b := playMoves(t,
		0, 1, 0, 1, 1, 0, 1, 0, 0, 1, 0, 1,
		2, 3, 2, 3, 3, 2, 3, 2, 2, 3, 2, 3,
		4, 5, 4, 5, 5, 4, 5, 4, 4, 5, 4, 5,
		6, 6, 6, 6, 6, 6)
	require.True(t, b.IsFull())
	require.Equal(t, game.NoToken, b.Winner())

	assert.Equal(t, 0, evaluate(b, game.Player1, game.NoToken, true))
	assert.Equal(t, 0, evaluate(b, game.Player2, game.NoToken, true))
}

func TestEvaluateIsAntisymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for trial := 0; trial < 200; trial++ {
		b := randomPosition(rng, rng.Intn(30))
		winner := b.Winner()
		isFull := b.IsFull()

		forP1 := evaluate(b, game.Player1, winner, isFull)
		forP2 := evaluate(b, game.Player2, winner, isFull)
		assert.Equal(t, forP1, -forP2)
	}
}

func TestEvaluateSinglePiece(t *testing.T) {
	// A lone corner piece has three live directions (vertical,
	// horizontal, rising diagonal), each worth cellWeight once.
	corner := playMoves(t, 0)
	assert.Equal(t, 3*cellWeight, evaluate(corner, game.Player1, game.NoToken, false))
	assert.Equal(t, -3*cellWeight, evaluate(corner, game.Player2, game.NoToken, false))

	// A center piece has all four directions live.
	center := playMoves(t, 3)
	assert.Equal(t, 4*cellWeight, evaluate(center, game.Player1, game.NoToken, false))
}

func TestEvaluateBlockedLineIsDropped(t *testing.T) {
	// Player2 at (0,1) kills Player1's horizontal from the corner: the
	// open span shrinks below four and the direction stops scoring.
	b := playMoves(t, 0, 1)
	assert.Equal(t, -cellWeight, evaluate(b, game.Player1, game.NoToken, false))
}

func TestLineLengthsStopsAtOpponent(t *testing.T) {
	b := playMoves(t, 0, 3, 1, 3)

	// Walking right from (0,0): one own token at (0,1), opponent at (0,3).
	current, possible := lineLengths(b, 0, 0, 0, 1, game.Player1)
	assert.Equal(t, 1, current)
	assert.Equal(t, 2, possible)

	// Walking up from (0,0): empty cells to the top edge.
	current, possible = lineLengths(b, 0, 0, 1, 0, game.Player1)
	assert.Equal(t, 0, current)
	assert.Equal(t, game.Height-1, possible)
}

func TestLineLengthsCountsOwnTokensPastGaps(t *testing.T) {
	// Player1 at (0,2) and (0,4) with a gap between them: the walk keeps
	// going over the empty cell and still counts the far token.
	b := playMoves(t, 2, 0, 4)

	current, possible := lineLengths(b, 0, 2, 0, 1, game.Player1)
	assert.Equal(t, 1, current)
	assert.Equal(t, 4, possible)
}
