package bot

import (
	"math/rand"
	"time"

	"fourline/game"
)

// AIPlayer picks moves with a depth-limited negamax search. A fresh
// transposition table is built for every decision; nothing is shared
// between moves or games.
type AIPlayer struct {
	depth int
	rng   *rand.Rand
}

func NewAIPlayer(difficulty Difficulty) *AIPlayer {
	return NewAIPlayerWithRand(difficulty, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewAIPlayerWithRand injects the random source used to break ties among
// equally scored root moves, so tests can make decisions deterministic.
func NewAIPlayerWithRand(difficulty Difficulty, rng *rand.Rand) *AIPlayer {
	return &AIPlayer{
		depth: difficulty.Depth(),
		rng:   rng,
	}
}

// DecideMove searches every legal root move and returns the best column.
// Ties on the exact best score are broken uniformly at random. Panics if
// the position has no legal move; the caller must not ask for a move in
// a finished game.
func (p *AIPlayer) DecideMove(board *game.Board, token game.Token) int {
	b := board.Clone()
	tt := newTranspositionTable(p.depth * game.Width)

	var bestMoves [game.Width]int
	numBest := 0
	bestValue := -scoreInf

	for column := range b.LegalMoves() {
		value := b.WithMove(column, func() int {
			return -negamax(tt, b, p.depth, -scoreInf, scoreInf, token.Opponent())
		})

		switch {
		case value > bestValue:
			bestValue = value
			bestMoves[0] = column
			numBest = 1
		case value == bestValue:
			bestMoves[numBest] = column
			numBest++
		}
	}

	switch numBest {
	case 0:
		panic("bot: no legal moves")
	case 1:
		return bestMoves[0]
	default:
		return bestMoves[p.rng.Intn(numBest)]
	}
}
