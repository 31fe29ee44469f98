package bot

import (
	"math/rand"
	"time"

	"fourline/game"
)

// EasyPlayer is a one-step lookahead opponent. It takes an immediate win
// or blocks the opponent's, and plays a random legal column otherwise.
type EasyPlayer struct {
	rng *rand.Rand
}

func NewEasyPlayer() *EasyPlayer {
	return NewEasyPlayerWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

func NewEasyPlayerWithRand(rng *rand.Rand) *EasyPlayer {
	return &EasyPlayer{rng: rng}
}

func (p *EasyPlayer) DecideMove(board *game.Board, token game.Token) int {
	var columns [game.Width]int
	numLegal := 0
	for column := range board.LegalMoves() {
		columns[numLegal] = column
		numLegal++
	}
	if numLegal == 0 {
		panic("bot: no legal moves")
	}

	// Win if we can.
	for _, column := range columns[:numLegal] {
		if board.IsWinningCell(column, token) {
			return column
		}
	}

	// Block the opponent's win.
	for _, column := range columns[:numLegal] {
		if board.IsWinningCell(column, token.Opponent()) {
			return column
		}
	}

	return columns[p.rng.Intn(numLegal)]
}
