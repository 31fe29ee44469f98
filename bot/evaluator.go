package bot

import "fourline/game"

const (
	// winScore is the terminal value of a connected four, far above
	// anything the positional heuristic can accumulate.
	winScore = 10000
	// cellWeight scales each cell's line-length contribution.
	cellWeight = 10
)

// lineDirections spans the four line orientations as (rowDelta, colDelta)
// unit steps; the opposite orientations are covered by walking backwards.
var lineDirections = [4][2]int{
	{1, 0},  // vertical
	{1, 1},  // diagonal /
	{0, 1},  // horizontal
	{-1, 1}, // diagonal \
}

// evaluate statically scores a position from side's point of view.
// Terminal states override the heuristic: a decided win is ±winScore and
// a full board with no winner is 0. Otherwise every occupied cell is
// scored for each direction whose open span through the cell could still
// hold four in a row: the cell contributes cellWeight times the number
// of same tokens in that span, added for side's cells and subtracted for
// the opponent's. Swapping side negates the result exactly.
func evaluate(b *game.Board, side game.Token, winner game.Token, isFull bool) int {
	if winner != game.NoToken {
		if winner == side {
			return winScore
		}
		return -winScore
	}
	if isFull {
		return 0
	}

	total := 0
	for column := 0; column < game.Width; column++ {
		for row := 0; row < game.Height; row++ {
			token := b.TokenAt(row, column)
			if token == game.NoToken {
				continue
			}

			for _, dir := range lineDirections {
				fwdCurrent, fwdPossible := lineLengths(b, row, column, dir[0], dir[1], token)
				bwdCurrent, bwdPossible := lineLengths(b, row, column, -dir[0], -dir[1], token)

				currentLen := fwdCurrent + bwdCurrent + 1
				possibleLen := fwdPossible + bwdPossible + 1

				if possibleLen >= 4 {
					score := cellWeight * currentLen
					if side == token {
						total += score
					} else {
						total -= score
					}
				}
			}
		}
	}

	return total
}

// lineLengths walks from (row, column) in the given direction until the
// board edge or an opposing token. It returns how many of side's tokens
// the walk passed and how many cells the open span covers in total.
func lineLengths(b *game.Board, row, column, rowDelta, colDelta int, side game.Token) (current, possible int) {
	for {
		row += rowDelta
		column += colDelta

		if row < 0 || row >= game.Height || column < 0 || column >= game.Width {
			return current, possible
		}

		switch b.TokenAt(row, column) {
		case side:
			current++
		case side.Opponent():
			return current, possible
		}

		possible++
	}
}
