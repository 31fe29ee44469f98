package bot

import "fourline/game"

// scoreInf bounds the alpha-beta window. Comfortably outside every
// reachable score, and negating it cannot overflow an int.
const scoreInf = 1 << 30

// negamax searches the position to the given depth and returns its value
// from side's point of view. The caller negates the result when combining
// it one level up, so a single code path serves both players.
//
// The board is mutated in place while descending and is restored to its
// entry state before returning on every path, including cutoffs.
func negamax(tt *transpositionTable, b *game.Board, depth, alpha, beta int, side game.Token) int {
	alphaOrig := alpha

	code := b.PositionCode()
	if entry, ok := tt.lookup(code, depth); ok {
		switch entry.Flag {
		case ttExact:
			return entry.Value
		case ttLower:
			alpha = max(alpha, entry.Value)
		case ttUpper:
			beta = min(beta, entry.Value)
		}
		if alpha >= beta {
			return entry.Value
		}
	}

	winner := b.Winner()
	isFull := b.IsFull()
	if depth == 0 || winner != game.NoToken || isFull {
		return evaluate(b, side, winner, isFull)
	}

	value := -scoreInf
	for column := range b.LegalMoves() {
		result := b.WithMove(column, func() int {
			return -negamax(tt, b, depth-1, -beta, -alpha, side.Opponent())
		})

		value = max(value, result)
		alpha = max(alpha, value)
		if alpha >= beta {
			break // beta cutoff
		}
	}

	entry := ttEntry{Depth: depth, Value: value}
	switch {
	case value <= alphaOrig:
		entry.Flag = ttUpper
	case value >= beta:
		entry.Flag = ttLower
	default:
		entry.Flag = ttExact
	}
	tt.store(code, entry)

	return value
}
