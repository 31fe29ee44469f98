package game

// Winner returns the token of the player with four in a line, or NoToken
// if nobody has won. A full board with no winner (a draw) also returns
// NoToken; callers distinguish draws with IsFull or LegalMoves.
func (b *Board) Winner() Token {
	if isWin(b.players[0]) {
		return Player1
	}
	if isWin(b.players[1]) {
		return Player2
	}
	return NoToken
}

// IsWinningCell reports whether dropping a token for side in the given
// column would complete four in a row for side, regardless of whose turn
// it is. The column must have space.
func (b *Board) IsWinningCell(column int, side Token) bool {
	idx := 0
	if side == Player2 {
		idx = 1
	}
	return isWin(b.players[idx] | 1<<b.heights[column])
}

// isWin reports whether the bitboard contains four aligned bits in any
// direction. Each test ANDs the board with itself shifted one step
// (pairs) and then the pair mask with itself shifted two steps (pairs of
// pairs), so the whole check is a handful of word operations regardless
// of how full the board is.
func isWin(board Bitboard) bool {
	h := board & (board >> (Height + 1)) // horizontal
	v := board & (board >> 1)            // vertical
	d1 := board & (board >> Height)      // diagonal \
	d2 := board & (board >> (Height + 2)) // diagonal /

	h &= h >> (2 * (Height + 1))
	v &= v >> 2
	d1 &= d1 >> (2 * Height)
	d2 &= d2 >> (2 * (Height + 2))

	return h|v|d1|d2 != 0
}
