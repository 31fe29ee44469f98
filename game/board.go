package game

import (
	"fmt"
	"iter"
	"strings"
)

// Bitboard holds one player's pieces, one bit per cell.
//
// Cells are numbered column by column, bottom to top, with one unused
// guard bit above each column (7x6 board shown):
//
//	 .  .  .  .  .  .  .   guard row
//	 5 12 19 26 33 40 47
//	 4 11 18 25 32 39 46
//	 3 10 17 24 31 38 45
//	 2  9 16 23 30 37 44
//	 1  8 15 22 29 36 43
//	 0  7 14 21 28 35 42   bottom
//
// A set bit in the guard row means a column overflowed, so legality is a
// single mask test. Width*(Height+1) must fit in 64 bits: 7*7 = 49.
type Bitboard uint64

const (
	Width     = 7
	Height    = 6
	BoardSize = Width * Height
)

const (
	// bottomMask has one bit set at the base of every column.
	bottomMask Bitboard = ((1 << ((Height + 1) * Width)) - 1) / ((1 << (Height + 1)) - 1)
	// topMask marks the guard row above every column.
	topMask Bitboard = bottomMask << Height
	// boardMask covers every playable cell.
	boardMask Bitboard = bottomMask * ((1 << Height) - 1)
)

// Board is the full game state: both players' bitboards, the next free
// bit-slot per column, and a LIFO move history for undo. The zero value
// is not usable; call NewBoard.
type Board struct {
	players [2]Bitboard
	heights [Width]int
	moves   [BoardSize]int
	ply     int
}

// NewBoard returns an empty board with Player1 to move.
func NewBoard() *Board {
	b := &Board{}
	for c := 0; c < Width; c++ {
		b.heights[c] = c * (Height + 1)
	}
	return b
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// Ply returns the number of moves played so far.
func (b *Board) Ply() int {
	return b.ply
}

// CurrentPlayer returns the token of the player to move.
func (b *Board) CurrentPlayer() Token {
	if b.ply&1 == 0 {
		return Player1
	}
	return Player2
}

// TokenAt returns the token at the given cell, or NoToken if it is empty.
// Row 0 is the bottom row.
func (b *Board) TokenAt(row, column int) Token {
	mask := Bitboard(1) << (row + column*(Height+1))
	switch {
	case b.players[0]&mask != 0:
		return Player1
	case b.players[1]&mask != 0:
		return Player2
	default:
		return NoToken
	}
}

// HasSpace reports whether a move in column would stay below the guard
// row. It panics if column is outside [0, Width).
func (b *Board) HasSpace(column int) bool {
	if column < 0 || column >= Width {
		panic(fmt.Sprintf("game: column out of range [0, %d): %d", Width, column))
	}
	return legalBitboard(b.players[b.ply&1] | 1<<b.heights[column])
}

// IsLegal reports whether a move in column is legal, with bounds checking.
func (b *Board) IsLegal(column int) bool {
	return column >= 0 && column < Width && b.HasSpace(column)
}

// MakeMove drops the current player's token in the given column. Callers
// must check legality first; a move into a full column panics.
func (b *Board) MakeMove(column int) {
	if !b.HasSpace(column) {
		panic(fmt.Sprintf("game: column is full: %d", column))
	}

	b.players[b.ply&1] ^= 1 << b.heights[column]
	b.heights[column]++

	b.moves[b.ply] = column
	b.ply++
}

// UndoMove reverts the most recent move. Undo is strictly LIFO; undoing
// with no moves played panics.
func (b *Board) UndoMove() {
	if b.ply == 0 {
		panic("game: no move to undo")
	}
	b.ply--
	column := b.moves[b.ply]

	b.heights[column]--
	b.players[b.ply&1] ^= 1 << b.heights[column]
}

// WithMove applies a move, runs f, and undoes the move again, so the
// board always returns to the caller's state even if f returns early.
// This is the apply/undo discipline the search walks the tree with.
func (b *Board) WithMove(column int, f func() int) int {
	b.MakeMove(column)
	defer b.UndoMove()
	return f()
}

// LegalMoves yields the playable columns in increasing order. Each range
// over the returned sequence re-reads the board's current state.
func (b *Board) LegalMoves() iter.Seq[int] {
	return func(yield func(int) bool) {
		occupied := b.players[b.ply&1]
		for c := 0; c < Width; c++ {
			if legalBitboard(occupied|1<<b.heights[c]) && !yield(c) {
				return
			}
		}
	}
}

// ColumnHeight returns how many tokens the column holds, which is also
// the row the next drop lands on.
func (b *Board) ColumnHeight(column int) int {
	return b.heights[column] - column*(Height+1)
}

// IsFull reports whether every cell is occupied.
func (b *Board) IsFull() bool {
	return b.players[0]|b.players[1] == boardMask
}

// PositionCode returns a compact fingerprint of the game state: the
// occupied cells plus whose turn it is. Adding bottomMask keeps the
// guard bits set, so a code can never collide with a raw occupancy
// mask. Suitable as a transposition-table key.
func (b *Board) PositionCode() Bitboard {
	return b.players[b.ply&1] + b.players[0] + b.players[1] + bottomMask
}

func legalBitboard(board Bitboard) bool {
	return board&topMask == 0
}

// Grid returns the board as rows of player numbers, top row first, for
// serialization to clients. 0 is an empty cell.
func (b *Board) Grid() [][]int {
	grid := make([][]int, Height)
	for r := 0; r < Height; r++ {
		row := make([]int, Width)
		for c := 0; c < Width; c++ {
			row[c] = int(b.TokenAt(Height-1-r, c))
		}
		grid[r] = row
	}
	return grid
}

// String renders the board top row first with a 1-based column footer.
func (b *Board) String() string {
	var sb strings.Builder
	for row := Height - 1; row >= 0; row-- {
		for column := 0; column < Width; column++ {
			if column > 0 {
				sb.WriteByte(' ')
			}
			if t := b.TokenAt(row, column); t != NoToken {
				sb.WriteString(t.String())
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}

	sb.WriteString(strings.Repeat("-", 2*Width-1))
	sb.WriteByte('\n')
	for i := 1; i <= Width; i++ {
		if i > 1 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d", i)
	}
	return sb.String()
}
