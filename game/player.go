package game

// Token identifies a player's piece. The zero value means an empty cell.
type Token uint8

const (
	NoToken Token = 0
	Player1 Token = 1
	Player2 Token = 2
)

// Opponent returns the other player's token.
func (t Token) Opponent() Token {
	switch t {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return NoToken
}

func (t Token) String() string {
	switch t {
	case Player1:
		return "x"
	case Player2:
		return "o"
	}
	return "."
}

// Player is a move source. DecideMove receives a snapshot of the board
// and the token the player moves for, and must return a legal column.
// Implementations that mutate the board must work on their own clone.
type Player interface {
	DecideMove(board *Board, token Token) int
}

// ScriptedPlayer replays a fixed move list. Useful for tests and replays.
type ScriptedPlayer struct {
	Moves []int
	next  int
}

func (p *ScriptedPlayer) DecideMove(board *Board, token Token) int {
	if p.next >= len(p.Moves) {
		panic("game: scripted player ran out of moves")
	}
	column := p.Moves[p.next]
	p.next++
	return column
}
