package game

// Game alternates turns between two move sources on one board until a
// player connects four or the board fills up.
type Game struct {
	board   *Board
	players [2]Player
}

func NewGame(player1, player2 Player) *Game {
	return &Game{
		board:   NewBoard(),
		players: [2]Player{player1, player2},
	}
}

// Board exposes the live board, e.g. for rendering between turns.
func (g *Game) Board() *Board {
	return g.board
}

// Play runs the game to completion and returns the final board and the
// winner's token, or NoToken for a draw.
func (g *Game) Play() (*Board, Token) {
	for {
		token := g.board.CurrentPlayer()
		column := g.players[g.board.Ply()&1].DecideMove(g.board.Clone(), token)
		g.board.MakeMove(column)

		if winner := g.board.Winner(); winner != NoToken {
			return g.board, winner
		}
		if g.board.IsFull() {
			return g.board, NoToken
		}
	}
}
