package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"fourline/bot"
	"fourline/game"
	"fourline/models"
)

// ConnectionManagerInterface is the outbound side of the websocket layer.
type ConnectionManagerInterface interface {
	SendMessage(userID int64, message models.ServerMessage) error
}

const reconnectWindow = 30 * time.Second

// GameSession is one running game between two users, or one user and
// the bot. The board is the engine's bitboard; the session only adds
// turn ownership, lifecycle, and messaging on top of it.
type GameSession struct {
	GameID          string
	Player1ID       int64
	Player1Username string
	Player2ID       *int64 // nil for bot games
	Player2Username string

	Board  *game.Board
	Status models.GameStatus
	Winner game.Token
	Reason string

	CreatedAt  time.Time
	FinishedAt time.Time

	botPlayer      game.Player
	disconnected   map[int64]bool
	reconnectTimer *time.Timer
	onFinished     func(*GameSession)
	mu             sync.Mutex
}

func (gs *GameSession) IsBot() bool {
	return gs.Player2Username == models.BotUsername
}

func (gs *GameSession) tokenFor(userID int64) (game.Token, bool) {
	if userID == gs.Player1ID {
		return game.Player1, true
	}
	if gs.Player2ID != nil && userID == *gs.Player2ID {
		return game.Player2, true
	}
	return game.NoToken, false
}

func (gs *GameSession) usernameFor(token game.Token) string {
	if token == game.Player1 {
		return gs.Player1Username
	}
	return gs.Player2Username
}

func (gs *GameSession) opponentID(userID int64) (int64, bool) {
	if userID == gs.Player1ID {
		if gs.Player2ID != nil {
			return *gs.Player2ID, true
		}
		return 0, false
	}
	return gs.Player1ID, true
}

func (gs *GameSession) IsFinished() bool {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.Status != models.StatusActive
}

// newMoveSource maps a requested bot difficulty to a move source.
// "random" plays the one-step lookahead bot; everything else selects a
// search depth.
func newMoveSource(difficulty string) game.Player {
	if difficulty == "random" {
		return bot.NewEasyPlayer()
	}
	return bot.NewAIPlayer(bot.ParseDifficulty(difficulty))
}

func NewGameSession(player1ID int64, player1Username string, player2ID *int64, player2Username, botDifficulty string,
	onFinished func(*GameSession), conn ConnectionManagerInterface) *GameSession {

	gs := &GameSession{
		GameID:          uuid.NewString(),
		Player1ID:       player1ID,
		Player1Username: player1Username,
		Player2ID:       player2ID,
		Player2Username: player2Username,
		Board:           game.NewBoard(),
		Status:          models.StatusActive,
		CreatedAt:       time.Now(),
		disconnected:    make(map[int64]bool),
		onFinished:      onFinished,
	}

	if gs.IsBot() {
		gs.botPlayer = newMoveSource(botDifficulty)
	}

	conn.SendMessage(player1ID, models.ServerMessage{
		Type:        "game_start",
		GameID:      gs.GameID,
		Opponent:    player2Username,
		YourPlayer:  int(game.Player1),
		CurrentTurn: int(gs.Board.CurrentPlayer()),
	})
	if player2ID != nil {
		conn.SendMessage(*player2ID, models.ServerMessage{
			Type:        "game_start",
			GameID:      gs.GameID,
			Opponent:    player1Username,
			YourPlayer:  int(game.Player2),
			CurrentTurn: int(gs.Board.CurrentPlayer()),
		})
	}

	return gs
}

func (gs *GameSession) broadcast(conn ConnectionManagerInterface, message models.ServerMessage) {
	conn.SendMessage(gs.Player1ID, message)
	if gs.Player2ID != nil {
		conn.SendMessage(*gs.Player2ID, message)
	}
}

// HandleMove validates and applies one move for userID, then lets the
// bot reply if it is a bot game.
func (gs *GameSession) HandleMove(userID int64, column int, conn ConnectionManagerInterface) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	token, ok := gs.tokenFor(userID)
	if !ok {
		return models.ErrNotInGame
	}
	if gs.Status != models.StatusActive {
		return models.ErrGameOver
	}
	if gs.Board.CurrentPlayer() != token {
		return models.ErrNotYourTurn
	}
	if column < 0 || column >= game.Width {
		return models.ErrInvalidMove
	}
	if !gs.Board.HasSpace(column) {
		return models.ErrColumnFull
	}

	if done := gs.applyMove(column, conn); done {
		return nil
	}

	if gs.IsBot() && gs.Board.CurrentPlayer() == game.Player2 {
		botColumn := gs.botPlayer.DecideMove(gs.Board.Clone(), game.Player2)
		gs.applyMove(botColumn, conn)
	}

	return nil
}

// applyMove plays a legal column for the side to move, notifies both
// players, and reports whether the game ended. Caller holds the lock.
func (gs *GameSession) applyMove(column int, conn ConnectionManagerInterface) bool {
	token := gs.Board.CurrentPlayer()
	row := game.Height - 1 - gs.Board.ColumnHeight(column) // top-first, matching Grid
	gs.Board.MakeMove(column)

	if winner := gs.Board.Winner(); winner != game.NoToken {
		gs.finish(winner, gs.usernameFor(winner), "connect_four", conn)
		return true
	}
	if gs.Board.IsFull() {
		gs.finish(game.NoToken, "draw", "draw", conn)
		return true
	}

	gs.broadcast(conn, models.ServerMessage{
		Type:     "move_made",
		Column:   column,
		Row:      row,
		Player:   int(token),
		Board:    gs.Board.Grid(),
		NextTurn: int(gs.Board.CurrentPlayer()),
	})
	return false
}

// finish closes the session and fires the persistence hook.
// Caller holds the lock.
func (gs *GameSession) finish(winner game.Token, winnerName, reason string, conn ConnectionManagerInterface) {
	if gs.Status != models.StatusActive {
		return
	}
	if winner != game.NoToken {
		gs.Status = models.StatusWon
	} else {
		gs.Status = models.StatusDraw
	}
	gs.Winner = winner
	gs.Reason = reason
	gs.FinishedAt = time.Now()

	if gs.reconnectTimer != nil {
		gs.reconnectTimer.Stop()
		gs.reconnectTimer = nil
	}

	gs.broadcast(conn, models.ServerMessage{
		Type:   "game_over",
		GameID: gs.GameID,
		Winner: winnerName,
		Reason: reason,
		Board:  gs.Board.Grid(),
	})

	if gs.onFinished != nil {
		gs.onFinished(gs)
	}
}

// HandleDisconnect marks the player as gone and starts the forfeit timer.
func (gs *GameSession) HandleDisconnect(userID int64, conn ConnectionManagerInterface) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.Status != models.StatusActive {
		return
	}

	gs.disconnected[userID] = true

	gs.reconnectTimer = time.AfterFunc(reconnectWindow, func() {
		gs.handleReconnectTimeout(userID, conn)
	})

	if opponentID, ok := gs.opponentID(userID); ok {
		conn.SendMessage(opponentID, models.ServerMessage{
			Type:    "opponent_disconnected",
			Message: "Your opponent has disconnected. Waiting for reconnection...",
		})
	}
}

func (gs *GameSession) handleReconnectTimeout(userID int64, conn ConnectionManagerInterface) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if !gs.disconnected[userID] || gs.Status != models.StatusActive {
		return
	}

	token, _ := gs.tokenFor(userID)
	winner := token.Opponent()
	log.Info().Str("game_id", gs.GameID).Int64("user_id", userID).
		Msg("reconnect window expired, forfeiting game")
	gs.finish(winner, gs.usernameFor(winner), "opponent_disconnected", conn)
}

// HandleReconnect restores a disconnected player into the session.
func (gs *GameSession) HandleReconnect(userID int64, conn ConnectionManagerInterface) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if !gs.disconnected[userID] {
		return models.Error("player was not disconnected")
	}
	delete(gs.disconnected, userID)

	if gs.reconnectTimer != nil {
		gs.reconnectTimer.Stop()
		gs.reconnectTimer = nil
	}

	token, _ := gs.tokenFor(userID)
	opponentName := gs.Player1Username
	if token == game.Player1 {
		opponentName = gs.Player2Username
	}

	conn.SendMessage(userID, models.ServerMessage{
		Type:        "game_start",
		GameID:      gs.GameID,
		Opponent:    opponentName,
		YourPlayer:  int(token),
		CurrentTurn: int(gs.Board.CurrentPlayer()),
		Board:       gs.Board.Grid(),
	})
	if opponentID, ok := gs.opponentID(userID); ok {
		conn.SendMessage(opponentID, models.ServerMessage{
			Type:    "opponent_reconnected",
			Message: "Your opponent has reconnected. Resuming the game.",
		})
	}
	return nil
}

// TerminateByAbandonment ends the game with the abandoning player losing,
// e.g. when they queue for a new game mid-match.
func (gs *GameSession) TerminateByAbandonment(userID int64, conn ConnectionManagerInterface) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.Status != models.StatusActive {
		return
	}

	token, ok := gs.tokenFor(userID)
	if !ok {
		return
	}
	winner := token.Opponent()
	gs.finish(winner, gs.usernameFor(winner), "abandoned", conn)
}
