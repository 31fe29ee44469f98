package models

// BotUsername is the reserved name games against the computer run under.
const BotUsername = "BOT"

// GameStatus tracks a session's lifecycle.
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// Error is a sentinel error type for expected negative outcomes.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidMove Error = "invalid move"
	ErrColumnFull  Error = "column is full"
	ErrNotYourTurn Error = "not your turn"
	ErrGameOver    Error = "game already finished"
	ErrNotInGame   Error = "player not in this game"
)
