package models

// ClientMessage is what players send over the websocket. JWT rides on
// every message so connections can be authenticated statelessly.
type ClientMessage struct {
	Type       string `json:"type"`
	JWT        string `json:"jwt"`
	GameID     string `json:"gameId,omitempty"`
	Column     int    `json:"column"`
	Difficulty string `json:"difficulty,omitempty"`
}

// ServerMessage is the single envelope for everything pushed to clients.
type ServerMessage struct {
	Type        string  `json:"type"`
	Message     string  `json:"message,omitempty"`
	GameID      string  `json:"gameId,omitempty"`
	Opponent    string  `json:"opponent,omitempty"`
	YourPlayer  int     `json:"yourPlayer,omitempty"`
	CurrentTurn int     `json:"currentTurn,omitempty"`
	Column      int     `json:"column,omitempty"`
	Row         int     `json:"row,omitempty"`
	Player      int     `json:"player,omitempty"`
	Board       [][]int `json:"board,omitempty"`
	NextTurn    int     `json:"nextTurn,omitempty"`
	Winner      string  `json:"winner,omitempty"`
	Reason      string  `json:"reason,omitempty"`
}
