package server

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// SessionManager tracks running sessions by game ID and by player.
// OnGameFinished, when set, is invoked with every session that reaches
// a terminal state (persistence, analytics).
type SessionManager struct {
	OnGameFinished func(*GameSession)

	mu         sync.Mutex
	sessions   map[string]*GameSession // gameID -> session
	userToGame map[int64]string        // userID -> gameID
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions:   make(map[string]*GameSession),
		userToGame: make(map[int64]string),
	}
}

func (sm *SessionManager) CreateSession(player1ID int64, player1Username string, player2ID *int64,
	player2Username, botDifficulty string, conn ConnectionManagerInterface) *GameSession {

	sm.mu.Lock()
	defer sm.mu.Unlock()

	session := NewGameSession(player1ID, player1Username, player2ID, player2Username, botDifficulty,
		sm.OnGameFinished, conn)
	sm.sessions[session.GameID] = session
	sm.userToGame[player1ID] = session.GameID
	if player2ID != nil {
		sm.userToGame[*player2ID] = session.GameID
	}

	log.Info().Str("game_id", session.GameID).
		Str("player1", player1Username).Str("player2", player2Username).
		Msg("session created")
	return session
}

func (sm *SessionManager) GetSessionByUserID(userID int64) (*GameSession, bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	gameID, exists := sm.userToGame[userID]
	if !exists {
		return nil, false
	}
	session, exists := sm.sessions[gameID]
	return session, exists
}

func (sm *SessionManager) GetSessionByGameID(gameID string) (*GameSession, bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	session, exists := sm.sessions[gameID]
	return session, exists
}

func (sm *SessionManager) RemoveSession(gameID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	session, exists := sm.sessions[gameID]
	if !exists {
		return fmt.Errorf("session not found: %s", gameID)
	}

	log.Info().Str("game_id", gameID).Msg("removing session")

	delete(sm.userToGame, session.Player1ID)
	if session.Player2ID != nil {
		delete(sm.userToGame, *session.Player2ID)
	}
	delete(sm.sessions, gameID)
	return nil
}

// HasActiveGame reports whether the user is in an unfinished session.
// A dangling user mapping is cleaned up on the way.
func (sm *SessionManager) HasActiveGame(userID int64) bool {
	sm.mu.Lock()
	gameID, exists := sm.userToGame[userID]
	if !exists {
		sm.mu.Unlock()
		return false
	}
	session, exists := sm.sessions[gameID]
	if !exists {
		delete(sm.userToGame, userID)
		sm.mu.Unlock()
		return false
	}
	sm.mu.Unlock()

	return !session.IsFinished()
}

// FinishedSessions returns the IDs of sessions in a terminal state.
func (sm *SessionManager) FinishedSessions() []string {
	sm.mu.Lock()
	sessions := make([]*GameSession, 0, len(sm.sessions))
	for _, s := range sm.sessions {
		sessions = append(sessions, s)
	}
	sm.mu.Unlock()

	var finished []string
	for _, s := range sessions {
		if s.IsFinished() {
			finished = append(finished, s.GameID)
		}
	}
	return finished
}
