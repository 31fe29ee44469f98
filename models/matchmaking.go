package models

import (
	"sync"
	"time"
)

// Match pairs two queued players, or one player against the bot when the
// queue timed out waiting for an opponent.
type Match struct {
	Player1ID       int64
	Player1Username string
	Player2ID       *int64 // nil for the bot
	Player2Username string
	BotDifficulty   string
}

// MatchmakingQueue pairs players first-come-first-served. A player left
// alone in the queue is matched against the bot after BotFallbackAfter.
type MatchmakingQueue struct {
	BotFallbackAfter time.Duration

	mu             sync.Mutex
	waitingPlayers map[int64]queuedPlayer
	timers         map[int64]*time.Timer
	matchChannel   chan Match
}

type queuedPlayer struct {
	username      string
	botDifficulty string
}

func NewMatchmakingQueue(botFallbackAfter time.Duration) *MatchmakingQueue {
	return &MatchmakingQueue{
		BotFallbackAfter: botFallbackAfter,
		waitingPlayers:   make(map[int64]queuedPlayer),
		timers:           make(map[int64]*time.Timer),
		matchChannel:     make(chan Match, 100),
	}
}

// AddPlayerToQueue enqueues a player. If somebody is already waiting the
// two are matched immediately; otherwise a bot-fallback timer starts.
// botDifficulty is used only if the fallback fires. Re-queueing while
// already waiting is a no-op.
func (m *MatchmakingQueue) AddPlayerToQueue(userID int64, username, botDifficulty string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.waitingPlayers[userID]; exists {
		return
	}

	if len(m.waitingPlayers) == 0 {
		m.waitingPlayers[userID] = queuedPlayer{username: username, botDifficulty: botDifficulty}
		m.timers[userID] = time.AfterFunc(m.BotFallbackAfter, func() {
			m.handleTimeout(userID)
		})
		return
	}

	var opponentID int64
	var opponent queuedPlayer
	for uid, qp := range m.waitingPlayers {
		opponentID = uid
		opponent = qp
		break
	}

	delete(m.waitingPlayers, opponentID)
	m.stopAndDeleteTimer(opponentID)

	m.matchChannel <- Match{
		Player1ID:       opponentID,
		Player1Username: opponent.username,
		Player2ID:       &userID,
		Player2Username: username,
	}
}

func (m *MatchmakingQueue) handleTimeout(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	qp, exists := m.waitingPlayers[userID]
	if !exists {
		return
	}

	delete(m.waitingPlayers, userID)
	m.stopAndDeleteTimer(userID)

	m.matchChannel <- Match{
		Player1ID:       userID,
		Player1Username: qp.username,
		Player2ID:       nil,
		Player2Username: BotUsername,
		BotDifficulty:   qp.botDifficulty,
	}
}

func (m *MatchmakingQueue) MatchChannel() <-chan Match {
	return m.matchChannel
}

// RemovePlayer drops a player from the queue, e.g. on disconnect.
func (m *MatchmakingQueue) RemovePlayer(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.waitingPlayers, userID)
	m.stopAndDeleteTimer(userID)
}

func (m *MatchmakingQueue) stopAndDeleteTimer(userID int64) {
	if timer := m.timers[userID]; timer != nil {
		timer.Stop()
	}
	delete(m.timers, userID)
}
