package server

import (
	"time"

	"github.com/rs/zerolog/log"
)

// CleanupWorker periodically removes finished sessions so the manager
// does not grow without bound. Clients that want the final state after
// the sweep use the games history instead.
type CleanupWorker struct {
	sessionManager *SessionManager
	interval       time.Duration
	stop           chan struct{}
}

func NewCleanupWorker(sm *SessionManager, interval time.Duration) *CleanupWorker {
	return &CleanupWorker{
		sessionManager: sm,
		interval:       interval,
		stop:           make(chan struct{}),
	}
}

func (w *CleanupWorker) Start() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.sweep()
		case <-w.stop:
			return
		}
	}
}

func (w *CleanupWorker) Stop() {
	close(w.stop)
}

func (w *CleanupWorker) sweep() {
	finished := w.sessionManager.FinishedSessions()
	for _, gameID := range finished {
		if err := w.sessionManager.RemoveSession(gameID); err != nil {
			log.Warn().Err(err).Str("game_id", gameID).Msg("cleanup failed to remove session")
		}
	}
	if len(finished) > 0 {
		log.Info().Int("count", len(finished)).Msg("cleaned up finished sessions")
	}
}
