package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"fourline/config"
	"fourline/db"
)

// Leaderboard serves the top players by wins, cached in Redis for a few
// seconds to keep repeated loads off the database.
func Leaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ctx := r.Context()
	if stats, ok := db.GetCachedLeaderboard(ctx); ok {
		writeJSON(w, http.StatusOK, stats)
		return
	}

	limit := config.GetEnvAsInt("LEADERBOARD_LIMIT", 10)
	stats, err := db.GetLeaderboard(limit)
	if err != nil {
		log.Error().Err(err).Msg("leaderboard query failed")
		writeJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if stats == nil {
		stats = []db.PlayerStats{}
	}

	db.CacheLeaderboard(ctx, stats)
	writeJSON(w, http.StatusOK, stats)
}
