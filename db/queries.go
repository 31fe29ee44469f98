package db

import (
	"database/sql"
	"fmt"
	"time"
)

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	GoogleID     sql.NullString
	GamesPlayed  int
	GamesWon     int
	CreatedAt    time.Time
}

type PlayerStats struct {
	Username    string  `json:"username"`
	GamesPlayed int     `json:"games_played"`
	GamesWon    int     `json:"games_won"`
	WinRate     float64 `json:"win_rate"`
}

// CreateUser creates a new user with a hashed password.
func CreateUser(username, passwordHash string) (int64, error) {
	query := `
	INSERT INTO players (username, password_hash)
	VALUES ($1, $2)
	RETURNING id;
	`
	var userID int64
	err := DB.QueryRow(query, username, passwordHash).Scan(&userID)
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return userID, nil
}

// CreateGoogleUser creates a user authenticated via Google OAuth.
func CreateGoogleUser(username, googleID string) (int64, error) {
	query := `
	INSERT INTO players (username, google_id)
	VALUES ($1, $2)
	RETURNING id;
	`
	var userID int64
	err := DB.QueryRow(query, username, googleID).Scan(&userID)
	if err != nil {
		return 0, fmt.Errorf("failed to create google user: %w", err)
	}
	return userID, nil
}

func scanUser(row *sql.Row) (*User, error) {
	var user User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.GoogleID,
		&user.GamesPlayed,
		&user.GamesWon,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

const userColumns = `id, username, password_hash, google_id, games_played, games_won, created_at`

// GetUserByUsername retrieves a user by username. Returns (nil, nil) if
// no such user exists.
func GetUserByUsername(username string) (*User, error) {
	return scanUser(DB.QueryRow(
		`SELECT `+userColumns+` FROM players WHERE username = $1;`, username))
}

// GetUserByID retrieves a user by ID. Returns (nil, nil) if absent.
func GetUserByID(userID int64) (*User, error) {
	return scanUser(DB.QueryRow(
		`SELECT `+userColumns+` FROM players WHERE id = $1;`, userID))
}

// GetUserByGoogleID retrieves a user by Google account ID. Returns
// (nil, nil) if absent.
func GetUserByGoogleID(googleID string) (*User, error) {
	return scanUser(DB.QueryRow(
		`SELECT `+userColumns+` FROM players WHERE google_id = $1;`, googleID))
}

func updatePlayerStatsTx(tx *sql.Tx, userID int64, won bool) error {
	query := `
	UPDATE players
	SET games_played = games_played + 1,
	    games_won = games_won + CASE WHEN $2 THEN 1 ELSE 0 END
	WHERE id = $1;
	`
	if _, err := tx.Exec(query, userID, won); err != nil {
		return fmt.Errorf("failed to update player stats: %w", err)
	}
	return nil
}

// SaveGame records a finished game and updates both players' stats in
// one transaction. player2ID and winnerID are nil for bot games and
// draws respectively.
func SaveGame(gameID string, player1ID int64, player1Username string, player2ID *int64, player2Username string,
	winnerID *int64, winnerUsername, reason string, totalMoves int, createdAt, finishedAt time.Time) error {

	tx, err := DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	player1Won := winnerID != nil && *winnerID == player1ID
	if err := updatePlayerStatsTx(tx, player1ID, player1Won); err != nil {
		return err
	}

	if player2ID != nil {
		player2Won := winnerID != nil && *winnerID == *player2ID
		if err := updatePlayerStatsTx(tx, *player2ID, player2Won); err != nil {
			return err
		}
	}

	duration := int(finishedAt.Sub(createdAt).Seconds())
	_, err = tx.Exec(`
	INSERT INTO games (game_id, player1_id, player1_username, player2_id, player2_username,
		winner_id, winner_username, reason, total_moves, duration_seconds, created_at, finished_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	ON CONFLICT (game_id) DO NOTHING;
	`, gameID, player1ID, player1Username, player2ID, player2Username,
		winnerID, winnerUsername, reason, totalMoves, duration, createdAt, finishedAt)
	if err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	return tx.Commit()
}

// GetLeaderboard returns the top players by wins.
func GetLeaderboard(limit int) ([]PlayerStats, error) {
	rows, err := DB.Query(`
	SELECT username, games_played, games_won
	FROM players
	WHERE games_played > 0
	ORDER BY games_won DESC, games_played ASC
	LIMIT $1;
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var stats []PlayerStats
	for rows.Next() {
		var s PlayerStats
		if err := rows.Scan(&s.Username, &s.GamesPlayed, &s.GamesWon); err != nil {
			return nil, err
		}
		if s.GamesPlayed > 0 {
			s.WinRate = float64(s.GamesWon) / float64(s.GamesPlayed)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
