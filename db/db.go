package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

var DB *sql.DB

// InitDB opens the postgres pool and verifies connectivity.
func InitDB(connStr string, maxOpenConns, maxIdleConns, connMaxLifetimeMin int) error {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return err
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(time.Duration(connMaxLifetimeMin) * time.Minute)

	if err := db.Ping(); err != nil {
		return fmt.Errorf("unable to connect to database: %w", err)
	}

	DB = db
	log.Info().Msg("database connected")
	return nil
}

// EnsureTables creates the schema if it does not exist yet.
func EnsureTables() error {
	_, err := DB.Exec(`
	CREATE TABLE IF NOT EXISTS players (
		id BIGSERIAL PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL DEFAULT '',
		google_id TEXT UNIQUE,
		games_played INT NOT NULL DEFAULT 0,
		games_won INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE TABLE IF NOT EXISTS games (
		game_id TEXT PRIMARY KEY,
		player1_id BIGINT NOT NULL REFERENCES players(id),
		player1_username TEXT NOT NULL,
		player2_id BIGINT REFERENCES players(id),
		player2_username TEXT NOT NULL,
		winner_id BIGINT,
		winner_username TEXT,
		reason TEXT,
		total_moves INT NOT NULL,
		duration_seconds INT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		finished_at TIMESTAMPTZ NOT NULL
	);
	`)
	return err
}

func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
