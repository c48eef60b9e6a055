package storage

import "time"

// GameRecord represents a row in the games table
type GameRecord struct {
	GameID       string     `db:"game_id"`
	InitialFEN   string     `db:"initial_fen"`
	Result       string     `db:"result"` // "ongoing", "white wins", "black wins"
	StartTimeUTC time.Time  `db:"start_time_utc"`
	EndTimeUTC   *time.Time `db:"end_time_utc"`
}

// MoveRecord represents a row in the moves table
type MoveRecord struct {
	MoveID       int64     `db:"move_id"`
	GameID       string    `db:"game_id"`
	MoveNumber   int       `db:"move_number"` // ply, starting at 1
	Origin       string    `db:"origin"`
	Destination  string    `db:"destination"` // may carry a promotion suffix
	Outcome      string    `db:"outcome"`
	FENAfterMove string    `db:"fen_after_move"`
	PlayerColor  string    `db:"player_color"`
	MoveTimeUTC  time.Time `db:"move_time_utc"`
}

// SaveRecord represents a row in the saves table
type SaveRecord struct {
	SaveID    string    `db:"save_id"`
	Side      string    `db:"side"`
	Body      string    `db:"body"`
	PlyCount  int       `db:"ply_count"`
	CreatedAt time.Time `db:"created_at"`
}

// Schema defines the SQLite database structure
const Schema = `
CREATE TABLE IF NOT EXISTS games (
	game_id TEXT PRIMARY KEY,
	initial_fen TEXT NOT NULL,
	result TEXT NOT NULL DEFAULT 'ongoing',
	start_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	end_time_utc DATETIME
);

CREATE TABLE IF NOT EXISTS moves (
	move_id INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id TEXT NOT NULL,
	move_number INTEGER NOT NULL,
	origin TEXT NOT NULL,
	destination TEXT NOT NULL,
	outcome TEXT NOT NULL,
	fen_after_move TEXT NOT NULL,
	player_color TEXT NOT NULL CHECK(player_color IN ('w', 'b')),
	move_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (game_id) REFERENCES games(game_id) ON DELETE CASCADE,
	UNIQUE(game_id, move_number)
);

CREATE TABLE IF NOT EXISTS saves (
	save_id TEXT PRIMARY KEY,
	side TEXT NOT NULL CHECK(side IN ('w', 'b')),
	body TEXT NOT NULL,
	ply_count INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_moves_game_id ON moves(game_id);
CREATE INDEX IF NOT EXISTS idx_games_result ON games(result);
`
