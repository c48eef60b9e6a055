package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// RecordNewGame asynchronously records a new game
func (s *Store) RecordNewGame(record GameRecord) {
	s.enqueue("game record", func(tx *sql.Tx) error {
		query := `INSERT INTO games (game_id, initial_fen, result, start_time_utc) VALUES (?, ?, ?, ?)`
		_, err := tx.Exec(query, record.GameID, record.InitialFEN, record.Result, record.StartTimeUTC)
		return err
	})
}

// RecordMove asynchronously records a ply
func (s *Store) RecordMove(record MoveRecord) {
	s.enqueue("move record", func(tx *sql.Tx) error {
		query := `INSERT INTO moves (
			game_id, move_number, origin, destination, outcome, fen_after_move, player_color, move_time_utc
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

		_, err := tx.Exec(query,
			record.GameID, record.MoveNumber, record.Origin, record.Destination,
			record.Outcome, record.FENAfterMove, record.PlayerColor, record.MoveTimeUTC,
		)
		return err
	})
}

// RecordResult asynchronously stores the game result. An "ongoing" result clears the end time.
func (s *Store) RecordResult(gameID, result string, at time.Time) {
	s.enqueue("result update", func(tx *sql.Tx) error {
		var end any = at
		if result == "ongoing" {
			end = nil
		}
		_, err := tx.Exec(`UPDATE games SET result = ?, end_time_utc = ? WHERE game_id = ?`, result, end, gameID)
		return err
	})
}

// DeleteUndoneMoves asynchronously deletes plies after an undo
func (s *Store) DeleteUndoneMoves(gameID string, afterMoveNumber int) {
	s.enqueue("undo operation", func(tx *sql.Tx) error {
		_, err := tx.Exec(`DELETE FROM moves WHERE game_id = ? AND move_number > ?`, gameID, afterMoveNumber)
		return err
	})
}

// QueryGames retrieves games with optional filtering, "" or "*" matches all
func (s *Store) QueryGames(gameID, result string) ([]GameRecord, error) {
	query := `SELECT game_id, initial_fen, result, start_time_utc, end_time_utc FROM games WHERE 1=1`

	var args []any
	if gameID != "" && gameID != "*" {
		query += " AND game_id = ?"
		args = append(args, gameID)
	}
	if result != "" && result != "*" {
		query += " AND result = ?"
		args = append(args, result)
	}
	query += " ORDER BY start_time_utc DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		var g GameRecord
		var end sql.NullTime
		if err := rows.Scan(&g.GameID, &g.InitialFEN, &g.Result, &g.StartTimeUTC, &end); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		if end.Valid {
			t := end.Time
			g.EndTimeUTC = &t
		}
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return games, nil
}

// QueryMoves returns the archived plies of a game in order
func (s *Store) QueryMoves(gameID string) ([]MoveRecord, error) {
	rows, err := s.db.Query(`SELECT
		move_id, game_id, move_number, origin, destination, outcome, fen_after_move, player_color, move_time_utc
	FROM moves WHERE game_id = ? ORDER BY move_number`, gameID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		err := rows.Scan(&m.MoveID, &m.GameID, &m.MoveNumber, &m.Origin, &m.Destination,
			&m.Outcome, &m.FENAfterMove, &m.PlayerColor, &m.MoveTimeUTC)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		moves = append(moves, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return moves, nil
}
