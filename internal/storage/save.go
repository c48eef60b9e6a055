package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// PutSave stores or replaces a save slot synchronously
func (s *Store) PutSave(record SaveRecord) error {
	query := `INSERT INTO saves (save_id, side, body, ply_count, created_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(save_id) DO UPDATE SET
			side = excluded.side, body = excluded.body,
			ply_count = excluded.ply_count, created_at = excluded.created_at`

	if _, err := s.db.Exec(query, record.SaveID, record.Side, record.Body, record.PlyCount, record.CreatedAt); err != nil {
		return fmt.Errorf("failed to store save %s: %w", record.SaveID, err)
	}
	return nil
}

// GetSave loads a save slot
func (s *Store) GetSave(saveID string) (SaveRecord, error) {
	var r SaveRecord
	err := s.db.QueryRow(`SELECT save_id, side, body, ply_count, created_at FROM saves WHERE save_id = ?`, saveID).
		Scan(&r.SaveID, &r.Side, &r.Body, &r.PlyCount, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return SaveRecord{}, fmt.Errorf("%w: %s", ErrSaveNotFound, saveID)
	}
	if err != nil {
		return SaveRecord{}, fmt.Errorf("failed to load save %s: %w", saveID, err)
	}
	return r, nil
}

// ListSaves returns every save slot, newest first
func (s *Store) ListSaves() ([]SaveRecord, error) {
	rows, err := s.db.Query(`SELECT save_id, side, body, ply_count, created_at FROM saves ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var saves []SaveRecord
	for rows.Next() {
		var r SaveRecord
		if err := rows.Scan(&r.SaveID, &r.Side, &r.Body, &r.PlyCount, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		saves = append(saves, r)
	}
	return saves, rows.Err()
}
