package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SaveFilePrefix names save files as saved_chess_game_<id>
const SaveFilePrefix = "saved_chess_game_"

// SaveDir keeps one plain-text file per save slot
type SaveDir struct {
	dir string
}

// NewSaveDir creates dir if needed
func NewSaveDir(dir string) (*SaveDir, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create save directory: %w", err)
	}
	return &SaveDir{dir: dir}, nil
}

func (d *SaveDir) path(saveID string) (string, error) {
	if saveID == "" || strings.ContainsAny(saveID, `/\`) || saveID == "." || saveID == ".." {
		return "", fmt.Errorf("invalid save id %q", saveID)
	}
	return filepath.Join(d.dir, SaveFilePrefix+saveID), nil
}

// PutSave writes the slot, replacing any previous content
func (d *SaveDir) PutSave(record SaveRecord) error {
	p, err := d.path(record.SaveID)
	if err != nil {
		return err
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, []byte(record.Body), 0o644); err != nil {
		return fmt.Errorf("failed to write save %s: %w", record.SaveID, err)
	}
	if err := os.Rename(tmp, p); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write save %s: %w", record.SaveID, err)
	}
	return nil
}

// GetSave reads the slot. Side and PlyCount are left for the caller to derive from Body.
func (d *SaveDir) GetSave(saveID string) (SaveRecord, error) {
	p, err := d.path(saveID)
	if err != nil {
		return SaveRecord{}, err
	}
	body, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return SaveRecord{}, fmt.Errorf("%w: %s", ErrSaveNotFound, saveID)
	}
	if err != nil {
		return SaveRecord{}, fmt.Errorf("failed to read save %s: %w", saveID, err)
	}
	r := SaveRecord{SaveID: saveID, Body: string(body)}
	if info, err := os.Stat(p); err == nil {
		r.CreatedAt = info.ModTime().UTC()
	}
	return r, nil
}

// ListSaves returns the slots found in the directory, newest first
func (d *SaveDir) ListSaves() ([]SaveRecord, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list saves: %w", err)
	}

	var saves []SaveRecord
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, SaveFilePrefix) || strings.HasSuffix(name, ".tmp") {
			continue
		}
		r := SaveRecord{SaveID: strings.TrimPrefix(name, SaveFilePrefix)}
		if info, err := e.Info(); err == nil {
			r.CreatedAt = info.ModTime().UTC()
		}
		saves = append(saves, r)
	}
	sort.Slice(saves, func(i, j int) bool { return saves[i].CreatedAt.After(saves[j].CreatedAt) })
	return saves, nil
}
