package service

import (
	"bytes"
	"fmt"
	"strings"

	"termchess/internal/game"
	"termchess/internal/storage"

	petname "github.com/dustinkirkland/golang-petname"
)

// SaveGame writes the session to a save slot. An empty saveID gets a generated name.
func (s *Service) SaveGame(gameID, saveID string) (storage.SaveRecord, error) {
	if s.saves == nil {
		return storage.SaveRecord{}, ErrSavesDisabled
	}

	s.mu.RLock()
	sess, err := s.lookup(gameID)
	if err != nil {
		s.mu.RUnlock()
		return storage.SaveRecord{}, err
	}
	save, err := sess.game.Save()
	s.mu.RUnlock()
	if err != nil {
		return storage.SaveRecord{}, err
	}

	if saveID == "" {
		saveID = petname.Generate(2, "-")
	}

	var buf bytes.Buffer
	if err := save.Encode(&buf); err != nil {
		return storage.SaveRecord{}, fmt.Errorf("failed to encode save: %w", err)
	}

	record := storage.SaveRecord{
		SaveID:    saveID,
		Side:      save.Side.String(),
		Body:      buf.String(),
		PlyCount:  len(save.Tokens) / 2,
		CreatedAt: s.now().UTC(),
	}
	if err := s.saves.PutSave(record); err != nil {
		return storage.SaveRecord{}, err
	}
	return record, nil
}

// LoadGame replays a save slot into a new session
func (s *Service) LoadGame(saveID string) (GameView, error) {
	if s.saves == nil {
		return GameView{}, ErrSavesDisabled
	}

	record, err := s.saves.GetSave(saveID)
	if err != nil {
		return GameView{}, err
	}

	g, err := game.Load(strings.NewReader(record.Body))
	if err != nil {
		return GameView{}, fmt.Errorf("save %s: %w", saveID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.register(g)
	s.archiveReplay(id, g)
	return s.view(id, s.games[id]), nil
}

// ListSaves returns the available save slots
func (s *Service) ListSaves() ([]storage.SaveRecord, error) {
	if s.saves == nil {
		return nil, ErrSavesDisabled
	}
	return s.saves.ListSaves()
}

// archiveReplay records the plies of a loaded game by playing them again on a scratch game
func (s *Service) archiveReplay(gameID string, g *game.Game) {
	if s.store == nil {
		return
	}
	scratch := game.New()
	for _, rec := range g.Records() {
		res, err := scratch.MoveWithPromotion(rec.From, rec.To, rec.Promotion)
		if err != nil || !res.Outcome.Success() {
			return
		}
		s.archiveMove(gameID, scratch, rec.Color, res)
	}
}
