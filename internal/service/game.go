package service

import (
	"fmt"

	"termchess/internal/board"
	"termchess/internal/core"
	"termchess/internal/game"
	"termchess/internal/pgn"
	"termchess/internal/storage"
)

// GameView is a consistent read of a session taken under the service lock
type GameView struct {
	GameID      string
	FEN         string
	Board       string       // ASCII rendering
	Position    *board.Board // private copy
	Turn        core.Color
	State       core.State
	Check       bool
	Moves       []string
	Records     []game.Record
	WhiteSeated bool
	BlackSeated bool
	LastResult  *game.Result
}

// Plies returns the number of accepted plies
func (v GameView) Plies() int {
	return len(v.Moves)
}

func (s *Service) view(id string, sess *session) GameView {
	g := sess.game
	pos := g.Board()
	_, white := sess.seats[core.ColorWhite.String()]
	_, black := sess.seats[core.ColorBlack.String()]
	return GameView{
		GameID:      id,
		FEN:         g.FEN(),
		Board:       pos.ToASCII(),
		Position:    pos,
		Turn:        g.Turn(),
		State:       g.State(),
		Check:       g.InCheck(),
		Moves:       g.Moves(),
		Records:     g.Records(),
		WhiteSeated: white,
		BlackSeated: black,
		LastResult:  g.LastResult(),
	}
}

// CreateGame starts a session from the standard position, or from fen when given
func (s *Service) CreateGame(fen string) (GameView, error) {
	g := game.New()
	if fen != "" {
		var err error
		if g, err = game.FromFEN(fen); err != nil {
			return GameView{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.register(g)
	return s.view(id, s.games[id]), nil
}

// register must be called with s.mu held
func (s *Service) register(g *game.Game) string {
	id := s.generateGameID()
	s.games[id] = &session{
		game:       g,
		seats:      make(map[string]string),
		lastActive: s.now(),
	}

	if s.store != nil {
		s.store.RecordNewGame(storage.GameRecord{
			GameID:       id,
			InitialFEN:   g.InitialFEN(),
			Result:       g.State().String(),
			StartTimeUTC: s.now().UTC(),
		})
	}
	return id
}

// GetGame returns the current view of a session
func (s *Service) GetGame(gameID string) (GameView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.lookup(gameID)
	if err != nil {
		return GameView{}, err
	}
	return s.view(gameID, sess), nil
}

// MakeMove plays from -> to for the side to move. A claimed seat requires its
// token. Rule violations come back in the Result with a nil error.
func (s *Service) MakeMove(gameID, token string, from, to int, choose board.PromotionChooser) (game.Result, GameView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(gameID)
	if err != nil {
		return game.Result{}, GameView{}, err
	}
	if err := s.authorize(gameID, sess, sess.game.Turn(), token); err != nil {
		return game.Result{}, GameView{}, err
	}

	mover := sess.game.Turn()
	res, err := sess.game.MoveWith(from, to, choose)
	if err != nil {
		return res, GameView{}, err
	}
	sess.lastActive = s.now()

	if res.Outcome.Success() {
		s.archiveMove(gameID, sess.game, mover, res)
		s.waiter.NotifyGame(gameID, sess.game.Len())
	}
	return res, s.view(gameID, sess), nil
}

func (s *Service) archiveMove(gameID string, g *game.Game, mover core.Color, res game.Result) {
	if s.store == nil {
		return
	}
	records := g.Records()
	last := records[len(records)-1]
	s.store.RecordMove(storage.MoveRecord{
		GameID:       gameID,
		MoveNumber:   len(records),
		Origin:       last.Origin(),
		Destination:  last.Destination(),
		Outcome:      res.Outcome.String(),
		FENAfterMove: g.FEN(),
		PlayerColor:  mover.String(),
		MoveTimeUTC:  s.now().UTC(),
	})
	if res.Checkmate {
		s.store.RecordResult(gameID, g.State().String(), s.now().UTC())
	}
}

// Undo reverts count plies, all or nothing
func (s *Service) Undo(gameID string, count int) (GameView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(gameID)
	if err != nil {
		return GameView{}, err
	}

	wasOver := sess.game.State().IsOver()
	if err := sess.game.UndoMoves(count); err != nil {
		return GameView{}, err
	}
	sess.lastActive = s.now()

	s.waiter.NotifyGame(gameID, sess.game.Len())

	if s.store != nil {
		s.store.DeleteUndoneMoves(gameID, sess.game.Len())
		if wasOver && !sess.game.State().IsOver() {
			s.store.RecordResult(gameID, sess.game.State().String(), s.now().UTC())
		}
	}

	return s.view(gameID, sess), nil
}

// DeleteGame removes a session and wakes its waiters
func (s *Service) DeleteGame(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookup(gameID); err != nil {
		return err
	}

	s.waiter.RemoveGame(gameID)
	delete(s.games, gameID)
	return nil
}

// ExportPGN renders the session as PGN
func (s *Service) ExportPGN(gameID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.lookup(gameID)
	if err != nil {
		return "", err
	}

	out, err := pgn.Export(sess.game, map[string]string{
		"Event": "Casual game",
		"Site":  fmt.Sprintf("termchess %s", gameID),
		"Date":  sess.lastActive.UTC().Format("2006.01.02"),
	})
	if err != nil {
		return "", fmt.Errorf("pgn export failed: %w", err)
	}
	return out, nil
}
