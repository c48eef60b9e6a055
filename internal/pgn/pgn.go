// Package pgn exports sessions as PGN by replaying their moves through
// an independent move generator.
package pgn

import (
	"fmt"
	"time"

	"termchess/internal/game"

	"github.com/notnil/chess"
)

// Export renders g as PGN. Every ply must also be legal for the
// independent generator, so an export doubles as a consistency check.
func Export(g *game.Game, tags map[string]string) (string, error) {
	cg, err := replay(g)
	if err != nil {
		return "", err
	}

	cg.AddTagPair("Date", time.Now().UTC().Format("2006.01.02"))
	cg.AddTagPair("Result", g.State().PGNResult())
	if !g.StandardStart() {
		cg.AddTagPair("SetUp", "1")
		cg.AddTagPair("FEN", g.InitialFEN())
	}
	for k, v := range tags {
		cg.AddTagPair(k, v)
	}

	return cg.String(), nil
}

func replay(g *game.Game) (*chess.Game, error) {
	var opts []func(*chess.Game)
	if !g.StandardStart() {
		fen, err := chess.FEN(g.InitialFEN())
		if err != nil {
			return nil, fmt.Errorf("initial position: %w", err)
		}
		opts = append(opts, fen)
	}

	cg := chess.NewGame(opts...)
	decoder := chess.UCINotation{}
	for i, rec := range g.Records() {
		mv, err := decoder.Decode(cg.Position(), rec.UCI())
		if err != nil {
			return nil, fmt.Errorf("ply %d (%s): %w", i+1, rec.UCI(), err)
		}
		if err := cg.Move(mv); err != nil {
			return nil, fmt.Errorf("ply %d (%s): %w", i+1, rec.UCI(), err)
		}
	}
	return cg, nil
}
