package game

import (
	"errors"
	"testing"

	"termchess/internal/board"
	"termchess/internal/core"
	"termchess/internal/notation"
)

var scholarsMate = []string{"e2", "e4", "e7", "e5", "f1", "c4", "b8", "c6", "d1", "h5", "g8", "f6", "h5", "f7"}

func play(t *testing.T, g *Game, tokens ...string) Result {
	t.Helper()
	var res Result
	for i := 0; i < len(tokens); i += 2 {
		var err error
		res, err = g.MoveNotation(tokens[i], tokens[i+1])
		if err != nil {
			t.Fatalf("move %s %s: %v", tokens[i], tokens[i+1], err)
		}
		if !res.Outcome.Success() {
			t.Fatalf("move %s %s rejected: %v", tokens[i], tokens[i+1], res.Outcome)
		}
	}
	return res
}

func TestTurnAlternation(t *testing.T) {
	g := New()
	if g.Turn() != core.ColorWhite {
		t.Fatalf("white should move first")
	}

	res, err := g.MoveNotation("e7", "e5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != core.OutcomeWrongColorOrigin {
		t.Fatalf("black moving first: outcome = %v", res.Outcome)
	}
	if g.Turn() != core.ColorWhite || g.Len() != 0 {
		t.Fatalf("rejected move changed the session")
	}

	play(t, g, "e2", "e4")
	if g.Turn() != core.ColorBlack {
		t.Fatalf("turn did not pass to black")
	}
	play(t, g, "e7", "e5")
	if g.Turn() != core.ColorWhite {
		t.Fatalf("turn did not pass back to white")
	}
	if got := g.Moves(); len(got) != 2 || got[0] != "e2e4" || got[1] != "e7e5" {
		t.Fatalf("moves = %v", got)
	}
}

func TestSelfCheckRejected(t *testing.T) {
	g, err := FromFEN("4r1k1/8/8/8/8/8/4B3/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	before := g.Board()

	res, err := g.MoveNotation("e2", "d3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != core.OutcomeIllegalSelfCheck {
		t.Fatalf("pinned bishop: outcome = %v", res.Outcome)
	}
	if !g.Board().Equal(before) {
		t.Fatalf("board not rolled back")
	}
	if g.Turn() != core.ColorWhite || g.Len() != 0 {
		t.Fatalf("self-check changed turn or history")
	}

	// the king itself is free to step aside
	res, _ = g.MoveNotation("e1", "d1")
	if !res.Outcome.Success() {
		t.Fatalf("Kd1 should be legal, got %v", res.Outcome)
	}
}

func TestKingIntoCheckRejected(t *testing.T) {
	g, err := FromFEN("3rk3/8/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	res, _ := g.MoveNotation("e1", "d1")
	if res.Outcome != core.OutcomeIllegalSelfCheck {
		t.Fatalf("outcome = %v", res.Outcome)
	}
}

func TestCheckReported(t *testing.T) {
	g, err := FromFEN("4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	res := play(t, g, "a1", "a8")
	if !res.Check || res.Checkmate {
		t.Fatalf("result = %+v, want check without mate", res)
	}
	if !g.InCheck() || g.State() != core.StateOngoing {
		t.Fatalf("session check=%v state=%v", g.InCheck(), g.State())
	}

	// the checked side must resolve the check
	res, _ = g.MoveNotation("e8", "e7")
	if !res.Outcome.Success() {
		t.Fatalf("Ke7 rejected: %v", res.Outcome)
	}
	if g.InCheck() {
		t.Fatalf("check flag not cleared")
	}
}

func TestScholarsMate(t *testing.T) {
	g := New()
	res := play(t, g, scholarsMate...)
	if !res.Check || !res.Checkmate {
		t.Fatalf("final result = %+v", res)
	}
	if g.State() != core.StateWhiteWins {
		t.Fatalf("state = %v", g.State())
	}
	if res.Outcome != core.OutcomeCaptured {
		t.Fatalf("Qxf7 outcome = %v", res.Outcome)
	}

	if _, err := g.MoveNotation("a7", "a6"); !errors.Is(err, ErrGameOver) {
		t.Fatalf("move after mate err = %v", err)
	}

	moves, err := g.LegalMoves()
	if err != nil || len(moves) != 0 {
		t.Fatalf("legal moves after mate = %v, %v", moves, err)
	}
}

func TestUndo(t *testing.T) {
	g := New()
	if _, err := g.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("undo on empty history err = %v", err)
	}

	fens := []string{g.FEN()}
	for i := 0; i < len(scholarsMate); i += 2 {
		play(t, g, scholarsMate[i], scholarsMate[i+1])
		fens = append(fens, g.FEN())
	}

	rec, err := g.Undo()
	if err != nil {
		t.Fatalf("undo mate: %v", err)
	}
	if rec.UCI() != "h5f7" || rec.Color != core.ColorWhite || !rec.Capture {
		t.Fatalf("undone record = %+v", rec)
	}
	if g.State() != core.StateOngoing || g.Turn() != core.ColorWhite {
		t.Fatalf("after undo state=%v turn=%v", g.State(), g.Turn())
	}

	for i := len(fens) - 2; i >= 0; i-- {
		if g.FEN() != fens[i] {
			t.Fatalf("after undo to ply %d:\n got %s\nwant %s", i, g.FEN(), fens[i])
		}
		if i > 0 {
			if _, err := g.Undo(); err != nil {
				t.Fatalf("undo ply %d: %v", i, err)
			}
		}
	}
	if g.Len() != 0 || !g.Board().Equal(board.New()) {
		t.Fatalf("undo all did not restore the start")
	}
}

func TestUndoRestoresEnPassantFlag(t *testing.T) {
	g := New()
	play(t, g, "e2", "e4", "a7", "a6", "e4", "e5", "d7", "d5")
	play(t, g, "g1", "f3")
	if _, err := g.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	res, _ := g.MoveNotation("e5", "d6")
	if res.Outcome != core.OutcomeCaptured || !res.Move.IsEnPassantCapture {
		t.Fatalf("en passant after undo = %+v", res)
	}
}

func TestUndoMoves(t *testing.T) {
	g := New()
	play(t, g, "e2", "e4", "e7", "e5", "g1", "f3")
	if err := g.UndoMoves(5); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("over-undo err = %v", err)
	}
	if g.Len() != 3 {
		t.Fatalf("failed UndoMoves changed history")
	}
	if err := g.UndoMoves(2); err != nil {
		t.Fatalf("UndoMoves: %v", err)
	}
	if g.Len() != 1 || g.Turn() != core.ColorBlack {
		t.Fatalf("len=%d turn=%v", g.Len(), g.Turn())
	}
}

func TestPromotionChooser(t *testing.T) {
	asked := 0
	g, err := FromFEN("4k3/P7/8/8/8/8/8/4K3 w - - 0 1", WithPromotion(func(c core.Color) core.Kind {
		asked++
		return core.KindKnight
	}))
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}

	a7, _ := notation.ToIndex("a7")
	a8, _ := notation.ToIndex("a8")
	res, err := g.Move(a7, a8)
	if err != nil || !res.Outcome.Success() {
		t.Fatalf("promotion move: %v %v", res.Outcome, err)
	}
	if asked != 1 {
		t.Fatalf("chooser called %d times", asked)
	}
	if g.Board().At(a8).Kind != core.KindKnight {
		t.Fatalf("promoted to %v", g.Board().At(a8).Kind)
	}
	rec := g.Records()[0]
	if rec.Destination() != "a8n" || rec.UCI() != "a7a8n" {
		t.Fatalf("record = %s / %s", rec.Destination(), rec.UCI())
	}
}

func TestMoveWithPromotionOverridesChooser(t *testing.T) {
	g, err := FromFEN("4k3/P7/8/8/8/8/8/4K3 w - - 0 1", WithPromotion(func(core.Color) core.Kind {
		t.Fatalf("chooser should not be consulted")
		return core.KindQueen
	}))
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	res, err := g.MoveNotation("a7", "a8r")
	if err != nil || res.Move.Promotion != core.KindRook {
		t.Fatalf("result = %+v, err = %v", res, err)
	}
}

func TestMalformedCoordinate(t *testing.T) {
	g := New()
	if _, err := g.MoveNotation("e9", "e4"); !errors.Is(err, notation.ErrMalformedCoordinate) {
		t.Fatalf("err = %v", err)
	}
	if _, err := g.MoveNotation("e2", "x4"); !errors.Is(err, notation.ErrMalformedCoordinate) {
		t.Fatalf("err = %v", err)
	}
}

func TestFromFENAlreadyMated(t *testing.T) {
	g, err := FromFEN("R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	if g.State() != core.StateWhiteWins || !g.InCheck() {
		t.Fatalf("state=%v check=%v", g.State(), g.InCheck())
	}
}

func TestFENFullmove(t *testing.T) {
	g := New()
	play(t, g, "e2", "e4")
	if want := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b - e3 0 1"; g.FEN() != want {
		t.Fatalf("FEN = %s", g.FEN())
	}
	play(t, g, "c7", "c5")
	if want := "rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w - c6 0 2"; g.FEN() != want {
		t.Fatalf("FEN = %s", g.FEN())
	}
}
