package board

import (
	"strings"
	"testing"

	"termchess/internal/core"
	"termchess/internal/notation"
)

// sq converts a coordinate, failing the test on malformed input
func sq(t *testing.T, coord string) int {
	t.Helper()
	i, err := notation.ToIndex(coord)
	if err != nil {
		t.Fatalf("bad coordinate %q: %v", coord, err)
	}
	return i
}

func mustFEN(t *testing.T, fen string) *Position {
	t.Helper()
	pos, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return pos
}

func TestNewBoardLayout(t *testing.T) {
	b := New()

	checks := map[string]core.Piece{
		"a1": core.NewPiece(core.KindRook, core.ColorWhite),
		"e1": core.NewPiece(core.KindKing, core.ColorWhite),
		"d1": core.NewPiece(core.KindQueen, core.ColorWhite),
		"e2": core.NewPiece(core.KindPawn, core.ColorWhite),
		"e7": core.NewPiece(core.KindPawn, core.ColorBlack),
		"d8": core.NewPiece(core.KindQueen, core.ColorBlack),
		"e8": core.NewPiece(core.KindKing, core.ColorBlack),
		"e4": core.Empty,
	}
	for coord, want := range checks {
		if got := b.At(sq(t, coord)); got != want {
			t.Fatalf("At(%s) = %+v, want %+v", coord, got, want)
		}
	}

	if !b.Equal(mustFEN(t, StartingFEN).Board) {
		t.Fatalf("New() differs from starting FEN")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := New()
	c := b.Clone()
	if _, outcome := c.ApplyMove(core.ColorWhite, sq(t, "e2"), sq(t, "e4"), nil); outcome != core.OutcomeMoved {
		t.Fatalf("clone move outcome = %v", outcome)
	}
	if b.At(sq(t, "e4")) != core.Empty || b.At(sq(t, "e2")).Kind != core.KindPawn {
		t.Fatalf("original board changed after moving on clone")
	}
}

func TestAtOffBoard(t *testing.T) {
	b := New()
	if !b.At(-1).IsEmpty() || !b.At(64).IsEmpty() {
		t.Fatalf("off-board squares should read as empty")
	}
	if err := b.Put(64, core.NewPiece(core.KindPawn, core.ColorWhite)); err == nil {
		t.Fatalf("Put off board should fail")
	}
}

func TestToASCII(t *testing.T) {
	lines := strings.Split(New().ToASCII(), "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 lines, got %d", len(lines))
	}
	if lines[1] != "8 r n b q k b n r  8" {
		t.Fatalf("rank 8 = %q", lines[1])
	}
	if lines[8] != "1 R N B Q K B N R  1" {
		t.Fatalf("rank 1 = %q", lines[8])
	}
	if lines[4] != "5 . . . . . . . .  5" {
		t.Fatalf("rank 5 = %q", lines[4])
	}
}
