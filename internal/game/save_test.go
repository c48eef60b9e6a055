package game

import (
	"errors"
	"strings"
	"testing"

	"termchess/internal/core"
)

func TestSaveEncode(t *testing.T) {
	g := New()
	play(t, g, "e2", "e4", "e7", "e5", "g1", "f3")

	s, err := g.Save()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	want := "b\ne2 e4\ne7 e5\ng1 f3\n"
	if got := s.String(); got != want {
		t.Fatalf("encoded save:\n%q\nwant\n%q", got, want)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	g := New()
	play(t, g, scholarsMate...)

	s, err := g.Save()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(strings.NewReader(s.String()))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.FEN() != g.FEN() || loaded.State() != core.StateWhiteWins {
		t.Fatalf("loaded game differs: %s %v", loaded.FEN(), loaded.State())
	}
	if len(loaded.Records()) != len(g.Records()) {
		t.Fatalf("record count %d != %d", len(loaded.Records()), len(g.Records()))
	}
}

func TestSaveUnderPromotion(t *testing.T) {
	g := New()
	// the h-pawn captures its way to g8 and takes the knight there
	play(t, g,
		"h2", "h4", "g7", "g5",
		"h4", "g5", "f8", "g7",
		"g5", "g6", "a7", "a6",
		"g6", "h7", "a6", "a5",
	)
	res, err := g.MoveNotation("h7", "g8n")
	if err != nil || res.Move.Promotion != core.KindKnight || !res.Move.IsCapture {
		t.Fatalf("under-promotion: %+v %v", res, err)
	}

	s, err := g.Save()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.Contains(s.String(), "h7 g8n\n") {
		t.Fatalf("save lost promotion suffix:\n%s", s)
	}
	loaded, err := Load(strings.NewReader(s.String()))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !loaded.Board().Equal(g.Board()) {
		t.Fatalf("replayed board differs")
	}
}

func TestSaveFromFENNotReplayable(t *testing.T) {
	g, err := FromFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	if _, err := g.Save(); !errors.Is(err, ErrNotReplayable) {
		t.Fatalf("err = %v", err)
	}
}

func TestLoadCorrupt(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"bad side flag", "x\ne2 e4\n"},
		{"three tokens on a line", "b\ne2 e4 e7\n"},
		{"odd token count", "b\ne2 e4\ne7\n"},
		{"malformed token", "b\ne2 e9\n"},
		{"illegal move", "b\ne2 e5\n"},
		{"black moves first", "w\ne7 e5\n"},
		{"self check", "w\ne2 e4\nf7 f6\nd1 h5\ne8 f7\n"},
		{"side flag mismatch", "w\ne2 e4\n"},
		{"move after mate", "w\ne2 e4\ne7 e5\nf1 c4\nb8 c6\nd1 h5\ng8 f6\nh5 f7\na7 a6\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Load(strings.NewReader(tt.body))
			if !errors.Is(err, ErrCorruptSave) {
				t.Fatalf("err = %v, want ErrCorruptSave", err)
			}
			if g != nil {
				t.Fatalf("corrupt save returned a game")
			}
		})
	}
}

func TestLoadToleratesWhitespace(t *testing.T) {
	g, err := Load(strings.NewReader("\n  b \n e2   e4\n\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if g.Len() != 1 || g.Turn() != core.ColorBlack {
		t.Fatalf("len=%d turn=%v", g.Len(), g.Turn())
	}
}

func TestEmptySave(t *testing.T) {
	g, err := Load(strings.NewReader("w\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if g.Len() != 0 || g.Turn() != core.ColorWhite {
		t.Fatalf("unexpected game state")
	}
}
