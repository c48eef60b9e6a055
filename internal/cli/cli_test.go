package cli

import (
	"bytes"
	"strings"
	"testing"

	"termchess/internal/board"
	"termchess/internal/core"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		want  CommandType
		args  int
	}{
		{"", CmdNone, 0},
		{"   ", CmdNone, 0},
		{"new", CmdNew, 0},
		{"N", CmdNew, 0},
		{"resume 8/8/8/8/8/8/8/K6k w", CmdResume, 2},
		{"undo 3", CmdUndo, 1},
		{"view", CmdHistory, 0},
		{"save mygame", CmdSave, 1},
		{"l mygame", CmdLoad, 1},
		{"saves", CmdSaves, 0},
		{"pgn", CmdPGN, 0},
		{"fen", CmdFEN, 0},
		{"?", CmdHelp, 0},
		{"exit", CmdQuit, 0},
		{"e2e4", CmdMove, 1},
		{"e2 e4", CmdMove, 2},
	}

	for _, tt := range tests {
		cmd := ParseCommand(tt.input)
		if cmd.Type != tt.want {
			t.Fatalf("ParseCommand(%q).Type = %d, want %d", tt.input, cmd.Type, tt.want)
		}
		if len(cmd.Args) != tt.args {
			t.Fatalf("ParseCommand(%q) args = %v, want %d", tt.input, cmd.Args, tt.args)
		}
	}
}

func TestOutcomeMessage(t *testing.T) {
	if msg := OutcomeMessage(core.OutcomeMoved); msg != "" {
		t.Fatalf("success message = %q, want empty", msg)
	}
	if msg := OutcomeMessage(core.OutcomeIllegalSelfCheck); msg != "You can't end your turn in check." {
		t.Fatalf("self check message = %q", msg)
	}
	for _, o := range []core.Outcome{
		core.OutcomeSameSquare,
		core.OutcomeEmptyOrigin,
		core.OutcomeWrongColorOrigin,
		core.OutcomeIllegalQuietMove,
		core.OutcomeOwnPieceAtDestination,
		core.OutcomeIllegalCapture,
	} {
		if !strings.HasPrefix(OutcomeMessage(o), "That move is not valid.") {
			t.Fatalf("message for %v = %q", o, OutcomeMessage(o))
		}
	}
}

func TestDisplayBoardPlain(t *testing.T) {
	var out bytes.Buffer
	view := New(NewScannerReader(strings.NewReader(""), &out), &out, true)
	view.DisplayBoard(board.New())

	got := out.String()
	for _, want := range []string{
		"8 r n b q k b n r  8",
		"2 P P P P P P P P  2",
		"4 . . . . . . . .  4",
		"  a b c d e f g h",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("board output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "\033[") {
		t.Fatal("plain board contains escape sequences")
	}
}

func TestSetTheme(t *testing.T) {
	var out bytes.Buffer
	view := New(NewScannerReader(strings.NewReader(""), &out), &out, true)
	if err := view.SetTheme("purple"); err == nil {
		t.Fatal("expected error for unknown theme")
	}
	if err := view.SetTheme(ThemeGreen); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}
	view.DisplayBoard(board.New())
	if !strings.Contains(out.String(), "\033[48;5;22m") {
		t.Fatal("themed board missing background color")
	}
}

func TestPromptPromotion(t *testing.T) {
	tests := []struct {
		input string
		want  core.Kind
	}{
		{"n\n", core.KindKnight},
		{"R\n", core.KindRook},
		{"k\nx\nbishop\nb\n", core.KindBishop},
		{"", core.KindQueen},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		view := New(NewScannerReader(strings.NewReader(tt.input), &out), &out, true)
		if got := view.PromptPromotion(core.ColorWhite); got != tt.want {
			t.Fatalf("PromptPromotion(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
