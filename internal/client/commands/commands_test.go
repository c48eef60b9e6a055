package commands

import (
	"bytes"
	"net"
	"strings"
	"testing"
	"time"

	"termchess/internal/client/api"
	"termchess/internal/client/display"
	chesshttp "termchess/internal/http"
	"termchess/internal/processor"
	"termchess/internal/service"
	"termchess/internal/storage"
)

func newTestSession(t *testing.T) (*Registry, *Session, *bytes.Buffer) {
	t.Helper()
	display.SetPlain(true)

	saves, err := storage.NewSaveDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewSaveDir: %v", err)
	}
	svc := service.New(nil, saves, []byte("test-secret-minimum-32-characters-long"))
	app := chesshttp.NewFiberApp(processor.New(svc), svc, true)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("cannot listen: %v", err)
	}
	go app.Listener(ln)
	t.Cleanup(func() {
		_ = svc.Shutdown(time.Second)
		_ = app.Shutdown()
	})

	out := &bytes.Buffer{}
	s := &Session{Client: api.New("http://"+ln.Addr().String(), out), Out: out}
	return NewRegistry(s), s, out
}

func run(t *testing.T, r *Registry, lines ...string) {
	t.Helper()
	for _, line := range lines {
		if !r.Execute(line) {
			t.Fatalf("%q ended the session", line)
		}
	}
}

func TestPlayAndShow(t *testing.T) {
	r, s, out := newTestSession(t)
	run(t, r, "new", "move e2e4", "m e7e5", "show")

	got := out.String()
	for _, want := range []string{
		"Game created:",
		"Move accepted",
		"History: 1.e2e4 e7e5",
		"Last move: e7e5 by Black",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
	if s.LastMoveCount != 2 {
		t.Fatalf("LastMoveCount = %d, want 2", s.LastMoveCount)
	}
}

func TestRejectedMoveReported(t *testing.T) {
	r, s, out := newTestSession(t)
	run(t, r, "new", "move e2e5")

	if !strings.Contains(out.String(), "Error: 400 illegal move (INVALID_MOVE)") {
		t.Fatalf("missing error:\n%s", out.String())
	}
	if s.LastMoveCount != 0 {
		t.Fatal("rejected move counted")
	}
}

func TestSaveLoadPGN(t *testing.T) {
	r, s, out := newTestSession(t)
	run(t, r, "new", "move e2e4", "move e7e5", "save opening")
	first := s.CurrentGame

	run(t, r, "saves", "load opening", "pgn")
	got := out.String()
	for _, want := range []string{"Saved as: opening", "Loaded opening into game", "1. e4 e5"} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
	if s.CurrentGame == first || s.LastMoveCount != 2 {
		t.Fatalf("load did not switch games: %s, %d plies", s.CurrentGame, s.LastMoveCount)
	}
}

func TestSeatAndDelete(t *testing.T) {
	r, s, out := newTestSession(t)
	run(t, r, "new", "seat b")
	if s.PlayerColor != "b" || s.Client.AuthToken == "" {
		t.Fatalf("seat not recorded: %q", s.PlayerColor)
	}

	run(t, r, "delete")
	if s.CurrentGame != "" {
		t.Fatal("current game kept after delete")
	}
	run(t, r, "show")
	if !strings.Contains(out.String(), "no current game") {
		t.Fatalf("missing no-game error:\n%s", out.String())
	}
}

func TestUnknownAndExit(t *testing.T) {
	r, _, out := newTestSession(t)
	run(t, r, "fly", "help")
	if !strings.Contains(out.String(), "Unknown command: fly") {
		t.Fatalf("missing unknown command:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Save Commands:") {
		t.Fatalf("help missing groups:\n%s", out.String())
	}
	if r.Execute("exit") {
		t.Fatal("exit did not end the session")
	}
}
