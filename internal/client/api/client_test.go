package api

import (
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"termchess/internal/core"
	chesshttp "termchess/internal/http"
	"termchess/internal/processor"
	"termchess/internal/service"
	"termchess/internal/storage"
)

func newTestServer(t *testing.T) string {
	t.Helper()
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
	return "http://" + ln.Addr().String()
}

func TestClientGameFlow(t *testing.T) {
	c := New(newTestServer(t), io.Discard)

	h, err := c.Health()
	if err != nil || h.Status != "healthy" {
		t.Fatalf("health: %+v %v", h, err)
	}

	g, err := c.CreateGame("")
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	if _, err := c.MakeMove(g.GameID, "e2e4"); err != nil {
		t.Fatalf("MakeMove: %v", err)
	}

	_, err = c.MakeMove(g.GameID, "e2e4")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Code != core.ErrEmptyOrigin {
		t.Fatalf("unexpected error: %+v", apiErr)
	}

	saved, err := c.SaveGame(g.GameID, "opening")
	if err != nil || saved.Body != "b\ne2 e4\n" {
		t.Fatalf("SaveGame: %+v %v", saved, err)
	}
	list, err := c.ListSaves()
	if err != nil || len(list) != 1 || list[0].SaveID != "opening" || list[0].Plies != 1 {
		t.Fatalf("ListSaves: %+v %v", list, err)
	}

	loaded, err := c.LoadSave("opening")
	if err != nil || loaded.GameID == g.GameID || len(loaded.Moves) != 1 {
		t.Fatalf("LoadSave: %+v %v", loaded, err)
	}

	undone, err := c.UndoMoves(loaded.GameID, 1)
	if err != nil || len(undone.Moves) != 0 || undone.Turn != "w" {
		t.Fatalf("UndoMoves: %+v %v", undone, err)
	}
}

func TestClientSeatToken(t *testing.T) {
	base := newTestServer(t)
	owner := New(base, io.Discard)
	other := New(base, io.Discard)

	g, err := owner.CreateGame("")
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	if _, err := owner.ClaimSeat(g.GameID, "w"); err != nil {
		t.Fatalf("ClaimSeat: %v", err)
	}
	if owner.AuthToken == "" {
		t.Fatal("seat token not kept")
	}

	var apiErr *APIError
	if _, err := other.MakeMove(g.GameID, "e2e4"); !errors.As(err, &apiErr) || apiErr.Status != http.StatusForbidden {
		t.Fatalf("unseated move: %v", err)
	}
	if _, err := owner.MakeMove(g.GameID, "e2e4"); err != nil {
		t.Fatalf("seated move: %v", err)
	}
}

func TestStream(t *testing.T) {
	c := New(newTestServer(t), io.Discard)

	g, err := c.CreateGame("")
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}

	stream, err := c.OpenStream(g.GameID)
	if err != nil {
		t.Fatalf("OpenStream: %v", err)
	}
	defer stream.Close()

	next := func() core.StreamMessage {
		t.Helper()
		msg, err := stream.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		return msg
	}

	if msg := next(); msg.Type != core.StreamState || len(msg.Game.Moves) != 0 {
		t.Fatalf("initial message: %+v", msg)
	}

	if _, err := c.MakeMove(g.GameID, "e2e4"); err != nil {
		t.Fatalf("MakeMove: %v", err)
	}
	if msg := next(); msg.Type != core.StreamState || len(msg.Game.Moves) != 1 {
		t.Fatalf("after http move: %+v", msg)
	}

	if err := stream.Move("e7e6", ""); err != nil {
		t.Fatalf("stream move: %v", err)
	}
	if msg := next(); msg.Type != core.StreamState || msg.Game.Turn != "w" || len(msg.Game.Moves) != 2 {
		t.Fatalf("after stream move: %+v", msg)
	}

	if err := stream.Move("a2a5", ""); err != nil {
		t.Fatalf("stream move: %v", err)
	}
	if msg := next(); msg.Type != core.StreamError || msg.Error == nil || msg.Error.Code != core.ErrInvalidMove {
		t.Fatalf("illegal stream move: %+v", msg)
	}
}
