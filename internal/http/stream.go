package http

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"termchess/internal/core"
	"termchess/internal/processor"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// streamUpgrade admits websocket upgrades for existing games only
func (h *HTTPHandler) streamUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return badGameID(c)
	}
	if _, err := h.svc.GetGame(gameID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(core.ErrorResponse{
			Error: "game not found",
			Code:  core.ErrGameNotFound,
		})
	}
	c.Locals("wsGameID", gameID)
	return c.Next()
}

// Stream pushes the game state after every change and accepts moves
func (h *HTTPHandler) Stream() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		gameID, _ := c.Locals("wsGameID").(string)
		s := &stream{conn: c, h: h, gameID: gameID}
		s.run()
	}, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	})
}

type stream struct {
	conn   *websocket.Conn
	h      *HTTPHandler
	gameID string
	mu     sync.Mutex // serializes writes
}

func (s *stream) send(msg core.StreamMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(msg)
}

func (s *stream) run() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go s.readLoop(cancel)

	lastFEN := ""
	for {
		resp := s.h.proc.Execute(processor.NewGetGameCommand(s.gameID))
		if !resp.Success {
			s.send(core.StreamMessage{Type: core.StreamClosed, Error: resp.Error})
			return
		}
		g := resp.Data.(core.GameResponse)
		if g.FEN != lastFEN {
			if err := s.send(core.StreamMessage{Type: core.StreamState, Game: &g}); err != nil {
				return
			}
			lastFEN = g.FEN
		}

		waitCtx, waitCancel := context.WithCancel(ctx)
		select {
		case _, ok := <-s.h.svc.RegisterWait(s.gameID, len(g.Moves), waitCtx):
			waitCancel()
			if !ok {
				s.send(core.StreamMessage{Type: core.StreamClosed})
				return
			}
		case <-ctx.Done():
			waitCancel()
			return
		}
	}
}

// readLoop handles inbound move messages until the connection drops
func (s *stream) readLoop(cancel context.CancelFunc) {
	defer cancel()

	for {
		messageType, data, err := s.conn.ReadMessage()
		if err != nil {
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg core.StreamMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.send(core.StreamMessage{Type: core.StreamError, Error: &core.ErrorResponse{
				Error: "invalid message",
				Code:  core.ErrInvalidRequest,
			}})
			continue
		}
		if msg.Type != core.StreamMove {
			s.send(core.StreamMessage{Type: core.StreamError, Error: &core.ErrorResponse{
				Error:   "unknown message type",
				Code:    core.ErrInvalidRequest,
				Details: msg.Type,
			}})
			continue
		}

		req := core.MoveRequest{Move: msg.Move}
		if err := validate.Struct(&req); err != nil {
			s.send(core.StreamMessage{Type: core.StreamError, Error: &core.ErrorResponse{
				Error:   "validation failed",
				Code:    core.ErrInvalidRequest,
				Details: describe(err),
			}})
			continue
		}

		resp := s.h.proc.Execute(processor.NewMakeMoveCommand(s.gameID, msg.Token, req))
		if !resp.Success {
			if err := s.send(core.StreamMessage{Type: core.StreamError, Error: resp.Error}); err != nil {
				log.Printf("stream %s: write failed: %v", s.gameID, err)
				return
			}
		}
		// successful moves reach this client through the state loop
	}
}
