// Package http serves the game service over a fiber REST API with a
// websocket state stream.
package http

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"termchess/internal/core"
	"termchess/internal/processor"
	"termchess/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
)

const rateLimitRate = 10 // req/sec

// HTTPHandler handles HTTP requests and routes them to the processor
type HTTPHandler struct {
	proc *processor.Processor
	svc  *service.Service
}

func NewHTTPHandler(proc *processor.Processor, svc *service.Service) *HTTPHandler {
	return &HTTPHandler{proc: proc, svc: svc}
}

func NewFiberApp(proc *processor.Processor, svc *service.Service, devMode bool) *fiber.App {
	h := NewHTTPHandler(proc, svc)

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  60 * time.Second,
	})

	// Global middleware (order matters)
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Health check (no rate limit)
	app.Get("/health", h.Health)

	api := app.Group("/api/v1")

	maxReq := rateLimitRate
	if devMode {
		maxReq = rateLimitRate * 2
	}
	api.Use(limiter.New(limiter.Config{
		Max:        maxReq,
		Expiration: 1 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			if xff := c.Get("X-Forwarded-For"); xff != "" {
				if idx := strings.Index(xff, ","); idx != -1 {
					return strings.TrimSpace(xff[:idx])
				}
				return xff
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(core.ErrorResponse{
				Error:   "rate limit exceeded",
				Code:    core.ErrRateLimitExceeded,
				Details: fmt.Sprintf("%d requests per second allowed", maxReq),
			})
		},
	}))

	api.Use(contentTypeValidator)
	api.Use(validationMiddleware)

	validateToken := svc.ValidateToken

	api.Post("/games", h.CreateGame)
	api.Get("/games/:gameId", h.GetGame)
	api.Delete("/games/:gameId", h.DeleteGame)
	api.Post("/games/:gameId/moves", OptionalAuth(validateToken), h.MakeMove)
	api.Post("/games/:gameId/undo", h.UndoMove)
	api.Get("/games/:gameId/board", h.GetBoard)
	api.Post("/games/:gameId/seats", h.ClaimSeat)
	api.Post("/games/:gameId/save", h.SaveGame)
	api.Get("/games/:gameId/pgn", h.ExportPGN)
	api.Get("/games/:gameId/ws", h.streamUpgrade, h.Stream())
	api.Get("/saves", h.ListSaves)
	api.Post("/saves/:saveId/load", h.LoadSave)

	return app
}

// contentTypeValidator ensures POST requests carry application/json
func contentTypeValidator(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		contentType := c.Get("Content-Type")
		if contentType != "application/json" && contentType != "" {
			return c.Status(fiber.StatusUnsupportedMediaType).JSON(core.ErrorResponse{
				Error:   "unsupported media type",
				Code:    core.ErrInvalidContent,
				Details: "Content-Type must be application/json",
			})
		}
	}
	return c.Next()
}

// customErrorHandler provides consistent error responses
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	response := core.ErrorResponse{
		Error: "internal server error",
		Code:  core.ErrInternalError,
	}

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		response.Error = e.Message

		switch code {
		case fiber.StatusNotFound:
			response.Code = core.ErrGameNotFound
		case fiber.StatusBadRequest, fiber.StatusUpgradeRequired:
			response.Code = core.ErrInvalidRequest
		case fiber.StatusTooManyRequests:
			response.Code = core.ErrRateLimitExceeded
		}
	}

	return c.Status(code).JSON(response)
}

// statusFor maps an API error code to an HTTP status
func statusFor(code string) int {
	switch code {
	case core.ErrGameNotFound, core.ErrSaveNotFound:
		return fiber.StatusNotFound
	case core.ErrUnauthorized:
		return fiber.StatusForbidden
	case core.ErrSeatTaken:
		return fiber.StatusConflict
	case core.ErrStorageDisabled:
		return fiber.StatusServiceUnavailable
	case core.ErrInternalError:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusBadRequest
	}
}

// respond writes a processor response. Unsuccessful moves with game data
// still send the error body; the unchanged game is available via GET.
func respond(c *fiber.Ctx, resp processor.ProcessorResponse, okStatus int) error {
	if !resp.Success {
		return c.Status(statusFor(resp.Error.Code)).JSON(resp.Error)
	}
	if resp.Data == nil {
		return c.SendStatus(okStatus)
	}
	return c.Status(okStatus).JSON(resp.Data)
}

func badGameID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
		Error:   "invalid game ID format",
		Code:    core.ErrInvalidRequest,
		Details: "game ID must be a valid UUID",
	})
}

// validatedBody returns the body parsed by validationMiddleware
func validatedBody[T any](c *fiber.Ctx) (*T, error) {
	validated, ok := c.Locals("validated").(bool)
	if !ok || !validated {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "validation bypass detected")
	}
	body, ok := c.Locals("validatedBody").(*T)
	if !ok || body == nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "validation data missing")
	}
	return body, nil
}

// Health check endpoint with storage status
func (h *HTTPHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"time":    time.Now().Unix(),
		"storage": h.svc.GetStorageHealth(),
	})
}

// CreateGame starts a game from the standard position or a FEN
func (h *HTTPHandler) CreateGame(c *fiber.Ctx) error {
	req, err := validatedBody[core.CreateGameRequest](c)
	if err != nil {
		return err
	}
	return respond(c, h.proc.Execute(processor.NewCreateGameCommand(*req)), fiber.StatusCreated)
}

// GetGame returns the game. With wait=true and moveCount equal to the
// current ply count it blocks until the game changes or the wait times out.
func (h *HTTPHandler) GetGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return badGameID(c)
	}

	if c.Query("wait", "false") != "true" {
		return respond(c, h.proc.Execute(processor.NewGetGameCommand(gameID)), fiber.StatusOK)
	}

	moveCount, err := strconv.Atoi(c.Query("moveCount", "-1"))
	if err != nil {
		moveCount = -1
	}

	v, err := h.svc.GetGame(gameID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(core.ErrorResponse{
			Error: "game not found",
			Code:  core.ErrGameNotFound,
		})
	}

	if moveCount == v.Plies() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		<-h.svc.RegisterWait(gameID, moveCount, ctx)
	}

	return respond(c, h.proc.Execute(processor.NewGetGameCommand(gameID)), fiber.StatusOK)
}

// MakeMove submits a move in coordinate notation
func (h *HTTPHandler) MakeMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return badGameID(c)
	}
	req, err := validatedBody[core.MoveRequest](c)
	if err != nil {
		return err
	}

	token, _ := c.Locals("seatToken").(string)
	resp := h.proc.Execute(processor.NewMakeMoveCommand(gameID, token, *req))
	return respond(c, resp, fiber.StatusOK)
}

// UndoMove reverts one or more plies
func (h *HTTPHandler) UndoMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return badGameID(c)
	}
	req, err := validatedBody[core.UndoRequest](c)
	if err != nil {
		return err
	}
	return respond(c, h.proc.Execute(processor.NewUndoMoveCommand(gameID, *req)), fiber.StatusOK)
}

// DeleteGame ends and cleans up a game
func (h *HTTPHandler) DeleteGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return badGameID(c)
	}
	return respond(c, h.proc.Execute(processor.NewDeleteGameCommand(gameID)), fiber.StatusNoContent)
}

// GetBoard returns the ASCII board and FEN
func (h *HTTPHandler) GetBoard(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return badGameID(c)
	}
	return respond(c, h.proc.Execute(processor.NewGetBoardCommand(gameID)), fiber.StatusOK)
}

// ClaimSeat reserves a color and returns its bearer token
func (h *HTTPHandler) ClaimSeat(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return badGameID(c)
	}
	req, err := validatedBody[core.SeatRequest](c)
	if err != nil {
		return err
	}
	return respond(c, h.proc.Execute(processor.NewClaimSeatCommand(gameID, *req)), fiber.StatusCreated)
}

// SaveGame writes the game to a save slot
func (h *HTTPHandler) SaveGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return badGameID(c)
	}
	req, err := validatedBody[core.SaveRequest](c)
	if err != nil {
		return err
	}
	return respond(c, h.proc.Execute(processor.NewSaveGameCommand(gameID, *req)), fiber.StatusCreated)
}

// LoadSave replays a save slot into a new game
func (h *HTTPHandler) LoadSave(c *fiber.Ctx) error {
	saveID := c.Params("saveId")
	if !saveIDPattern.MatchString(saveID) {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid save ID format",
			Code:    core.ErrInvalidRequest,
			Details: "save ID must be 1-64 letters, digits, '-' or '_'",
		})
	}
	return respond(c, h.proc.Execute(processor.NewLoadSaveCommand(saveID)), fiber.StatusCreated)
}

// ListSaves lists the save slots
func (h *HTTPHandler) ListSaves(c *fiber.Ctx) error {
	saves, err := h.svc.ListSaves()
	if err != nil {
		code := processor.ErrorCode(err)
		return c.Status(statusFor(code)).JSON(core.ErrorResponse{
			Error:   "cannot list saves",
			Code:    code,
			Details: err.Error(),
		})
	}

	out := make([]core.SaveInfo, 0, len(saves))
	for _, s := range saves {
		out = append(out, core.SaveInfo{
			SaveID:    s.SaveID,
			Side:      s.Side,
			Plies:     s.PlyCount,
			CreatedAt: s.CreatedAt,
		})
	}
	return c.JSON(out)
}

// ExportPGN returns the game as PGN
func (h *HTTPHandler) ExportPGN(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return badGameID(c)
	}
	return respond(c, h.proc.Execute(processor.NewExportPGNCommand(gameID)), fiber.StatusOK)
}

func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
