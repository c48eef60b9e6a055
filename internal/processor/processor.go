// Package processor turns transport-level commands into service calls and
// maps the results to API responses.
package processor

import (
	"errors"
	"strings"
	"unicode"

	"termchess/internal/board"
	"termchess/internal/core"
	"termchess/internal/game"
	"termchess/internal/notation"
	"termchess/internal/service"
	"termchess/internal/storage"
)

// Processor executes commands against the service
type Processor struct {
	svc *service.Service
}

func New(svc *service.Service) *Processor {
	return &Processor{svc: svc}
}

func (p *Processor) Execute(cmd Command) ProcessorResponse {
	switch cmd.Type {
	case CmdCreateGame:
		return p.handleCreateGame(cmd)
	case CmdGetGame:
		return p.handleGetGame(cmd)
	case CmdMakeMove:
		return p.handleMakeMove(cmd)
	case CmdUndoMove:
		return p.handleUndoMove(cmd)
	case CmdDeleteGame:
		return p.handleDeleteGame(cmd)
	case CmdGetBoard:
		return p.handleGetBoard(cmd)
	case CmdClaimSeat:
		return p.handleClaimSeat(cmd)
	case CmdSaveGame:
		return p.handleSaveGame(cmd)
	case CmdLoadSave:
		return p.handleLoadSave(cmd)
	case CmdExportPGN:
		return p.handleExportPGN(cmd)
	default:
		return p.errorResponse("unknown command", core.ErrInvalidRequest)
	}
}

func hasControl(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) {
			return true
		}
	}
	return false
}

func (p *Processor) handleCreateGame(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.CreateGameRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}

	fen := strings.TrimSpace(args.FEN)
	if hasControl(fen) {
		return p.errorResponse("invalid FEN characters", core.ErrInvalidFEN)
	}

	v, err := p.svc.CreateGame(fen)
	if err != nil {
		return p.failure("failed to create game", err)
	}

	return ProcessorResponse{
		Success: true,
		Data:    buildGameResponse(v),
	}
}

func (p *Processor) handleGetGame(cmd Command) ProcessorResponse {
	v, err := p.svc.GetGame(cmd.GameID)
	if err != nil {
		return p.failure("game not found", err)
	}

	return ProcessorResponse{
		Success: true,
		Data:    buildGameResponse(v),
	}
}

// handleMakeMove applies a move. A rule violation yields an unsuccessful
// response carrying the outcome's code and the unchanged game.
func (p *Processor) handleMakeMove(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.MoveRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}

	move := strings.ToLower(strings.TrimSpace(args.Move))
	if hasControl(move) {
		return p.errorResponse("invalid move format", core.ErrMalformedSquare)
	}
	from, to, promo, err := notation.ParseMove(move)
	if err != nil {
		return p.failure("invalid move format", err)
	}

	var choose board.PromotionChooser
	if promo.IsPromotion() {
		choose = board.PromoteTo(promo)
	}

	res, v, err := p.svc.MakeMove(cmd.GameID, cmd.Token, from, to, choose)
	if err != nil {
		return p.failure("move failed", err)
	}

	if !res.Outcome.Success() {
		current, _ := p.svc.GetGame(cmd.GameID)
		return ProcessorResponse{
			Success: false,
			Data:    buildGameResponse(current),
			Error: &core.ErrorResponse{
				Error:   "illegal move",
				Code:    res.Outcome.Code(),
				Details: res.Outcome.String(),
			},
		}
	}

	return ProcessorResponse{
		Success: true,
		Data:    buildGameResponse(v),
	}
}

func (p *Processor) handleUndoMove(cmd Command) ProcessorResponse {
	args := core.UndoRequest{Count: 1}
	if req, ok := cmd.Args.(core.UndoRequest); ok && req.Count > 0 {
		args = req
	}

	v, err := p.svc.Undo(cmd.GameID, args.Count)
	if err != nil {
		return p.failure("undo failed", err)
	}

	return ProcessorResponse{
		Success: true,
		Data:    buildGameResponse(v),
	}
}

func (p *Processor) handleDeleteGame(cmd Command) ProcessorResponse {
	if err := p.svc.DeleteGame(cmd.GameID); err != nil {
		return p.failure("game not found", err)
	}

	return ProcessorResponse{
		Success: true,
	}
}

func (p *Processor) handleGetBoard(cmd Command) ProcessorResponse {
	v, err := p.svc.GetGame(cmd.GameID)
	if err != nil {
		return p.failure("game not found", err)
	}

	return ProcessorResponse{
		Success: true,
		Data: core.BoardResponse{
			FEN:   v.FEN,
			Board: v.Board,
		},
	}
}

func (p *Processor) handleClaimSeat(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.SeatRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}
	color, err := core.ParseColor(args.Color)
	if err != nil {
		return p.errorResponse(err.Error(), core.ErrInvalidRequest)
	}

	token, err := p.svc.ClaimSeat(cmd.GameID, color)
	if err != nil {
		return p.failure("cannot claim seat", err)
	}

	return ProcessorResponse{
		Success: true,
		Data: core.SeatResponse{
			GameID: cmd.GameID,
			Color:  color.String(),
			Token:  token,
		},
	}
}

func (p *Processor) handleSaveGame(cmd Command) ProcessorResponse {
	args, _ := cmd.Args.(core.SaveRequest)

	rec, err := p.svc.SaveGame(cmd.GameID, args.SaveID)
	if err != nil {
		return p.failure("save failed", err)
	}

	return ProcessorResponse{
		Success: true,
		Data: core.SaveResponse{
			SaveID: rec.SaveID,
			Body:   rec.Body,
		},
	}
}

func (p *Processor) handleLoadSave(cmd Command) ProcessorResponse {
	saveID, ok := cmd.Args.(string)
	if !ok || saveID == "" {
		return p.errorResponse("save id required", core.ErrInvalidRequest)
	}

	v, err := p.svc.LoadGame(saveID)
	if err != nil {
		return p.failure("load failed", err)
	}

	return ProcessorResponse{
		Success: true,
		Data:    buildGameResponse(v),
	}
}

func (p *Processor) handleExportPGN(cmd Command) ProcessorResponse {
	out, err := p.svc.ExportPGN(cmd.GameID)
	if err != nil {
		return p.failure("export failed", err)
	}

	return ProcessorResponse{
		Success: true,
		Data: core.PGNResponse{
			GameID: cmd.GameID,
			PGN:    out,
		},
	}
}

// ErrorCode maps service and domain errors to API error codes
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return core.ErrGameNotFound
	case errors.Is(err, service.ErrSeatTaken):
		return core.ErrSeatTaken
	case errors.Is(err, service.ErrUnauthorized):
		return core.ErrUnauthorized
	case errors.Is(err, service.ErrSavesDisabled):
		return core.ErrStorageDisabled
	case errors.Is(err, storage.ErrSaveNotFound):
		return core.ErrSaveNotFound
	case errors.Is(err, game.ErrGameOver):
		return core.ErrGameOver
	case errors.Is(err, game.ErrNothingToUndo):
		return core.ErrNothingToUndo
	case errors.Is(err, game.ErrCorruptSave):
		return core.ErrCorruptSave
	case errors.Is(err, game.ErrNotReplayable):
		return core.ErrInvalidRequest
	case errors.Is(err, notation.ErrMalformedCoordinate):
		return core.ErrMalformedSquare
	case errors.Is(err, board.ErrInvalidFEN):
		return core.ErrInvalidFEN
	default:
		return core.ErrInternalError
	}
}

// failure builds an error response whose code follows err
func (p *Processor) failure(message string, err error) ProcessorResponse {
	return ProcessorResponse{
		Success: false,
		Error: &core.ErrorResponse{
			Error:   message,
			Code:    ErrorCode(err),
			Details: err.Error(),
		},
	}
}

// buildGameResponse constructs the standard game response
func buildGameResponse(v service.GameView) core.GameResponse {
	resp := core.GameResponse{
		GameID: v.GameID,
		FEN:    v.FEN,
		Turn:   v.Turn.String(),
		State:  v.State.String(),
		Check:  v.Check,
		Moves:  v.Moves,
		Seats: core.SeatsInfo{
			White: v.WhiteSeated,
			Black: v.BlackSeated,
		},
	}
	if resp.Moves == nil {
		resp.Moves = []string{}
	}

	if r := v.LastResult; r != nil && len(v.Records) > 0 {
		last := v.Records[len(v.Records)-1]
		info := &core.MoveInfo{
			Move:        last.UCI(),
			PlayerColor: last.Color.String(),
			Outcome:     r.Outcome.String(),
			EnPassant:   r.Move.IsEnPassantCapture,
		}
		if r.Move.IsCapture {
			info.Captured = r.Move.Captured.Kind.String()
		}
		if r.Move.IsPromotion {
			info.Promotion = r.Move.Promotion.String()
		}
		resp.LastMove = info
	}

	return resp
}

// errorResponse creates error response
func (p *Processor) errorResponse(message, code string) ProcessorResponse {
	return ProcessorResponse{
		Success: false,
		Error: &core.ErrorResponse{
			Error: message,
			Code:  code,
		},
	}
}
