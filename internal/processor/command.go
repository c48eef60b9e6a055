package processor

import (
	"termchess/internal/core"
)

// CommandType defines the type of command being executed
type CommandType int

const (
	CmdCreateGame CommandType = iota
	CmdGetGame
	CmdDeleteGame
	CmdMakeMove
	CmdUndoMove
	CmdGetBoard
	CmdClaimSeat
	CmdSaveGame
	CmdLoadSave
	CmdExportPGN
)

// Command is a unified structure for all processor operations
type Command struct {
	Type   CommandType
	Token  string // seat bearer token, empty when none was sent
	GameID string // for game-specific commands
	Args   any    // command-specific arguments
}

// ProcessorResponse wraps the response with metadata
type ProcessorResponse struct {
	Success bool                `json:"success"`
	Data    any                 `json:"data,omitempty"`
	Error   *core.ErrorResponse `json:"error,omitempty"`
}

func NewCreateGameCommand(req core.CreateGameRequest) Command {
	return Command{
		Type: CmdCreateGame,
		Args: req,
	}
}

func NewGetGameCommand(gameID string) Command {
	return Command{
		Type:   CmdGetGame,
		GameID: gameID,
	}
}

func NewMakeMoveCommand(gameID, token string, req core.MoveRequest) Command {
	return Command{
		Type:   CmdMakeMove,
		Token:  token,
		GameID: gameID,
		Args:   req,
	}
}

func NewUndoMoveCommand(gameID string, req core.UndoRequest) Command {
	return Command{
		Type:   CmdUndoMove,
		GameID: gameID,
		Args:   req,
	}
}

func NewDeleteGameCommand(gameID string) Command {
	return Command{
		Type:   CmdDeleteGame,
		GameID: gameID,
	}
}

func NewGetBoardCommand(gameID string) Command {
	return Command{
		Type:   CmdGetBoard,
		GameID: gameID,
	}
}

func NewClaimSeatCommand(gameID string, req core.SeatRequest) Command {
	return Command{
		Type:   CmdClaimSeat,
		GameID: gameID,
		Args:   req,
	}
}

func NewSaveGameCommand(gameID string, req core.SaveRequest) Command {
	return Command{
		Type:   CmdSaveGame,
		GameID: gameID,
		Args:   req,
	}
}

func NewLoadSaveCommand(saveID string) Command {
	return Command{
		Type: CmdLoadSave,
		Args: saveID,
	}
}

func NewExportPGNCommand(gameID string) Command {
	return Command{
		Type:   CmdExportPGN,
		GameID: gameID,
	}
}
