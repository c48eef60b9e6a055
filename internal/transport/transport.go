// Package transport defines what the interactive front ends need from a view.
package transport

import (
	"termchess/internal/board"
	"termchess/internal/cli"
	"termchess/internal/core"
	"termchess/internal/game"
	"termchess/internal/storage"
)

// View abstracts terminal input and output
type View interface {
	GetCommand(prompt string) (*cli.Command, error)
	ReadLine(prompt string) (string, error)
	SetTheme(theme cli.ColorTheme) error

	DisplayBoard(b *board.Board)
	ShowMessage(msg string)
	ShowInfo(msg string)
	ShowError(err error)
	ShowOutcome(o core.Outcome)
	ShowCheck()
	ShowGameOver(state core.State)
	ShowTurn(turn core.Color)
	ShowMoveList(records []game.Record)
	ShowSaves(saves []storage.SaveRecord)
	ShowHelp()
	ShowWelcome()

	PromptPromotion(c core.Color) core.Kind
}

var _ View = (*cli.CLI)(nil)
