package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"termchess/internal/board"
	"termchess/internal/cli"
	"termchess/internal/core"
	"termchess/internal/game"
	"termchess/internal/notation"
	"termchess/internal/service"
	"termchess/internal/storage"
	"termchess/internal/transport"
)

type CLIHandler struct {
	svc    *service.Service
	view   transport.View
	gameID string
}

func New(svc *service.Service, view transport.View) *CLIHandler {
	return &CLIHandler{
		svc:  svc,
		view: view,
	}
}

// Run reads commands until quit or end of input
func (h *CLIHandler) Run() error {
	for {
		cmd, err := h.view.GetCommand(h.getPrompt())
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if !h.ProcessCommand(cmd) {
			return nil
		}
	}
}

func (h *CLIHandler) getPrompt() string {
	if h.gameID == "" {
		return "> "
	}
	v, err := h.svc.GetGame(h.gameID)
	if err != nil {
		return "> "
	}
	if v.State.IsOver() {
		return "[#]> "
	}
	return fmt.Sprintf("[%s]> ", v.Turn)
}

// ProcessCommand handles one command and returns false to exit
func (h *CLIHandler) ProcessCommand(cmd *cli.Command) bool {
	switch cmd.Type {
	case cli.CmdQuit:
		return false

	case cli.CmdNone:

	case cli.CmdNew:
		h.startGame("")

	case cli.CmdResume:
		if len(cmd.Args) < 1 {
			h.view.ShowMessage("Usage: resume <FEN string>")
			return true
		}
		h.startGame(strings.Join(cmd.Args, " "))

	case cli.CmdMove:
		if !h.requireGame() {
			return true
		}
		h.handleMove(cmd.Args)

	case cli.CmdUndo:
		if !h.requireGame() {
			return true
		}
		count := 1
		if len(cmd.Args) > 0 {
			n, err := strconv.Atoi(cmd.Args[0])
			if err != nil || n < 1 {
				h.view.ShowMessage("Invalid undo count. Usage: undo [count]")
				return true
			}
			count = n
		}
		v, err := h.svc.Undo(h.gameID, count)
		if err != nil {
			if errors.Is(err, game.ErrNothingToUndo) {
				h.view.ShowMessage("Nothing to undo.")
			} else {
				h.view.ShowError(err)
			}
			return true
		}
		h.view.ShowMessage("Undo move successful.")
		h.showPosition(v)

	case cli.CmdColor:
		if len(cmd.Args) < 1 {
			h.view.ShowMessage("Usage: color <off|brown|green|gray>")
			return true
		}
		theme := cli.ColorTheme(cmd.Args[0])
		if err := h.view.SetTheme(theme); err != nil {
			h.view.ShowError(err)
			return true
		}
		h.view.ShowMessage(fmt.Sprintf("Color theme set to: %s", theme))
		if v, err := h.svc.GetGame(h.gameID); err == nil {
			h.view.DisplayBoard(v.Position)
		}

	case cli.CmdHistory:
		if !h.requireGame() {
			return true
		}
		v, _ := h.svc.GetGame(h.gameID)
		h.view.ShowMoveList(v.Records)

	case cli.CmdSave:
		if !h.requireGame() {
			return true
		}
		saveID := ""
		if len(cmd.Args) > 0 {
			saveID = cmd.Args[0]
		}
		h.save(saveID)

	case cli.CmdLoad:
		if len(cmd.Args) < 1 {
			h.view.ShowMessage("Usage: load <save id>")
			return true
		}
		h.load(cmd.Args[0])

	case cli.CmdSaves:
		saves, err := h.svc.ListSaves()
		if err != nil {
			h.view.ShowError(err)
			return true
		}
		h.view.ShowSaves(saves)

	case cli.CmdPGN:
		if !h.requireGame() {
			return true
		}
		out, err := h.svc.ExportPGN(h.gameID)
		if err != nil {
			h.view.ShowError(err)
			return true
		}
		h.view.ShowMessage(out)

	case cli.CmdFEN:
		if !h.requireGame() {
			return true
		}
		v, _ := h.svc.GetGame(h.gameID)
		h.view.ShowMessage(v.FEN)

	case cli.CmdHelp:
		h.view.ShowHelp()
	}

	return true
}

func (h *CLIHandler) requireGame() bool {
	if h.gameID == "" {
		h.view.ShowMessage("No active game. Use 'new', 'resume <FEN>' or 'load <id>'.")
		return false
	}
	return true
}

// replace makes id the active session and drops the previous one
func (h *CLIHandler) replace(id string) {
	if h.gameID != "" && h.gameID != id {
		h.svc.DeleteGame(h.gameID)
	}
	h.gameID = id
}

func (h *CLIHandler) startGame(fen string) {
	v, err := h.svc.CreateGame(fen)
	if err != nil {
		h.view.ShowError(fmt.Errorf("could not start the game: %w", err))
		return
	}
	h.replace(v.GameID)
	h.view.ShowMessage("Game started.")
	h.showPosition(v)
}

// parseMoveArgs accepts "e2e4", "e2 e4", "e7e8q" or a lone origin square,
// in which case the destination is asked for.
func (h *CLIHandler) parseMoveArgs(args []string) (from, to int, promo core.Kind, err error) {
	switch len(args) {
	case 1:
		if len(args[0]) == 2 {
			if from, err = notation.ToIndex(args[0]); err != nil {
				return
			}
			var dest string
			if dest, err = h.view.ReadLine("Where do you move it?: "); err != nil {
				return
			}
			to, promo, err = notation.ParseDestination(dest)
			return
		}
		return notation.ParseMove(args[0])
	case 2:
		if from, err = notation.ToIndex(args[0]); err != nil {
			return
		}
		to, promo, err = notation.ParseDestination(args[1])
		return
	default:
		err = fmt.Errorf("%w: %q", notation.ErrMalformedCoordinate, strings.Join(args, " "))
		return
	}
}

func (h *CLIHandler) handleMove(args []string) {
	from, to, promo, err := h.parseMoveArgs(args)
	if err != nil {
		h.view.ShowMessage(`That move is not valid. Enter piece locations as "a1", "e4", etc.`)
		return
	}

	choose := h.view.PromptPromotion
	if promo.IsPromotion() {
		choose = board.PromoteTo(promo)
	}

	res, v, err := h.svc.MakeMove(h.gameID, "", from, to, choose)
	if errors.Is(err, game.ErrGameOver) {
		h.view.ShowMessage("The game is over. Undo the last move or start a new game.")
		return
	}
	if err != nil {
		h.view.ShowError(err)
		return
	}
	if !res.Outcome.Success() {
		h.view.ShowOutcome(res.Outcome)
		return
	}

	h.view.DisplayBoard(v.Position)
	switch {
	case res.Checkmate:
		h.view.ShowGameOver(v.State)
	case res.Check:
		h.view.ShowCheck()
		h.view.ShowTurn(v.Turn)
	default:
		h.view.ShowTurn(v.Turn)
	}
}

func (h *CLIHandler) showPosition(v service.GameView) {
	h.view.DisplayBoard(v.Position)
	if v.State.IsOver() {
		h.view.ShowGameOver(v.State)
		return
	}
	if v.Check {
		h.view.ShowCheck()
	}
	h.view.ShowTurn(v.Turn)
}

func (h *CLIHandler) save(saveID string) {
	rec, err := h.svc.SaveGame(h.gameID, saveID)
	switch {
	case errors.Is(err, game.ErrNotReplayable):
		h.view.ShowMessage("Games resumed from a FEN position cannot be saved. Use 'fen' or 'pgn' instead.")
	case err != nil:
		h.view.ShowError(fmt.Errorf("save failed: %w", err))
	default:
		h.view.ShowMessage(fmt.Sprintf("Save successful. Load it with 'load %s'.", rec.SaveID))
	}
}

func (h *CLIHandler) load(saveID string) {
	v, err := h.svc.LoadGame(saveID)
	switch {
	case errors.Is(err, game.ErrCorruptSave):
		h.view.ShowError(fmt.Errorf("that save doesn't describe a valid game: %w", err))
		return
	case errors.Is(err, storage.ErrSaveNotFound):
		h.view.ShowMessage(fmt.Sprintf("No saved game named %q.", saveID))
		return
	case err != nil:
		h.view.ShowError(fmt.Errorf("error loading saved game: %w", err))
		return
	}
	h.replace(v.GameID)
	h.view.ShowMessage("Saved game successfully located. Loading...")
	h.showPosition(v)
}
