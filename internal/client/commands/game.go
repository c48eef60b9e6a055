package commands

import (
	"fmt"
	"strconv"
	"strings"

	"termchess/internal/client/display"
	"termchess/internal/core"
)

func (r *Registry) registerGameCommands() {
	for _, cmd := range []*Command{
		{Name: "new", ShortName: "n", Description: "Create a new game", Usage: "new [FEN]", Handler: newGameHandler},
		{Name: "join", ShortName: "j", Description: "Set the current game ID", Usage: "join <gameId>", Handler: joinGameHandler},
		{Name: "seat", ShortName: "t", Description: "Claim a color and keep its token", Usage: "seat <w|b>", Handler: seatHandler},
		{Name: "move", ShortName: "m", Description: "Make a move", Usage: "move <e2e4|e7e8n>", Handler: moveHandler},
		{Name: "undo", ShortName: "u", Description: "Undo moves", Usage: "undo [count]", Handler: undoHandler},
		{Name: "show", ShortName: "h", Description: "Show board and game state", Usage: "show", Handler: showBoardHandler},
		{Name: "state", ShortName: "s", Description: "Show raw game JSON", Usage: "state", Handler: gameStateHandler},
		{Name: "delete", ShortName: "d", Description: "Delete a game", Usage: "delete [gameId]", Handler: deleteGameHandler},
		{Name: "poll", ShortName: "p", Description: "Long-poll for the next change", Usage: "poll", Handler: pollHandler},
		{Name: "watch", ShortName: "w", Description: "Follow the game stream until n updates or game end", Usage: "watch [n]", Handler: watchHandler},
	} {
		cmd.Group = groupGame
		r.Register(cmd)
	}
}

func newGameHandler(s *Session, args []string) error {
	fen := strings.Join(args, " ")
	resp, err := s.Client.CreateGame(fen)
	if err != nil {
		return err
	}

	s.CurrentGame = resp.GameID
	s.PlayerColor = ""
	s.Client.SetToken("")
	s.update(resp)

	display.Success.Fprintf(s.Out, "Game created: %s\n", resp.GameID)
	fmt.Fprintf(s.Out, "Turn: %s | State: %s\n", display.ColorForTurn(resp.Turn), resp.State)
	return nil
}

func joinGameHandler(s *Session, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: join <gameId>")
	}

	resp, err := s.Client.GetGame(args[0])
	if err != nil {
		return err
	}

	s.CurrentGame = resp.GameID
	s.PlayerColor = ""
	s.Client.SetToken("")
	s.update(resp)

	display.Success.Fprintf(s.Out, "Joined game: %s\n", resp.GameID)
	fmt.Fprintf(s.Out, "Turn: %s | State: %s | Moves: %d\n", display.ColorForTurn(resp.Turn), resp.State, len(resp.Moves))
	return nil
}

func seatHandler(s *Session, args []string) error {
	gameID, err := s.requireGame()
	if err != nil {
		return err
	}
	if len(args) < 1 {
		return fmt.Errorf("usage: seat <w|b>")
	}
	color, err := core.ParseColor(strings.ToLower(args[0]))
	if err != nil {
		return err
	}

	resp, err := s.Client.ClaimSeat(gameID, color.String())
	if err != nil {
		return err
	}

	s.PlayerColor = resp.Color
	display.Success.Fprintf(s.Out, "Seat claimed: %s\n", display.ColorForTurn(resp.Color))
	return nil
}

func moveHandler(s *Session, args []string) error {
	gameID, err := s.requireGame()
	if err != nil {
		return err
	}
	if len(args) < 1 {
		return fmt.Errorf("usage: move <e2e4|e7e8n>")
	}

	move := strings.ToLower(strings.Join(args, ""))
	resp, err := s.Client.MakeMove(gameID, move)
	if err != nil {
		return err
	}

	s.update(resp)
	display.Success.Fprintln(s.Out, "Move accepted")
	printStatus(s, resp)
	return nil
}

func undoHandler(s *Session, args []string) error {
	gameID, err := s.requireGame()
	if err != nil {
		return err
	}

	count := 1
	if len(args) > 0 {
		if count, err = strconv.Atoi(args[0]); err != nil {
			return fmt.Errorf("invalid count: %s", args[0])
		}
	}

	resp, err := s.Client.UndoMoves(gameID, count)
	if err != nil {
		return err
	}

	s.update(resp)
	display.Success.Fprintf(s.Out, "Undid %d move(s)\n", count)
	return nil
}

func showBoardHandler(s *Session, _ []string) error {
	gameID, err := s.requireGame()
	if err != nil {
		return err
	}

	game, err := s.Client.GetGame(gameID)
	if err != nil {
		return err
	}
	board, err := s.Client.GetBoard(gameID)
	if err != nil {
		return err
	}
	s.update(game)

	fmt.Fprintln(s.Out)
	display.RenderBoard(s.Out, board.Board)

	fmt.Fprintf(s.Out, "\nFEN: %s\n", game.FEN)
	fmt.Fprintf(s.Out, "Turn: %s | State: %s | Moves: %d\n",
		display.ColorForTurn(game.Turn), game.State, len(game.Moves))

	if len(game.Moves) > 0 {
		var sb strings.Builder
		for i, move := range game.Moves {
			if i%2 == 0 {
				if i > 0 {
					sb.WriteByte(' ')
				}
				fmt.Fprintf(&sb, "%d.%s", i/2+1, move)
			} else {
				sb.WriteString(" " + move)
			}
		}
		fmt.Fprintf(s.Out, "\nHistory: %s\n", sb.String())
	}

	if game.LastMove != nil {
		fmt.Fprintf(s.Out, "Last move: %s by %s", game.LastMove.Move, display.ColorForTurn(game.LastMove.PlayerColor))
		if game.LastMove.Captured != "" {
			fmt.Fprintf(s.Out, ", captured %s", game.LastMove.Captured)
		}
		if game.LastMove.EnPassant {
			fmt.Fprint(s.Out, " en passant")
		}
		if game.LastMove.Promotion != "" {
			fmt.Fprintf(s.Out, ", promoted to %s", game.LastMove.Promotion)
		}
		fmt.Fprintln(s.Out)
	}
	return nil
}

func gameStateHandler(s *Session, _ []string) error {
	gameID, err := s.requireGame()
	if err != nil {
		return err
	}

	resp, err := s.Client.GetGame(gameID)
	if err != nil {
		return err
	}
	s.update(resp)

	display.Info.Fprintln(s.Out, "Game State:")
	display.PrettyPrintJSON(s.Out, resp)
	return nil
}

func deleteGameHandler(s *Session, args []string) error {
	gameID := s.CurrentGame
	if len(args) > 0 {
		gameID = args[0]
	}
	if gameID == "" {
		return fmt.Errorf("specify game ID or set current game")
	}

	if err := s.Client.DeleteGame(gameID); err != nil {
		return err
	}

	if gameID == s.CurrentGame {
		s.CurrentGame = ""
		s.PlayerColor = ""
		s.GameState = nil
		s.LastMoveCount = 0
	}

	display.Success.Fprintf(s.Out, "Game deleted: %s\n", gameID)
	return nil
}

func pollHandler(s *Session, _ []string) error {
	gameID, err := s.requireGame()
	if err != nil {
		return err
	}

	moveCount := s.LastMoveCount
	display.Info.Fprintf(s.Out, "Long-polling for updates (move count: %d)...\n", moveCount)

	resp, err := s.Client.GetGameWithPoll(gameID, moveCount)
	if err != nil {
		return err
	}
	s.update(resp)

	if len(resp.Moves) != moveCount {
		display.Success.Fprintln(s.Out, "Game updated!")
		printStatus(s, resp)
	} else {
		display.Warn.Fprintln(s.Out, "No updates (timeout)")
	}
	return nil
}

func watchHandler(s *Session, args []string) error {
	gameID, err := s.requireGame()
	if err != nil {
		return err
	}

	updates := 1
	if len(args) > 0 {
		if updates, err = strconv.Atoi(args[0]); err != nil || updates < 1 {
			return fmt.Errorf("invalid update count: %s", args[0])
		}
	}

	stream, err := s.Client.OpenStream(gameID)
	if err != nil {
		return err
	}
	defer stream.Close()

	// the first message is the current state
	seen := -1
	for seen < updates {
		msg, err := stream.Next()
		if err != nil {
			return fmt.Errorf("stream: %w", err)
		}

		switch msg.Type {
		case core.StreamState:
			s.update(msg.Game)
			if seen >= 0 {
				printStatus(s, msg.Game)
			}
			seen++
			if msg.Game.State != core.StateOngoing.String() {
				return nil
			}
		case core.StreamClosed:
			display.Warn.Fprintln(s.Out, "Stream closed by server")
			return nil
		case core.StreamError:
			if msg.Error != nil {
				display.Failure.Fprintf(s.Out, "Stream error: %s\n", msg.Error.Error)
			}
		}
	}
	return nil
}

func printStatus(s *Session, g *core.GameResponse) {
	if g.LastMove != nil {
		fmt.Fprintf(s.Out, "Last move: %s by %s\n", g.LastMove.Move, display.ColorForTurn(g.LastMove.PlayerColor))
	}
	switch {
	case g.State != core.StateOngoing.String():
		display.Warn.Fprintf(s.Out, "Checkmate! %s\n", g.State)
	case g.Check:
		display.Warn.Fprintf(s.Out, "Check! %s to move\n", display.ColorForTurn(g.Turn))
	default:
		fmt.Fprintf(s.Out, "%s to move\n", display.ColorForTurn(g.Turn))
	}
}
