package commands

import (
	"fmt"
	"text/tabwriter"

	"termchess/internal/client/display"
)

func (r *Registry) registerSaveCommands() {
	for _, cmd := range []*Command{
		{Name: "save", ShortName: "v", Description: "Save the current game", Usage: "save [saveId]", Handler: saveHandler},
		{Name: "saves", ShortName: "ls", Description: "List save slots", Usage: "saves", Handler: listSavesHandler},
		{Name: "load", ShortName: "l", Description: "Load a save into a new game", Usage: "load <saveId>", Handler: loadHandler},
		{Name: "pgn", ShortName: "g", Description: "Export the current game as PGN", Usage: "pgn", Handler: pgnHandler},
	} {
		cmd.Group = groupSave
		r.Register(cmd)
	}
}

func saveHandler(s *Session, args []string) error {
	gameID, err := s.requireGame()
	if err != nil {
		return err
	}
	saveID := ""
	if len(args) > 0 {
		saveID = args[0]
	}

	resp, err := s.Client.SaveGame(gameID, saveID)
	if err != nil {
		return err
	}

	display.Success.Fprintf(s.Out, "Saved as: %s\n", resp.SaveID)
	return nil
}

func listSavesHandler(s *Session, _ []string) error {
	saves, err := s.Client.ListSaves()
	if err != nil {
		return err
	}
	if len(saves) == 0 {
		fmt.Fprintln(s.Out, "No saves found")
		return nil
	}

	w := tabwriter.NewWriter(s.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Save ID\tTo Move\tPlies\tCreated")
	for _, sv := range saves {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", sv.SaveID, sv.Side, sv.Plies, sv.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func loadHandler(s *Session, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: load <saveId>")
	}

	resp, err := s.Client.LoadSave(args[0])
	if err != nil {
		return err
	}

	s.CurrentGame = resp.GameID
	s.PlayerColor = ""
	s.Client.SetToken("")
	s.update(resp)

	display.Success.Fprintf(s.Out, "Loaded %s into game %s\n", args[0], resp.GameID)
	printStatus(s, resp)
	return nil
}

func pgnHandler(s *Session, _ []string) error {
	gameID, err := s.requireGame()
	if err != nil {
		return err
	}

	resp, err := s.Client.ExportPGN(gameID)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.Out, resp.PGN)
	return nil
}
