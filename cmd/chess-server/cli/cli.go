package cli

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"termchess/internal/storage"

	"golang.org/x/term"
)

// Run is the entry point for the db maintenance commands
func Run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("subcommand required: init, delete, query, moves, saves")
	}

	switch args[0] {
	case "init":
		return runInit(args[1:])
	case "delete":
		return runDelete(args[1:])
	case "query":
		return runQuery(args[1:])
	case "moves":
		return runMoves(args[1:])
	case "saves":
		return runSaves(args[1:])
	default:
		return fmt.Errorf("unknown subcommand: %s", args[0])
	}
}

func openStore(fs *flag.FlagSet, args []string, extra func()) (*storage.Store, error) {
	path := fs.String("path", "", "Database file path (required)")
	if extra != nil {
		extra()
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *path == "" {
		return nil, fmt.Errorf("database path required")
	}
	store, err := storage.NewStore(*path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return store, nil
}

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	store, err := openStore(fs, args, nil)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	fmt.Printf("Database initialized at: %s\n", fs.Lookup("path").Value)
	return nil
}

func runDelete(args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	var yes *bool
	store, err := openStore(fs, args, func() {
		yes = fs.Bool("yes", false, "Skip the confirmation prompt")
	})
	if err != nil {
		return err
	}
	path := fs.Lookup("path").Value.String()

	if !*yes && term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Printf("Delete %s and every archived game? [y/N]: ", path)
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			store.Close()
			fmt.Println("Aborted")
			return nil
		}
	}

	if err := store.DeleteDB(); err != nil {
		return fmt.Errorf("failed to delete database: %w", err)
	}

	fmt.Printf("Database deleted: %s\n", path)
	return nil
}

func runQuery(args []string) error {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	var gameID, result *string
	store, err := openStore(fs, args, func() {
		gameID = fs.String("gameId", "", "Game ID to filter (optional, * for all)")
		result = fs.String("result", "", `Result to filter: "ongoing", "white wins", "black wins" (optional, * for all)`)
	})
	if err != nil {
		return err
	}
	defer store.Close()

	games, err := store.QueryGames(*gameID, *result)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if len(games) == 0 {
		fmt.Println("No games found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Game ID\tResult\tStart Time\tEnd Time\tInitial FEN")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, g := range games {
		end := "-"
		if g.EndTimeUTC != nil {
			end = g.EndTimeUTC.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			g.GameID,
			g.Result,
			g.StartTimeUTC.Format("2006-01-02 15:04:05"),
			end,
			g.InitialFEN,
		)
	}
	w.Flush()

	fmt.Printf("\nFound %d game(s)\n", len(games))
	return nil
}

func runMoves(args []string) error {
	fs := flag.NewFlagSet("moves", flag.ContinueOnError)
	var gameID *string
	store, err := openStore(fs, args, func() {
		gameID = fs.String("gameId", "", "Game ID (required)")
	})
	if err != nil {
		return err
	}
	defer store.Close()

	if *gameID == "" {
		return fmt.Errorf("game ID required")
	}

	moves, err := store.QueryMoves(*gameID)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if len(moves) == 0 {
		fmt.Println("No moves found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Ply\tColor\tMove\tOutcome\tTime\tFEN")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, m := range moves {
		fmt.Fprintf(w, "%d\t%s\t%s %s\t%s\t%s\t%s\n",
			m.MoveNumber,
			m.PlayerColor,
			m.Origin,
			m.Destination,
			m.Outcome,
			m.MoveTimeUTC.Format("15:04:05"),
			m.FENAfterMove,
		)
	}
	w.Flush()

	fmt.Printf("\n%d ply(s)\n", len(moves))
	return nil
}

func runSaves(args []string) error {
	fs := flag.NewFlagSet("saves", flag.ContinueOnError)
	store, err := openStore(fs, args, nil)
	if err != nil {
		return err
	}
	defer store.Close()

	saves, err := store.ListSaves()
	if err != nil {
		return fmt.Errorf("failed to list saves: %w", err)
	}

	if len(saves) == 0 {
		fmt.Println("No saves found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Save ID\tTo Move\tPlies\tCreated")
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, s := range saves {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", s.SaveID, s.Side, s.PlyCount, s.CreatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()

	fmt.Printf("\nTotal saves: %d\n", len(saves))
	return nil
}
