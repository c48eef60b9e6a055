// Package main is an interactive client for a remote termchess server.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"termchess/internal/client/api"
	"termchess/internal/client/commands"
	"termchess/internal/client/display"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

func main() {
	var (
		apiURL  = flag.String("url", "http://localhost:8080", "Server base URL")
		history = flag.String("history", ".chess_history", "Readline history file")
		trace   = flag.Bool("trace", false, "Print every API request")
	)
	flag.Parse()

	display.SetPlain(!term.IsTerminal(int(os.Stdout.Fd())))

	s := &commands.Session{
		Client: api.New(*apiURL, os.Stdout),
		Out:    os.Stdout,
	}
	s.Client.Trace = *trace

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          display.Prompt("chess"),
		HistoryFile:     *history,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		log.Fatalf("Failed to start line editor: %v", err)
	}
	defer rl.Close()

	display.Info.Fprintln(os.Stdout, "Chess Client")
	display.Info.Fprintf(os.Stdout, "API: %s\n", s.Client.BaseURL)
	fmt.Println("Type 'help' for commands")
	fmt.Println()

	registry := commands.NewRegistry(s)

	for {
		rl.SetPrompt(buildPrompt(s))

		line, err := rl.Readline()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "quit" {
			break
		}

		s.Verbose = strings.HasSuffix(line, " -v")
		line = strings.TrimSuffix(line, " -v")

		if !registry.Execute(line) {
			break
		}
	}
}

func buildPrompt(s *commands.Session) string {
	prompt := "chess"

	if s.CurrentGame != "" {
		id := s.CurrentGame
		if len(id) > 8 {
			id = id[:8]
		}
		seat := ""
		if s.PlayerColor != "" {
			seat = " as " + display.ColorForTurn(s.PlayerColor)
		}
		prompt += " [" + id + seat + "]"
	}

	if g := s.GameState; g != nil {
		if g.State == "ongoing" {
			prompt += " - Turn:" + display.ColorForTurn(g.Turn)
		} else {
			prompt += " - " + g.State
		}
	}

	return display.Prompt(prompt)
}
