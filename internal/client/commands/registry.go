// Package commands implements the remote client's command set.
package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"termchess/internal/client/api"
	"termchess/internal/client/display"
	"termchess/internal/core"
)

// Session is the client-side state shared by every command
type Session struct {
	Client        *api.Client
	Out           io.Writer
	CurrentGame   string
	PlayerColor   string // "w", "b" or "" when spectating
	LastMoveCount int
	GameState     *core.GameResponse
	Verbose       bool
}

func (s *Session) update(g *core.GameResponse) {
	s.GameState = g
	s.LastMoveCount = len(g.Moves)
}

func (s *Session) requireGame() (string, error) {
	if s.CurrentGame == "" {
		return "", fmt.Errorf("no current game, use 'new', 'join <gameId>' or 'load <saveId>'")
	}
	return s.CurrentGame, nil
}

// Command defines a client command with its handler
type Command struct {
	Name        string
	ShortName   string
	Description string
	Usage       string
	Group       string
	Handler     func(*Session, []string) error
}

// Registry manages command registration and execution
type Registry struct {
	session  *Session
	commands map[string]*Command
	exit     bool
}

func NewRegistry(session *Session) *Registry {
	r := &Registry{
		session:  session,
		commands: make(map[string]*Command),
	}

	r.registerGameCommands()
	r.registerSaveCommands()
	r.registerDebugCommands()

	r.Register(&Command{
		Name:        "help",
		ShortName:   "?",
		Description: "Show available commands",
		Usage:       "help [command]",
		Group:       groupUtility,
		Handler:     r.helpHandler,
	})

	r.Register(&Command{
		Name:        "exit",
		ShortName:   "x",
		Description: "Exit the client",
		Usage:       "exit",
		Group:       groupUtility,
		Handler: func(s *Session, _ []string) error {
			display.Info.Fprintln(s.Out, "Goodbye!")
			r.exit = true
			return nil
		},
	})

	return r
}

const (
	groupGame    = "Game Commands"
	groupSave    = "Save Commands"
	groupUtility = "Utility Commands"
)

func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	if cmd.ShortName != "" {
		r.commands[cmd.ShortName] = cmd
	}
}

// Execute runs one input line and reports whether the client should keep going
func (r *Registry) Execute(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmdName := parts[0]
	args := parts[1:]

	cmd, exists := r.commands[cmdName]
	if !exists {
		display.Failure.Fprintf(r.session.Out, "Unknown command: %s\n", cmdName)
		fmt.Fprintln(r.session.Out, "Type 'help' for available commands")
		return true
	}

	r.session.Client.SetVerbose(r.session.Verbose)

	if err := cmd.Handler(r.session, args); err != nil {
		display.Failure.Fprintf(r.session.Out, "Error: %v\n", err)
	}
	return !r.exit
}

func (r *Registry) helpHandler(s *Session, args []string) error {
	if len(args) > 0 {
		cmd, exists := r.commands[args[0]]
		if !exists {
			return fmt.Errorf("unknown command: %s", args[0])
		}
		fmt.Fprintf(s.Out, "\n%s - %s\n", display.Info.Sprint(cmd.Name), cmd.Description)
		if cmd.ShortName != "" {
			fmt.Fprintf(s.Out, "Short form: %s\n", display.Info.Sprint(cmd.ShortName))
		}
		fmt.Fprintf(s.Out, "Usage: %s\n", cmd.Usage)
		return nil
	}

	groups := map[string][]*Command{}
	for name, cmd := range r.commands {
		if name == cmd.Name {
			groups[cmd.Group] = append(groups[cmd.Group], cmd)
		}
	}

	display.Info.Fprintf(s.Out, "\nAvailable Commands:\n\n")
	for _, group := range []string{groupGame, groupSave, groupUtility} {
		cmds := groups[group]
		sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })

		display.Warn.Fprintf(s.Out, "%s:\n", group)
		for _, cmd := range cmds {
			short := "    "
			if cmd.ShortName != "" {
				short = fmt.Sprintf("[%s] ", cmd.ShortName)
			}
			fmt.Fprintf(s.Out, "  %s%-10s %s\n", short, cmd.Name, cmd.Description)
		}
		fmt.Fprintln(s.Out)
	}

	fmt.Fprintln(s.Out, "Type 'help <command>' for detailed usage")
	fmt.Fprintln(s.Out, "Add '-v' to any command for verbose output")
	return nil
}
