// Package cli renders games in a terminal and reads player commands.
package cli

import (
	"fmt"
	"io"
	"strings"

	"termchess/internal/board"
	"termchess/internal/core"
	"termchess/internal/game"
	"termchess/internal/storage"

	"github.com/fatih/color"
)

type CommandType int

const (
	CmdNone CommandType = iota
	CmdNew
	CmdResume
	CmdMove
	CmdUndo
	CmdColor
	CmdHistory
	CmdSave
	CmdLoad
	CmdSaves
	CmdPGN
	CmdFEN
	CmdHelp
	CmdQuit
)

type Command struct {
	Type CommandType
	Args []string
	Raw  string
}

type ColorTheme string

const (
	ThemeOff   ColorTheme = "off"
	ThemeBrown ColorTheme = "brown"
	ThemeGreen ColorTheme = "green"
	ThemeGray  ColorTheme = "gray"
)

type themeColors struct {
	lightBg string
	darkBg  string
	white   string
	black   string
	reset   string
}

var themes = map[ColorTheme]themeColors{
	ThemeOff: {},
	ThemeBrown: {
		lightBg: "\033[48;5;230m", // beige
		darkBg:  "\033[48;5;94m",  // brown
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   "\033[0m",
	},
	ThemeGreen: {
		lightBg: "\033[48;5;157m",
		darkBg:  "\033[48;5;22m",
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   "\033[0m",
	},
	ThemeGray: {
		lightBg: "\033[48;5;251m",
		darkBg:  "\033[48;5;240m",
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   "\033[0m",
	},
}

type CLI struct {
	input  LineReader
	output io.Writer
	theme  ColorTheme

	errColor   *color.Color
	checkColor *color.Color
	mateColor  *color.Color
	infoColor  *color.Color
}

// New creates a view. plain disables every escape sequence.
func New(input LineReader, output io.Writer, plain bool) *CLI {
	c := &CLI{
		input:      input,
		output:     output,
		theme:      ThemeOff,
		errColor:   color.New(color.FgRed),
		checkColor: color.New(color.FgYellow, color.Bold),
		mateColor:  color.New(color.FgMagenta, color.Bold),
		infoColor:  color.New(color.FgCyan),
	}
	for _, col := range []*color.Color{c.errColor, c.checkColor, c.mateColor, c.infoColor} {
		if plain {
			col.DisableColor()
		} else {
			col.EnableColor()
		}
	}
	return c
}

// GetCommand reads and parses one command
func (c *CLI) GetCommand(prompt string) (*Command, error) {
	line, err := c.input.ReadLine(prompt)
	if err != nil {
		return nil, err
	}
	return ParseCommand(line), nil
}

// ParseCommand classifies an input line. Anything unrecognized is a move.
func ParseCommand(input string) *Command {
	input = strings.TrimSpace(input)
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return &Command{Type: CmdNone}
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "new", "n":
		return &Command{Type: CmdNew, Args: args}
	case "resume":
		return &Command{Type: CmdResume, Args: args, Raw: input}
	case "undo", "u":
		return &Command{Type: CmdUndo, Args: args}
	case "color":
		return &Command{Type: CmdColor, Args: args}
	case "history", "view", "v":
		return &Command{Type: CmdHistory}
	case "save", "s":
		return &Command{Type: CmdSave, Args: args}
	case "load", "l":
		return &Command{Type: CmdLoad, Args: args}
	case "saves":
		return &Command{Type: CmdSaves}
	case "pgn":
		return &Command{Type: CmdPGN}
	case "fen":
		return &Command{Type: CmdFEN}
	case "help", "?":
		return &Command{Type: CmdHelp}
	case "quit", "exit", "q":
		return &Command{Type: CmdQuit}
	default:
		return &Command{Type: CmdMove, Args: parts, Raw: input}
	}
}

// ReadLine reads a raw answer to a question
func (c *CLI) ReadLine(prompt string) (string, error) {
	line, err := c.input.ReadLine(prompt)
	return strings.TrimSpace(line), err
}

func (c *CLI) SetTheme(theme ColorTheme) error {
	if _, ok := themes[theme]; !ok {
		return fmt.Errorf("invalid theme: %s (use: off, brown, green, gray)", theme)
	}
	c.theme = theme
	return nil
}

func (c *CLI) ShowMessage(msg string) {
	fmt.Fprintln(c.output, msg)
}

func (c *CLI) ShowInfo(msg string) {
	c.infoColor.Fprintln(c.output, msg)
}

func (c *CLI) ShowError(err error) {
	c.errColor.Fprintf(c.output, "Error: %v\n", err)
}

// OutcomeMessage explains a rejected move to the player
func OutcomeMessage(o core.Outcome) string {
	switch o {
	case core.OutcomeSameSquare:
		return "That move is not valid. Origin square and destination square must be distinct."
	case core.OutcomeEmptyOrigin:
		return "That move is not valid. The origin square must contain a piece."
	case core.OutcomeWrongColorOrigin:
		return "That move is not valid. The origin square must contain a piece of your color."
	case core.OutcomeIllegalQuietMove:
		return "That move is not valid. That piece cannot be moved to the designated destination square."
	case core.OutcomeOwnPieceAtDestination:
		return "That move is not valid. The destination square cannot contain one of your own pieces."
	case core.OutcomeIllegalCapture:
		return "That move is not valid. That piece can't capture like that."
	case core.OutcomeIllegalSelfCheck:
		return "You can't end your turn in check."
	default:
		return ""
	}
}

// ShowOutcome reports a rejected move; successful outcomes print nothing
func (c *CLI) ShowOutcome(o core.Outcome) {
	if msg := OutcomeMessage(o); msg != "" {
		c.errColor.Fprintln(c.output, msg)
	}
}

func (c *CLI) ShowCheck() {
	c.checkColor.Fprintln(c.output, "Check!")
}

func (c *CLI) ShowGameOver(state core.State) {
	c.mateColor.Fprintln(c.output, "======================================")
	c.mateColor.Fprintf(c.output, "CHECKMATE! %s\n", strings.ToUpper(state.String()))
	c.mateColor.Fprintln(c.output, "======================================")
	c.ShowMessage("Undo the last move, or start again with 'new', 'resume' or 'load'.")
}

// ShowTurn announces the side to move
func (c *CLI) ShowTurn(turn core.Color) {
	if turn == core.ColorWhite {
		c.ShowMessage("It is white's turn. (uppercase characters)")
	} else {
		c.ShowMessage("It is black's turn. (lowercase characters)")
	}
}

// PromptPromotion asks for the promotion piece until a valid letter is given.
// A closed input promotes to a queen.
func (c *CLI) PromptPromotion(core.Color) core.Kind {
	c.ShowMessage("Promotion! What piece would you like to promote to?")
	for {
		line, err := c.ReadLine(`Type "q" for queen, "r" for rook, "b" for bishop, "n" for knight: `)
		if err != nil {
			return core.KindQueen
		}
		if len(line) == 1 {
			if k, ok := core.KindFromLetter(line[0]); ok && k.IsPromotion() {
				return k
			}
		}
	}
}

func (c *CLI) DisplayBoard(b *board.Board) {
	theme := themes[c.theme]
	var sb strings.Builder

	sb.WriteString("\n  a b c d e f g h\n")

	for r := 7; r >= 0; r-- {
		sb.WriteString(fmt.Sprintf("%d ", r+1))
		for f := 0; f < 8; f++ {
			p := b.At(r*8 + f)

			if c.theme == ThemeOff {
				sb.WriteByte(p.Symbol())
				sb.WriteByte(' ')
				continue
			}

			bg := theme.darkBg
			if (r+f)%2 == 1 {
				bg = theme.lightBg
			}
			if p.IsEmpty() {
				sb.WriteString(fmt.Sprintf("%s  %s", bg, theme.reset))
				continue
			}
			fg := theme.black
			if p.Color == core.ColorWhite {
				fg = theme.white
			}
			sb.WriteString(fmt.Sprintf("%s%s%c %s", bg, fg, p.Symbol(), theme.reset))
		}
		sb.WriteString(fmt.Sprintf(" %d\n", r+1))
	}
	sb.WriteString("  a b c d e f g h\n")

	c.ShowMessage(sb.String())
}

// ShowMoveList prints every accepted ply as "White moved from e2 to e4"
func (c *CLI) ShowMoveList(records []game.Record) {
	c.ShowMessage("====================")
	if len(records) == 0 {
		c.ShowMessage("This is a brand new game! There have been no moves so far.")
	}
	for _, r := range records {
		c.ShowMessage(r.String())
	}
	c.ShowMessage("====================")
}

func (c *CLI) ShowSaves(saves []storage.SaveRecord) {
	if len(saves) == 0 {
		c.ShowMessage("No saved games.")
		return
	}
	for _, s := range saves {
		c.ShowMessage(fmt.Sprintf("  %-24s %s", s.SaveID, s.CreatedAt.Format("2006-01-02 15:04")))
	}
}

func (c *CLI) ShowHelp() {
	help := `Commands:
  new              - Start a new game
  resume <FEN>     - Start from a specific board position
  <move>           - Make a move (e.g. e2e4, "e2 e4", e7e8n), or type the
                     origin square alone to be asked for the destination
  undo [count]     - Undo last move(s), default 1
  history / view   - Show the move list
  save [id]        - Save the game, a name is generated when omitted
  load <id>        - Load a saved game
  saves            - List saved games
  pgn              - Print the game as PGN
  fen              - Print the current position as FEN
  color <theme>    - Set board color theme (off|brown|green|gray)
  quit/exit        - Exit the program
  help/?           - Show this help message`

	c.ShowMessage(help)
}

func (c *CLI) ShowWelcome() {
	c.ShowInfo("Welcome to termchess!")
	c.ShowMessage("Two players share this terminal. White moves first.")
	c.ShowMessage("Commands: new, resume <FEN>, <move>, undo, history, save, load, help/?, quit")
	c.ShowMessage("")
}
