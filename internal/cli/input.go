package cli

import (
	"bufio"
	"fmt"
	"io"

	"github.com/chzyer/readline"
)

// LineReader reads one line of input after showing prompt. io.EOF ends the session.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// ScannerReader reads lines from a plain stream, for pipes and tests
type ScannerReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewScannerReader(in io.Reader, out io.Writer) *ScannerReader {
	return &ScannerReader{scanner: bufio.NewScanner(in), out: out}
}

func (s *ScannerReader) ReadLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}

// ReadlineReader adds line editing and history on a terminal
type ReadlineReader struct {
	rl *readline.Instance
}

// NewReadlineReader opens a readline instance. historyFile may be empty.
func NewReadlineReader(historyFile string) (*ReadlineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("new"),
			readline.PcItem("resume"),
			readline.PcItem("undo"),
			readline.PcItem("history"),
			readline.PcItem("save"),
			readline.PcItem("load"),
			readline.PcItem("saves"),
			readline.PcItem("pgn"),
			readline.PcItem("fen"),
			readline.PcItem("color",
				readline.PcItem(string(ThemeOff)),
				readline.PcItem(string(ThemeBrown)),
				readline.PcItem(string(ThemeGreen)),
				readline.PcItem(string(ThemeGray)),
			),
			readline.PcItem("help"),
			readline.PcItem("quit"),
		),
	})
	if err != nil {
		return nil, err
	}
	return &ReadlineReader{rl: rl}, nil
}

func (r *ReadlineReader) ReadLine(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)
	line, err := r.rl.Readline()
	if err == readline.ErrInterrupt {
		return "", io.EOF
	}
	return line, err
}

func (r *ReadlineReader) Close() error {
	return r.rl.Close()
}
