package game

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"termchess/internal/core"
)

var (
	ErrCorruptSave   = errors.New("corrupt save")
	ErrNotReplayable = errors.New("game did not start from the standard position")
)

// Save is the persisted form of a game: the side to move and every ply as
// an origin token followed by a destination token.
type Save struct {
	Side   core.Color
	Tokens []string
}

// Save captures the game for later replay
func (g *Game) Save() (Save, error) {
	if !g.StandardStart() {
		return Save{}, ErrNotReplayable
	}
	tokens := make([]string, 0, 2*len(g.history))
	for _, s := range g.history {
		tokens = append(tokens, s.record.Origin(), s.record.Destination())
	}
	return Save{Side: g.turn, Tokens: tokens}, nil
}

// Encode writes the side flag on the first line, then one "origin destination" line per ply
func (s Save) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, s.Side); err != nil {
		return err
	}
	for i := 0; i < len(s.Tokens); i += 2 {
		line := s.Tokens[i]
		if i+1 < len(s.Tokens) {
			line += " " + s.Tokens[i+1]
		}
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func (s Save) String() string {
	var sb strings.Builder
	s.Encode(&sb)
	return sb.String()
}

// DecodeSave parses the save format. Token validity is checked by Replay.
func DecodeSave(r io.Reader) (Save, error) {
	var s Save
	scanner := bufio.NewScanner(r)
	sawSide := false
	line := 0

	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if !sawSide {
			switch text {
			case "w":
				s.Side = core.ColorWhite
			case "b":
				s.Side = core.ColorBlack
			default:
				return Save{}, fmt.Errorf("%w: line %d: side flag %q", ErrCorruptSave, line, text)
			}
			sawSide = true
			continue
		}
		fields := strings.Fields(text)
		if len(fields) > 2 {
			return Save{}, fmt.Errorf("%w: line %d: expected at most two tokens", ErrCorruptSave, line)
		}
		s.Tokens = append(s.Tokens, fields...)
	}
	if err := scanner.Err(); err != nil {
		return Save{}, fmt.Errorf("read save: %w", err)
	}
	if !sawSide {
		return Save{}, fmt.Errorf("%w: missing side flag", ErrCorruptSave)
	}
	return s, nil
}

// Replay rebuilds a game by playing every token pair from the standard
// position, white first. Any rejected move, a move after checkmate, an odd
// token count or a side flag that disagrees with the replayed turn makes
// the whole save corrupt; no partially replayed game is returned.
func Replay(s Save, opts ...Option) (*Game, error) {
	if len(s.Tokens)%2 != 0 {
		return nil, fmt.Errorf("%w: odd number of tokens (%d)", ErrCorruptSave, len(s.Tokens))
	}

	g := New()
	for i := 0; i < len(s.Tokens); i += 2 {
		ply := i/2 + 1
		origin, dest := s.Tokens[i], s.Tokens[i+1]

		res, err := g.MoveNotation(origin, dest)
		if err != nil {
			return nil, fmt.Errorf("%w: ply %d %s %s: %v", ErrCorruptSave, ply, origin, dest, err)
		}
		if !res.Outcome.Success() {
			return nil, fmt.Errorf("%w: ply %d %s %s: %s", ErrCorruptSave, ply, origin, dest, res.Outcome)
		}
	}

	if s.Side != g.Turn() {
		return nil, fmt.Errorf("%w: side flag %s but %s is to move", ErrCorruptSave, s.Side, g.Turn())
	}

	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Load decodes and replays a save
func Load(r io.Reader, opts ...Option) (*Game, error) {
	s, err := DecodeSave(r)
	if err != nil {
		return nil, err
	}
	return Replay(s, opts...)
}
