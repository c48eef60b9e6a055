// Package game runs a two-player session on top of the board rules:
// turn alternation, self-check rejection, check and checkmate detection,
// and a per-ply history used for undo and saves.
package game

import (
	"errors"
	"fmt"

	"termchess/internal/board"
	"termchess/internal/core"
	"termchess/internal/notation"
)

var (
	ErrGameOver      = errors.New("game is over")
	ErrNothingToUndo = errors.New("nothing to undo")
)

// Record is one accepted ply
type Record struct {
	Color     core.Color
	From      int
	To        int
	Promotion core.Kind // KindEmpty unless a pawn promoted
	Capture   bool
}

func (r Record) Origin() string {
	return notation.ToCoordinate(r.From)
}

// Destination carries a promotion suffix only for under-promotions,
// so a plain queen promotion stays a two-character token.
func (r Record) Destination() string {
	dest := notation.ToCoordinate(r.To)
	if r.Promotion.IsPromotion() && r.Promotion != core.KindQueen {
		dest += string(r.Promotion.Letter())
	}
	return dest
}

// UCI returns the long algebraic form, e.g. "e7e8q"
func (r Record) UCI() string {
	return notation.FormatMove(r.From, r.To, r.Promotion)
}

func (r Record) String() string {
	return fmt.Sprintf("%s moved from %s to %s", r.Color.Name(), r.Origin(), notation.ToCoordinate(r.To))
}

// Result reports what a move attempt did
type Result struct {
	Outcome   core.Outcome
	Move      board.Move
	Check     bool // opponent is in check after the move
	Checkmate bool
}

// Snapshot is the session state before a ply
type Snapshot struct {
	board  board.Board
	turn   core.Color
	state  core.State
	check  bool
	record Record
}

type Game struct {
	board      *board.Board
	turn       core.Color
	state      core.State
	check      bool // side to move is in check
	history    []Snapshot
	lastResult *Result

	initialFEN  string
	initialTurn core.Color
	startMove   int

	promote board.PromotionChooser
}

type Option func(*Game)

// WithPromotion sets the callback consulted when a pawn reaches the last rank
func WithPromotion(fn board.PromotionChooser) Option {
	return func(g *Game) {
		if fn != nil {
			g.promote = fn
		}
	}
}

// New starts a game from the standard position with white to move
func New(opts ...Option) *Game {
	g := &Game{
		board:       board.New(),
		turn:        core.ColorWhite,
		state:       core.StateOngoing,
		initialFEN:  board.StartingFEN,
		initialTurn: core.ColorWhite,
		startMove:   1,
		promote:     board.DefaultPromotion,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// FromFEN starts a game from an arbitrary position. A position that is
// already checkmate produces a finished game.
func FromFEN(fen string, opts ...Option) (*Game, error) {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}

	g := New(opts...)
	g.board = pos.Board
	g.turn = pos.Turn
	g.initialTurn = pos.Turn
	g.startMove = pos.Fullmove
	g.initialFEN = pos.Board.FEN(pos.Turn, pos.Fullmove)

	if err := g.assess(); err != nil {
		return nil, err
	}
	return g, nil
}

// assess recomputes check and checkmate for the side to move
func (g *Game) assess() error {
	check, err := board.InCheck(g.board, g.turn)
	if err != nil {
		return err
	}
	g.check = check
	if !check {
		return nil
	}
	mate, err := board.IsCheckmate(g.board, g.turn)
	if err != nil {
		return err
	}
	if mate {
		g.state = core.WinnerState(core.OppositeColor(g.turn))
	}
	return nil
}

// Move attempts a move for the side to move. Rule violations come back as
// the result's Outcome with a nil error; errors are reserved for a finished
// game or a corrupted board.
func (g *Game) Move(from, to int) (Result, error) {
	return g.move(from, to, g.promote)
}

// MoveWithPromotion is Move with a fixed promotion piece. KindEmpty defers to the session's chooser.
func (g *Game) MoveWithPromotion(from, to int, promo core.Kind) (Result, error) {
	if promo.IsPromotion() {
		return g.move(from, to, board.PromoteTo(promo))
	}
	return g.move(from, to, g.promote)
}

// MoveWith is Move with a per-call promotion chooser. A nil chooser defers to the session's.
func (g *Game) MoveWith(from, to int, choose board.PromotionChooser) (Result, error) {
	if choose == nil {
		choose = g.promote
	}
	return g.move(from, to, choose)
}

// MoveNotation accepts algebraic coordinates; dest may carry a promotion suffix
func (g *Game) MoveNotation(origin, dest string) (Result, error) {
	from, err := notation.ToIndex(origin)
	if err != nil {
		return Result{}, err
	}
	to, promo, err := notation.ParseDestination(dest)
	if err != nil {
		return Result{}, err
	}
	return g.MoveWithPromotion(from, to, promo)
}

func (g *Game) move(from, to int, choose board.PromotionChooser) (Result, error) {
	if g.state.IsOver() {
		return Result{}, ErrGameOver
	}

	before := *g.board
	mover := g.turn

	mv, outcome := g.board.ApplyMove(mover, from, to, choose)
	res := Result{Outcome: outcome, Move: mv}
	if !outcome.Success() {
		return res, nil
	}

	selfCheck, err := board.InCheck(g.board, mover)
	if err != nil {
		*g.board = before
		return res, err
	}
	if selfCheck {
		*g.board = before
		res.Outcome = core.OutcomeIllegalSelfCheck
		return res, nil
	}

	opponent := core.OppositeColor(mover)
	check, err := board.InCheck(g.board, opponent)
	if err != nil {
		*g.board = before
		return res, err
	}
	mate := false
	if check {
		if mate, err = board.IsCheckmate(g.board, opponent); err != nil {
			*g.board = before
			return res, err
		}
	}

	g.history = append(g.history, Snapshot{
		board: before,
		turn:  mover,
		state: g.state,
		check: g.check,
		record: Record{
			Color:     mover,
			From:      from,
			To:        to,
			Promotion: mv.Promotion,
			Capture:   mv.IsCapture,
		},
	})

	g.turn = opponent
	g.check = check
	if mate {
		g.state = core.WinnerState(mover)
	}

	res.Check = check
	res.Checkmate = mate
	g.lastResult = &res
	return res, nil
}

// Undo reverts exactly one ply, including a checkmating one
func (g *Game) Undo() (Record, error) {
	if len(g.history) == 0 {
		return Record{}, ErrNothingToUndo
	}
	last := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]

	*g.board = last.board
	g.turn = last.turn
	g.state = last.state
	g.check = last.check
	g.lastResult = nil
	return last.record, nil
}

// UndoMoves reverts count plies or none at all
func (g *Game) UndoMoves(count int) error {
	if count < 1 {
		return fmt.Errorf("undo count must be positive")
	}
	if count > len(g.history) {
		return fmt.Errorf("%w: requested %d, have %d", ErrNothingToUndo, count, len(g.history))
	}
	for i := 0; i < count; i++ {
		if _, err := g.Undo(); err != nil {
			return err
		}
	}
	return nil
}

// Board returns a copy of the current position
func (g *Game) Board() *board.Board {
	return g.board.Clone()
}

func (g *Game) Turn() core.Color {
	return g.turn
}

func (g *Game) State() core.State {
	return g.state
}

// InCheck reports whether the side to move is in check
func (g *Game) InCheck() bool {
	return g.check
}

func (g *Game) LastResult() *Result {
	return g.lastResult
}

func (g *Game) InitialFEN() string {
	return g.initialFEN
}

// StandardStart reports whether the game began from the standard position
func (g *Game) StandardStart() bool {
	return g.initialFEN == board.StartingFEN
}

func (g *Game) FEN() string {
	offset := 0
	if g.initialTurn == core.ColorBlack {
		offset = 1
	}
	return g.board.FEN(g.turn, g.startMove+(len(g.history)+offset)/2)
}

// Len returns the number of plies played
func (g *Game) Len() int {
	return len(g.history)
}

// Records returns the accepted plies in order
func (g *Game) Records() []Record {
	records := make([]Record, len(g.history))
	for i, s := range g.history {
		records[i] = s.record
	}
	return records
}

// Moves returns the plies in long algebraic form
func (g *Game) Moves() []string {
	moves := make([]string, len(g.history))
	for i, s := range g.history {
		moves[i] = s.record.UCI()
	}
	return moves
}

// LegalMoves lists the moves available to the side to move
func (g *Game) LegalMoves() ([][2]int, error) {
	if g.state.IsOver() {
		return nil, nil
	}
	return board.LegalMoves(g.board, g.turn)
}
