package board

import (
	"errors"
	"fmt"
	"strings"

	"termchess/internal/core"
)

const (
	Size = 64

	StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"
)

var ErrInvariantViolation = errors.New("board invariant violation")

// View is read-only access to square contents
type View interface {
	At(sq int) core.Piece
}

// Board holds 64 squares, index 0 = a1, 63 = h8.
// Board is a plain value: assigning or cloning it copies every piece.
type Board struct {
	squares [Size]core.Piece
}

var backRank = [8]core.Kind{
	core.KindRook, core.KindKnight, core.KindBishop, core.KindQueen,
	core.KindKing, core.KindBishop, core.KindKnight, core.KindRook,
}

// New returns the standard starting position
func New() *Board {
	b := &Board{}
	for f := 0; f < 8; f++ {
		b.squares[f] = core.NewPiece(backRank[f], core.ColorWhite)
		b.squares[8+f] = core.NewPiece(core.KindPawn, core.ColorWhite)
		b.squares[48+f] = core.NewPiece(core.KindPawn, core.ColorBlack)
		b.squares[56+f] = core.NewPiece(backRank[f], core.ColorBlack)
	}
	return b
}

// Empty returns a board with no pieces
func Empty() *Board {
	return &Board{}
}

func OnBoard(sq int) bool {
	return sq >= 0 && sq < Size
}

func File(sq int) int { return sq % 8 }
func Rank(sq int) int { return sq / 8 }

// At returns the piece on sq, or core.Empty when sq is off the board
func (b *Board) At(sq int) core.Piece {
	if !OnBoard(sq) {
		return core.Empty
	}
	return b.squares[sq]
}

// Put places p on sq
func (b *Board) Put(sq int, p core.Piece) error {
	if !OnBoard(sq) {
		return fmt.Errorf("%w: square %d out of range", ErrInvariantViolation, sq)
	}
	b.squares[sq] = p
	return nil
}

// Clone returns an independent deep copy
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// Squares returns a copy of all 64 slots
func (b *Board) Squares() [Size]core.Piece {
	return b.squares
}

// Equal compares piece placement and pawn flags
func (b *Board) Equal(o *Board) bool {
	return b.squares == o.squares
}

// Count returns the number of pieces of kind k and color c
func (b *Board) Count(k core.Kind, c core.Color) int {
	n := 0
	for _, p := range b.squares {
		if p.Kind == k && p.Color == c {
			n++
		}
	}
	return n
}

// ToASCII creates an ASCII representation of the board, rank 8 on top
func (b *Board) ToASCII() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")

	for r := 7; r >= 0; r-- {
		sb.WriteString(fmt.Sprintf("%d ", r+1))
		for f := 0; f < 8; f++ {
			sb.WriteByte(b.squares[r*8+f].Symbol())
			sb.WriteByte(' ')
		}
		sb.WriteString(fmt.Sprintf(" %d\n", r+1))
	}
	sb.WriteString("  a b c d e f g h")

	return sb.String()
}
