package board

import "termchess/internal/core"

// PromotionChooser picks the piece a pawn promotes to. Invalid answers fall back to a queen.
type PromotionChooser func(c core.Color) core.Kind

// DefaultPromotion always promotes to a queen
func DefaultPromotion(core.Color) core.Kind {
	return core.KindQueen
}

// PromoteTo returns a chooser with a fixed answer
func PromoteTo(k core.Kind) PromotionChooser {
	if !k.IsPromotion() {
		return DefaultPromotion
	}
	return func(core.Color) core.Kind { return k }
}

// Move describes an applied move and its side effects
type Move struct {
	From      int
	To        int
	Piece     core.Piece // mover before the move
	Captured  core.Piece
	Promotion core.Kind // KindEmpty unless promoted

	IsCapture          bool
	IsPromotion        bool
	IsEnPassantCapture bool
}

// ApplyMove validates and performs a move for mover. The board is only
// modified when the returned outcome is Moved or Captured. ApplyMove does
// not test whether the mover's own king is left in check.
func (b *Board) ApplyMove(mover core.Color, from, to int, choose PromotionChooser) (Move, core.Outcome) {
	m := Move{From: from, To: to}

	if from == to {
		return m, core.OutcomeSameSquare
	}
	p := b.At(from)
	if p.IsEmpty() {
		return m, core.OutcomeEmptyOrigin
	}
	if p.Color != mover {
		return m, core.OutcomeWrongColorOrigin
	}
	if !OnBoard(to) {
		return m, core.OutcomeIllegalQuietMove
	}
	m.Piece = p

	target := b.At(to)
	switch {
	case target.IsEmpty():
		if CanMove(b, from, to) {
			break
		}
		if p.Kind == core.KindPawn && CanCapture(b, from, to) {
			m.IsCapture = true
			m.IsEnPassantCapture = true
			m.Captured = b.At(to - pawnDirection(mover))
			break
		}
		return m, core.OutcomeIllegalQuietMove
	case target.Color == mover:
		return m, core.OutcomeOwnPieceAtDestination
	default:
		if !CanCapture(b, from, to) {
			return m, core.OutcomeIllegalCapture
		}
		m.IsCapture = true
		m.Captured = target
	}

	// A double step is only capturable en passant on the very next reply
	b.clearEnPassant(mover)

	moved := p
	if p.Kind == core.KindPawn {
		moved.HasMovedOnce = true
		moved.EnPassantVulnerable = abs(to-from) == 16
	}
	b.squares[to] = moved
	b.squares[from] = core.Empty

	if p.Kind == core.KindPawn && isLastRank(mover, to) {
		kind := core.KindQueen
		if choose != nil {
			if k := choose(mover); k.IsPromotion() {
				kind = k
			}
		}
		b.squares[to] = core.NewPiece(kind, mover)
		m.IsPromotion = true
		m.Promotion = kind
	}

	if m.IsEnPassantCapture {
		b.squares[to-pawnDirection(mover)] = core.Empty
	}

	if m.IsCapture {
		return m, core.OutcomeCaptured
	}
	return m, core.OutcomeMoved
}

func (b *Board) clearEnPassant(c core.Color) {
	for sq := range b.squares {
		if b.squares[sq].Color == c {
			b.squares[sq].EnPassantVulnerable = false
		}
	}
}

func isLastRank(c core.Color, sq int) bool {
	if c == core.ColorWhite {
		return Rank(sq) == 7
	}
	return Rank(sq) == 0
}
