package board

import "termchess/internal/core"

// movement answers a geometric question for the piece on from.
// Callers guarantee from != to, both on board, and a non-empty origin.
type movement func(v View, p core.Piece, from, to int) bool

type rule struct {
	move    movement
	capture movement
}

var rules = map[core.Kind]rule{
	core.KindPawn:   {move: pawnMove, capture: pawnCapture},
	core.KindRook:   {move: rookMove, capture: rookMove},
	core.KindKnight: {move: knightMove, capture: knightMove},
	core.KindBishop: {move: bishopMove, capture: bishopMove},
	core.KindQueen:  {move: queenMove, capture: queenMove},
	core.KindKing:   {move: kingMove, capture: kingMove},
}

// CanMove reports whether the piece on from may travel to to without capturing.
// Destination occupancy is checked only for pawns; ApplyMove handles the rest.
func CanMove(v View, from, to int) bool {
	p, r, ok := lookup(v, from, to)
	if !ok {
		return false
	}
	return r.move(v, p, from, to)
}

// CanCapture reports whether the piece on from attacks to.
// For every kind except the pawn this is the same geometry as CanMove.
func CanCapture(v View, from, to int) bool {
	p, r, ok := lookup(v, from, to)
	if !ok {
		return false
	}
	return r.capture(v, p, from, to)
}

func lookup(v View, from, to int) (core.Piece, rule, bool) {
	if from == to || !OnBoard(from) || !OnBoard(to) {
		return core.Empty, rule{}, false
	}
	p := v.At(from)
	r, ok := rules[p.Kind]
	return p, r, ok
}

// pawnDirection is +8 for white and -8 for black
func pawnDirection(c core.Color) int {
	if c == core.ColorWhite {
		return 8
	}
	return -8
}

func pawnMove(v View, p core.Piece, from, to int) bool {
	if !v.At(to).IsEmpty() {
		return false
	}
	dir := pawnDirection(p.Color)
	if to == from+dir {
		return true
	}
	return !p.HasMovedOnce && to == from+2*dir && v.At(from+dir).IsEmpty()
}

func pawnCapture(v View, p core.Piece, from, to int) bool {
	dir := pawnDirection(p.Color)
	if abs(File(to)-File(from)) != 1 || Rank(to)-Rank(from) != dir/8 {
		return false
	}
	target := v.At(to)
	if !target.IsEmpty() {
		return target.Color != p.Color
	}
	// en passant: the victim sits beside the origin, behind the destination
	victim := v.At(to - dir)
	return victim.Kind == core.KindPawn && victim.Color != p.Color && victim.EnPassantVulnerable
}

func rookMove(v View, _ core.Piece, from, to int) bool {
	var step int
	switch {
	case File(from) == File(to):
		step = 8
	case Rank(from) == Rank(to):
		step = 1
	default:
		return false
	}
	if to < from {
		step = -step
	}
	for sq := from + step; sq != to; sq += step {
		if !v.At(sq).IsEmpty() {
			return false
		}
	}
	return true
}

func bishopMove(v View, _ core.Piece, from, to int) bool {
	df := File(to) - File(from)
	dr := Rank(to) - Rank(from)
	if df == 0 || abs(df) != abs(dr) {
		return false
	}
	step := sign(df) + 8*sign(dr)
	for sq := from + step; sq != to; sq += step {
		// intervening squares of a diagonal are never on the rim
		if sq < 8 || sq > 55 || File(sq) == 0 || File(sq) == 7 {
			return false
		}
		if !v.At(sq).IsEmpty() {
			return false
		}
	}
	return true
}

func queenMove(v View, p core.Piece, from, to int) bool {
	return rookMove(v, p, from, to) || bishopMove(v, p, from, to)
}

func knightMove(_ View, _ core.Piece, from, to int) bool {
	df := abs(File(to) - File(from))
	dr := abs(Rank(to) - Rank(from))
	return (df == 1 && dr == 2) || (df == 2 && dr == 1)
}

func kingMove(_ View, _ core.Piece, from, to int) bool {
	return abs(File(to)-File(from)) <= 1 && abs(Rank(to)-Rank(from)) <= 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
