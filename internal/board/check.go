package board

import (
	"fmt"

	"termchess/internal/core"
)

// KingSquare locates the king of color c
func KingSquare(v View, c core.Color) (int, error) {
	for sq := 0; sq < Size; sq++ {
		if p := v.At(sq); p.Kind == core.KindKing && p.Color == c {
			return sq, nil
		}
	}
	return -1, fmt.Errorf("%w: no %s king on board", ErrInvariantViolation, c.Name())
}

// InCheck reports whether any opposing piece can capture the king of color c
func InCheck(v View, c core.Color) (bool, error) {
	king, err := KingSquare(v, c)
	if err != nil {
		return false, err
	}
	return Attacked(v, king, core.OppositeColor(c)), nil
}

// Attacked reports whether any piece of color by can capture on sq
func Attacked(v View, sq int, by core.Color) bool {
	for from := 0; from < Size; from++ {
		if p := v.At(from); !p.IsEmpty() && p.Color == by && CanCapture(v, from, sq) {
			return true
		}
	}
	return false
}

// IsCheckmate reports whether c is in check with no reply that leaves its king safe.
// Every origin/destination pair is tried on a scratch copy; b is never modified.
func IsCheckmate(b *Board, c core.Color) (bool, error) {
	inCheck, err := InCheck(b, c)
	if err != nil {
		return false, err
	}
	if !inCheck {
		return false, nil
	}
	replies, err := legalReplies(b, c, 1)
	if err != nil {
		return false, err
	}
	return len(replies) == 0, nil
}

// LegalMoves lists every (from, to) pair for c that succeeds and leaves its king safe
func LegalMoves(b *Board, c core.Color) ([][2]int, error) {
	return legalReplies(b, c, -1)
}

// legalReplies stops after limit moves when limit > 0
func legalReplies(b *Board, c core.Color, limit int) ([][2]int, error) {
	var moves [][2]int
	for from := 0; from < Size; from++ {
		if p := b.At(from); p.IsEmpty() || p.Color != c {
			continue
		}
		for to := 0; to < Size; to++ {
			if !CanMove(b, from, to) && !CanCapture(b, from, to) {
				continue
			}
			trial := b.Clone()
			if _, outcome := trial.ApplyMove(c, from, to, DefaultPromotion); !outcome.Success() {
				continue
			}
			inCheck, err := InCheck(trial, c)
			if err != nil {
				return nil, err
			}
			if inCheck {
				continue
			}
			moves = append(moves, [2]int{from, to})
			if limit > 0 && len(moves) >= limit {
				return moves, nil
			}
		}
	}
	return moves, nil
}
