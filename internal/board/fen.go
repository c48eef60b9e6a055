package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"termchess/internal/core"
)

var ErrInvalidFEN = errors.New("invalid FEN")

// Position is a board plus the FEN fields this engine tracks
type Position struct {
	Board    *Board
	Turn     core.Color
	Fullmove int
}

// ParseFEN reads a FEN string. The castling field is accepted and ignored;
// the halfmove and fullmove counters are optional.
func ParseFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 2 || len(parts) > 6 {
		return nil, fmt.Errorf("%w: expected 2 to 6 fields, got %d", ErrInvalidFEN, len(parts))
	}

	b := Empty()

	ranks := strings.Split(parts[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("%w: expected 8 ranks", ErrInvalidFEN)
	}

	for i, row := range ranks {
		r := 7 - i
		file := 0
		for j := 0; j < len(row); j++ {
			ch := row[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			if file >= 8 {
				return nil, fmt.Errorf("%w: too many pieces in rank %d", ErrInvalidFEN, r+1)
			}
			p, ok := core.PieceFromSymbol(ch)
			if !ok {
				return nil, fmt.Errorf("%w: unknown piece %q", ErrInvalidFEN, ch)
			}
			if p.Kind == core.KindPawn {
				if r == 0 || r == 7 {
					return nil, fmt.Errorf("%w: pawn on rank %d", ErrInvalidFEN, r+1)
				}
				p.HasMovedOnce = !onStartRank(p.Color, r)
			}
			b.squares[r*8+file] = p
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("%w: rank %d has %d files", ErrInvalidFEN, r+1, file)
		}
	}

	for _, c := range []core.Color{core.ColorWhite, core.ColorBlack} {
		if n := b.Count(core.KindKing, c); n != 1 {
			return nil, fmt.Errorf("%w: %d %s kings", ErrInvalidFEN, n, strings.ToLower(c.Name()))
		}
	}

	pos := &Position{Board: b, Fullmove: 1}
	switch parts[1] {
	case "w":
		pos.Turn = core.ColorWhite
	case "b":
		pos.Turn = core.ColorBlack
	default:
		return nil, fmt.Errorf("%w: turn must be 'w' or 'b'", ErrInvalidFEN)
	}

	if len(parts) > 3 && parts[3] != "-" {
		if err := markEnPassant(b, parts[3], pos.Turn); err != nil {
			return nil, err
		}
	}

	if len(parts) > 5 {
		n, err := strconv.Atoi(parts[5])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: fullmove counter", ErrInvalidFEN)
		}
		pos.Fullmove = n
	}

	return pos, nil
}

// markEnPassant flags the pawn that just double-stepped past target
func markEnPassant(b *Board, target string, turn core.Color) error {
	if len(target) != 2 || target[0] < 'a' || target[0] > 'h' || target[1] < '1' || target[1] > '8' {
		return fmt.Errorf("%w: en passant square %q", ErrInvalidFEN, target)
	}
	sq := int(target[1]-'1')*8 + int(target[0]-'a')
	mover := core.OppositeColor(turn)
	pawnSq := sq + pawnDirection(mover)
	p := b.At(pawnSq)
	if p.Kind != core.KindPawn || p.Color != mover {
		return fmt.Errorf("%w: no pawn behind en passant square %q", ErrInvalidFEN, target)
	}
	b.squares[pawnSq].EnPassantVulnerable = true
	return nil
}

func onStartRank(c core.Color, rank int) bool {
	if c == core.ColorWhite {
		return rank == 1
	}
	return rank == 6
}

// FEN serializes b with turn as the side to move. Castling is always "-"
// and the halfmove clock is not tracked.
func (b *Board) FEN(turn core.Color, fullmove int) string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			p := b.squares[r*8+f]
			if p.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.Symbol())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}

	ep := "-"
	mover := core.OppositeColor(turn)
	for sq, p := range b.squares {
		if p.Kind == core.KindPawn && p.Color == mover && p.EnPassantVulnerable {
			target := sq - pawnDirection(mover)
			ep = string([]byte{byte('a' + File(target)), byte('1' + Rank(target))})
			break
		}
	}

	if fullmove < 1 {
		fullmove = 1
	}
	return fmt.Sprintf("%s %s - %s 0 %d", sb.String(), turn, ep, fullmove)
}
