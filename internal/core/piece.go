package core

// Kind identifies a piece type. KindEmpty marks a vacant square.
type Kind byte

const (
	KindEmpty Kind = iota
	KindPawn
	KindRook
	KindKnight
	KindBishop
	KindQueen
	KindKing
)

var kindLetters = [...]byte{
	KindEmpty:  '.',
	KindPawn:   'p',
	KindRook:   'r',
	KindKnight: 'n',
	KindBishop: 'b',
	KindQueen:  'q',
	KindKing:   'k',
}

func (k Kind) String() string {
	switch k {
	case KindPawn:
		return "pawn"
	case KindRook:
		return "rook"
	case KindKnight:
		return "knight"
	case KindBishop:
		return "bishop"
	case KindQueen:
		return "queen"
	case KindKing:
		return "king"
	default:
		return "empty"
	}
}

// Letter returns the lowercase piece letter, '.' for empty
func (k Kind) Letter() byte {
	if int(k) >= len(kindLetters) {
		return '?'
	}
	return kindLetters[k]
}

// IsPromotion reports whether a pawn may promote to k
func (k Kind) IsPromotion() bool {
	return k == KindQueen || k == KindRook || k == KindBishop || k == KindKnight
}

// KindFromLetter maps a case-insensitive piece letter to its kind
func KindFromLetter(ch byte) (Kind, bool) {
	if ch >= 'A' && ch <= 'Z' {
		ch += 'a' - 'A'
	}
	for k, l := range kindLetters {
		if l == ch && Kind(k) != KindEmpty {
			return Kind(k), true
		}
	}
	return KindEmpty, false
}

// Piece is a value type. Copying a Piece copies its pawn flags.
type Piece struct {
	Kind  Kind
	Color Color

	// Pawn-only flags
	HasMovedOnce        bool
	EnPassantVulnerable bool
}

// Empty is the vacant square
var Empty = Piece{}

func NewPiece(kind Kind, color Color) Piece {
	return Piece{Kind: kind, Color: color}
}

func (p Piece) IsEmpty() bool {
	return p.Kind == KindEmpty
}

// Symbol returns the FEN letter: uppercase for white, lowercase for black
func (p Piece) Symbol() byte {
	l := p.Kind.Letter()
	if p.Color == ColorWhite && p.Kind != KindEmpty {
		return l - ('a' - 'A')
	}
	return l
}

// PieceFromSymbol is the inverse of Symbol for non-empty pieces
func PieceFromSymbol(ch byte) (Piece, bool) {
	kind, ok := KindFromLetter(ch)
	if !ok {
		return Empty, false
	}
	color := ColorBlack
	if ch >= 'A' && ch <= 'Z' {
		color = ColorWhite
	}
	return NewPiece(kind, color), true
}
