package core

import "fmt"

type Color byte

const (
	ColorWhite Color = 'w'
	ColorBlack Color = 'b'
)

func OppositeColor(c Color) Color {
	if c == ColorWhite {
		return ColorBlack
	}
	return ColorWhite
}

// String returns the single-letter form used in saves and FEN
func (c Color) String() string {
	return string(c)
}

// Name returns the capitalized color name for display
func (c Color) Name() string {
	switch c {
	case ColorWhite:
		return "White"
	case ColorBlack:
		return "Black"
	default:
		return "Unknown"
	}
}

func (c Color) Valid() bool {
	return c == ColorWhite || c == ColorBlack
}

// ParseColor accepts "w", "b", "white" or "black"
func ParseColor(s string) (Color, error) {
	switch s {
	case "w", "white":
		return ColorWhite, nil
	case "b", "black":
		return ColorBlack, nil
	default:
		return 0, fmt.Errorf("invalid color: %q", s)
	}
}
