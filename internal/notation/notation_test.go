package notation

import (
	"errors"
	"testing"

	"termchess/internal/core"
)

func TestToIndex(t *testing.T) {
	tests := []struct {
		coord string
		want  int
	}{
		{"a1", 0},
		{"h1", 7},
		{"a8", 56},
		{"h8", 63},
		{"e2", 12},
		{"E2", 12},
		{"d5", 35},
	}
	for _, tt := range tests {
		got, err := ToIndex(tt.coord)
		if err != nil {
			t.Fatalf("ToIndex(%q) error: %v", tt.coord, err)
		}
		if got != tt.want {
			t.Fatalf("ToIndex(%q) = %d, want %d", tt.coord, got, tt.want)
		}
	}
}

func TestToIndexMalformed(t *testing.T) {
	for _, coord := range []string{"", "e", "e22", "i1", "a0", "a9", "11", "ee", " e2"} {
		if _, err := ToIndex(coord); !errors.Is(err, ErrMalformedCoordinate) {
			t.Fatalf("ToIndex(%q) err = %v, want ErrMalformedCoordinate", coord, err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for sq := 0; sq < 64; sq++ {
		coord := ToCoordinate(sq)
		got, err := ToIndex(coord)
		if err != nil || got != sq {
			t.Fatalf("round trip %d -> %q -> %d (%v)", sq, coord, got, err)
		}
	}
	if ToCoordinate(64) != "" || ToCoordinate(-1) != "" {
		t.Fatalf("off-board index should give empty coordinate")
	}
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		in       string
		from, to int
		promo    core.Kind
	}{
		{"e2e4", 12, 28, core.KindEmpty},
		{"e2 e4", 12, 28, core.KindEmpty},
		{"E2-E4", 12, 28, core.KindEmpty},
		{"e7e8n", 52, 60, core.KindKnight},
		{"a2 a1Q", 8, 0, core.KindQueen},
	}
	for _, tt := range tests {
		from, to, promo, err := ParseMove(tt.in)
		if err != nil {
			t.Fatalf("ParseMove(%q) error: %v", tt.in, err)
		}
		if from != tt.from || to != tt.to || promo != tt.promo {
			t.Fatalf("ParseMove(%q) = %d %d %v, want %d %d %v", tt.in, from, to, promo, tt.from, tt.to, tt.promo)
		}
	}

	for _, bad := range []string{"e2", "e2e9", "e7e8k", "e7e8x", "zz zz"} {
		if _, _, _, err := ParseMove(bad); !errors.Is(err, ErrMalformedCoordinate) {
			t.Fatalf("ParseMove(%q) err = %v, want ErrMalformedCoordinate", bad, err)
		}
	}
}

func TestFormatMove(t *testing.T) {
	if got := FormatMove(12, 28, core.KindEmpty); got != "e2e4" {
		t.Fatalf("FormatMove = %q", got)
	}
	if got := FormatMove(52, 60, core.KindRook); got != "e7e8r" {
		t.Fatalf("FormatMove = %q", got)
	}
}
