package board

import (
	"errors"
	"testing"

	"termchess/internal/core"
)

func TestInCheck(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		color core.Color
		want  bool
	}{
		{"start", StartingFEN, core.ColorWhite, false},
		{"rook on file", "4k3/8/8/8/8/8/8/4R2K b - - 0 1", core.ColorBlack, true},
		{"rook blocked", "4k3/4p3/8/8/8/8/8/4R2K b - - 0 1", core.ColorBlack, false},
		{"knight", "4k3/8/3N4/8/8/8/8/7K b - - 0 1", core.ColorBlack, true},
		{"pawn", "4k3/3P4/8/8/8/8/8/7K b - - 0 1", core.ColorBlack, true},
		{"pawn straight ahead is no check", "8/8/8/8/8/4k3/4P3/7K b - - 0 1", core.ColorBlack, false},
		{"bishop", "4k3/8/8/8/B7/8/8/7K b - - 0 1", core.ColorBlack, true},
		{"attacker's own side unaffected", "4k3/8/8/8/8/8/8/4R2K w - - 0 1", core.ColorWhite, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustFEN(t, tt.fen).Board
			got, err := InCheck(b, tt.color)
			if err != nil {
				t.Fatalf("InCheck error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("InCheck = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMissingKing(t *testing.T) {
	b := Empty()
	b.Put(0, core.NewPiece(core.KindKing, core.ColorWhite))
	if _, err := InCheck(b, core.ColorBlack); !errors.Is(err, ErrInvariantViolation) {
		t.Fatalf("err = %v, want ErrInvariantViolation", err)
	}
	if _, err := IsCheckmate(b, core.ColorBlack); !errors.Is(err, ErrInvariantViolation) {
		t.Fatalf("err = %v, want ErrInvariantViolation", err)
	}
}

func TestIsCheckmate(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		color core.Color
		want  bool
	}{
		{"fool's mate", "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w - - 1 3", core.ColorWhite, true},
		{"back rank", "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1", core.ColorBlack, true},
		{"smothered", "6rk/5Npp/8/8/8/8/8/6K1 b - - 0 1", core.ColorBlack, true},
		{"king walks away", "4k3/8/8/8/8/8/8/4R2K b - - 0 1", core.ColorBlack, false},
		{"capture the checker", "4k3/8/8/8/8/8/4q3/4K3 w - - 0 1", core.ColorWhite, false},
		{"block the check", "4k3/8/8/8/8/2R5/PP6/K6r w - - 0 1", core.ColorWhite, false},
		{"protected checker", "4k3/8/8/8/8/3p4/4q3/4K3 w - - 0 1", core.ColorWhite, true},
		{"stalemate is not mate", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", core.ColorBlack, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustFEN(t, tt.fen).Board
			before := b.Clone()
			got, err := IsCheckmate(b, tt.color)
			if err != nil {
				t.Fatalf("IsCheckmate error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("IsCheckmate = %v, want %v", got, tt.want)
			}
			if !b.Equal(before) {
				t.Fatalf("IsCheckmate modified the board")
			}
		})
	}
}

func TestLegalMovesFromStart(t *testing.T) {
	moves, err := LegalMoves(New(), core.ColorWhite)
	if err != nil {
		t.Fatalf("LegalMoves: %v", err)
	}
	if len(moves) != 20 {
		t.Fatalf("got %d legal moves, want 20", len(moves))
	}
}
