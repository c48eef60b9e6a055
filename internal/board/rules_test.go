package board

import "testing"

func TestPieceRules(t *testing.T) {
	tests := []struct {
		name       string
		fen        string
		from, to   string
		canMove    bool
		canCapture bool
	}{
		{"pawn single step", StartingFEN, "e2", "e3", true, false},
		{"pawn double step", StartingFEN, "e2", "e4", true, false},
		{"black pawn double step", StartingFEN, "e7", "e5", true, false},
		{"pawn triple step", StartingFEN, "e2", "e5", false, false},
		{"pawn sideways", StartingFEN, "e2", "d2", false, false},
		{"pawn double step blocked", "4k3/8/8/8/8/4n3/4P3/4K3 w - - 0 1", "e2", "e4", false, false},
		{"pawn single step blocked", "4k3/8/8/8/8/4n3/4P3/4K3 w - - 0 1", "e2", "e3", false, false},
		{"moved pawn cannot double step", "4k3/8/8/8/8/4P3/8/4K3 w - - 0 1", "e3", "e5", false, false},
		{"pawn backwards", "4k3/8/8/8/8/4P3/8/4K3 w - - 0 1", "e3", "e2", false, false},
		{"pawn captures diagonally", "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1", "e4", "d5", false, true},
		{"pawn blocked by enemy ahead", "4k3/8/8/4p3/4P3/8/8/4K3 w - - 0 1", "e4", "e5", false, false},
		{"pawn diagonal onto empty", "4k3/8/8/8/4P3/8/8/4K3 w - - 0 1", "e4", "d5", false, false},
		{"pawn capture across board edge", "4k3/8/8/p7/7P/8/8/4K3 w - - 0 1", "h4", "a5", false, false},
		{"pawn en passant", "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1", "e5", "d6", false, true},
		{"black pawn captures", "4k3/8/8/3p4/4P3/8/8/4K3 b - - 0 1", "d5", "e4", false, true},
		{"rook along file", "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", "a1", "a8", true, true},
		{"rook along rank", "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", "a1", "d1", true, true},
		{"rook blocked", "4k3/8/8/8/8/8/P7/R3K3 w - - 0 1", "a1", "a8", false, false},
		{"rook through king", "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", "a1", "h1", false, false},
		{"rook no wrap", "4k3/8/8/8/8/8/8/4K2R w - - 0 1", "h1", "a2", false, false},
		{"bishop diagonal", "4k3/8/8/8/8/8/8/2B1K3 w - - 0 1", "c1", "h6", true, true},
		{"bishop blocked", "4k3/8/8/8/8/8/3P4/2B1K3 w - - 0 1", "c1", "h6", false, false},
		{"bishop no wrap", "4k3/8/8/8/8/7B/8/4K3 w - - 0 1", "h3", "a5", false, false},
		{"bishop straight", "4k3/8/8/8/8/8/8/2B1K3 w - - 0 1", "c1", "c5", false, false},
		{"knight jump", StartingFEN, "g1", "f3", true, true},
		{"knight over pieces", StartingFEN, "b1", "c3", true, true},
		{"knight straight", StartingFEN, "g1", "g3", false, false},
		{"knight no wrap", "4k3/8/8/8/8/8/8/4K2N w - - 0 1", "h1", "a2", false, false},
		{"queen diagonal", "4k3/8/8/8/8/8/8/3QK3 w - - 0 1", "d1", "h5", true, true},
		{"queen file", "4k3/8/8/8/8/8/8/3QK3 w - - 0 1", "d1", "d8", true, true},
		{"queen knight shape", "4k3/8/8/8/8/8/8/3QK3 w - - 0 1", "d1", "e3", false, false},
		{"king one step", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", "e1", "d2", true, true},
		{"king two steps", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", "e1", "e3", false, false},
		{"king no wrap", "4k3/8/8/8/8/8/8/7K w - - 0 1", "h1", "a2", false, false},
		{"empty origin", StartingFEN, "e4", "e5", false, false},
		{"same square", StartingFEN, "e2", "e2", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustFEN(t, tt.fen).Board
			from, to := sq(t, tt.from), sq(t, tt.to)
			if got := CanMove(b, from, to); got != tt.canMove {
				t.Fatalf("CanMove(%s,%s) = %v, want %v", tt.from, tt.to, got, tt.canMove)
			}
			if got := CanCapture(b, from, to); got != tt.canCapture {
				t.Fatalf("CanCapture(%s,%s) = %v, want %v", tt.from, tt.to, got, tt.canCapture)
			}
		})
	}
}

func TestRulesOffBoard(t *testing.T) {
	b := New()
	if CanMove(b, -1, 5) || CanMove(b, 8, 64) || CanCapture(b, 1, 70) {
		t.Fatalf("off-board squares must never be legal")
	}
}
