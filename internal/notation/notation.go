// Package notation converts between square indices and algebraic coordinates.
// Index 0 is a1, index 7 is h1, index 63 is h8.
package notation

import (
	"errors"
	"fmt"
	"strings"

	"termchess/internal/core"
)

var ErrMalformedCoordinate = errors.New("malformed coordinate")

// ToIndex converts a two-character coordinate such as "e4" to 0..63.
// The file letter is case-insensitive.
func ToIndex(coord string) (int, error) {
	if len(coord) != 2 {
		return -1, fmt.Errorf("%w: %q", ErrMalformedCoordinate, coord)
	}
	file := coord[0]
	if file >= 'A' && file <= 'H' {
		file += 'a' - 'A'
	}
	rank := coord[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return -1, fmt.Errorf("%w: %q", ErrMalformedCoordinate, coord)
	}
	return int(rank-'1')*8 + int(file-'a'), nil
}

// ToCoordinate converts 0..63 to a lowercase coordinate. Off-board indices yield "".
func ToCoordinate(sq int) string {
	if sq < 0 || sq > 63 {
		return ""
	}
	return string([]byte{byte('a' + sq%8), byte('1' + sq/8)})
}

// ParseDestination splits a destination token with an optional promotion suffix ("e8", "e8n").
func ParseDestination(token string) (int, core.Kind, error) {
	promo := core.KindEmpty
	if len(token) == 3 {
		kind, ok := core.KindFromLetter(token[2])
		if !ok || !kind.IsPromotion() {
			return -1, core.KindEmpty, fmt.Errorf("%w: %q", ErrMalformedCoordinate, token)
		}
		promo = kind
		token = token[:2]
	}
	sq, err := ToIndex(token)
	if err != nil {
		return -1, core.KindEmpty, err
	}
	return sq, promo, nil
}

// ParseMove reads "e2e4", "e2 e4", "e2-e4" or "e7e8q"
func ParseMove(s string) (from, to int, promo core.Kind, err error) {
	s = strings.TrimSpace(s)
	var origin, dest string
	if fields := strings.Fields(s); len(fields) == 2 {
		origin, dest = fields[0], fields[1]
	} else {
		s = strings.ReplaceAll(s, "-", "")
		if len(s) < 4 || len(s) > 5 {
			return -1, -1, core.KindEmpty, fmt.Errorf("%w: %q", ErrMalformedCoordinate, s)
		}
		origin, dest = s[:2], s[2:]
	}

	if from, err = ToIndex(origin); err != nil {
		return -1, -1, core.KindEmpty, err
	}
	if to, promo, err = ParseDestination(dest); err != nil {
		return -1, -1, core.KindEmpty, err
	}
	return from, to, promo, nil
}

// FormatMove is the inverse of ParseMove in compact form
func FormatMove(from, to int, promo core.Kind) string {
	s := ToCoordinate(from) + ToCoordinate(to)
	if promo.IsPromotion() {
		s += string(promo.Letter())
	}
	return s
}
