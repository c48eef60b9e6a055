package service

import (
	"fmt"

	"termchess/internal/core"

	"github.com/google/uuid"
	"github.com/lixenwraith/auth"
)

// ClaimSeat reserves a color in a game and returns the bearer token that
// must accompany that color's moves from then on.
func (s *Service) ClaimSeat(gameID string, color core.Color) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(gameID)
	if err != nil {
		return "", err
	}
	if _, taken := sess.seats[color.String()]; taken {
		return "", fmt.Errorf("%w: %s", ErrSeatTaken, color.Name())
	}

	seatID := uuid.New().String()
	claims := map[string]any{
		"game":  gameID,
		"color": color.String(),
	}
	token, err := auth.GenerateHS256Token(s.jwtSecret, seatID, claims, SeatTokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to issue seat token: %w", err)
	}

	sess.seats[color.String()] = seatID
	sess.lastActive = s.now()
	return token, nil
}

// ValidateToken verifies a seat token and returns the seat ID with claims
func (s *Service) ValidateToken(token string) (string, map[string]any, error) {
	return auth.ValidateHS256Token(s.jwtSecret, token)
}

// authorize must be called with s.mu held. Unclaimed seats are open to anyone.
func (s *Service) authorize(gameID string, sess *session, color core.Color, token string) error {
	seatID, claimed := sess.seats[color.String()]
	if !claimed {
		return nil
	}
	if token == "" {
		return fmt.Errorf("%w: %s seat is claimed", ErrUnauthorized, color.Name())
	}

	subject, claims, err := s.ValidateToken(token)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if subject != seatID || claims["game"] != gameID || claims["color"] != color.String() {
		return fmt.Errorf("%w: token does not hold the %s seat", ErrUnauthorized, color.Name())
	}
	return nil
}
