// Package service keeps the live game sessions shared by the terminal and
// HTTP front ends: session registry, seat tokens, saves, archive and waiters.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"termchess/internal/game"
	"termchess/internal/storage"

	"github.com/google/uuid"
)

const (
	IdleTimeout        = 2 * time.Hour
	CleanupJobInterval = 10 * time.Minute
	SeatTokenTTL       = 24 * time.Hour
)

var (
	ErrGameNotFound  = errors.New("game not found")
	ErrSeatTaken     = errors.New("seat already claimed")
	ErrUnauthorized  = errors.New("seat token required")
	ErrSavesDisabled = errors.New("no save storage configured")
)

// SaveStore holds save slots. Implemented by storage.Store and storage.SaveDir.
type SaveStore interface {
	PutSave(record storage.SaveRecord) error
	GetSave(saveID string) (storage.SaveRecord, error)
	ListSaves() ([]storage.SaveRecord, error)
}

type session struct {
	game       *game.Game
	seats      map[string]string // color letter -> seat ID
	lastActive time.Time
}

// Service coordinates game sessions, seat tokens, saves and the archive
type Service struct {
	games     map[string]*session
	mu        sync.RWMutex
	store     *storage.Store // nil if archive disabled
	saves     SaveStore      // nil if saves disabled
	jwtSecret []byte
	waiter    *WaitRegistry
	now       func() time.Time
}

// New creates a service. store and saves are optional.
func New(store *storage.Store, saves SaveStore, jwtSecret []byte) *Service {
	return &Service{
		games:     make(map[string]*session),
		store:     store,
		saves:     saves,
		jwtSecret: jwtSecret,
		waiter:    NewWaitRegistry(),
		now:       time.Now,
	}
}

// GetStorageHealth returns the archive status
func (s *Service) GetStorageHealth() string {
	if s.store == nil {
		return "disabled"
	}
	if s.store.IsHealthy() {
		return "ok"
	}
	return "degraded"
}

// RegisterWait registers a client to wait for a game to move past plies
func (s *Service) RegisterWait(gameID string, plies int, ctx context.Context) <-chan struct{} {
	ch := s.waiter.RegisterWait(gameID, plies, ctx)

	// a move that landed before registration would otherwise go unnoticed
	current := -1
	s.mu.RLock()
	if sess, ok := s.games[gameID]; ok {
		current = sess.game.Len()
	}
	s.mu.RUnlock()
	if current != plies {
		s.waiter.NotifyGame(gameID, current)
	}
	return ch
}

// generateGameID must be called with s.mu held
func (s *Service) generateGameID() string {
	for {
		id := uuid.New().String()
		if _, exists := s.games[id]; !exists {
			return id
		}
	}
}

// lookup must be called with s.mu held
func (s *Service) lookup(gameID string) (*session, error) {
	sess, ok := s.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return sess, nil
}

// Shutdown releases waiters and closes the archive
func (s *Service) Shutdown(timeout time.Duration) error {
	var errs []error

	if err := s.waiter.Shutdown(timeout); err != nil {
		errs = append(errs, fmt.Errorf("wait registry: %w", err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.games = make(map[string]*session)

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	return errors.Join(errs...)
}

// RunCleanupJob periodically drops sessions idle for longer than IdleTimeout
func (s *Service) RunCleanupJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.cleanupIdle(); n > 0 {
				log.Printf("cleanup: removed %d idle games", n)
			}
		}
	}
}

func (s *Service) cleanupIdle() int {
	cutoff := s.now().Add(-IdleTimeout)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.games {
		if sess.lastActive.Before(cutoff) {
			s.waiter.RemoveGame(id)
			delete(s.games, id)
			removed++
		}
	}
	return removed
}
