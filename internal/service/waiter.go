package service

import (
	"context"
	"fmt"
	"sync"
	"time"
)

const (
	// WaitTimeout bounds a single long-poll
	WaitTimeout = 25 * time.Second

	waitChannelBuffer = 1
)

// WaitRegistry wakes long-polling and streaming clients when a game changes
type WaitRegistry struct {
	mu       sync.Mutex
	waiters  map[string][]*waiter // gameID -> waiting clients
	closed   bool
	shutdown chan struct{}
	wg       sync.WaitGroup
}

type waiter struct {
	plies  int           // ply count the client has already seen
	notify chan struct{} // buffered, one pending wakeup is enough
	timer  *time.Timer
}

func NewWaitRegistry() *WaitRegistry {
	return &WaitRegistry{
		waiters:  make(map[string][]*waiter),
		shutdown: make(chan struct{}),
	}
}

// RegisterWait returns a channel that fires once the game's ply count differs
// from plies, the game is removed, WaitTimeout passes, or ctx ends. The
// channel is closed on shutdown.
func (r *WaitRegistry) RegisterWait(gameID string, plies int, ctx context.Context) <-chan struct{} {
	w := &waiter{
		plies:  plies,
		notify: make(chan struct{}, waitChannelBuffer),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		close(w.notify)
		return w.notify
	}

	w.timer = time.AfterFunc(WaitTimeout, func() { wake(w) })
	r.waiters[gameID] = append(r.waiters[gameID], w)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		select {
		case <-ctx.Done():
			r.remove(gameID, w)
		case <-r.shutdown:
			w.timer.Stop()
			close(w.notify)
		}
	}()

	return w.notify
}

// NotifyGame wakes the waiters whose view of the game is stale
func (r *WaitRegistry) NotifyGame(gameID string, plies int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.waiters[gameID][:0]
	for _, w := range r.waiters[gameID] {
		if w.plies == plies {
			kept = append(kept, w)
			continue
		}
		w.timer.Stop()
		wake(w)
	}
	if len(kept) == 0 {
		delete(r.waiters, gameID)
	} else {
		r.waiters[gameID] = kept
	}
}

// RemoveGame wakes and forgets every waiter of a game
func (r *WaitRegistry) RemoveGame(gameID string) {
	r.mu.Lock()
	list := r.waiters[gameID]
	delete(r.waiters, gameID)
	r.mu.Unlock()

	for _, w := range list {
		w.timer.Stop()
		wake(w)
	}
}

// Pending returns the number of clients waiting on a game
func (r *WaitRegistry) Pending(gameID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.waiters[gameID])
}

// Shutdown closes every waiter channel and waits for the watch goroutines
func (r *WaitRegistry) Shutdown(timeout time.Duration) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.waiters = make(map[string][]*waiter)
	r.mu.Unlock()

	close(r.shutdown)

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("wait registry shutdown timed out after %s", timeout)
	}
}

func (r *WaitRegistry) remove(gameID string, target *waiter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	target.timer.Stop()
	list := r.waiters[gameID]
	for i, w := range list {
		if w == target {
			r.waiters[gameID] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(r.waiters[gameID]) == 0 {
		delete(r.waiters, gameID)
	}
}

func wake(w *waiter) {
	select {
	case w.notify <- struct{}{}:
	default:
	}
}
