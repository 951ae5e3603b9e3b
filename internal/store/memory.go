// internal/store/memory.go
//
// In-memory implementation of the Store interface for live hangman rounds.
//
// Characteristics:
//   - Stores *game.Game objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Update runs a turn under the write lock, so one game is never mutated
//     by two requests at once.
//   - Every Save/Update stamps the entry; Prune drops entries not touched
//     since a cutoff.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/ahorcado/internal/game"
)

// ErrNotFound is returned for an unknown game ID.
var ErrNotFound = errors.New("store: game not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save persists or updates a game state.
	Save(ctx context.Context, g *game.Game) error

	// Update looks up a game and calls fn with exclusive access to it.
	// Returns ErrNotFound if the game is missing, otherwise fn's error.
	Update(ctx context.Context, id string, fn func(g *game.Game) error) error

	// View calls fn with shared access to a game. fn must not mutate it.
	View(ctx context.Context, id string, fn func(g *game.Game) error) error

	// Delete removes a game. Deleting a missing game is not an error.
	Delete(ctx context.Context, id string) error

	// Prune removes games last saved or updated before cutoff and reports
	// how many were removed.
	Prune(ctx context.Context, cutoff time.Time) int

	// Len reports how many games are stored.
	Len() int
}

type entry struct {
	g       *game.Game
	touched time.Time
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex      // guards games map
	games map[string]*entry // keyed by Game.ID
	now   func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]*entry), now: time.Now}
}

// Save adds or updates the game in the map.
func (m *memory) Save(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = &entry{g: g, touched: m.now()}
	return nil
}

// Update runs fn on the stored game while holding the write lock.
func (m *memory) Update(ctx context.Context, id string, fn func(g *game.Game) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.games[id]
	if !ok {
		return ErrNotFound
	}
	e.touched = m.now()
	return fn(e.g)
}

// View runs fn on the stored game while holding the read lock.
func (m *memory) View(ctx context.Context, id string, fn func(g *game.Game) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.games[id]
	if !ok {
		return ErrNotFound
	}
	return fn(e.g)
}

// Delete drops the game from the map.
func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}

// Prune drops every game not touched since cutoff.
func (m *memory) Prune(ctx context.Context, cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.games {
		if e.touched.Before(cutoff) {
			delete(m.games, id)
			n++
		}
	}
	return n
}

// Len reports the number of stored games.
func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}
