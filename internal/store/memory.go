// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Holds in-flight word-chain games; finished games are also written to SQLite
// by the HTTP layer, so losing this map on restart only drops unfinished play.
//
// Characteristics:
//   - Stores *game.Game objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Update serializes mutations of one game, so two submissions for the same
//     chain never interleave.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/wordchain/internal/game"
)

// ErrNotFound is returned for unknown game IDs.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save persists or updates a game state.
	Save(ctx context.Context, g *game.Game) error

	// Get retrieves a game by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*game.Game, error)

	// Update runs fn on the stored game while holding that game's lock.
	Update(ctx context.Context, id string, fn func(g *game.Game) error) error

	// Delete removes a game. Unknown IDs are ignored.
	Delete(ctx context.Context, id string) error
}

type entry struct {
	mu sync.Mutex
	g  *game.Game
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex      // guards games map
	games map[string]*entry // keyed by Game.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]*entry)}
}

func (m *memory) Save(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.games[g.ID]; ok {
		e.mu.Lock()
		e.g = g
		e.mu.Unlock()
		return nil
	}
	m.games[g.ID] = &entry{g: g}
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*game.Game, error) {
	m.mu.RLock()
	e, ok := m.games[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.g, nil
}

func (m *memory) Update(ctx context.Context, id string, fn func(g *game.Game) error) error {
	m.mu.RLock()
	e, ok := m.games[id]
	m.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.g)
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}
