package room

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/RobertoCosta33/baralho/engine"
	"github.com/RobertoCosta33/baralho/internal/store"
)

// Manager tracks the live rooms of this process.
type Manager struct {
	mu    sync.Mutex
	rooms map[uuid.UUID]*Room

	store store.Store
	log   *logrus.Logger

	// Defaults copied onto every room the manager creates.
	BotDelay   time.Duration
	OnRoundEnd OnRoundEndFunc
}

// NewManager returns an empty manager backed by the given store.
func NewManager(st store.Store, log *logrus.Logger) *Manager {
	return &Manager{
		rooms: make(map[uuid.UUID]*Room),
		store: st,
		log:   log,
	}
}

// Create deals a new match and registers it.
func (m *Manager) Create(names [engine.NumPlayers]string, bots [engine.NumPlayers]bool, seed uint64) (*Room, error) {
	r, err := New(m.store, m.log, names, bots, seed)
	if err != nil {
		return nil, err
	}
	r.BotDelay = m.BotDelay
	r.OnRoundEnd = m.OnRoundEnd

	m.mu.Lock()
	m.rooms[r.ID] = r
	m.mu.Unlock()
	return r, nil
}

// Get returns a registered room, or an error naming the missing id.
func (m *Manager) Get(id uuid.UUID) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return nil, fmt.Errorf("room %s not found", id)
	}
	return r, nil
}

// Resume loads a room from the store and registers it. Already-live
// rooms are returned as-is.
func (m *Manager) Resume(ctx context.Context, id uuid.UUID) (*Room, error) {
	m.mu.Lock()
	if r, ok := m.rooms[id]; ok {
		m.mu.Unlock()
		return r, nil
	}
	m.mu.Unlock()

	r, err := Resume(ctx, m.store, m.log, id)
	if err != nil {
		return nil, err
	}
	r.BotDelay = m.BotDelay
	r.OnRoundEnd = m.OnRoundEnd

	m.mu.Lock()
	m.rooms[id] = r
	m.mu.Unlock()
	return r, nil
}

// Close drops a room from the registry and deletes its snapshot.
func (m *Manager) Close(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	r, ok := m.rooms[id]
	delete(m.rooms, id)
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("room %s not found", id)
	}
	return r.Forget(ctx)
}
