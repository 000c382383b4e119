package game

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"chess3d/internal/chess3d"
)

var ErrGameNotFound = errors.New("game not found")

type Manager struct {
	mu    sync.RWMutex
	games map[string]*GameState
}

func NewManager() *Manager {
	return &Manager{games: make(map[string]*GameState)}
}

func (m *Manager) NewGame() *GameState {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	g := &GameState{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		game:      chess3d.NewGame(),
	}
	m.games[g.ID] = g
	return g
}

func (m *Manager) Get(id string) (*GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return g, nil
}

// Reset 把对局恢复到开局，ID 不变。
func (m *Manager) Reset(id string) (*GameState, error) {
	g, err := m.Get(id)
	if err != nil {
		return nil, err
	}
	err = g.Do(func(gm *chess3d.Game) error {
		gm.Start()
		return nil
	})
	return g, err
}

func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return ErrGameNotFound
	}
	delete(m.games, id)
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// Prune 删掉 UpdatedAt 早于 before 的对局，返回删掉的数量。
func (m *Manager) Prune(before time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, g := range m.games {
		g.mu.Lock()
		stale := g.UpdatedAt.Before(before)
		g.mu.Unlock()
		if stale {
			delete(m.games, id)
			n++
		}
	}
	return n
}
