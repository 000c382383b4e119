package game

import (
	"sync"
	"time"

	"chess3d/internal/chess3d"
)

// GameState 包一个回合控制器。Game 本身不加锁，所有访问都走 Do。
type GameState struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	mu   sync.Mutex
	game *chess3d.Game
}

// Do 在锁内执行 fn；fn 返回后更新 UpdatedAt。
func (s *GameState) Do(fn func(g *chess3d.Game) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := fn(s.game)
	s.UpdatedAt = time.Now()
	return err
}

// View 只读访问，不改 UpdatedAt。
func (s *GameState) View(fn func(g *chess3d.Game)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.game)
}
