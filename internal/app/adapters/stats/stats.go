package stats

import (
	"sync"

	"github.com/adam-gdovin/keysight-local-bot/internal/app/infrastructure/storage"
)

// Stats counts successful relays per command, persisted across restarts.
type Stats struct {
	mu    sync.Mutex
	cache *storage.Cache[int64]
}

func New(filePath string) *Stats {
	return &Stats{
		cache: storage.NewCache[int64](0, 0, true, true, filePath, 0),
	}
}

func (s *Stats) Inc(command string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count, _ := s.cache.Get(command)
	s.cache.Set(command, count+1)
}

func (s *Stats) Snapshot() map[string]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cache.Items()
}
