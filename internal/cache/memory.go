package cache

import (
	"context"
	"sync"
	"time"

	"github.com/biaslens/biaslens/internal/models"
)

type memoryEntry struct {
	key string
	ts  time.Time
}

// MemoryStore is an in-process cache with a ttl window and a capacity
// bound; the oldest entries are compacted away on write.
type MemoryStore struct {
	mu       sync.Mutex
	items    map[string]memoryItem
	order    []memoryEntry
	capacity int
	ttl      time.Duration
}

type memoryItem struct {
	result models.AnalysisResult
	ts     time.Time
}

func NewMemoryStore(capacity int, ttl time.Duration) *MemoryStore {
	if capacity <= 0 {
		capacity = 1
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &MemoryStore{
		items:    make(map[string]memoryItem, capacity),
		order:    make([]memoryEntry, 0, capacity),
		capacity: capacity,
		ttl:      ttl,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (models.AnalysisResult, bool, error) {
	now := time.Now()
	hashed := hashKey(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[hashed]
	if !ok || now.Sub(item.ts) > s.ttl {
		return models.AnalysisResult{}, false, nil
	}
	return item.result, true, nil
}

func (s *MemoryStore) Put(_ context.Context, key string, result models.AnalysisResult) error {
	now := time.Now()
	hashed := hashKey(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[hashed] = memoryItem{result: result, ts: now}
	s.order = append(s.order, memoryEntry{key: hashed, ts: now})
	s.compact(now)
	return nil
}

func (s *MemoryStore) compact(now time.Time) {
	cutoff := now.Add(-s.ttl)

	for len(s.order) > 0 && (len(s.items) > s.capacity || s.order[0].ts.Before(cutoff)) {
		oldest := s.order[0]
		s.order = s.order[1:]

		if item, ok := s.items[oldest.key]; ok {
			if item.ts.Equal(oldest.ts) {
				delete(s.items, oldest.key)
			}
		}
	}
}
