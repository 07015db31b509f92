// Package cooldown rate-limits message XP per member.
package cooldown

import (
	"context"
	"sync"
	"time"
)

// Gate decides whether a member may earn message XP at now. A true result
// also starts a new window for that member.
type Gate interface {
	Allow(ctx context.Context, userID string, now time.Time) (bool, error)
}

// Memory is a process-local gate. Use Sweep to bound its size.
type Memory struct {
	window time.Duration

	mu   sync.Mutex
	last map[string]time.Time
}

func NewMemory(window time.Duration) *Memory {
	return &Memory{window: window, last: make(map[string]time.Time)}
}

func (m *Memory) Allow(_ context.Context, userID string, now time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if prev, ok := m.last[userID]; ok && now.Sub(prev) < m.window {
		return false, nil
	}
	m.last[userID] = now
	return true, nil
}

// Sweep forgets members whose window has passed and returns how many.
func (m *Memory) Sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for id, prev := range m.last {
		if now.Sub(prev) >= m.window {
			delete(m.last, id)
			n++
		}
	}
	return n
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.last)
}
