package admission

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type window struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter is a process-local Limiter with the same consume contract as
// the Redis one. For single-instance and dev runs only: budgets are not
// shared across processes.
type MemoryLimiter struct {
	mu       sync.Mutex
	policies Policies
	windows  map[string]*window

	now func() time.Time // stubbed in tests
}

func NewMemoryLimiter(policies Policies) *MemoryLimiter {
	return &MemoryLimiter{
		policies: policies,
		windows:  make(map[string]*window),
		now:      time.Now,
	}
}

func (l *MemoryLimiter) TryConsume(_ context.Context, cat Category, identity string) (bool, error) {
	p, ok := l.policies[cat]
	if !ok {
		return false, fmt.Errorf("admission: unknown category %q", cat)
	}

	key := fmt.Sprintf("%s:%s", cat, identity)
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.windows[key]
	if w == nil || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(p.Window)}
		l.windows[key] = w
	}
	w.count++
	return w.count <= p.Points, nil
}
