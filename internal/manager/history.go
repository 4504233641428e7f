package manager

import "sync"

const (
	maxMetricsHistory = 50
	maxVideoHistory   = 20
	maxContentDrafts  = 50
)

// boundedList is an append-only FIFO that keeps the newest limit entries.
type boundedList[T any] struct {
	mu    sync.RWMutex
	items []T
	limit int
}

func newBoundedList[T any](limit int) *boundedList[T] {
	return &boundedList[T]{limit: limit, items: make([]T, 0, limit)}
}

// Append adds item and evicts the oldest entries beyond the limit.
func (l *boundedList[T]) Append(item T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, item)
	if over := len(l.items) - l.limit; over > 0 {
		// Copy down so the backing array does not grow without bound.
		n := copy(l.items, l.items[over:])
		var zero T
		for i := n; i < len(l.items); i++ {
			l.items[i] = zero
		}
		l.items = l.items[:n]
	}
}

// Snapshot returns a copy of all entries, oldest first.
func (l *boundedList[T]) Snapshot() []T {
	return l.Tail(0)
}

// Tail returns a copy of the newest n entries, oldest first. n <= 0 means all.
func (l *boundedList[T]) Tail(n int) []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	start := 0
	if n > 0 && n < len(l.items) {
		start = len(l.items) - n
	}
	out := make([]T, len(l.items)-start)
	copy(out, l.items[start:])
	return out
}

// Len returns the number of stored entries.
func (l *boundedList[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}
