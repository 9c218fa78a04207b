package visitors

import (
	"context"
	"strconv"
	"sync"
)

// MemoryCounter is the in-process Counter fallback, guarded by a single
// mutex covering its maps rather than per-key locking.
type MemoryCounter struct {
	mu     sync.Mutex
	ints   map[string]int64
	lists  map[string][]string
}

// NewMemoryCounter builds an empty in-process Counter.
func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{
		ints:  make(map[string]int64),
		lists: make(map[string][]string),
	}
}

func (m *MemoryCounter) Incr(ctx context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ints[key]++
	return m.ints[key], nil
}

func (m *MemoryCounter) LPush(ctx context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists[key] = append([]string{value}, m.lists[key]...)
	return nil
}

func (m *MemoryCounter) LTrim(ctx context.Context, key string, start, stop int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.lists[key]
	if int64(len(list)) <= stop-start+1 {
		return nil
	}
	end := stop + 1
	if end > int64(len(list)) {
		end = int64(len(list))
	}
	if start > int64(len(list)) {
		start = int64(len(list))
	}
	m.lists[key] = append([]string(nil), list[start:end]...)
	return nil
}

func (m *MemoryCounter) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.lists[key]
	if len(list) == 0 {
		return nil, nil
	}
	end := stop + 1
	if end > int64(len(list)) || stop < 0 {
		end = int64(len(list))
	}
	if start > int64(len(list)) {
		start = int64(len(list))
	}
	out := make([]string, end-start)
	copy(out, list[start:end])
	return out, nil
}

func (m *MemoryCounter) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return strconv.FormatInt(m.ints[key], 10), nil
}

func (m *MemoryCounter) Ping(ctx context.Context) bool { return true }

var _ Counter = (*MemoryCounter)(nil)
