package medium

import (
	"context"
	"sync"
	"time"

	"github.com/taykof/vaultlog/pkg/metrics"
)

// MemoryOption applies a configuration option to the memory driver.
type MemoryOption func(*Memory)

// WithMaxBytes caps the total stored bytes. Puts that would exceed the
// cap fail with ErrQuotaExceeded, which is how tests exercise the
// storage-degraded path.
func WithMaxBytes(n int) MemoryOption {
	return func(m *Memory) {
		if n > 0 {
			m.maxBytes = n
		}
	}
}

// Memory implements Medium with an in-process map.
type Memory struct {
	mu       sync.RWMutex
	data     map[string][]byte
	maxBytes int
	closed   bool
}

// NewMemory creates an in-memory medium.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{data: make(map[string][]byte)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns a copy of the bytes stored under key.
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	start := time.Now()
	defer observeOp("get", start)

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Put stores a copy of value under key, honoring the byte cap.
func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	start := time.Now()
	defer observeOp("put", start)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if m.maxBytes > 0 {
		total := len(value)
		for k, v := range m.data {
			if k == key {
				continue
			}
			total += len(v)
		}
		if total > m.maxBytes {
			return ErrQuotaExceeded
		}
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}

// Close marks the medium closed; subsequent operations fail.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func observeOp(op string, start time.Time) {
	metrics.RecordMediumOpLatency(op, float64(time.Since(start).Microseconds())/1000)
}
