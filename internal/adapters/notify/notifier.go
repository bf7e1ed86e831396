// Package notify carries the storage-degraded signal from the stores to
// whoever is showing the user a warning.
//
// This is the only push interface the core exposes; everything else is
// request/response. Publishing never blocks a write path: a subscriber
// that falls behind misses events rather than stalling persistence.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/taykof/vaultlog/pkg/metrics"
)

// Default notifier configuration constants.
const defaultBufferSize = 16

// Event describes one degraded-storage occurrence.
type Event struct {
	Collection string    // which collection's write failed
	Message    string    // human-readable warning for the user
	Err        error     // underlying medium error
	At         time.Time // when the failure happened
}

// Option applies a configuration option to the Notifier.
type Option func(*Notifier)

// WithBufferSize sets the per-subscriber channel buffer.
func WithBufferSize(n int) Option {
	return func(nf *Notifier) {
		if n > 0 {
			nf.bufferSize = n
		}
	}
}

// Notifier fans Events out to subscribers.
type Notifier struct {
	mu         sync.RWMutex
	subs       []chan Event
	bufferSize int
	closed     bool
}

// New creates a Notifier with configuration options.
func New(opts ...Option) *Notifier {
	n := &Notifier{bufferSize: defaultBufferSize}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Subscribe returns a channel receiving future events. The channel is
// closed when the notifier closes.
func (n *Notifier) Subscribe() <-chan Event {
	n.mu.Lock()
	defer n.mu.Unlock()

	ch := make(chan Event, n.bufferSize)
	if n.closed {
		close(ch)
		return ch
	}
	n.subs = append(n.subs, ch)
	return ch
}

// Publish delivers e to every subscriber without blocking. Full
// subscriber buffers drop the event.
func (n *Notifier) Publish(_ context.Context, e Event) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if n.closed {
		return
	}
	if e.At.IsZero() {
		e.At = time.Now()
	}
	metrics.RecordDegradedEvent()
	for _, ch := range n.subs {
		select {
		case ch <- e:
		default:
			// Subscriber is not draining; losing a warning beats
			// blocking a store write.
		}
	}
}

// Close closes all subscriber channels. Publishing after Close is a
// no-op.
func (n *Notifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return nil
	}
	n.closed = true
	for _, ch := range n.subs {
		close(ch)
	}
	n.subs = nil
	return nil
}
