package repository

import (
	"time"

	"github.com/taykof/vaultlog/internal/adapters/notify"
	"github.com/taykof/vaultlog/internal/domain/normalize"
	"github.com/taykof/vaultlog/pkg/logger"
)

// Option applies a configuration option to a collection store.
type Option func(*base)

// WithNotifier sets the storage-degraded notifier.
func WithNotifier(n *notify.Notifier) Option {
	return func(b *base) {
		if n != nil {
			b.notifier = n
		}
	}
}

// WithNormalizer sets a custom normalizer (tests inject a fixed clock
// through it).
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(b *base) {
		if n != nil {
			b.norm = n
		}
	}
}

// WithClock sets the time source for createdAt stamps.
func WithClock(now func() time.Time) Option {
	return func(b *base) {
		if now != nil {
			b.now = now
		}
	}
}

// WithLogger sets a custom logger for the store.
func WithLogger(log logger.Logger) Option {
	return func(b *base) {
		if log != nil {
			b.log = log
		}
	}
}
