// Package repository implements the persistent collection stores for
// athletes, jumps, and settings over a byte-oriented key-value medium.
//
// Every mutation is a full read-modify-write of the owning collection:
// read fresh bytes, decode, change, serialize, write. Nothing is cached
// between calls. Reads pass every element through the normalizer, so
// callers never see a raw or legacy shape; unreadable bytes are treated
// as an empty collection, logged, and counted — never surfaced as a
// failure. The only systemically exceptional condition is a failed
// medium write, which is published on the notifier and returned to the
// caller.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/taykof/vaultlog/internal/adapters/medium"
	"github.com/taykof/vaultlog/internal/adapters/notify"
	"github.com/taykof/vaultlog/internal/domain/normalize"
	"github.com/taykof/vaultlog/pkg/logger"
	"github.com/taykof/vaultlog/pkg/metrics"
)

// Collection keys in the shared medium. The values predate this build;
// data files written by earlier versions of the tracker load as-is.
const (
	KeyAthletes = "taykof_athletes_v1"
	KeyJumps    = "taykof_jumps_v1"
	KeySettings = "taykof_settings_v1"
)

// Collection names used in logs and metrics labels.
const (
	collectionAthletes = "athletes"
	collectionJumps    = "jumps"
	collectionSettings = "settings"
)

// base carries the collaborators every collection store shares.
type base struct {
	medium   medium.Medium
	notifier *notify.Notifier
	norm     *normalize.Normalizer
	now      func() time.Time
	log      logger.Logger
}

func newBase(m medium.Medium, opts ...Option) base {
	b := base{
		medium: m,
		norm:   normalize.New(),
		now:    time.Now,
		log:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// readRows reads and decodes a collection. Missing keys and corrupt
// bytes both come back as an empty slice.
func (b *base) readRows(ctx context.Context, key, collection string) []map[string]any {
	metrics.RecordRead(collection)
	bts, err := b.medium.Get(ctx, key)
	if errors.Is(err, medium.ErrNotFound) {
		return nil
	}
	if err != nil {
		b.log.Warn(ctx, "could not read collection, treating as empty",
			logger.String("collection", collection), logger.Error(err))
		metrics.RecordCorruptRead(collection)
		return nil
	}
	var rows []map[string]any
	if err := json.Unmarshal(bts, &rows); err != nil {
		b.log.Warn(ctx, "persisted collection is unreadable, treating as empty",
			logger.String("collection", collection), logger.Error(err))
		metrics.RecordCorruptRead(collection)
		return nil
	}
	return rows
}

// writeRows serializes and writes a full collection. A failed write
// publishes a storage-degraded event before returning the error.
func (b *base) writeRows(ctx context.Context, key, collection string, v any, count int) error {
	bts, err := json.Marshal(v)
	if err != nil {
		// Canonical records always marshal; this only fires on a bug.
		return fmt.Errorf("encode %s: %w", collection, err)
	}
	if err := b.medium.Put(ctx, key, bts); err != nil {
		metrics.RecordWriteFailure(collection)
		b.log.Error(ctx, "medium write failed",
			logger.String("collection", collection), logger.Error(err))
		if b.notifier != nil {
			b.notifier.Publish(ctx, notify.Event{
				Collection: collection,
				Message:    "Changes could not be saved. Storage may be full or unavailable.",
				Err:        err,
				At:         b.now(),
			})
		}
		return fmt.Errorf("persist %s: %w", collection, err)
	}
	metrics.RecordWrite(collection)
	metrics.UpdateCollectionSize(collection, count)
	return nil
}
