package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/taykof/vaultlog/internal/adapters/medium"
	"github.com/taykof/vaultlog/internal/domain/measure"
	"github.com/taykof/vaultlog/internal/domain/model"
	"github.com/taykof/vaultlog/pkg/logger"
	"github.com/taykof/vaultlog/pkg/metrics"
)

// Settings is the settings store: one record, created lazily on first
// read, overwritten wholesale on every write.
type Settings struct {
	base
}

// NewSettings creates the settings store over m.
func NewSettings(m medium.Medium, opts ...Option) *Settings {
	return &Settings{base: newBase(m, opts...)}
}

// UnitMode returns the process-wide display/input preference. When no
// settings record exists yet the default is persisted and returned; a
// failed lazy write still returns the default (the degraded signal
// already fired).
func (s *Settings) UnitMode(ctx context.Context) measure.Unit {
	metrics.RecordRead(collectionSettings)
	bts, err := s.medium.Get(ctx, KeySettings)
	switch {
	case err == nil:
		var raw map[string]any
		jsonErr := json.Unmarshal(bts, &raw)
		if jsonErr == nil {
			return s.norm.Settings(raw).UnitMode
		}
		s.log.Warn(ctx, "persisted settings are unreadable, using defaults", logger.Error(jsonErr))
		metrics.RecordCorruptRead(collectionSettings)
	case errors.Is(err, medium.ErrNotFound):
		// First read; fall through and create the record.
	default:
		s.log.Warn(ctx, "could not read settings, using defaults", logger.Error(err))
		metrics.RecordCorruptRead(collectionSettings)
	}

	def := model.DefaultSettings()
	_ = s.write(ctx, def)
	return def.UnitMode
}

// SetUnitMode persists the display/input preference. Unknown values
// collapse to imperial before the write.
func (s *Settings) SetUnitMode(ctx context.Context, u measure.Unit) (measure.Unit, error) {
	unit, _ := measure.UnitFromString(string(u))
	if err := s.write(ctx, model.Settings{UnitMode: unit}); err != nil {
		return unit, err
	}
	return unit, nil
}

func (s *Settings) write(ctx context.Context, set model.Settings) error {
	return s.writeRows(ctx, KeySettings, collectionSettings, set, 1)
}
