// Package service provides the boundary the surrounding application
// talks to: athlete, jump, and settings operations plus the
// storage-degraded subscription.
//
// The service owns the canonical in-memory view. Callers never mutate a
// returned record directly; they resubmit changes through these
// operations, which re-normalize before persisting. All operations are
// synchronous and run to completion on the calling goroutine.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/taykof/vaultlog/internal/adapters/medium"
	"github.com/taykof/vaultlog/internal/adapters/notify"
	"github.com/taykof/vaultlog/internal/adapters/repository"
	"github.com/taykof/vaultlog/internal/domain/measure"
	"github.com/taykof/vaultlog/internal/domain/model"
	"github.com/taykof/vaultlog/internal/domain/normalize"
	"github.com/taykof/vaultlog/pkg/logger"
	"github.com/taykof/vaultlog/pkg/metrics"
)

// Service wires the collection stores, the medium, and the degraded
// signal into one facade.
type Service struct {
	mu sync.RWMutex

	// Core components
	medium   medium.Medium
	notifier *notify.Notifier
	athletes *repository.Athletes
	jumps    *repository.Jumps
	settings *repository.Settings

	// Configuration
	now func() time.Time

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithMedium sets the key-value medium to persist into. Defaults to the
// in-memory driver.
func WithMedium(m medium.Medium) Option {
	return func(s *Service) {
		if m != nil {
			s.medium = m
		}
	}
}

// WithNotifier sets the storage-degraded notifier.
func WithNotifier(n *notify.Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithClock sets the time source used for createdAt stamps and
// normalization backfill.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		medium:   medium.NewMemory(),
		notifier: notify.New(),
		now:      time.Now,
		logger:   nil, // resolved in Start
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start wires the collection stores. Calling Start twice is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	norm := normalize.New(normalize.WithClock(s.now))
	storeOpts := []repository.Option{
		repository.WithNotifier(s.notifier),
		repository.WithNormalizer(norm),
		repository.WithClock(s.now),
		repository.WithLogger(s.logger),
	}
	s.athletes = repository.NewAthletes(s.medium, storeOpts...)
	s.jumps = repository.NewJumps(s.medium, storeOpts...)
	s.settings = repository.NewSettings(s.medium, storeOpts...)

	s.started = true
	s.logger.Info(ctx, "vault log store started")
	return nil
}

// Stop releases the medium and closes the degraded signal.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	_ = s.notifier.Close()
	if err := s.medium.Close(); err != nil {
		s.logger.Error(context.Background(), "closing medium failed", logger.Error(err))
	}
	s.started = false
	s.logger.Info(context.Background(), "vault log store stopped")
}

// Degraded returns a channel receiving storage-degraded events. The
// surrounding application subscribes to warn the user that persistence
// may not be happening.
func (s *Service) Degraded() <-chan notify.Event {
	return s.notifier.Subscribe()
}

// Athletes returns every athlete.
func (s *Service) Athletes(ctx context.Context) []model.Athlete {
	return s.athletes.GetAll(ctx)
}

// Athlete returns one athlete by id, or repository.ErrNotFound.
func (s *Service) Athlete(ctx context.Context, id string) (*model.Athlete, error) {
	return s.athletes.GetByID(ctx, id)
}

// AddAthlete creates a new athlete.
func (s *Service) AddAthlete(ctx context.Context, in repository.AthleteInput) (*model.Athlete, error) {
	return s.athletes.Add(ctx, in)
}

// UpdateAthlete merges partial fields onto an existing athlete.
func (s *Service) UpdateAthlete(ctx context.Context, id string, upd repository.AthleteUpdate) (*model.Athlete, error) {
	return s.athletes.Update(ctx, id, upd)
}

// RemoveAthlete deletes an athlete and returns the remaining
// collection. The athlete's jumps are intentionally left in place.
func (s *Service) RemoveAthlete(ctx context.Context, id string) ([]model.Athlete, error) {
	return s.athletes.Remove(ctx, id)
}

// Jumps returns every jump.
func (s *Service) Jumps(ctx context.Context) []model.Jump {
	return s.jumps.GetAll(ctx)
}

// JumpsByAthlete returns the jumps referencing one athlete.
func (s *Service) JumpsByAthlete(ctx context.Context, athleteID string) []model.Jump {
	return s.jumps.GetByAthlete(ctx, athleteID)
}

// AddJump creates a new jump, parsing the bar height to its canonical
// centimeter value.
func (s *Service) AddJump(ctx context.Context, in repository.JumpInput) (*model.Jump, error) {
	return s.jumps.Add(ctx, in)
}

// RemoveJump deletes a jump and returns the remaining collection.
func (s *Service) RemoveJump(ctx context.Context, id string) ([]model.Jump, error) {
	return s.jumps.Remove(ctx, id)
}

// UnitMode returns the process-wide display/input preference.
func (s *Service) UnitMode(ctx context.Context) measure.Unit {
	return s.settings.UnitMode(ctx)
}

// SetUnitMode persists the display/input preference.
func (s *Service) SetUnitMode(ctx context.Context, u measure.Unit) (measure.Unit, error) {
	return s.settings.SetUnitMode(ctx, u)
}

// Stats returns store statistics for monitoring and refreshes the
// collection-size gauges.
func (s *Service) Stats(ctx context.Context) map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started": s.started,
	}
	if s.started {
		athletes := len(s.athletes.GetAll(ctx))
		jumps := len(s.jumps.GetAll(ctx))
		stats["athletes"] = athletes
		stats["jumps"] = jumps
		metrics.UpdateCollectionSize("athletes", athletes)
		metrics.UpdateCollectionSize("jumps", jumps)
	}
	return stats
}
