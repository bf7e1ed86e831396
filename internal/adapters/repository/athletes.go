package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/taykof/vaultlog/internal/adapters/medium"
	"github.com/taykof/vaultlog/internal/domain/identifier"
	"github.com/taykof/vaultlog/internal/domain/model"
)

// AthleteInput is the caller-supplied part of a new athlete.
type AthleteInput struct {
	Name string
	Sex  string
}

// AthleteUpdate is a partial update; nil fields are left untouched.
type AthleteUpdate struct {
	Name *string
	Sex  *string
	Note *string
	PR   *string
}

// Athletes is the athlete collection store.
type Athletes struct {
	base
}

// NewAthletes creates the athlete store over m.
func NewAthletes(m medium.Medium, opts ...Option) *Athletes {
	return &Athletes{base: newBase(m, opts...)}
}

// GetAll returns every athlete, normalized. No ordering is guaranteed;
// callers sort as needed.
func (s *Athletes) GetAll(ctx context.Context) []model.Athlete {
	rows := s.readRows(ctx, KeyAthletes, collectionAthletes)
	out := make([]model.Athlete, 0, len(rows))
	for _, r := range rows {
		out = append(out, s.norm.Athlete(r))
	}
	return out
}

// GetByID returns the athlete with the given id, or ErrNotFound.
func (s *Athletes) GetByID(ctx context.Context, id string) (*model.Athlete, error) {
	for _, a := range s.GetAll(ctx) {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

// Add validates and persists a new athlete. Nothing is written when
// validation fails.
func (s *Athletes) Add(ctx context.Context, in AthleteInput) (*model.Athlete, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	sex := strings.TrimSpace(in.Sex)
	if sex == "" {
		sex = model.SexNotSet
	}

	athletes := s.GetAll(ctx)
	a := model.Athlete{
		ID:        identifier.New(),
		Name:      name,
		Sex:       sex,
		Note:      "",
		PR:        "",
		CreatedAt: s.now().UnixMilli(),
	}
	athletes = append(athletes, a)
	if err := s.writeRows(ctx, KeyAthletes, collectionAthletes, athletes, len(athletes)); err != nil {
		return nil, err
	}
	return &a, nil
}

// Update merges the given partial fields onto the athlete with the
// given id. A missing id is ErrNotFound; Update never creates.
func (s *Athletes) Update(ctx context.Context, id string, upd AthleteUpdate) (*model.Athlete, error) {
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be blanked", ErrInvalidInput)
	}

	athletes := s.GetAll(ctx)
	idx := -1
	for i := range athletes {
		if athletes[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNotFound
	}

	a := &athletes[idx]
	if upd.Name != nil {
		a.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Sex != nil {
		a.Sex = *upd.Sex
	}
	if upd.Note != nil {
		a.Note = *upd.Note
	}
	if upd.PR != nil {
		a.PR = *upd.PR
	}

	if err := s.writeRows(ctx, KeyAthletes, collectionAthletes, athletes, len(athletes)); err != nil {
		return nil, err
	}
	out := athletes[idx]
	return &out, nil
}

// Remove deletes the athlete with the given id and returns the
// remaining collection. Removing an unknown id is a no-op success.
// Jumps referencing the athlete are left untouched.
func (s *Athletes) Remove(ctx context.Context, id string) ([]model.Athlete, error) {
	athletes := s.GetAll(ctx)
	remaining := make([]model.Athlete, 0, len(athletes))
	for _, a := range athletes {
		if a.ID != id {
			remaining = append(remaining, a)
		}
	}
	if err := s.writeRows(ctx, KeyAthletes, collectionAthletes, remaining, len(remaining)); err != nil {
		return nil, err
	}
	return remaining, nil
}
