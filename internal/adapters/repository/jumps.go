package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/taykof/vaultlog/internal/adapters/medium"
	"github.com/taykof/vaultlog/internal/domain/identifier"
	"github.com/taykof/vaultlog/internal/domain/measure"
	"github.com/taykof/vaultlog/internal/domain/model"
	"github.com/taykof/vaultlog/pkg/logger"
	"github.com/taykof/vaultlog/pkg/metrics"
)

// JumpInput is the caller-supplied part of a new jump. BarRaw is free
// text; the store runs it through the measurement codec before
// persisting.
type JumpInput struct {
	AthleteID   string
	Date        string
	BarRaw      string
	BarUnit     measure.Unit
	Result      model.Result
	SessionType model.SessionType
	BarUp       bool
	Note        string
}

// Jumps is the jump collection store. Jumps are append-and-remove only;
// there is no in-place update.
type Jumps struct {
	base
}

// NewJumps creates the jump store over m.
func NewJumps(m medium.Medium, opts ...Option) *Jumps {
	return &Jumps{base: newBase(m, opts...)}
}

// GetAll returns every jump, normalized. No ordering is guaranteed.
func (s *Jumps) GetAll(ctx context.Context) []model.Jump {
	rows := s.readRows(ctx, KeyJumps, collectionJumps)
	out := make([]model.Jump, 0, len(rows))
	for _, r := range rows {
		if _, ok := r["barUp"]; !ok {
			metrics.RecordBarUpInferred()
		}
		out = append(out, s.norm.Jump(r))
	}
	return out
}

// GetByAthlete returns the jumps referencing the given athlete id.
func (s *Jumps) GetByAthlete(ctx context.Context, athleteID string) []model.Jump {
	all := s.GetAll(ctx)
	out := make([]model.Jump, 0, len(all))
	for _, j := range all {
		if j.AthleteID == athleteID {
			out = append(out, j)
		}
	}
	return out
}

// Add validates and persists a new jump. The bar height text is parsed
// to its canonical centimeter value here; a height that will not parse
// is non-fatal — the raw text is kept and the canonical value stays
// nil. Nothing is written when validation fails.
func (s *Jumps) Add(ctx context.Context, in JumpInput) (*model.Jump, error) {
	if strings.TrimSpace(in.AthleteID) == "" {
		return nil, fmt.Errorf("%w: athleteId is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Date) == "" {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	session := model.SessionPractice
	if in.SessionType == model.SessionCompetition {
		session = model.SessionCompetition
	}
	unit, _ := measure.UnitFromString(string(in.BarUnit))
	result := model.ResultUnset
	switch in.Result {
	case model.ResultMake, model.ResultMiss:
		result = in.Result
	}
	if result == model.ResultUnset && (session == model.SessionCompetition || in.BarUp) {
		return nil, fmt.Errorf("%w: result is required for competition or bar-up jumps", ErrInvalidInput)
	}

	barRaw := strings.TrimSpace(in.BarRaw)
	var barCm *float64
	switch {
	case !in.BarUp:
		// No bar means no height, whatever the caller sent.
		barRaw = ""
	case barRaw == "":
		return nil, fmt.Errorf("%w: bar height is required when the bar is up", ErrInvalidInput)
	default:
		if cm, ok := measure.Parse(barRaw, unit); ok {
			barCm = &cm
		} else {
			metrics.RecordParseFailure()
			s.log.Debug(ctx, "bar height did not parse, keeping raw text",
				logger.String("barRaw", barRaw), logger.String("unit", string(unit)))
		}
	}

	jumps := s.GetAll(ctx)
	j := model.Jump{
		ID:          identifier.New(),
		AthleteID:   in.AthleteID,
		Date:        in.Date,
		Bar:         barRaw,
		BarRaw:      barRaw,
		BarCm:       barCm,
		BarUnit:     unit,
		Result:      result,
		SessionType: session,
		BarUp:       in.BarUp,
		Note:        in.Note,
		CreatedAt:   s.now().UnixMilli(),
	}
	jumps = append(jumps, j)
	if err := s.writeRows(ctx, KeyJumps, collectionJumps, jumps, len(jumps)); err != nil {
		return nil, err
	}
	return &j, nil
}

// Remove deletes the jump with the given id and returns the remaining
// collection. Removing an unknown id is a no-op success.
func (s *Jumps) Remove(ctx context.Context, id string) ([]model.Jump, error) {
	jumps := s.GetAll(ctx)
	remaining := make([]model.Jump, 0, len(jumps))
	for _, j := range jumps {
		if j.ID != id {
			remaining = append(remaining, j)
		}
	}
	if err := s.writeRows(ctx, KeyJumps, collectionJumps, remaining, len(remaining)); err != nil {
		return nil, err
	}
	return remaining, nil
}
