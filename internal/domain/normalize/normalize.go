// Package normalize maps persisted records of any historical shape onto
// the canonical model types.
//
// The persisted data carries no schema version tag, so every rule is
// keyed on field presence: each canonical field lists the historical
// keys that may carry it (first present wins) and the default applied
// when none is usable. Normalization is total — malformed input yields
// defaults, never an error.
package normalize

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/taykof/vaultlog/internal/domain/measure"
	"github.com/taykof/vaultlog/internal/domain/model"
)

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithClock sets the time source used to backfill missing createdAt
// values. Tests inject a fixed clock here.
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) {
		if now != nil {
			n.now = now
		}
	}
}

// Normalizer converts untrusted decoded records into canonical ones.
type Normalizer struct {
	now func() time.Time
}

// New creates a Normalizer with default configuration.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{now: time.Now}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Athlete normalizes a decoded athlete record.
func (n *Normalizer) Athlete(raw map[string]any) model.Athlete {
	return model.Athlete{
		ID:        stringOr(raw, "", "id"),
		Name:      stringOr(raw, "", "name"),
		Sex:       nonEmptyOr(raw, model.SexNotSet, "sex"),
		Note:      stringOr(raw, "", "note"),
		PR:        stringOr(raw, "", "pr", "personalRecord"),
		CreatedAt: n.timestampOr(raw, "createdAt"),
	}
}

// Jump normalizes a decoded jump record and re-establishes the bar
// invariants: no bar means no height, a raised bar always has raw text.
func (n *Normalizer) Jump(raw map[string]any) model.Jump {
	session := sessionOr(raw, "sessionType")
	barUp, hasBarUp := boolField(raw, "barUp")
	if !hasBarUp {
		barUp = inferBarUp(session)
	}

	j := model.Jump{
		ID:          stringOr(raw, "", "id"),
		AthleteID:   stringOr(raw, "", "athleteId"),
		Date:        stringOr(raw, "", "date"),
		BarRaw:      stringOr(raw, "", "barRaw", "bar"),
		BarCm:       numberField(raw, "barCm", "barValueCm"),
		BarUnit:     unitOr(raw, "barUnit", "barUnitMode"),
		Result:      resultOr(raw, "result"),
		SessionType: session,
		BarUp:       barUp,
		Note:        stringOr(raw, "", "note"),
		CreatedAt:   n.timestampOr(raw, "createdAt"),
	}

	switch {
	case !j.BarUp:
		j.BarRaw, j.BarCm = "", nil
	case j.BarRaw == "" && j.BarCm != nil:
		j.BarRaw = measure.Format(*j.BarCm, j.BarUnit)
	case j.BarRaw == "":
		j.BarUp = false
	}
	j.Bar = j.BarRaw
	return j
}

// Settings normalizes the decoded settings record.
func (n *Normalizer) Settings(raw map[string]any) model.Settings {
	return model.Settings{
		UnitMode: unitOr(raw, "unitMode", "unit"),
	}
}

// inferBarUp guesses the bar flag for records that predate it: practice
// reps default to no bar, everything else to bar up.
//
// NOTE(migration): this is a heuristic about user intent for old data,
// not a verified business rule. It only ever fires for records without
// an explicit barUp field.
func inferBarUp(session model.SessionType) bool {
	return session != model.SessionPractice
}

// pick returns the first value present under any of the given keys.
func pick(raw map[string]any, keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := raw[k]; ok {
			return v, true
		}
	}
	return nil, false
}

func stringOr(raw map[string]any, def string, keys ...string) string {
	v, ok := pick(raw, keys)
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		return def
	}
	return s
}

// nonEmptyOr is stringOr with the empty string also collapsing to the
// default, for fields where "" means "never set".
func nonEmptyOr(raw map[string]any, def string, keys ...string) string {
	if s := stringOr(raw, "", keys...); s != "" {
		return s
	}
	return def
}

func boolField(raw map[string]any, keys ...string) (value, present bool) {
	v, ok := pick(raw, keys)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	if !ok {
		return false, false
	}
	return b, true
}

// numberField coerces a numeric field. Non-finite and unparseable
// values yield nil, never zero, preserving "unknown" versus "zero".
func numberField(raw map[string]any, keys ...string) *float64 {
	v, ok := pick(raw, keys)
	if !ok {
		return nil
	}
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// timestampOr reads a Unix-millisecond timestamp, falling back to the
// normalization time so ordering still works for legacy rows.
func (n *Normalizer) timestampOr(raw map[string]any, keys ...string) int64 {
	if f := numberField(raw, keys...); f != nil && *f > 0 {
		return int64(*f)
	}
	return n.now().UnixMilli()
}

// resultOr coerces result to make/miss; anything else is unset.
func resultOr(raw map[string]any, keys ...string) model.Result {
	switch model.Result(strings.ToLower(stringOr(raw, "", keys...))) {
	case model.ResultMake:
		return model.ResultMake
	case model.ResultMiss:
		return model.ResultMiss
	}
	return model.ResultUnset
}

// sessionOr coerces sessionType; unknown values collapse to practice.
func sessionOr(raw map[string]any, keys ...string) model.SessionType {
	if model.SessionType(strings.ToLower(stringOr(raw, "", keys...))) == model.SessionCompetition {
		return model.SessionCompetition
	}
	return model.SessionPractice
}

// unitOr coerces a unit mode; unknown values collapse to imperial.
func unitOr(raw map[string]any, keys ...string) measure.Unit {
	u, _ := measure.UnitFromString(stringOr(raw, "", keys...))
	return u
}
