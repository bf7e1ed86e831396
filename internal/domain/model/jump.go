package model

import "github.com/taykof/vaultlog/internal/domain/measure"

// Result is the outcome of an attempt.
type Result string

// Attempt outcomes. The empty string is the "not recorded" state.
const (
	ResultMake  Result = "make"
	ResultMiss  Result = "miss"
	ResultUnset Result = ""
)

// SessionType distinguishes practice reps from competition attempts.
type SessionType string

// Session types.
const (
	SessionPractice    SessionType = "practice"
	SessionCompetition SessionType = "competition"
)

// Jump is a single attempt. Jumps are immutable once created; they are
// only ever added or removed, never updated in place.
//
// BarCm is the canonical height in centimeters regardless of BarUnit,
// which records only the input/display preference. A nil BarCm means
// the raw text could not be parsed (or no bar was up); it is never
// collapsed to zero. Bar mirrors BarRaw under the key older builds
// wrote, so both generations of files read each other.
type Jump struct {
	ID          string       `json:"id"`
	AthleteID   string       `json:"athleteId"`
	Date        string       `json:"date"` // calendar date, YYYY-MM-DD
	Bar         string       `json:"bar"`
	BarRaw      string       `json:"barRaw"`
	BarCm       *float64     `json:"barCm"`
	BarUnit     measure.Unit `json:"barUnit"`
	Result      Result       `json:"result"`
	SessionType SessionType  `json:"sessionType"`
	BarUp       bool         `json:"barUp"`
	Note        string       `json:"note"`
	CreatedAt   int64        `json:"createdAt"`
}
