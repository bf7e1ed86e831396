// Package model contains the canonical record shapes passed between layers.
//
// JSON tags match the keys the application has historically persisted, so
// files written by any prior build decode into these shapes (after
// normalization) and files written by this build stay readable by older
// ones. Timestamps are Unix milliseconds for the same reason.
package model

// SexNotSet is the defaulted value for an athlete whose sex was never
// recorded.
const SexNotSet = "Not set"

// Athlete is a tracked athlete. ID is unique and immutable after
// creation; Name is never empty on a stored record.
type Athlete struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Sex       string `json:"sex"`
	Note      string `json:"note"`
	PR        string `json:"pr"` // personal record, free text
	CreatedAt int64  `json:"createdAt"`
}
