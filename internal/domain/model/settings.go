package model

import "github.com/taykof/vaultlog/internal/domain/measure"

// Settings is the single process-wide preferences record. It is created
// lazily on first read and overwritten wholesale on every write.
type Settings struct {
	UnitMode measure.Unit `json:"unitMode"`
}

// DefaultSettings returns the settings used when nothing has been
// persisted yet.
func DefaultSettings() Settings {
	return Settings{UnitMode: measure.Imperial}
}
