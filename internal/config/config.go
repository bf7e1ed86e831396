// Package config defines process configuration and loading.
//
// Conventions follow the rest of the repo: defaults first, functional
// layering in Load, sentinel errors for validation failures.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// MetricsAddr configures the /metrics + /healthz listen address.
	MetricsAddr string `koanf:"metrics_addr"`

	// MediumDriver selects the storage backend: memory, file, sqlite.
	MediumDriver string `koanf:"medium"`

	// DataDir is the root directory for the file driver.
	DataDir string `koanf:"data_dir"`

	// SQLitePath is the database file for the sqlite driver.
	SQLitePath string `koanf:"sqlite_path"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		MetricsAddr:  ":9210",
		MediumDriver: "sqlite",
		DataDir:      "data",
		SQLitePath:   "data/vaultlog.db",
	}
}
