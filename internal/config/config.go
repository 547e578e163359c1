package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Selection
	SetName  string
	CaseName string

	// Output settings
	NoColor      bool
	Progress     bool
	Table        bool
	OpenFailures bool

	// MetricsTextfile is written after the run when not empty
	MetricsTextfile string

	// CaptureURL is the base URL of the external renderer
	CaptureURL string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	SetName         string
	CaseName        string
	NoColor         bool
	Progress        bool
	Table           bool
	OpenFailures    bool
	MetricsTextfile string
	EnvFile         string
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		CaptureURL: DefaultCaptureURL,
		Flags:      Flags{EnvFile: DefaultEnvFile},
	}
}

// Load creates a config and applies flags. Selection flags fall back to the
// environment, after loading the env file if one exists.
func Load(flags Flags) *Config {
	if flags.EnvFile != "" {
		// a missing env file is not an error
		_ = godotenv.Load(flags.EnvFile)
	}

	cfg := New()
	cfg.Flags = flags
	cfg.SetName = firstNonEmpty(flags.SetName, os.Getenv(EnvSetName))
	cfg.CaseName = firstNonEmpty(flags.CaseName, os.Getenv(EnvCaseName))
	cfg.NoColor = flags.NoColor
	cfg.Progress = flags.Progress
	cfg.Table = flags.Table
	cfg.OpenFailures = flags.OpenFailures
	cfg.MetricsTextfile = flags.MetricsTextfile
	cfg.CaptureURL = firstNonEmpty(os.Getenv(EnvCaptureURL), DefaultCaptureURL)

	return cfg
}

// HasSelection reports whether the run is narrowed to one set or case
func (c *Config) HasSelection() bool {
	return c.SetName != "" || c.CaseName != ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
