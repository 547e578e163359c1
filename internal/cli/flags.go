package cli

import "setrunner/internal/config"

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

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		SetName:         f.SetName,
		CaseName:        f.CaseName,
		NoColor:         f.NoColor,
		Progress:        f.Progress,
		Table:           f.Table,
		OpenFailures:    f.OpenFailures,
		MetricsTextfile: f.MetricsTextfile,
		EnvFile:         f.EnvFile,
	}
}
