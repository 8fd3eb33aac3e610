package settings

import "runtime"

// Settings holds processing options that are not specific to a single report.
type Settings struct {
	// MaxDegreeOfParallelism limits how many assemblies, and per assembly how many
	// classes, are built at the same time. Values <= 0 mean runtime.GOMAXPROCS(0).
	MaxDegreeOfParallelism int
}

// NewSettings returns the default settings.
func NewSettings() *Settings {
	return &Settings{}
}

// Parallelism returns the effective worker limit.
func (s *Settings) Parallelism() int {
	if s == nil || s.MaxDegreeOfParallelism <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return s.MaxDegreeOfParallelism
}
