package memory

import (
	"math"
	"os"
	"runtime/debug"
	"strconv"

	"media-inspector/internal/logging"
)

// Settings controls how the Go heap limit is derived.
type Settings struct {
	// ContainerLimit is the container memory limit in bytes (0 if not set)
	ContainerLimit int64

	// Ratio is the share of ContainerLimit given to the Go heap
	Ratio float64
}

// Subsystem applies a soft memory limit to the Go runtime on Start and
// restores the previous limit on Stop. An explicit GOMEMLIMIT always wins.
type Subsystem struct {
	settings Settings
	previous int64
	applied  bool
}

// NewSubsystem creates the runtime subsystem.
func NewSubsystem(settings Settings) *Subsystem {
	return &Subsystem{settings: settings}
}

// Name implements lifecycle.Subsystem.
func (s *Subsystem) Name() string {
	return "runtime"
}

// Start implements lifecycle.Subsystem.
func (s *Subsystem) Start() error {
	if goMemLimitEnv := os.Getenv("GOMEMLIMIT"); goMemLimitEnv != "" {
		logging.Info("GOMEMLIMIT set via environment: %s", goMemLimitEnv)
		return nil
	}

	if s.settings.ContainerLimit <= 0 {
		logging.Debug("MEMORY_LIMIT not set, GOMEMLIMIT will not be configured automatically")
		return nil
	}

	limit := GoMemLimit(s.settings.ContainerLimit, s.settings.Ratio)
	s.previous = debug.SetMemoryLimit(limit)
	s.applied = true

	logging.Info("Configured GOMEMLIMIT: %s (%.1f%% of %s container limit)",
		formatBytes(limit),
		s.settings.Ratio*100,
		formatBytes(s.settings.ContainerLimit),
	)
	return nil
}

// Stop implements lifecycle.Subsystem.
func (s *Subsystem) Stop() {
	if !s.applied {
		return
	}
	debug.SetMemoryLimit(s.previous)
	s.applied = false
}

// Applied reports whether Start changed the runtime memory limit.
func (s *Subsystem) Applied() bool {
	return s.applied
}

// GoMemLimit computes the Go heap limit for a container limit and ratio.
// Ratios outside (0, 1] are treated as 1.
func GoMemLimit(containerLimit int64, ratio float64) int64 {
	if ratio <= 0 || ratio > 1 {
		ratio = 1
	}
	limit := float64(containerLimit) * ratio
	if limit >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(limit)
}

// formatBytes formats bytes into human-readable string
func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return strconv.FormatInt(b, 10) + " B"
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return strconv.FormatFloat(float64(b)/float64(div), 'f', 1, 64) + " " + string("KMGTPE"[exp]) + "iB"
}
