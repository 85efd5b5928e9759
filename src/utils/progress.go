package utils

import (
	"fmt"
	"time"
)

// StageProgress prints a running log of KeySetup's named stages (p_i and
// x0, crtCoeff_i, g_i, z and zinv, A, xp_i, varpi, y, zero-tester v) as they
// complete, each annotated with the time since the previous stage finished.
// It plays the role the teacher's ProgressBar plays for SolvePuzzle's long
// sequential loop, adapted to KeySetup's handful of discrete named stages
// rather than a single numeric counter.
type StageProgress struct {
	start    time.Time
	lastMark time.Time
	quiet    bool
}

// NewStageProgress creates a stage logger. If quiet is true, Mark is a
// no-op (used by tests that want KeySetup's progress callback wired but not
// printing to stdout).
func NewStageProgress(quiet bool) *StageProgress {
	now := time.Now()
	return &StageProgress{start: now, lastMark: now, quiet: quiet}
}

// Mark reports that the named stage has completed.
func (s *StageProgress) Mark(stage string) {
	if s.quiet {
		return
	}
	now := time.Now()
	fmt.Printf("  %-24s %v (total %v)\n", stage+":", now.Sub(s.lastMark).Round(time.Millisecond), now.Sub(s.start).Round(time.Millisecond))
	s.lastMark = now
}

// EstimateTime estimates the time required for a given number of operations
// based on a measured rate (operations per second). Used by the timing
// harness (operations.RunTiming) to extrapolate the KeySetup timing of the
// instantiation it ran to the named instantiations' slot counts.
func EstimateTime(operations uint64, opsPerSecond float64) time.Duration {
	if opsPerSecond <= 0 {
		return 0
	}
	seconds := float64(operations) / opsPerSecond
	return time.Duration(seconds * float64(time.Second))
}

// FormatDuration formats a duration in a human-readable way.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%.1fm", d.Minutes())
	case d < 24*time.Hour:
		return fmt.Sprintf("%.1fh", d.Hours())
	default:
		return fmt.Sprintf("%.1fd", d.Hours()/24)
	}
}
