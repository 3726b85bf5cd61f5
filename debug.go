package snowfield

import (
	"fmt"
	"os"
	"time"
)

// frameStats holds per-frame phase timings and counts.
// Only populated when Config.Debug is true.
type frameStats struct {
	score   time.Duration
	clear   time.Duration
	fall    time.Duration
	publish time.Duration
	falling int

	last time.Time
}

// start arms the stats clock. A zero receiver stays inert when debug is off
// so the hot path pays only a bool check per phase.
func (s *frameStats) start(enabled bool) {
	if enabled {
		s.last = time.Now()
	}
}

// mark records the time since the previous mark into d.
func (s *frameStats) mark(d *time.Duration) {
	if s.last.IsZero() {
		return
	}
	now := time.Now()
	*d = now.Sub(s.last)
	s.last = now
}

// debugLog prints phase timings and body counts to stderr.
func (e *Engine) debugLog(stats frameStats) {
	total := stats.score + stats.clear + stats.fall + stats.publish
	_, _ = fmt.Fprintf(os.Stderr,
		"[snowfield] score: %v | clear: %v | fall: %v | publish: %v | total: %v\n",
		stats.score, stats.clear, stats.fall, stats.publish, total)
	_, _ = fmt.Fprintf(os.Stderr,
		"[snowfield] active: %d | falling: %d | cleared: %.0f%%\n",
		e.pool.ActiveCount(), stats.falling, e.progress.ClustersCleared*100)
}
