package logging

import (
	"os"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Level names the verbosity bits a caller may enable (spec.md §5's
// "process-wide log-verbosity bitmap").
type Level uint32

const (
	// LevelMerge enables the Debug line chart.SetFromLayers writes after
	// merging layers. Per-cell titers.MergeDiagnostic values are not logged.
	LevelMerge Level = 1 << iota
	// LevelSerumCircle enables the Warn lines for a negative theoretical
	// radius and for a coverage result with no antigens within.
	LevelSerumCircle
	// LevelOptimize names optimize.Result termination reports; no package
	// writes log lines under this bit.
	LevelOptimize
	// LevelGridTest names trapped/hemispheric classifications; no package
	// writes log lines under this bit.
	LevelGridTest
)

var (
	verbosity uint32
	once      sync.Once

	// Logger is the package-level zerolog.Logger every other package
	// writes through. It defaults to a timestamped console writer on
	// os.Stderr with no level of its own set (zerolog's global level
	// applies); SetVerbosity does not alter Logger itself, only which
	// levels below are considered "enabled" by Enabled.
	Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
)

// SetVerbosity configures the process-wide bitmap exactly once: the
// first call wins, matching spec.md §9's "configure it once at startup
// and treat as read-only afterward." Subsequent calls are no-ops.
func SetVerbosity(bits Level) {
	once.Do(func() {
		atomic.StoreUint32(&verbosity, uint32(bits))
	})
}

// Enabled reports whether every bit in want is set in the configured
// verbosity bitmap.
func Enabled(want Level) bool {
	return atomic.LoadUint32(&verbosity)&uint32(want) == uint32(want)
}

// Reset clears the bitmap and allows SetVerbosity to take effect again.
// Intended for tests only; production callers configure verbosity once
// at startup and never call Reset.
func Reset() {
	atomic.StoreUint32(&verbosity, 0)
	once = sync.Once{}
}
