// Package bounds: functional configuration for the filter driver.
package bounds

import (
	"io"

	"github.com/charmbracelet/log"
)

// Option configures RunFilters.
type Option func(*options)

// options collects driver configuration.
type options struct {
	logger    *log.Logger
	maxRounds int
}

// defaultOptions returns the silent, unbounded-round configuration.
// The round cap defaults to 0, meaning "derive from the problem shape":
// n·m rounds is a safe upper bound because each round must invalidate at
// least one candidate entry to keep going.
func defaultOptions() options {
	return options{
		logger:    log.New(io.Discard),
		maxRounds: 0,
	}
}

// WithLogger installs a structured logger for per-round progress reporting.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMaxRounds caps the number of edgewise/global rounds. A cap below the
// natural fixed point leaves a still-sound (just looser) candidate set.
func WithMaxRounds(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxRounds = n
		}
	}
}
