// search/options.go — functional options for BestK.

package search

import (
	"io"

	"github.com/charmbracelet/log"
)

const defaultMaxExpansions = 0 // 0 = unbounded

type options struct {
	logger        *log.Logger
	maxExpansions int
}

func defaultOptions() options {
	return options{
		logger:        log.New(io.Discard),
		maxExpansions: defaultMaxExpansions,
	}
}

// Option customises a single BestK invocation.
type Option func(*options)

// WithLogger directs search progress (incumbent updates, expansion counts)
// to the given logger. By default progress is discarded.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMaxExpansions caps the number of partial-assignment expansions. When
// the budget is exhausted the search stops and returns the solutions found
// so far. Zero or negative means unbounded.
func WithMaxExpansions(n int) Option {
	return func(o *options) { o.maxExpansions = n }
}
