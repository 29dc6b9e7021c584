package expand

import (
	"strings"

	"github.com/ardnew/inox/log"
)

// Mode selects how oracle failures are handled.
type Mode int

const (
	// Strict aborts the expansion when the oracle fails.
	Strict Mode = iota
	// Permissive keeps a failed invocation in the output unexpanded.
	Permissive
)

// String returns the lowercase name of the mode.
func (m Mode) String() string {
	switch m {
	case Strict:
		return "strict"
	case Permissive:
		return "permissive"
	default:
		return "unknown"
	}
}

// ParseMode parses "strict" or "permissive".
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return Strict, true
	case "permissive":
		return Permissive, true
	default:
		return Strict, false
	}
}

const (
	// DefaultMaxPasses is the default cap on passes per fixpoint loop.
	DefaultMaxPasses = 128
	// DefaultMaxDepth is the default cap on argument group nesting.
	DefaultMaxDepth = 256
	// DefaultMarker separates an invocation's name from its arguments.
	DefaultMarker = '!'
)

// Option configures an [Expander].
type Option func(*Expander)

// WithMode sets the oracle failure mode.
func WithMode(mode Mode) Option {
	return func(e *Expander) { e.mode = mode }
}

// WithMaxPasses caps the number of passes in each fixpoint loop, including
// the final pass that finds nothing to resolve. Values below 1 select
// [DefaultMaxPasses].
func WithMaxPasses(n int) Option {
	return func(e *Expander) {
		if n < 1 {
			n = DefaultMaxPasses
		}

		e.maxPasses = n
	}
}

// WithMaxDepth caps how deeply invocation argument groups may nest.
// Values below 1 select [DefaultMaxDepth].
func WithMaxDepth(n int) Option {
	return func(e *Expander) {
		if n < 1 {
			n = DefaultMaxDepth
		}

		e.maxDepth = n
	}
}

// WithMarker sets the punctuation character that introduces an argument
// group. A rune rejected by [ValidMarker] leaves the marker unchanged.
func WithMarker(r rune) Option {
	return func(e *Expander) {
		if ValidMarker(r) {
			e.marker = r
		}
	}
}

// WithLogger sets the logger used to trace passes and resolutions.
func WithLogger(logger log.Logger) Option {
	return func(e *Expander) { e.logger = logger }
}
