// Package matching: sentinel errors.
package matching

import "errors"

var (
	// ErrNilGraph indicates a nil template or world graph.
	ErrNilGraph = errors.New("matching: nil graph")

	// ErrChannelMismatch indicates the template carries a channel the world
	// does not; the problem cannot be reconciled by channel restriction.
	ErrChannelMismatch = errors.New("matching: template channel missing from world")

	// ErrCostShape indicates a supplied cost array whose dimensions disagree
	// with (template nodes × world nodes).
	ErrCostShape = errors.New("matching: cost array shape mismatch")

	// ErrNoCandidates indicates a template node with an empty candidate row
	// in a context that requires at least one candidate (a precondition
	// violation inside the filtering pipeline, not a business outcome).
	ErrNoCandidates = errors.New("matching: template node has no candidates")

	// ErrBadThreshold indicates a negative or NaN cost threshold.
	ErrBadThreshold = errors.New("matching: invalid cost threshold")
)
