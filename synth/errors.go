// Package synth: sentinel errors.
package synth

import "errors"

var (
	// ErrTooFewNodes is returned when a node count is below one.
	ErrTooFewNodes = errors.New("synth: node count must be at least 1")

	// ErrTemplateTooLarge is returned when the template would exceed the world.
	ErrTemplateTooLarge = errors.New("synth: template larger than world")

	// ErrBadProbability is returned when the edge probability is outside [0, 1].
	ErrBadProbability = errors.New("synth: edge probability not in [0,1]")

	// ErrBadChannelCount is returned when the channel count is below one.
	ErrBadChannelCount = errors.New("synth: channel count must be at least 1")

	// ErrBadNoise is returned when the removal count is negative.
	ErrBadNoise = errors.New("synth: noise removals must be non-negative")
)
