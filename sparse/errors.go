// Package sparse: sentinel errors.
//
// All errors are plain sentinels so call sites can branch with errors.Is;
// wrapping with operation context happens at the public entrypoints via
// fmt.Errorf("op: %w", err).
package sparse

import "errors"

var (
	// ErrInvalidDimensions indicates a non-positive row or column count.
	ErrInvalidDimensions = errors.New("sparse: invalid dimensions")

	// ErrIndexOutOfBounds indicates an entry or query index outside the matrix shape.
	ErrIndexOutOfBounds = errors.New("sparse: index out of bounds")

	// ErrDimensionMismatch indicates that two operands (or a mask and an axis)
	// disagree in length or shape.
	ErrDimensionMismatch = errors.New("sparse: dimension mismatch")

	// ErrNegativeEntry indicates a negative, NaN or infinite value at ingestion.
	// CSR matrices in this package store edge multiplicities and clamped
	// counts, both of which are finite and non-negative by construction.
	ErrNegativeEntry = errors.New("sparse: negative or non-finite entry")

	// ErrNilMatrix indicates that a nil *CSR was passed to an operation.
	ErrNilMatrix = errors.New("sparse: nil matrix")
)
