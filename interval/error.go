package interval

import (
	"errors"
	"fmt"
)

// Errors
var (
	ErrHierarchyOrder   = errors.New("hierarchy order")
	ErrRootScopeIndex   = errors.New("root scope is not indexable")
	ErrIndexRange       = errors.New("index out of range")
	ErrNotAMagnitude    = errors.New("operand is not a magnitude")
	ErrNoBaseline       = errors.New("no baseline")
	ErrRolloverDisabled = errors.New("rollover disabled")
	ErrUnsupportedPair  = errors.New("unsupported granularity pair")
	ErrEmptyExpression  = errors.New("empty expression")
	ErrNoRootScope      = errors.New("no root scope")
	ErrUnindexedScope   = errors.New("unindexed scope")
	ErrNoIndexTarget    = errors.New("no index target")
	ErrNotAScope        = errors.New("magnitudes are created from a root scope only")
	ErrOffsetOverflow   = errors.New("offset overflow")
)

// HierarchyOrderError is returned when a chain descends into a unit that is
// not strictly finer than the current scope.
type HierarchyOrderError struct {
	Scope Granularity
	Unit  Granularity
}

func (e *HierarchyOrderError) Error() string {
	return fmt.Sprintf("%s: %s cannot be factored by %s", ErrHierarchyOrder, e.Scope, e.Unit)
}

func (e *HierarchyOrderError) Unwrap() error { return ErrHierarchyOrder }

// RootScopeIndexError is returned when an index is applied to the root scope.
type RootScopeIndexError struct {
	Unit Granularity
}

func (e *RootScopeIndexError) Error() string {
	return fmt.Sprintf("%s: %s", ErrRootScopeIndex, e.Unit)
}

func (e *RootScopeIndexError) Unwrap() error { return ErrRootScopeIndex }

// IndexRangeError reports an index rejected by the approximate bounds of the
// granularity table, before any calendar is consulted.
type IndexRangeError struct {
	Unit  Granularity
	Scope Granularity
	Index int64
	Max   int64
}

func (e *IndexRangeError) Error() string {
	return fmt.Sprintf("%s: %s cannot accept index %d of %s (max: %d)",
		ErrIndexRange, e.Unit, e.Index, e.Scope, e.Max-1)
}

func (e *IndexRangeError) Unwrap() error { return ErrIndexRange }

// NotAMagnitudeError is returned when an expression is combined with an
// operand other than a single delta step.
type NotAMagnitudeError struct {
	Operand string
}

func (e *NotAMagnitudeError) Error() string {
	if e.Operand == "" {
		return ErrNotAMagnitude.Error()
	}
	return fmt.Sprintf("%s: %s", ErrNotAMagnitude, e.Operand)
}

func (e *NotAMagnitudeError) Unwrap() error { return ErrNotAMagnitude }

// RolloverDisabledError reports an exact, resolution time overflow that
// rollover would have carried into the enclosing scope.
type RolloverDisabledError struct {
	// Unit is the granularity whose position overflowed.
	Unit Granularity
	// Scope is the enclosing granularity the excess would be carried into.
	Scope Granularity
	// Index is the attempted zero-based position of Unit within Scope.
	Index int64
	// Max is the exact number of Unit instances in the concrete Scope instance.
	Max int64
	// ScopePosition is the position Scope would have taken after the carry.
	ScopePosition int64
}

func (e *RolloverDisabledError) Error() string {
	return fmt.Sprintf("%s: %s position %d exceeds %d instances of %s (%s would move to position %d)",
		ErrRolloverDisabled, e.Unit, e.Index, e.Max, e.Scope, e.Scope, e.ScopePosition)
}

func (e *RolloverDisabledError) Unwrap() error { return ErrRolloverDisabled }

// OffsetOverflowError is returned when a delta, alone or merged with the
// deltas adjacent to it, does not fit in an Offset.
type OffsetOverflowError struct {
	Unit  Granularity
	Count int64
}

func (e *OffsetOverflowError) Error() string {
	return fmt.Sprintf("%s: %d %s exceeds the representable offset", ErrOffsetOverflow, e.Count, e.Unit)
}

func (e *OffsetOverflowError) Unwrap() error { return ErrOffsetOverflow }

// UnsupportedPairError is returned by the granularity table when queried
// with a unit that is not strictly finer than its scope.
type UnsupportedPairError struct {
	Unit   Granularity
	Within Granularity
}

func (e *UnsupportedPairError) Error() string {
	return fmt.Sprintf("%s: %s within %s", ErrUnsupportedPair, e.Unit, e.Within)
}

func (e *UnsupportedPairError) Unwrap() error { return ErrUnsupportedPair }

// unindexedScopeError returns an error, which unwraps to ErrUnindexedScope.
func unindexedScopeError(unit Granularity) error {
	return fmt.Errorf("%w: cannot access child units before indexing %s", ErrUnindexedScope, unit)
}

// noRootScopeError returns an error, which unwraps to ErrNoRootScope.
func noRootScopeError(message string) error {
	return fmt.Errorf("%w: %s", ErrNoRootScope, message)
}
