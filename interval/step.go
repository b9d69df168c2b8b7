package interval

import "fmt"

// Kind is the kind of an expression step.
type Kind int8

const (
	// KindDescent selects a unit inside the current scope.
	KindDescent Kind = iota
	// KindDelta offsets the working time by a number of units.
	KindDelta
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindDescent:
		return "Descent"
	case KindDelta:
		return "Delta"
	default:
		return fmt.Sprintf("Kind(%d)", int8(k))
	}
}

// Step is a single element of an expression chain.
//
// A Descent without an index is either the root scope, when it is the first
// step, or a placeholder that must be indexed before the chain can descend
// further. Index is zero-based; negative values count from the end of the
// enclosing scope. A Delta carries a signed Count of Unit instances.
type Step struct {
	Kind    Kind
	Unit    Granularity
	Index   int64
	Indexed bool
	Count   int64
}

// Descent returns an un-indexed descent into unit.
func Descent(unit Granularity) Step {
	return Step{Kind: KindDescent, Unit: unit}
}

// IndexedDescent returns a descent into the index-th instance of unit.
func IndexedDescent(unit Granularity, index int64) Step {
	return Step{Kind: KindDescent, Unit: unit, Index: index, Indexed: true}
}

// Delta returns a delta of count instances of unit.
func Delta(unit Granularity, count int64) Step {
	return Step{Kind: KindDelta, Unit: unit, Count: count}
}

// IsDescent reports whether the step is a descent.
func (s Step) IsDescent() bool {
	return s.Kind == KindDescent
}

// IsDelta reports whether the step is a delta.
func (s Step) IsDelta() bool {
	return s.Kind == KindDelta
}
