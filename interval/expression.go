package interval

import (
	"math"
	"slices"
	"time"
)

// node is an element of the persistent step list. Chains share their
// prefixes, so appending to an expression never copies it.
type node struct {
	step Step
	prev *node
	len  int
}

// Expression is an immutable chain of steps, optionally carrying a default
// baseline. The zero value and nil are both the empty expression.
//
// Every building operation returns a new Expression and leaves the receiver
// untouched, so any intermediate chain can be branched freely.
type Expression struct {
	tail        *node
	baseline    time.Time
	hasBaseline bool
}

// NewExpression returns an empty expression.
func NewExpression() *Expression {
	return &Expression{}
}

// NewExpressionWithBaseline returns an empty expression which resolves
// against baseline unless another baseline is passed to Resolve.
func NewExpressionWithBaseline(baseline time.Time) *Expression {
	return &Expression{baseline: baseline, hasBaseline: true}
}

// RootScope returns a chain whose root scope is unit.
func RootScope(unit Granularity) *Expression {
	return NewExpression().push(Descent(unit))
}

// Magnitude returns a single delta of count instances of unit. A magnitude
// is only valid as the right operand of Add, Sub and Combine.
func Magnitude(unit Granularity, count int64) *Expression {
	return NewExpression().push(Delta(unit, count))
}

func (e *Expression) push(step Step) *Expression {
	return e.link(&node{step: step, prev: e.head(), len: e.Len() + 1})
}

// replaceTail returns a copy of e with the last step replaced.
func (e *Expression) replaceTail(step Step) *Expression {
	return e.link(&node{step: step, prev: e.tail.prev, len: e.tail.len})
}

func (e *Expression) link(n *node) *Expression {
	next := &Expression{tail: n}
	if e != nil {
		next.baseline, next.hasBaseline = e.baseline, e.hasBaseline
	}
	return next
}

func (e *Expression) head() *node {
	if e == nil {
		return nil
	}
	return e.tail
}

// Descend appends a descent into unit. On an empty chain the descent becomes
// the root scope; otherwise unit must be strictly finer than the unit of the
// most recent descent, and that descent must be the root or indexed.
func (e *Expression) Descend(unit Granularity) (*Expression, error) {
	if e.IsEmpty() {
		return e.push(Descent(unit)), nil
	}
	if e.IsMagnitude() {
		return nil, noRootScopeError("cannot descend from a magnitude")
	}

	last, root := e.lastDescent()
	if !unit.Finer(last.Unit) {
		return nil, &HierarchyOrderError{Scope: last.Unit, Unit: unit}
	}
	if !root && !last.Indexed {
		return nil, unindexedScopeError(last.Unit)
	}
	return e.push(Descent(unit)), nil
}

// Index selects the index-th instance of the unit the chain last descended
// into. Negative indices count from the end of the scope. The index is
// checked against the approximate bounds only; exact bounds are enforced at
// resolution time. Indexing an indexed descent again replaces its index.
func (e *Expression) Index(index int64) (*Expression, error) {
	if e.IsEmpty() {
		return nil, ErrEmptyExpression
	}

	step := e.tail.step
	if step.IsDelta() {
		return nil, ErrNoIndexTarget
	}
	if e.tail.prev == nil {
		return nil, &RootScopeIndexError{Unit: step.Unit}
	}

	scope := e.scopeOf(e.tail)
	bound, err := ApproxMaxInstances(step.Unit, scope)
	if err != nil {
		return nil, err
	}
	if index < -bound || index >= bound {
		return nil, &IndexRangeError{Unit: step.Unit, Scope: scope, Index: index, Max: bound}
	}
	return e.replaceTail(IndexedDescent(step.Unit, index)), nil
}

// Add appends the magnitude m to the chain.
func (e *Expression) Add(m *Expression) (*Expression, error) {
	return Combine(e, m, 1)
}

// Sub appends the negated magnitude m to the chain.
func (e *Expression) Sub(m *Expression) (*Expression, error) {
	return Combine(e, m, -1)
}

// Combine appends the magnitude right, multiplied by the sign of sign, to
// the left chain. Descent may resume after the appended delta. It returns an
// OffsetOverflowError when the delta, merged with the deltas it follows,
// does not fit in an Offset.
func Combine(left, right *Expression, sign int) (*Expression, error) {
	if !right.IsMagnitude() {
		operand := "nil"
		if right != nil {
			operand = right.String()
		}
		return nil, &NotAMagnitudeError{Operand: operand}
	}
	if left.IsEmpty() || left.IsMagnitude() {
		return nil, noRootScopeError("cannot offset an expression without a root scope")
	}
	if last := left.tail; last.prev != nil && last.step.IsDescent() && !last.step.Indexed {
		return nil, unindexedScopeError(last.step.Unit)
	}

	delta := right.tail.step
	if sign < 0 {
		if delta.Count == math.MinInt64 {
			return nil, &OffsetOverflowError{Unit: delta.Unit, Count: delta.Count}
		}
		delta.Count = -delta.Count
	}

	// the delta merges with the deltas it follows at resolution
	run := []Step{delta}
	for n := left.head(); n != nil && n.step.IsDelta(); n = n.prev {
		run = append(run, n.step)
	}
	slices.Reverse(run)
	if _, err := SumOffsets(run...); err != nil {
		return nil, err
	}
	return left.push(delta), nil
}

// lastDescent returns the most recent descent step, skipping deltas, and
// reports whether it is the root scope.
func (e *Expression) lastDescent() (Step, bool) {
	for n := e.head(); n != nil; n = n.prev {
		if n.step.IsDescent() {
			return n.step, n.prev == nil
		}
	}
	return Step{}, false
}

// scopeOf returns the unit of the descent enclosing the descent at n.
func (e *Expression) scopeOf(n *node) Granularity {
	for p := n.prev; p != nil; p = p.prev {
		if p.step.IsDescent() {
			return p.step.Unit
		}
	}
	return n.step.Unit
}

// Steps returns the steps of the chain, in order.
func (e *Expression) Steps() []Step {
	steps := make([]Step, e.Len())
	for n := e.head(); n != nil; n = n.prev {
		steps[n.len-1] = n.step
	}
	return steps
}

// Len returns the number of steps in the chain.
func (e *Expression) Len() int {
	if e.head() == nil {
		return 0
	}
	return e.tail.len
}

// IsEmpty reports whether the chain has no steps.
func (e *Expression) IsEmpty() bool {
	return e.Len() == 0
}

// IsMagnitude reports whether the chain is a single delta.
func (e *Expression) IsMagnitude() bool {
	return e.Len() == 1 && e.tail.step.IsDelta()
}

// Root returns the root scope unit, or false if the chain has none.
func (e *Expression) Root() (Granularity, bool) {
	if e.IsEmpty() {
		return 0, false
	}
	n := e.tail
	for n.prev != nil {
		n = n.prev
	}
	if !n.step.IsDescent() {
		return 0, false
	}
	return n.step.Unit, true
}

// Baseline returns the captured default baseline, if any.
func (e *Expression) Baseline() (time.Time, bool) {
	if e == nil {
		return time.Time{}, false
	}
	return e.baseline, e.hasBaseline
}

// WithBaseline returns a copy of the chain capturing baseline as its
// default baseline.
func (e *Expression) WithBaseline(baseline time.Time) *Expression {
	return &Expression{tail: e.head(), baseline: baseline, hasBaseline: true}
}
