package interval_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/reugn/go-interval/internal/assert"
	"github.com/reugn/go-interval/interval"
)

func mustDescend(t *testing.T, e *interval.Expression, units ...interval.Granularity) *interval.Expression {
	t.Helper()
	for _, unit := range units {
		var err error
		if e, err = e.Descend(unit); err != nil {
			t.Fatal(err)
		}
	}
	return e
}

func mustIndex(t *testing.T, e *interval.Expression, index int64) *interval.Expression {
	t.Helper()
	e, err := e.Index(index)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestExpressionSteps(t *testing.T) {
	e := mustDescend(t, interval.NewExpression(), interval.Year, interval.Month)
	e = mustIndex(t, e, 2)
	e = mustIndex(t, mustDescend(t, e, interval.Day), -1)
	e, err := e.Sub(interval.Magnitude(interval.Day, 1))
	assert.IsNil(t, err)

	expected := []interval.Step{
		interval.Descent(interval.Year),
		interval.IndexedDescent(interval.Month, 2),
		interval.IndexedDescent(interval.Day, -1),
		interval.Delta(interval.Day, -1),
	}
	if diff := cmp.Diff(expected, e.Steps()); diff != "" {
		t.Fatalf("steps mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, e.Len(), 4)

	root, ok := e.Root()
	assert.Equal(t, ok, true)
	assert.Equal(t, root, interval.Year)
}

func TestRootScope(t *testing.T) {
	for _, unit := range interval.Granularities() {
		e := interval.RootScope(unit)
		root, ok := e.Root()
		assert.Equal(t, ok, true)
		assert.Equal(t, root, unit)

		descended := mustDescend(t, interval.NewExpression(), unit)
		if diff := cmp.Diff(e.Steps(), descended.Steps()); diff != "" {
			t.Fatalf("root mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestRootScopeIndex(t *testing.T) {
	for _, unit := range interval.Granularities() {
		unit := unit
		t.Run(unit.String(), func(t *testing.T) {
			t.Parallel()
			_, err := interval.RootScope(unit).Index(0)
			assert.ErrorIs(t, err, interval.ErrRootScopeIndex)

			var rootErr *interval.RootScopeIndexError
			assert.Equal(t, errors.As(err, &rootErr), true)
			assert.Equal(t, rootErr.Unit, unit)
		})
	}
}

func TestHierarchyOrder(t *testing.T) {
	tests := []struct {
		name  string
		chain []interval.Granularity
		next  interval.Granularity
		scope interval.Granularity
	}{
		{"same unit as root", []interval.Granularity{interval.Month}, interval.Month, interval.Month},
		{"coarser than root", []interval.Granularity{interval.Day}, interval.Year, interval.Day},
		{"coarser than scope", []interval.Granularity{interval.Year, interval.Month}, interval.Quarter, interval.Month},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := mustDescend(t, interval.NewExpression(), tt.chain...)
			_, err := e.Descend(tt.next)
			assert.ErrorIs(t, err, interval.ErrHierarchyOrder)

			var orderErr *interval.HierarchyOrderError
			assert.Equal(t, errors.As(err, &orderErr), true)
			assert.Equal(t, orderErr.Scope, tt.scope)
			assert.Equal(t, orderErr.Unit, tt.next)
		})
	}

	// deltas are skipped when looking up the scope
	e := mustIndex(t, mustDescend(t, interval.RootScope(interval.Year), interval.Month), 0)
	e, err := e.Add(interval.Magnitude(interval.Minute, 5))
	assert.IsNil(t, err)
	_, err = e.Descend(interval.Month)
	assert.ErrorIs(t, err, interval.ErrHierarchyOrder)
	_, err = e.Descend(interval.Day)
	assert.IsNil(t, err)
}

func TestIndexRange(t *testing.T) {
	tests := []struct {
		name  string
		chain []interval.Granularity
		index int64
		valid bool
	}{
		{"last month", []interval.Granularity{interval.Year, interval.Month}, 11, true},
		{"month overflow", []interval.Granularity{interval.Year, interval.Month}, 12, false},
		{"first month from end", []interval.Granularity{interval.Year, interval.Month}, -12, true},
		{"month underflow", []interval.Granularity{interval.Year, interval.Month}, -13, false},
		{"day 31", []interval.Granularity{interval.Month, interval.Day}, 30, true},
		{"day 32", []interval.Granularity{interval.Month, interval.Day}, 31, false},
		{"leap day of year", []interval.Granularity{interval.Year, interval.Day}, 365, true},
		{"hour 25", []interval.Granularity{interval.Day, interval.Hour}, 24, true},
		{"hour 26", []interval.Granularity{interval.Day, interval.Hour}, 25, false},
		{"week 5", []interval.Granularity{interval.Month, interval.Week}, 4, true},
		{"week 6", []interval.Granularity{interval.Month, interval.Week}, 5, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := mustDescend(t, interval.NewExpression(), tt.chain...)
			_, err := e.Index(tt.index)
			if tt.valid {
				assert.IsNil(t, err)
				return
			}
			assert.ErrorIs(t, err, interval.ErrIndexRange)
		})
	}

	_, err := mustDescend(t, interval.NewExpression(), interval.Year, interval.Month).Index(12)
	var rangeErr *interval.IndexRangeError
	assert.Equal(t, errors.As(err, &rangeErr), true)
	assert.Equal(t, *rangeErr, interval.IndexRangeError{
		Unit: interval.Month, Scope: interval.Year, Index: 12, Max: 12,
	})
	assert.ErrorContains(t, err, "Month cannot accept index 12 of Year (max: 11)")
}

func TestIndexTarget(t *testing.T) {
	_, err := interval.NewExpression().Index(0)
	assert.ErrorIs(t, err, interval.ErrEmptyExpression)

	_, err = interval.Magnitude(interval.Day, 1).Index(0)
	assert.ErrorIs(t, err, interval.ErrNoIndexTarget)

	e := mustIndex(t, mustDescend(t, interval.RootScope(interval.Year), interval.Month), 1)
	e, err = e.Add(interval.Magnitude(interval.Day, 1))
	assert.IsNil(t, err)
	_, err = e.Index(3)
	assert.ErrorIs(t, err, interval.ErrNoIndexTarget)
}

func TestUnindexedScope(t *testing.T) {
	e := mustDescend(t, interval.NewExpression(), interval.Year, interval.Month)

	_, err := e.Descend(interval.Day)
	assert.ErrorIs(t, err, interval.ErrUnindexedScope)
	assert.ErrorContains(t, err, "before indexing Month")

	_, err = e.Add(interval.Magnitude(interval.Day, 1))
	assert.ErrorIs(t, err, interval.ErrUnindexedScope)

	// the root scope does not need an index
	_, err = interval.RootScope(interval.Year).Add(interval.Magnitude(interval.Day, 1))
	assert.IsNil(t, err)
}

func TestCombine(t *testing.T) {
	base := mustIndex(t, mustDescend(t, interval.RootScope(interval.Year), interval.Month), 0)

	_, err := base.Add(interval.RootScope(interval.Day))
	assert.ErrorIs(t, err, interval.ErrNotAMagnitude)

	_, err = base.Add(base)
	var operandErr *interval.NotAMagnitudeError
	assert.Equal(t, errors.As(err, &operandErr), true)
	assert.Equal(t, operandErr.Operand, "Year > Month[1]")

	_, err = base.Sub(nil)
	assert.ErrorIs(t, err, interval.ErrNotAMagnitude)

	_, err = interval.NewExpression().Add(interval.Magnitude(interval.Day, 1))
	assert.ErrorIs(t, err, interval.ErrNoRootScope)

	_, err = interval.Magnitude(interval.Day, 1).Add(interval.Magnitude(interval.Day, 1))
	assert.ErrorIs(t, err, interval.ErrNoRootScope)

	_, err = interval.Magnitude(interval.Day, 1).Descend(interval.Hour)
	assert.ErrorIs(t, err, interval.ErrNoRootScope)

	e, err := interval.Combine(base, interval.Magnitude(interval.Week, 2), -1)
	assert.IsNil(t, err)
	assert.Equal(t, e.Steps()[2], interval.Delta(interval.Week, -2))
}

func TestCombineOverflow(t *testing.T) {
	day := interval.RootScope(interval.Day)

	_, err := day.Add(interval.Magnitude(interval.Hour, 3000000))
	var overflowErr *interval.OffsetOverflowError
	assert.Equal(t, errors.As(err, &overflowErr), true)
	assert.Equal(t, *overflowErr, interval.OffsetOverflowError{Unit: interval.Hour, Count: 3000000})

	_, err = day.Sub(interval.Magnitude(interval.Day, math.MinInt64))
	assert.ErrorIs(t, err, interval.ErrOffsetOverflow)

	e, err := day.Add(interval.Magnitude(interval.Hour, 2000000))
	assert.IsNil(t, err)
	_, err = e.Add(interval.Magnitude(interval.Hour, 2000000))
	assert.ErrorIs(t, err, interval.ErrOffsetOverflow)

	// months and durations do not share a field
	e, err = e.Add(interval.Magnitude(interval.Year, 2000000))
	assert.IsNil(t, err)
	_, err = e.Sub(interval.Magnitude(interval.Hour, 2000000))
	assert.IsNil(t, err)
}

func TestExpressionImmutable(t *testing.T) {
	base := mustIndex(t, mustDescend(t, interval.RootScope(interval.Year), interval.Month), 1)
	before := base.Steps()

	first := mustIndex(t, mustDescend(t, base, interval.Day), 0)
	last := mustIndex(t, mustDescend(t, base, interval.Day), -1)
	shifted, err := base.Add(interval.Magnitude(interval.Day, 3))
	assert.IsNil(t, err)

	if diff := cmp.Diff(before, base.Steps()); diff != "" {
		t.Fatalf("base chain changed (-want +got):\n%s", diff)
	}
	assert.Equal(t, first.Len(), 3)
	assert.Equal(t, last.Len(), 3)
	assert.Equal(t, shifted.Len(), 3)
	assert.NotEqual(t, first.Steps()[2], last.Steps()[2])

	// re-indexing produces a new chain
	reindexed := mustIndex(t, first, 5)
	assert.Equal(t, first.Steps()[2], interval.IndexedDescent(interval.Day, 0))
	assert.Equal(t, reindexed.Steps()[2], interval.IndexedDescent(interval.Day, 5))
	assert.Equal(t, reindexed.Len(), 3)
}

func TestExpressionBaseline(t *testing.T) {
	baseline := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

	e := interval.NewExpressionWithBaseline(baseline)
	captured, ok := e.Baseline()
	assert.Equal(t, ok, true)
	assert.Equal(t, captured, baseline)

	// building keeps the captured baseline
	e = mustDescend(t, e, interval.Year)
	captured, ok = e.Baseline()
	assert.Equal(t, ok, true)
	assert.Equal(t, captured, baseline)

	_, ok = interval.RootScope(interval.Year).Baseline()
	assert.Equal(t, ok, false)

	other := baseline.AddDate(1, 0, 0)
	rebased := e.WithBaseline(other)
	captured, _ = rebased.Baseline()
	assert.Equal(t, captured, other)
	captured, _ = e.Baseline()
	assert.Equal(t, captured, baseline)
}

func TestExpressionPredicates(t *testing.T) {
	var nilExpr *interval.Expression
	assert.Equal(t, nilExpr.IsEmpty(), true)
	assert.Equal(t, nilExpr.Len(), 0)
	assert.Equal(t, interval.NewExpression().IsEmpty(), true)
	assert.Equal(t, interval.Magnitude(interval.Day, 1).IsMagnitude(), true)
	assert.Equal(t, interval.RootScope(interval.Day).IsMagnitude(), false)

	_, ok := interval.Magnitude(interval.Day, 1).Root()
	assert.Equal(t, ok, false)
	_, ok = interval.NewExpression().Root()
	assert.Equal(t, ok, false)
}
