package interval

import (
	"time"
)

// Builder is a fluent front end over Expression. The first error raised by
// a building operation is kept and every later operation is a no-op, so a
// chain can be written in a single statement and checked once with Err.
//
// Builders are immutable: every method returns a new Builder.
type Builder struct {
	expr *Expression
	err  error
}

// Expr starts a new chain. An optional baseline is captured as the default
// baseline of the chain.
func Expr(baseline ...time.Time) *Builder {
	if len(baseline) > 0 {
		return &Builder{expr: NewExpressionWithBaseline(baseline[0])}
	}
	return &Builder{expr: NewExpression()}
}

// From wraps an existing expression.
func From(e *Expression) *Builder {
	if e == nil {
		e = NewExpression()
	}
	return &Builder{expr: e}
}

func (b *Builder) then(f func(*Expression) (*Expression, error)) *Builder {
	if b.err != nil {
		return b
	}
	e, err := f(b.expr)
	if err != nil {
		return &Builder{expr: b.expr, err: err}
	}
	return &Builder{expr: e}
}

// Descend descends into unit.
func (b *Builder) Descend(unit Granularity) *Builder {
	return b.then(func(e *Expression) (*Expression, error) {
		return e.Descend(unit)
	})
}

// Decade descends into the Decade unit.
func (b *Builder) Decade() *Builder { return b.Descend(Decade) }

// Year descends into the Year unit.
func (b *Builder) Year() *Builder { return b.Descend(Year) }

// Quarter descends into the Quarter unit.
func (b *Builder) Quarter() *Builder { return b.Descend(Quarter) }

// Month descends into the Month unit.
func (b *Builder) Month() *Builder { return b.Descend(Month) }

// Week descends into the Week unit.
func (b *Builder) Week() *Builder { return b.Descend(Week) }

// Day descends into the Day unit.
func (b *Builder) Day() *Builder { return b.Descend(Day) }

// Hour descends into the Hour unit.
func (b *Builder) Hour() *Builder { return b.Descend(Hour) }

// Minute descends into the Minute unit.
func (b *Builder) Minute() *Builder { return b.Descend(Minute) }

// Second descends into the Second unit.
func (b *Builder) Second() *Builder { return b.Descend(Second) }

// Decisecond descends into the Decisecond unit.
func (b *Builder) Decisecond() *Builder { return b.Descend(Decisecond) }

// Millisecond descends into the Millisecond unit.
func (b *Builder) Millisecond() *Builder { return b.Descend(Millisecond) }

// Microsecond descends into the Microsecond unit.
func (b *Builder) Microsecond() *Builder { return b.Descend(Microsecond) }

// At indexes the unit the chain last descended into.
func (b *Builder) At(index int64) *Builder {
	return b.then(func(e *Expression) (*Expression, error) {
		return e.Index(index)
	})
}

// N turns a bare root scope into a magnitude of n units of it,
// e.g. Expr().Day().N(1).
func (b *Builder) N(n int64) *Builder {
	return b.then(func(e *Expression) (*Expression, error) {
		if e.Len() != 1 || !e.tail.step.IsDescent() {
			return nil, ErrNotAScope
		}
		return Magnitude(e.tail.step.Unit, n), nil
	})
}

// Plus appends the magnitude m.
func (b *Builder) Plus(m *Builder) *Builder {
	return b.combine(m, 1)
}

// Minus appends the negated magnitude m.
func (b *Builder) Minus(m *Builder) *Builder {
	return b.combine(m, -1)
}

func (b *Builder) combine(m *Builder, sign int) *Builder {
	return b.then(func(e *Expression) (*Expression, error) {
		if m == nil {
			return Combine(e, nil, sign)
		}
		if m.err != nil {
			return nil, m.err
		}
		return Combine(e, m.expr, sign)
	})
}

// Expression returns the built chain. It is the last valid chain when Err
// is not nil.
func (b *Builder) Expression() *Expression {
	return b.expr
}

// Err returns the first error encountered while building.
func (b *Builder) Err() error {
	return b.err
}

// Resolve resolves the built chain, or returns the building error.
func (b *Builder) Resolve(opts ...ResolveOption) (time.Time, error) {
	if b.err != nil {
		return time.Time{}, b.err
	}
	return b.expr.Resolve(opts...)
}

// String implements the fmt.Stringer interface.
func (b *Builder) String() string {
	return b.expr.String()
}
