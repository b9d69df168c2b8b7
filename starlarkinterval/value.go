package starlarkinterval

import (
	"fmt"
	"strings"
	"time"

	starlarktime "go.starlark.net/lib/time"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/reugn/go-interval/interval"
)

// Expr is the Starlark value of an interval expression.
//
//	e = expr.year.month[1].day[-1]   # descend and index
//	m = expr.day.n(2)                # magnitude of two days
//	t = (e - m)(dt=time.now())       # offset and resolve
type Expr struct {
	expr *interval.Expression
}

var (
	_ starlark.HasAttrs  = (*Expr)(nil)
	_ starlark.Mapping   = (*Expr)(nil)
	_ starlark.HasBinary = (*Expr)(nil)
	_ starlark.Callable  = (*Expr)(nil)
)

// NewExpr returns the Starlark value of the expression.
func NewExpr(e *interval.Expression) *Expr {
	if e == nil {
		e = interval.NewExpression()
	}
	return &Expr{expr: e}
}

// Expression returns the wrapped expression.
func (e *Expr) Expression() *interval.Expression { return e.expr }

// String returns the rendered expression.
func (e *Expr) String() string {
	return fmt.Sprintf("expr(%s)", e.expr)
}

// Type returns "interval.expr".
func (e *Expr) Type() string { return "interval.expr" }

// Freeze is a no-op, expressions are immutable.
func (e *Expr) Freeze() {}

// Truth reports whether the expression has any step.
func (e *Expr) Truth() starlark.Bool { return starlark.Bool(!e.expr.IsEmpty()) }

// Hash hashes the rendered expression.
func (e *Expr) Hash() (uint32, error) {
	return starlark.String(e.expr.String()).Hash()
}

// Name returns the callable name.
func (e *Expr) Name() string { return "expr" }

// Attr descends into the unit of the attribute name. The n attribute is a
// method creating a magnitude from a root scope.
func (e *Expr) Attr(name string) (starlark.Value, error) {
	if name == "n" {
		return starlark.NewBuiltin("n", e.magnitude), nil
	}
	unit, err := attrUnit(name)
	if err != nil {
		return nil, nil
	}
	next, err := e.expr.Descend(unit)
	if err != nil {
		return nil, err
	}
	return &Expr{expr: next}, nil
}

// AttrNames returns the unit attributes and the n method.
func (e *Expr) AttrNames() []string {
	names := []string{"n"}
	for _, unit := range interval.Granularities() {
		names = append(names, strings.ToLower(unit.String()))
	}
	return names
}

// Get indexes the unit the expression last descended into.
func (e *Expr) Get(k starlark.Value) (starlark.Value, bool, error) {
	index, err := toInt64(k)
	if err != nil {
		return nil, false, err
	}
	next, err := e.expr.Index(index)
	if err != nil {
		return nil, false, err
	}
	return &Expr{expr: next}, true, nil
}

// Binary implements expr + magnitude and expr - magnitude.
func (e *Expr) Binary(op syntax.Token, y starlark.Value, side starlark.Side) (starlark.Value, error) {
	other, ok := y.(*Expr)
	if !ok || side == starlark.Right {
		return nil, nil
	}

	var sign int
	switch op {
	case syntax.PLUS:
		sign = 1
	case syntax.MINUS:
		sign = -1
	default:
		return nil, nil
	}
	next, err := interval.Combine(e.expr, other.expr, sign)
	if err != nil {
		return nil, err
	}
	return &Expr{expr: next}, nil
}

// CallInternal resolves the expression:
//
//	e(dt=None, rollover=True, operation_safe=False)
//
// Without dt, the baseline captured by the expression is used, then the
// baseline of the evaluating thread. Omitted flags keep the resolve options
// of the thread.
func (e *Expr) CallInternal(thread *starlark.Thread, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var dt, rollover, operationSafe starlark.Value = starlark.None, starlark.None, starlark.None
	if err := starlark.UnpackArgs(e.Name(), args, kwargs,
		"dt?", &dt, "rollover?", &rollover, "operation_safe?", &operationSafe); err != nil {
		return nil, err
	}

	opts := threadOptions(thread)
	if v, ok := rollover.(starlark.Bool); ok {
		opts = append(opts, interval.WithRollover(bool(v)))
	}
	if v, ok := operationSafe.(starlark.Bool); ok {
		opts = append(opts, interval.WithOperationSafe(bool(v)))
	}

	switch v := dt.(type) {
	case starlarktime.Time:
		opts = append(opts, interval.WithBaseline(time.Time(v)))
	case starlark.NoneType:
		if _, ok := e.expr.Baseline(); !ok {
			if baseline, ok := thread.Local(baselineKey).(time.Time); ok {
				opts = append(opts, interval.WithBaseline(baseline))
			}
		}
	default:
		return nil, fmt.Errorf("%s: dt must be a time.time, not %s", e.Name(), dt.Type())
	}

	t, err := e.expr.Resolve(opts...)
	if err != nil {
		return nil, err
	}
	return starlarktime.Time(t), nil
}

// magnitude implements e.n(count) on a bare root scope.
func (e *Expr) magnitude(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple,
	kwargs []starlark.Tuple) (starlark.Value, error) {
	var count starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &count); err != nil {
		return nil, err
	}
	n, err := toInt64(count)
	if err != nil {
		return nil, err
	}
	if e.expr.Len() != 1 || e.expr.IsMagnitude() {
		return nil, fmt.Errorf("%w: %s", interval.ErrNotAScope, e.expr)
	}
	unit, _ := e.expr.Root()
	return &Expr{expr: interval.Magnitude(unit, n)}, nil
}

// attrUnit accepts the lower case singular unit names only.
func attrUnit(name string) (interval.Granularity, error) {
	unit, err := interval.ParseGranularity(name)
	if err != nil {
		return 0, err
	}
	if name != strings.ToLower(unit.String()) {
		return 0, fmt.Errorf("no attribute %q", name)
	}
	return unit, nil
}

func toInt64(v starlark.Value) (int64, error) {
	i, ok := v.(starlark.Int)
	if !ok {
		return 0, fmt.Errorf("got %s, want int", v.Type())
	}
	n, ok := i.Int64()
	if !ok {
		return 0, fmt.Errorf("int value out of range (want signed 64-bit value)")
	}
	return n, nil
}
