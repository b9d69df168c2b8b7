package starlarkinterval

import (
	"fmt"
	"time"

	starlarktime "go.starlark.net/lib/time"
	"go.starlark.net/starlark"

	"github.com/reugn/go-interval/interval"
)

const sourceName = "<expr>"

// Compile evaluates the Starlark source and returns the expression it
// builds, e.g. "expr.year.month[1].day[-1]".
func Compile(src string) (*interval.Expression, error) {
	v, err := starlark.Eval(NewThread("compile", time.Time{}), sourceName, src, Predeclared())
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", src, err)
	}
	e, ok := v.(*Expr)
	if !ok {
		return nil, fmt.Errorf("compile %q: got %s, want interval.expr", src, v.Type())
	}
	return e.expr, nil
}

// Eval evaluates the Starlark source against baseline. The source either
// builds an expression, which is resolved, or resolves one itself by
// calling it, in which case the returned expression is nil.
func Eval(src string, baseline time.Time, opts ...interval.ResolveOption) (time.Time, *interval.Expression, error) {
	thread := NewThread("eval", baseline, opts...)
	v, err := starlark.Eval(thread, sourceName, src, Predeclared())
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("eval %q: %w", src, err)
	}

	switch v := v.(type) {
	case *Expr:
		resolveOpts := append(threadOptions(thread), interval.WithBaseline(baseline))
		if captured, ok := v.expr.Baseline(); ok {
			resolveOpts[len(resolveOpts)-1] = interval.WithBaseline(captured)
		}
		t, err := v.expr.Resolve(resolveOpts...)
		if err != nil {
			return time.Time{}, v.expr, err
		}
		return t, v.expr, nil
	case starlarktime.Time:
		return time.Time(v), nil, nil
	default:
		return time.Time{}, nil, fmt.Errorf("eval %q: got %s, want interval.expr or time.time", src, v.Type())
	}
}
