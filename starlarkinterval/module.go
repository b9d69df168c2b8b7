// Package starlarkinterval exposes interval expressions to Starlark, with
// attribute and index sugar: expr.year.month[2] - expr.day.n(1).
package starlarkinterval

import (
	"fmt"
	"strings"
	"time"

	starlarktime "go.starlark.net/lib/time"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/reugn/go-interval/interval"
	"github.com/reugn/go-interval/logger"
)

// ModuleName is the name of the module in the Starlark runtime.
const ModuleName = "interval"

const (
	baselineKey = "interval.baseline"
	optionsKey  = "interval.options"
)

// Module is the interval Starlark module.
var Module = &starlarkstruct.Module{
	Name: ModuleName,
	Members: starlark.StringDict{
		"expr":          starlark.NewBuiltin("expr", newExpr),
		"render":        starlark.NewBuiltin("render", render),
		"granularities": granularities(),
	},
}

// Predeclared returns the names available to evaluated sources: the empty
// expression expr, and the interval and time modules.
func Predeclared() starlark.StringDict {
	return starlark.StringDict{
		"expr":                   NewExpr(nil),
		ModuleName:               Module,
		starlarktime.Module.Name: starlarktime.Module,
	}
}

// NewThread returns a thread resolving baseline-less expressions against
// baseline with the given options. Print statements go to the default
// logger.
func NewThread(name string, baseline time.Time, opts ...interval.ResolveOption) *starlark.Thread {
	thread := &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			logger.Info(msg)
		},
	}
	thread.SetLocal(baselineKey, baseline)
	thread.SetLocal(optionsKey, opts)
	return thread
}

func threadOptions(thread *starlark.Thread) []interval.ResolveOption {
	opts, _ := thread.Local(optionsKey).([]interval.ResolveOption)
	return append([]interval.ResolveOption(nil), opts...)
}

// newExpr implements interval.expr(dt=None).
func newExpr(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple,
	kwargs []starlark.Tuple) (starlark.Value, error) {
	var dt starlark.Value = starlark.None
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "dt?", &dt); err != nil {
		return nil, err
	}
	switch v := dt.(type) {
	case starlarktime.Time:
		return NewExpr(interval.NewExpressionWithBaseline(time.Time(v))), nil
	case starlark.NoneType:
		return NewExpr(nil), nil
	default:
		return nil, fmt.Errorf("%s: dt must be a time.time, not %s", b.Name(), dt.Type())
	}
}

// render implements interval.render(e).
func render(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple,
	kwargs []starlark.Tuple) (starlark.Value, error) {
	var v starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &v); err != nil {
		return nil, err
	}
	e, ok := v.(*Expr)
	if !ok {
		return nil, fmt.Errorf("%s: got %s, want interval.expr", b.Name(), v.Type())
	}
	return starlark.String(interval.Render(e.expr)), nil
}

func granularities() *starlark.List {
	units := interval.Granularities()
	names := make([]starlark.Value, 0, len(units))
	for _, unit := range units {
		names = append(names, starlark.String(strings.ToLower(unit.String())))
	}
	list := starlark.NewList(names)
	list.Freeze()
	return list
}
