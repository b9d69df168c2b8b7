package main

import (
	"flag"
	"fmt"

	"go.starlark.net/repl"

	"github.com/reugn/go-interval/starlarkinterval"
)

func (a *app) cmdRepl(args []string) int {
	flags := flag.NewFlagSet("repl", flag.ContinueOnError)
	flags.SetOutput(a.stderr)
	at := flags.String("at", "", "baseline of the session (default: now)")
	resolve := a.addResolveFlags(flags)
	if err := flags.Parse(args); err != nil {
		return 1
	}

	baseline, err := a.parseTime(*at)
	if err != nil {
		return a.errorf("repl: %v", err)
	}
	fmt.Fprintf(a.stderr, "baseline %s; call an expression to resolve it, e.g. expr.month.day[-1]()\n",
		a.formatTime(baseline))

	thread := starlarkinterval.NewThread("repl", baseline, resolve.options(a.stderr)...)
	thread.Load = repl.MakeLoad()
	globals := starlarkinterval.Predeclared()
	for name, src := range a.cfg.Expressions {
		if expr, err := starlarkinterval.Compile(src); err == nil {
			globals[name] = starlarkinterval.NewExpr(expr)
		}
	}
	repl.REPL(thread, globals)
	return 0
}
