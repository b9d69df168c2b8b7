package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/reugn/go-interval/interval"
	"github.com/reugn/go-interval/starlarkinterval"
)

type evalResult struct {
	Name       string `json:"name,omitempty"`
	Expression string `json:"expression,omitempty"`
	Baseline   string `json:"baseline"`
	Time       string `json:"time"`
}

func (a *app) cmdEval(args []string) int {
	flags := flag.NewFlagSet("eval", flag.ContinueOnError)
	flags.SetOutput(a.stderr)
	at := flags.String("at", "", "baseline time (default: now)")
	jsonOut := flags.Bool("json", false, "JSON output")
	resolve := a.addResolveFlags(flags)
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() < 1 {
		fmt.Fprintln(a.stderr, "usage: interval eval [--at T] [--rollover=false] [--operation-safe] <source>")
		return 1
	}

	baseline, err := a.parseTime(*at)
	if err != nil {
		return a.errorf("eval: %v", err)
	}
	src := strings.Join(flags.Args(), " ")
	return a.evaluate("", src, baseline, resolve.options(a.stderr), *jsonOut)
}

func (a *app) cmdRun(args []string) int {
	flags := flag.NewFlagSet("run", flag.ContinueOnError)
	flags.SetOutput(a.stderr)
	at := flags.String("at", "", "baseline time (default: now)")
	jsonOut := flags.Bool("json", false, "JSON output")
	resolve := a.addResolveFlags(flags)
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() != 1 {
		fmt.Fprintln(a.stderr, "usage: interval run [--at T] <name>")
		return 1
	}

	name := flags.Arg(0)
	src, err := a.lookup(context.Background(), name)
	if err != nil {
		return a.errorf("run: %v", err)
	}
	baseline, err := a.parseTime(*at)
	if err != nil {
		return a.errorf("run: %v", err)
	}
	return a.evaluate(name, src, baseline, resolve.options(a.stderr), *jsonOut)
}

func (a *app) evaluate(name, src string, baseline time.Time, opts []interval.ResolveOption, jsonOut bool) int {
	result, expr, err := starlarkinterval.Eval(src, baseline, opts...)
	if err != nil {
		return a.errorf("%v", err)
	}

	if jsonOut {
		a.printJSON(evalResult{
			Name:       name,
			Expression: interval.Render(expr),
			Baseline:   a.formatTime(baseline),
			Time:       a.formatTime(result),
		})
		return 0
	}
	fmt.Fprintln(a.stdout, a.formatTime(result))
	return 0
}
