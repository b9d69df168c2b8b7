package main

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/reugn/go-quartz/quartz"

	"github.com/reugn/go-interval/starlarkinterval"
	"github.com/reugn/go-interval/trigger"
)

func (a *app) cmdNext(args []string) int {
	flags := flag.NewFlagSet("next", flag.ContinueOnError)
	flags.SetOutput(a.stderr)
	cronLine := flags.String("cron", "", "cron line supplying the baselines")
	count := flags.Int("count", 5, "number of fire times")
	from := flags.String("from", "", "start time (default: now)")
	resolve := a.addResolveFlags(flags)
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() < 1 || *count < 1 {
		fmt.Fprintln(a.stderr, "usage: interval next [--cron LINE] [--count N] [--from T] <source>")
		return 1
	}

	expr, err := starlarkinterval.Compile(strings.Join(flags.Args(), " "))
	if err != nil {
		return a.errorf("next: %v", err)
	}
	start, err := a.parseTime(*from)
	if err != nil {
		return a.errorf("next: %v", err)
	}

	opts := []trigger.Option{
		trigger.WithLocation(a.loc),
		trigger.WithResolveOptions(resolve.options(a.stderr)...),
	}
	var t quartz.Trigger
	if *cronLine != "" {
		t, err = trigger.NewCronTrigger(*cronLine, expr, opts...)
	} else {
		t, err = trigger.NewExpressionTrigger(expr, opts...)
	}
	if err != nil {
		return a.errorf("next: %v", err)
	}

	fmt.Fprintln(a.stderr, t.Description())
	prev := start.UnixNano()
	for i := 0; i < *count; i++ {
		next, err := t.NextFireTime(prev)
		if err != nil {
			return a.errorf("next: %v", err)
		}
		fmt.Fprintln(a.stdout, a.formatTime(timeFromNanos(next)))
		prev = next
	}
	return 0
}

func timeFromNanos(nanos int64) time.Time {
	return time.Unix(0, nanos)
}
