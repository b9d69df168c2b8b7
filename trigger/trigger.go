// Package trigger adapts interval expressions to the quartz scheduler.
package trigger

import (
	"errors"
	"fmt"
	"time"

	"github.com/reugn/go-quartz/quartz"

	"github.com/reugn/go-interval/interval"
)

const (
	defaultMaxAttempts = 128
	sep                = "::"
)

// Option configures a trigger.
type Option func(*options)

type options struct {
	location    *time.Location
	resolve     []interval.ResolveOption
	maxAttempts int
}

func newOptions(opts []Option) options {
	o := options{
		location:    time.Local,
		maxAttempts: defaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLocation sets the location fire times are computed in.
func WithLocation(location *time.Location) Option {
	return func(o *options) {
		if location != nil {
			o.location = location
		}
	}
}

// WithResolveOptions sets the options passed to every resolution.
// The baseline is always set by the trigger.
func WithResolveOptions(opts ...interval.ResolveOption) Option {
	return func(o *options) {
		o.resolve = append(o.resolve, opts...)
	}
}

// WithMaxAttempts bounds the number of baselines tried by a single
// NextFireTime call.
func WithMaxAttempts(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxAttempts = n
		}
	}
}

// ExpressionTrigger fires at the instant an expression resolves to in the
// root scope instance containing the previous fire time, or in the first
// following root scope instance where it resolves after it.
//
// Root scope instances where a strict expression cannot be resolved are
// skipped, so Year > Month[2] > Day[29] fires on leap days only when
// rollover is disabled.
type ExpressionTrigger struct {
	expr *interval.Expression
	root interval.Granularity
	opts options
}

// Verify ExpressionTrigger satisfies the quartz.Trigger interface.
var _ quartz.Trigger = (*ExpressionTrigger)(nil)

// NewExpressionTrigger returns a new ExpressionTrigger for the expression.
func NewExpressionTrigger(expr *interval.Expression, opts ...Option) (*ExpressionTrigger, error) {
	root, err := validate(expr)
	if err != nil {
		return nil, err
	}
	return &ExpressionTrigger{
		expr: expr,
		root: root,
		opts: newOptions(opts),
	}, nil
}

// NextFireTime returns the next time at which the ExpressionTrigger is
// scheduled to fire.
func (et *ExpressionTrigger) NextFireTime(prev int64) (int64, error) {
	cal := interval.NewResolveOptions(et.opts.resolve...).Calendar
	baseline := time.Unix(0, prev).In(et.opts.location)

	for i := 0; i < et.opts.maxAttempts; i++ {
		next, ok, err := resolveAfter(et.expr, baseline, prev, et.opts.resolve)
		if err != nil {
			return 0, err
		}
		if ok {
			return next, nil
		}
		baseline = cal.Add(et.root, 1, cal.Truncate(et.root, baseline))
	}
	return 0, fmt.Errorf("%w: no fire time within %d %s",
		quartz.ErrTriggerExpired, et.opts.maxAttempts, et.root.Plural())
}

// Description returns the description of the trigger.
func (et *ExpressionTrigger) Description() string {
	return fmt.Sprintf("ExpressionTrigger%s%s", sep, et.expr)
}

// resolveAfter resolves expr at baseline and reports whether the result is
// after prev. Strict mode overflows are reported as not found.
func resolveAfter(expr *interval.Expression, baseline time.Time, prev int64,
	resolveOpts []interval.ResolveOption) (int64, bool, error) {
	opts := append(resolveOpts[:len(resolveOpts):len(resolveOpts)], interval.WithBaseline(baseline))
	next, err := expr.Resolve(opts...)
	if err != nil {
		if errors.Is(err, interval.ErrRolloverDisabled) {
			return 0, false, nil
		}
		return 0, false, err
	}
	if nano := next.UnixNano(); nano > prev {
		return nano, true, nil
	}
	return 0, false, nil
}

func validate(expr *interval.Expression) (interval.Granularity, error) {
	if expr.IsEmpty() {
		return 0, interval.ErrEmptyExpression
	}
	root, ok := expr.Root()
	if !ok {
		return 0, fmt.Errorf("%w: a magnitude cannot be scheduled", interval.ErrNoRootScope)
	}
	return root, nil
}
