package interval

import (
	"time"

	"github.com/reugn/go-interval/logger"
)

// ResolveOptions holds the resolution policy of a single Resolve call.
type ResolveOptions struct {
	// Baseline overrides the baseline captured by the expression.
	Baseline    time.Time
	hasBaseline bool

	// Rollover carries an out of range position into the adjacent instance
	// of the enclosing scope. When disabled, any overflow is an error.
	Rollover bool

	// OperationSafe permits overflows caused by delta arithmetic even when
	// Rollover is disabled. Overflows caused by a direct index still fail.
	OperationSafe bool

	// Calendar performs the date arithmetic.
	Calendar Calendar

	// Logger receives the rollover diagnostics.
	Logger logger.Logger
}

// ResolveOption configures a Resolve call.
type ResolveOption func(*ResolveOptions)

// WithBaseline sets the baseline the expression is resolved against.
func WithBaseline(baseline time.Time) ResolveOption {
	return func(o *ResolveOptions) {
		o.Baseline = baseline
		o.hasBaseline = true
	}
}

// WithRollover enables or disables rollover. Rollover is enabled by default.
func WithRollover(rollover bool) ResolveOption {
	return func(o *ResolveOptions) {
		o.Rollover = rollover
	}
}

// WithOperationSafe permits arithmetic-caused overflows in strict mode.
func WithOperationSafe(operationSafe bool) ResolveOption {
	return func(o *ResolveOptions) {
		o.OperationSafe = operationSafe
	}
}

// WithCalendar sets the calendar used for date arithmetic.
func WithCalendar(calendar Calendar) ResolveOption {
	return func(o *ResolveOptions) {
		o.Calendar = calendar
	}
}

// WithLogger sets the logger used during resolution.
func WithLogger(l logger.Logger) ResolveOption {
	return func(o *ResolveOptions) {
		o.Logger = l
	}
}

// NewResolveOptions returns the options produced by applying opts to the
// defaults.
func NewResolveOptions(opts ...ResolveOption) ResolveOptions {
	options := ResolveOptions{
		Rollover: true,
		Calendar: Gregorian{},
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Calendar == nil {
		options.Calendar = Gregorian{}
	}
	if options.Logger == nil {
		options.Logger = logger.Default()
	}
	return options
}
