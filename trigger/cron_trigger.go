package trigger

import (
	"fmt"
	"time"

	"github.com/gorhill/cronexpr"
	"github.com/reugn/go-quartz/quartz"

	"github.com/reugn/go-interval/interval"
)

// CronTrigger takes its baselines from a cron schedule and fires at the
// first instant the expression resolves to after the previous fire time.
// For example, the schedule "0 0 * * MON" with Day > Hour[9] > Minute[30]
// fires on Mondays at 09:30.
type CronTrigger struct {
	line     string
	schedule *cronexpr.Expression
	expr     *interval.Expression
	opts     options
}

// Verify CronTrigger satisfies the quartz.Trigger interface.
var _ quartz.Trigger = (*CronTrigger)(nil)

// NewCronTrigger returns a new CronTrigger for the cron line and the
// expression.
func NewCronTrigger(line string, expr *interval.Expression, opts ...Option) (*CronTrigger, error) {
	schedule, err := cronexpr.Parse(line)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", quartz.ErrCronParse, err)
	}
	if _, err := validate(expr); err != nil {
		return nil, err
	}
	return &CronTrigger{
		line:     line,
		schedule: schedule,
		expr:     expr,
		opts:     newOptions(opts),
	}, nil
}

// NextFireTime returns the next time at which the CronTrigger is scheduled
// to fire.
func (ct *CronTrigger) NextFireTime(prev int64) (int64, error) {
	baseline := time.Unix(0, prev).In(ct.opts.location)
	for i := 0; i < ct.opts.maxAttempts; i++ {
		baseline = ct.schedule.Next(baseline)
		if baseline.IsZero() {
			break
		}
		next, ok, err := resolveAfter(ct.expr, baseline, prev, ct.opts.resolve)
		if err != nil {
			return 0, err
		}
		if ok {
			return next, nil
		}
	}
	return 0, fmt.Errorf("%w: no fire time for %q", quartz.ErrTriggerExpired, ct.line)
}

// Description returns the description of the trigger.
func (ct *CronTrigger) Description() string {
	return fmt.Sprintf("CronTrigger%s%s%s%s", sep, ct.line, sep, ct.expr)
}
