package interval

import (
	"time"
)

// frame is a resolved scope instance: the unit, the start of the concrete
// instance and its zero-based position inside the enclosing scope.
type frame struct {
	unit  Granularity
	start time.Time
	pos   int64
}

// resolution is the state of a single Resolve call.
type resolution struct {
	opts    ResolveOptions
	cal     Calendar
	working time.Time
	frames  []frame
	// arithmetic is set while the current scope has only been moved by
	// deltas since the last descent.
	arithmetic bool
}

// Resolve evaluates the expression against a baseline and returns the
// resulting instant. The baseline passed with WithBaseline takes precedence
// over the one captured by the expression.
//
// Resolve never mutates the expression and is safe for concurrent use.
func (e *Expression) Resolve(opts ...ResolveOption) (time.Time, error) {
	options := NewResolveOptions(opts...)

	if e.IsEmpty() {
		return time.Time{}, ErrEmptyExpression
	}
	root, ok := e.Root()
	if !ok {
		return time.Time{}, noRootScopeError("a magnitude cannot be resolved on its own")
	}
	if last := e.tail; last.prev != nil && last.step.IsDescent() && !last.step.Indexed {
		return time.Time{}, unindexedScopeError(last.step.Unit)
	}

	baseline, ok := options.Baseline, options.hasBaseline
	if !ok {
		if baseline, ok = e.Baseline(); !ok {
			return time.Time{}, ErrNoBaseline
		}
	}

	r := &resolution{
		opts:    options,
		cal:     options.Calendar,
		working: options.Calendar.Truncate(root, baseline),
	}
	r.frames = append(r.frames, frame{unit: root, start: r.working, pos: r.rootPosition(root, r.working)})

	steps := e.Steps()
	for i := 1; i < len(steps); i++ {
		step := steps[i]
		if step.IsDescent() {
			if err := r.descend(step); err != nil {
				return time.Time{}, err
			}
			continue
		}

		// adjacent deltas form a single compound offset
		j := i + 1
		for j < len(steps) && steps[j].IsDelta() {
			j++
		}
		offset, err := SumOffsets(steps[i:j]...)
		if err != nil {
			return time.Time{}, err
		}
		i = j - 1
		if err := r.shift(offset); err != nil {
			return time.Time{}, err
		}
	}

	options.Logger.Trace("Resolved expression", "baseline", baseline, "result", r.working)
	return r.working, nil
}

// descend moves the working time to the selected instance of step.Unit
// inside the current scope instance.
func (r *resolution) descend(step Step) error {
	if !step.Indexed {
		return unindexedScopeError(step.Unit)
	}

	scope := r.frames[len(r.frames)-1]
	count := r.cal.Count(step.Unit, scope.unit, scope.start)
	pos := step.Index
	if pos < 0 {
		pos += count
	}

	var start time.Time
	switch {
	case pos >= 0 && pos < count:
		start = r.cal.Add(step.Unit, pos, scope.start)
	case r.opts.Rollover || (r.opts.OperationSafe && r.arithmetic):
		if pos >= count {
			next := r.cal.Add(scope.unit, 1, scope.start)
			start = r.cal.Add(step.Unit, pos-count, next)
		} else {
			start = r.cal.Add(step.Unit, pos, scope.start)
		}
		r.opts.Logger.Debug("Rollover", "unit", step.Unit, "scope", scope.unit,
			"position", pos, "instances", count, "result", start)
		r.working = start
		r.reanchor()
		pos = r.cal.Between(step.Unit, r.frames[len(r.frames)-1].start, start)
	default:
		return &RolloverDisabledError{
			Unit:          step.Unit,
			Scope:         scope.unit,
			Index:         pos,
			Max:           count,
			ScopePosition: adjacentPosition(scope.pos, pos >= count),
		}
	}

	r.working = start
	r.frames = append(r.frames, frame{unit: step.Unit, start: start, pos: pos})
	r.arithmetic = false
	return nil
}

// shift applies a compound delta to the working time. The scope units are
// unchanged; their instances follow the working time.
func (r *resolution) shift(offset Offset) error {
	r.working = r.cal.Shift(r.working, offset)

	if n := len(r.frames); n >= 2 && !r.opts.Rollover {
		scope, parent := r.frames[n-1], r.frames[n-2]
		end := r.cal.Add(parent.unit, 1, parent.start)
		before := r.working.Before(parent.start)
		if before || !r.working.Before(end) {
			if !r.opts.OperationSafe {
				return &RolloverDisabledError{
					Unit:          scope.unit,
					Scope:         parent.unit,
					Index:         r.cal.Between(scope.unit, parent.start, r.working),
					Max:           r.cal.Count(scope.unit, parent.unit, parent.start),
					ScopePosition: adjacentPosition(parent.pos, !before),
				}
			}
			r.opts.Logger.Debug("Arithmetic overflow", "unit", scope.unit,
				"scope", parent.unit, "result", r.working)
		}
	}

	r.reanchor()
	r.arithmetic = true
	return nil
}

// reanchor moves every scope frame to the instance containing the working
// time, keeping the units of the frames.
func (r *resolution) reanchor() {
	root := &r.frames[0]
	root.start = r.cal.Truncate(root.unit, r.working)
	root.pos = r.rootPosition(root.unit, root.start)

	for i := 1; i < len(r.frames); i++ {
		parent, f := r.frames[i-1], &r.frames[i]
		f.pos = r.cal.Between(f.unit, parent.start, r.working)
		f.start = r.cal.Add(f.unit, f.pos, parent.start)
	}
}

// rootPosition returns the position of the root instance starting at start
// inside the next coarser granularity. Decades are numbered from year zero.
func (r *resolution) rootPosition(unit Granularity, start time.Time) int64 {
	if unit == Decade {
		return floorDiv(int64(start.Year()), 10)
	}
	parent := unit - 1
	return r.cal.Between(unit, r.cal.Truncate(parent, start), start)
}

func adjacentPosition(pos int64, forward bool) int64 {
	if forward {
		return pos + 1
	}
	return pos - 1
}
