package interval

import (
	"fmt"
	"strings"
)

// Render returns the human readable form of the expression, e.g.
//
//	Year > Month[3] > Day[1] - delta(days=1) > Hour[12]
//
// Indices are displayed as index+1, so the last instance Day[-1] renders
// as Day[0]. A magnitude renders as its delta alone.
func Render(e *Expression) string {
	if e.IsMagnitude() {
		step := e.tail.step
		return renderDelta(step.Unit, step.Count)
	}

	var b strings.Builder
	for i, step := range e.Steps() {
		if step.IsDelta() {
			sign, count := "+", step.Count
			if count < 0 {
				sign, count = "-", -count
			}
			fmt.Fprintf(&b, " %s %s", sign, renderDelta(step.Unit, count))
			continue
		}

		if i > 0 {
			b.WriteString(" > ")
		}
		b.WriteString(step.Unit.String())
		if step.Indexed {
			fmt.Fprintf(&b, "[%d]", step.Index+1)
		}
	}
	return b.String()
}

// String implements the fmt.Stringer interface.
func (e *Expression) String() string {
	return Render(e)
}

func renderDelta(unit Granularity, count int64) string {
	return fmt.Sprintf("delta(%s=%d)", unit.Plural(), count)
}
