package interval

import (
	"math"
	"time"
)

// Calendar performs the concrete date arithmetic needed to resolve an
// expression. Instances of a unit inside a scope instance starting at start
// are start, Add(unit, 1, start), Add(unit, 2, start) and so on, up to the
// end of the scope instance.
type Calendar interface {
	// Truncate returns the start of the unit instance containing t.
	Truncate(unit Granularity, t time.Time) time.Time
	// Add returns t moved by n instances of unit.
	Add(unit Granularity, n int64, t time.Time) time.Time
	// Shift applies a compound offset to t.
	Shift(t time.Time, offset Offset) time.Time
	// Count returns the exact number of unit instances inside the within
	// instance starting at start.
	Count(unit, within Granularity, start time.Time) int64
	// Between returns the number of whole unit steps from from to to,
	// rounded towards negative infinity.
	Between(unit Granularity, from, to time.Time) int64
}

// Offset is a compound calendar offset. Months are applied first, clamping
// the day of month, then days, then the absolute duration.
type Offset struct {
	Months   int64
	Days     int64
	Duration time.Duration
}

// OffsetOf returns the offset of n instances of unit. The result wraps
// around when n units do not fit in an Offset; see SumOffsets.
func OffsetOf(unit Granularity, n int64) Offset {
	if months, ok := unitMonths[unit]; ok {
		return Offset{Months: n * months}
	}
	if days, ok := unitDays[unit]; ok {
		return Offset{Days: n * days}
	}
	return Offset{Duration: time.Duration(n) * unitDuration[unit]}
}

// Plus returns the sum of two offsets.
func (o Offset) Plus(other Offset) Offset {
	return Offset{
		Months:   o.Months + other.Months,
		Days:     o.Days + other.Days,
		Duration: o.Duration + other.Duration,
	}
}

// SumOffsets returns the compound offset of the deltas applied in order.
// It returns an OffsetOverflowError naming the first delta that does not fit.
func SumOffsets(deltas ...Step) (Offset, error) {
	var total Offset
	for _, d := range deltas {
		if !fitsOffset(d.Unit, d.Count) {
			return Offset{}, &OffsetOverflowError{Unit: d.Unit, Count: d.Count}
		}
		var ok bool
		if total, ok = total.checkedPlus(OffsetOf(d.Unit, d.Count)); !ok {
			return Offset{}, &OffsetOverflowError{Unit: d.Unit, Count: d.Count}
		}
	}
	return total, nil
}

// fitsOffset reports whether n instances of unit can be represented.
func fitsOffset(unit Granularity, n int64) bool {
	per, ok := unitMonths[unit]
	if !ok {
		per, ok = unitDays[unit]
	}
	if !ok {
		per = int64(unitDuration[unit])
	}
	return n <= math.MaxInt64/per && n >= math.MinInt64/per
}

func (o Offset) checkedPlus(other Offset) (Offset, bool) {
	months, okMonths := addInt64(o.Months, other.Months)
	days, okDays := addInt64(o.Days, other.Days)
	d, okDuration := addInt64(int64(o.Duration), int64(other.Duration))
	return Offset{Months: months, Days: days, Duration: time.Duration(d)},
		okMonths && okDays && okDuration
}

// addInt64 returns a+b and whether the sum did not overflow.
func addInt64(a, b int64) (int64, bool) {
	s := a + b
	return s, (s > a) == (b > 0)
}

// Neg returns the negated offset.
func (o Offset) Neg() Offset {
	return Offset{Months: -o.Months, Days: -o.Days, Duration: -o.Duration}
}

// IsZero reports whether the offset moves nothing.
func (o Offset) IsZero() bool {
	return o == Offset{}
}

// Gregorian is the proleptic Gregorian calendar over time.Time, evaluated in
// the location of the operand. Weeks start on Monday.
type Gregorian struct{}

var _ Calendar = Gregorian{}

// Truncate returns the start of the unit instance containing t.
func (Gregorian) Truncate(unit Granularity, t time.Time) time.Time {
	year, month, day := t.Date()
	hour, minute, sec := t.Clock()
	nsec := t.Nanosecond()
	loc := t.Location()

	switch unit {
	case Decade:
		return time.Date(int(floorDiv(int64(year), 10)*10), time.January, 1, 0, 0, 0, 0, loc)
	case Year:
		return time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	case Quarter:
		first := (int(month)-1)/3*3 + 1
		return time.Date(year, time.Month(first), 1, 0, 0, 0, 0, loc)
	case Month:
		return time.Date(year, month, 1, 0, 0, 0, 0, loc)
	case Week:
		back := (int(t.Weekday()) + 6) % 7
		return time.Date(year, month, day-back, 0, 0, 0, 0, loc)
	case Day:
		return time.Date(year, month, day, 0, 0, 0, 0, loc)
	case Hour:
		return time.Date(year, month, day, hour, 0, 0, 0, loc)
	case Minute:
		return time.Date(year, month, day, hour, minute, 0, 0, loc)
	case Second:
		return time.Date(year, month, day, hour, minute, sec, 0, loc)
	default:
		step := int(unitDuration[unit])
		return time.Date(year, month, day, hour, minute, sec, nsec/step*step, loc)
	}
}

// Add returns t moved by n instances of unit.
func (g Gregorian) Add(unit Granularity, n int64, t time.Time) time.Time {
	return g.Shift(t, OffsetOf(unit, n))
}

// Shift applies a compound offset to t.
func (Gregorian) Shift(t time.Time, offset Offset) time.Time {
	if offset.Months != 0 {
		t = addMonths(t, offset.Months)
	}
	if offset.Days != 0 {
		t = t.AddDate(0, 0, int(offset.Days))
	}
	return t.Add(offset.Duration)
}

// Count returns the exact number of unit instances inside the within
// instance starting at start. A trailing partial instance is counted.
func (g Gregorian) Count(unit, within Granularity, start time.Time) int64 {
	end := g.Add(within, 1, start)
	n := g.Between(unit, start, end)
	if g.Add(unit, n, start).Before(end) {
		n++
	}
	return n
}

// Between returns the number of whole unit steps from from to to, rounded
// towards negative infinity.
func (g Gregorian) Between(unit Granularity, from, to time.Time) int64 {
	var n int64
	switch {
	case unitMonths[unit] > 0:
		fy, fm, _ := from.Date()
		ty, tm, _ := to.Date()
		months := int64(ty-fy)*12 + int64(tm-fm)
		n = floorDiv(months, unitMonths[unit])
	case unitDays[unit] > 0:
		n = floorDiv(civilDays(from, to), unitDays[unit])
	default:
		return floorDiv(int64(to.Sub(from)), int64(unitDuration[unit]))
	}

	// the estimate ignores the time of day and the clamped day of month
	for g.Add(unit, n, from).After(to) {
		n--
	}
	for !g.Add(unit, n+1, from).After(to) {
		n++
	}
	return n
}

// addMonths adds months to t, clamping the day to the last day of the
// target month.
func addMonths(t time.Time, months int64) time.Time {
	year, month, day := t.Date()
	hour, minute, sec := t.Clock()

	total := int64(year)*12 + int64(month-1) + months
	ny, nm := int(floorDiv(total, 12)), time.Month(total-floorDiv(total, 12)*12+1)
	if last := daysIn(ny, nm); day > last {
		day = last
	}
	return time.Date(ny, nm, day, hour, minute, sec, t.Nanosecond(), t.Location())
}

// daysIn returns the number of days in the month of the year.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// civilDays returns the number of calendar date changes from from to to,
// ignoring the time of day.
func civilDays(from, to time.Time) int64 {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int64(b.Sub(a) / (24 * time.Hour))
}
