// Package interval builds calendar expressions relative to a baseline instant
// that is not known yet, and resolves them once a baseline is supplied.
//
// An expression descends through successively finer granularities, selecting
// an ordinal instance at each level, and may be offset by calendar deltas:
//
//	// the last day of the current month, at 17:30
//	e := interval.Expr().Month().Day().At(-1).Hour().At(17).Minute().At(30)
//	t, err := e.Resolve(interval.WithBaseline(time.Now()))
package interval

import (
	"fmt"
	"strings"
	"time"
)

// Granularity is a calendar time unit. Granularities are totally ordered
// from the coarsest (Decade) to the finest (Microsecond).
type Granularity int8

const (
	Decade Granularity = iota
	Year
	Quarter
	Month
	Week
	Day
	Hour
	Minute
	Second
	Decisecond
	Millisecond
	Microsecond
)

const granularityCount = int(Microsecond) + 1

var granularityNames = [granularityCount]string{
	"Decade", "Year", "Quarter", "Month", "Week", "Day",
	"Hour", "Minute", "Second", "Decisecond", "Millisecond", "Microsecond",
}

// Granularities returns all the granularities, coarsest first.
func Granularities() []Granularity {
	units := make([]Granularity, granularityCount)
	for i := range units {
		units[i] = Granularity(i)
	}
	return units
}

// ParseGranularity returns the granularity for the given case-insensitive
// name, which may be singular or plural.
func ParseGranularity(name string) (Granularity, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for i, n := range granularityNames {
		n = strings.ToLower(n)
		if lower == n || lower == n+"s" {
			return Granularity(i), nil
		}
	}
	return 0, fmt.Errorf("unknown granularity: %q", name)
}

// Valid reports whether g is one of the defined granularities.
func (g Granularity) Valid() bool {
	return g >= Decade && g <= Microsecond
}

// String returns the granularity name.
func (g Granularity) String() string {
	if !g.Valid() {
		return fmt.Sprintf("Granularity(%d)", int8(g))
	}
	return granularityNames[g]
}

// Plural returns the lower case plural name, e.g. "months".
func (g Granularity) Plural() string {
	return strings.ToLower(g.String()) + "s"
}

// Rank returns the position of g in the total order; lower is coarser.
func (g Granularity) Rank() int {
	return int(g)
}

// Finer reports whether g is strictly finer than other.
func (g Granularity) Finer(other Granularity) bool {
	return g.Rank() > other.Rank()
}

// Rank returns the position of unit in the total order; lower is coarser.
func Rank(unit Granularity) int {
	return unit.Rank()
}

// ApproxMaxInstances returns a soft upper bound on the number of unit
// instances inside a single instance of within. The bound never consults a
// calendar and is never lower than the exact count for any date.
func ApproxMaxInstances(unit, within Granularity) (int64, error) {
	if !unit.Valid() || !within.Valid() || !unit.Finer(within) {
		return 0, &UnsupportedPairError{Unit: unit, Within: within}
	}
	return approxTable[within][unit], nil
}

// unitMonths is the length in months of the month based granularities.
var unitMonths = map[Granularity]int64{
	Decade:  120,
	Year:    12,
	Quarter: 3,
	Month:   1,
}

// unitDays is the length in days of the day based granularities.
var unitDays = map[Granularity]int64{
	Week: 7,
	Day:  1,
}

// unitDuration is the absolute length of the sub-day granularities.
var unitDuration = map[Granularity]time.Duration{
	Hour:        time.Hour,
	Minute:      time.Minute,
	Second:      time.Second,
	Decisecond:  100 * time.Millisecond,
	Millisecond: time.Millisecond,
	Microsecond: time.Microsecond,
}

// maxDays bounds the calendar length in days of the day and coarser
// granularities. Month based lengths are exact, see unitMonths.
var maxDays = map[Granularity]int64{Decade: 3653, Year: 366, Quarter: 92, Month: 31, Week: 7, Day: 1}

// dstSlack admits the extra wall clock hour of a daylight saving fall back.
const dstSlack = time.Hour

var approxTable = buildApproxTable()

func buildApproxTable() [granularityCount][granularityCount]int64 {
	var table [granularityCount][granularityCount]int64
	for w := 0; w < granularityCount; w++ {
		for u := w + 1; u < granularityCount; u++ {
			table[w][u] = approxMax(Granularity(u), Granularity(w))
		}
	}
	return table
}

func approxMax(unit, within Granularity) int64 {
	if months, ok := unitMonths[unit]; ok {
		return ceilDiv(unitMonths[within], months)
	}
	if days, ok := unitDays[unit]; ok {
		return ceilDiv(maxDays[within], days)
	}
	d := unitDuration[unit]
	if days, ok := maxDays[within]; ok {
		span := time.Duration(days)*24*time.Hour + dstSlack
		return ceilDiv(int64(span), int64(d))
	}
	return ceilDiv(int64(unitDuration[within]), int64(d))
}

func ceilDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) == (b < 0) {
		q++
	}
	return q
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
