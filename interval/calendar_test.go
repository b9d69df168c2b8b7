package interval_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/reugn/go-interval/internal/assert"
	"github.com/reugn/go-interval/interval"
)

func TestGregorianTruncate(t *testing.T) {
	cal := interval.Gregorian{}
	// Wednesday
	ts := time.Date(2024, time.May, 15, 13, 45, 30, 123456789, time.UTC)

	tests := []struct {
		unit     interval.Granularity
		expected time.Time
	}{
		{interval.Decade, time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{interval.Year, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{interval.Quarter, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)},
		{interval.Month, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)},
		{interval.Week, time.Date(2024, time.May, 13, 0, 0, 0, 0, time.UTC)},
		{interval.Day, time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC)},
		{interval.Hour, time.Date(2024, time.May, 15, 13, 0, 0, 0, time.UTC)},
		{interval.Minute, time.Date(2024, time.May, 15, 13, 45, 0, 0, time.UTC)},
		{interval.Second, time.Date(2024, time.May, 15, 13, 45, 30, 0, time.UTC)},
		{interval.Decisecond, time.Date(2024, time.May, 15, 13, 45, 30, 100000000, time.UTC)},
		{interval.Millisecond, time.Date(2024, time.May, 15, 13, 45, 30, 123000000, time.UTC)},
		{interval.Microsecond, time.Date(2024, time.May, 15, 13, 45, 30, 123456000, time.UTC)},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.unit.String(), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, cal.Truncate(tt.unit, ts), tt.expected)
		})
	}

	sunday := time.Date(2024, time.May, 19, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, cal.Truncate(interval.Week, sunday),
		time.Date(2024, time.May, 13, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, cal.Truncate(interval.Quarter, time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)),
		time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC))
}

func TestGregorianAdd(t *testing.T) {
	cal := interval.Gregorian{}
	tests := []struct {
		name     string
		unit     interval.Granularity
		n        int64
		from     time.Time
		expected time.Time
	}{
		{"month clamps to leap day", interval.Month, 1,
			time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
			time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)},
		{"month clamps", interval.Month, 1,
			time.Date(2023, time.January, 31, 0, 0, 0, 0, time.UTC),
			time.Date(2023, time.February, 28, 0, 0, 0, 0, time.UTC)},
		{"year from leap day", interval.Year, 1,
			time.Date(2024, time.February, 29, 8, 0, 0, 0, time.UTC),
			time.Date(2025, time.February, 28, 8, 0, 0, 0, time.UTC)},
		{"quarter backwards", interval.Quarter, -1,
			time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC),
			time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)},
		{"month across years", interval.Month, -13,
			time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2022, time.December, 10, 0, 0, 0, 0, time.UTC)},
		{"decade", interval.Decade, 1,
			time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{"weeks", interval.Week, 2,
			time.Date(2024, time.December, 23, 0, 0, 0, 0, time.UTC),
			time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)},
		{"hours", interval.Hour, 25,
			time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC),
			time.Date(2024, time.May, 16, 1, 0, 0, 0, time.UTC)},
		{"deciseconds", interval.Decisecond, 3,
			time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC),
			time.Date(2024, time.May, 15, 0, 0, 0, 300000000, time.UTC)},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, cal.Add(tt.unit, tt.n, tt.from), tt.expected)
		})
	}
}

func TestGregorianShift(t *testing.T) {
	cal := interval.Gregorian{}
	jan31 := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	mar1 := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	// months are applied before days
	assert.Equal(t, cal.Shift(jan31, interval.Offset{Months: 1, Days: 1}), mar1)
	assert.Equal(t, cal.Shift(mar1, interval.Offset{Months: -1, Days: -1}), jan31)

	offset := interval.OffsetOf(interval.Day, -1).Plus(interval.OffsetOf(interval.Month, -1))
	assert.Equal(t, offset, interval.Offset{Months: -1, Days: -1})
	assert.Equal(t, offset.Neg(), interval.Offset{Months: 1, Days: 1})
	assert.Equal(t, interval.Offset{}.IsZero(), true)

	assert.Equal(t, cal.Shift(mar1, interval.Offset{Duration: 90 * time.Minute}),
		time.Date(2024, time.March, 1, 1, 30, 0, 0, time.UTC))
}

func TestOffsetOf(t *testing.T) {
	assert.Equal(t, interval.OffsetOf(interval.Decade, 1), interval.Offset{Months: 120})
	assert.Equal(t, interval.OffsetOf(interval.Quarter, 2), interval.Offset{Months: 6})
	assert.Equal(t, interval.OffsetOf(interval.Week, 2), interval.Offset{Days: 14})
	assert.Equal(t, interval.OffsetOf(interval.Decisecond, 3), interval.Offset{Duration: 300 * time.Millisecond})
	assert.Equal(t, interval.OffsetOf(interval.Microsecond, -5), interval.Offset{Duration: -5 * time.Microsecond})
}

func TestSumOffsets(t *testing.T) {
	offset, err := interval.SumOffsets(
		interval.Delta(interval.Month, 1),
		interval.Delta(interval.Week, -1),
		interval.Delta(interval.Hour, 2),
		interval.Delta(interval.Minute, 30),
	)
	assert.IsNil(t, err)
	assert.Equal(t, offset, interval.Offset{Months: 1, Days: -7, Duration: 150 * time.Minute})

	_, err = interval.SumOffsets(interval.Delta(interval.Hour, 3000000))
	var overflowErr *interval.OffsetOverflowError
	assert.Equal(t, errors.As(err, &overflowErr), true)
	assert.Equal(t, *overflowErr, interval.OffsetOverflowError{Unit: interval.Hour, Count: 3000000})

	_, err = interval.SumOffsets(interval.Delta(interval.Microsecond, math.MinInt64))
	assert.ErrorIs(t, err, interval.ErrOffsetOverflow)

	_, err = interval.SumOffsets(interval.Delta(interval.Decade, math.MaxInt64/100))
	assert.ErrorIs(t, err, interval.ErrOffsetOverflow)

	_, err = interval.SumOffsets(
		interval.Delta(interval.Hour, 2000000),
		interval.Delta(interval.Minute, -60),
		interval.Delta(interval.Hour, 2000000),
	)
	assert.ErrorIs(t, err, interval.ErrOffsetOverflow)

	_, err = interval.SumOffsets(
		interval.Delta(interval.Hour, 2000000),
		interval.Delta(interval.Hour, -2000000),
		interval.Delta(interval.Hour, 2000000),
	)
	assert.IsNil(t, err)
}

func TestGregorianCount(t *testing.T) {
	cal := interval.Gregorian{}
	newYork, err := time.LoadLocation("America/New_York")
	assert.IsNil(t, err)

	tests := []struct {
		name     string
		unit     interval.Granularity
		within   interval.Granularity
		start    time.Time
		expected int64
	}{
		{"leap february", interval.Day, interval.Month,
			time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), 29},
		{"february", interval.Day, interval.Month,
			time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC), 28},
		{"leap year", interval.Day, interval.Year,
			time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), 366},
		{"whole weeks", interval.Week, interval.Month,
			time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC), 4},
		{"partial week", interval.Week, interval.Month,
			time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), 5},
		{"months in quarter", interval.Month, interval.Quarter,
			time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), 3},
		{"years in decade", interval.Year, interval.Decade,
			time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC), 10},
		{"hours", interval.Hour, interval.Day,
			time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC), 24},
		{"fall back", interval.Hour, interval.Day,
			time.Date(2024, time.November, 3, 0, 0, 0, 0, newYork), 25},
		{"spring forward", interval.Hour, interval.Day,
			time.Date(2024, time.March, 10, 0, 0, 0, 0, newYork), 23},
		{"milliseconds", interval.Millisecond, interval.Second,
			time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC), 1000},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, cal.Count(tt.unit, tt.within, tt.start), tt.expected)
		})
	}
}

func TestGregorianBetween(t *testing.T) {
	cal := interval.Gregorian{}
	jan31 := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	feb1 := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, cal.Between(interval.Month, jan31, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)), int64(1))
	assert.Equal(t, cal.Between(interval.Month, jan31, time.Date(2024, time.February, 28, 0, 0, 0, 0, time.UTC)), int64(0))
	assert.Equal(t, cal.Between(interval.Day, feb1, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)), int64(29))
	assert.Equal(t, cal.Between(interval.Day, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), feb1), int64(-29))
	assert.Equal(t, cal.Between(interval.Day, feb1, feb1.Add(36*time.Hour)), int64(1))
	assert.Equal(t, cal.Between(interval.Week, feb1, feb1.AddDate(0, 0, 20)), int64(2))
	assert.Equal(t, cal.Between(interval.Hour, feb1, feb1.Add(330*time.Minute)), int64(5))
	assert.Equal(t, cal.Between(interval.Hour, feb1.Add(330*time.Minute), feb1), int64(-6))
	assert.Equal(t, cal.Between(interval.Quarter, feb1, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)), int64(3))
}
