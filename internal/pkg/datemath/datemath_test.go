package datemath

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		months   int
		expected time.Time
	}{
		{"plain month", d(2025, time.March, 15), 1, d(2025, time.April, 15)},
		{"multiple months", d(2025, time.January, 10), 3, d(2025, time.April, 10)},
		{"clamp jan 31 to feb 28", d(2025, time.January, 31), 1, d(2025, time.February, 28)},
		{"clamp jan 31 to feb 29 leap", d(2024, time.January, 31), 1, d(2024, time.February, 29)},
		{"clamp may 31 to jun 30", d(2025, time.May, 31), 1, d(2025, time.June, 30)},
		{"year rollover", d(2025, time.November, 20), 3, d(2026, time.February, 20)},
		{"clamp across year", d(2025, time.December, 31), 2, d(2026, time.February, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AddMonths(tt.start, tt.months))
		})
	}
}

func TestAddMonths_PreservesClock(t *testing.T) {
	start := time.Date(2025, time.January, 31, 14, 30, 45, 0, time.UTC)
	got := AddMonths(start, 1)

	assert.Equal(t, time.Date(2025, time.February, 28, 14, 30, 45, 0, time.UTC), got)
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 31, DaysBetween(d(2025, time.January, 1), d(2025, time.February, 1)))
	assert.Equal(t, 0, DaysBetween(d(2025, time.January, 1), d(2025, time.January, 1)))
	assert.Equal(t, -7, DaysBetween(d(2025, time.January, 8), d(2025, time.January, 1)))
}

func TestMonthsCovered(t *testing.T) {
	tests := []struct {
		name     string
		reg      time.Time
		expiry   time.Time
		expected int
	}{
		{"one month", d(2025, time.January, 1), d(2025, time.February, 1), 1},
		{"three months", d(2025, time.January, 1), d(2025, time.April, 1), 3},
		{"partial month rounds up", d(2025, time.January, 1), d(2025, time.February, 15), 2},
		{"clamped month end still one month", d(2025, time.January, 31), d(2025, time.February, 28), 1},
		{"expiry before registration", d(2025, time.March, 1), d(2025, time.January, 1), 1},
		{"same day", d(2025, time.January, 1), d(2025, time.January, 1), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MonthsCovered(tt.reg, tt.expiry))
		})
	}
}
