// Package datemath holds the calendar arithmetic for storage periods.
// Go's time.AddDate normalizes overflow (Jan 31 + 1 month = Mar 2/3);
// billing periods here clamp to the last valid day of the target month
// instead (Jan 31 + 1 month = Feb 28/29).
package datemath

import "time"

// AddMonths adds whole months to a date, clamping the day to the last
// valid day of the target month. The clock component is preserved.
func AddMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	last := lastDayOfMonth(first.Year(), first.Month())
	if day > last {
		day = last
	}

	return time.Date(first.Year(), first.Month(), day, hour, min, sec, t.Nanosecond(), t.Location())
}

// DaysBetween returns the number of whole days from a to b.
// Negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// MonthsCovered returns the number of months a storage period spans, as the
// calendar-month difference between registration and expiry with a partial
// month rounded up. A period of one month or less counts as one.
func MonthsCovered(registrationDate, expiryDate time.Time) int {
	if !expiryDate.After(registrationDate) {
		return 1
	}

	months := (expiryDate.Year()-registrationDate.Year())*12 +
		int(expiryDate.Month()) - int(registrationDate.Month())
	if expiryDate.Day() > registrationDate.Day() {
		months++
	}
	if months < 1 {
		months = 1
	}
	return months
}

func lastDayOfMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
