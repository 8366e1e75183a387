// Package weekclock provides ISO-8601 week numbering and the canonical
// week identifier used across the application. A WeekID has the form
// "YYYY-WW" where YYYY is the ISO week-year and WW the zero-padded ISO
// week number, so week ids compare correctly as plain strings.
package weekclock

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mauv0809/scrimsync/internal/faults"
)

// WeekID identifies an ISO week, e.g. "2026-03".
type WeekID string

// ISOWeekNumber returns the ISO-8601 week number of t.
func ISOWeekNumber(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}

// ISOWeekYear returns the ISO-8601 week-year of t. Around new year this can
// differ from the calendar year: Dec 29th may already belong to week 1 of
// the next year, and Jan 1st may still belong to week 52/53 of the previous.
func ISOWeekYear(t time.Time) int {
	year, _ := t.ISOWeek()
	return year
}

// ISOWeeksInYear returns 52 or 53. A year has 53 ISO weeks exactly when
// January 1st or December 31st falls on a Thursday.
func ISOWeeksInYear(year int) int {
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	dec31 := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	if jan1.Weekday() == time.Thursday || dec31.Weekday() == time.Thursday {
		return 53
	}
	return 52
}

// FormatWeekID builds a WeekID from an ISO week-year and week number.
func FormatWeekID(year, week int) WeekID {
	return WeekID(fmt.Sprintf("%04d-%02d", year, week))
}

// WeekIDOf returns the WeekID containing the instant t.
func WeekIDOf(t time.Time) WeekID {
	year, week := t.ISOWeek()
	return FormatWeekID(year, week)
}

// ParseWeekID validates and splits a WeekID into year and week number.
func ParseWeekID(id WeekID) (year, week int, err error) {
	parts := strings.Split(string(id), "-")
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 2 {
		return 0, 0, faults.Validationf("malformed week id %q", id)
	}
	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, faults.Validationf("malformed week id %q", id)
	}
	week, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, faults.Validationf("malformed week id %q", id)
	}
	if week < 1 || week > ISOWeeksInYear(year) {
		return 0, 0, faults.Validationf("week %d out of range for year %d", week, year)
	}
	return year, week, nil
}

// MondayOfWeek returns the UTC midnight of the Monday starting the given
// week. January 4th is always inside week 1, which anchors the calculation.
func MondayOfWeek(id WeekID) (time.Time, error) {
	year, week, err := ParseWeekID(id)
	if err != nil {
		return time.Time{}, err
	}
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	daysSinceMonday := (int(jan4.Weekday()) + 6) % 7
	week1Monday := jan4.AddDate(0, 0, -daysSinceMonday)
	return week1Monday.AddDate(0, 0, (week-1)*7), nil
}

// AddWeeks returns the WeekID n weeks after id. Negative n walks backwards.
// Year boundaries are handled by converting through the week's Monday.
func AddWeeks(id WeekID, n int) (WeekID, error) {
	monday, err := MondayOfWeek(id)
	if err != nil {
		return "", err
	}
	return WeekIDOf(monday.AddDate(0, 0, n*7)), nil
}

// CurrentAndNext returns the visible scheduling horizon: the week containing
// now and the one after it.
func CurrentAndNext(now time.Time) (WeekID, WeekID) {
	current := WeekIDOf(now)
	next, _ := AddWeeks(current, 1)
	return current, next
}
