package models

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Day returns the given date normalized to midnight UTC so dates can be
// compared and used as map keys safely.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DayOf truncates a timestamp to its calendar day (midnight UTC).
func DayOf(t time.Time) time.Time {
	return Day(t.Year(), t.Month(), t.Day())
}

// ParseDay parses an ISO date string (YYYY-MM-DD) into a normalized day.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DayOf(t), nil
}

// FormatDay renders a day back as an ISO date string.
func FormatDay(t time.Time) string {
	return t.Format(dateLayout)
}

// Cwday returns the commercial weekday number of a day, 1 for Monday
// through 7 for Sunday.
func Cwday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// DateRange is an inclusive span of calendar days. A range whose last day
// lies before its first day is empty; every operation on an empty range
// yields empty results.
type DateRange struct {
	First time.Time `json:"first"`
	Last  time.Time `json:"last"`
}

// NewDateRange builds a range from two days, normalizing both bounds.
func NewDateRange(first, last time.Time) DateRange {
	return DateRange{First: DayOf(first), Last: DayOf(last)}
}

// Empty reports whether the range contains no days.
func (r DateRange) Empty() bool {
	return r.Last.Before(r.First)
}

// Contains reports whether the given day falls inside the range.
func (r DateRange) Contains(day time.Time) bool {
	return !day.Before(r.First) && !day.After(r.Last)
}

// Days lists every calendar day in the range in ascending order.
func (r DateRange) Days() []time.Time {
	if r.Empty() {
		return nil
	}
	days := make([]time.Time, 0, int(r.Last.Sub(r.First).Hours()/24)+1)
	for day := r.First; !day.After(r.Last); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days
}

// Len returns the number of calendar days in the range.
func (r DateRange) Len() int {
	if r.Empty() {
		return 0
	}
	return int(r.Last.Sub(r.First).Hours()/24) + 1
}

// String renders the range for cache keys and error messages.
func (r DateRange) String() string {
	return fmt.Sprintf("%s..%s", FormatDay(r.First), FormatDay(r.Last))
}

// DateInterval is an inclusive day interval, used for national holidays
// and user vacations.
type DateInterval struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Covers reports whether the day lies inside the interval.
func (i DateInterval) Covers(day time.Time) bool {
	return !day.Before(i.From) && !day.After(i.To)
}
