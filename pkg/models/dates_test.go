package models

import (
	"testing"
	"time"
)

func TestCwday(t *testing.T) {
	// 2026-01-05 is a Monday.
	for offset, want := range []int{1, 2, 3, 4, 5, 6, 7} {
		if got := Cwday(Day(2026, time.January, 5+offset)); got != want {
			t.Errorf("Cwday(Jan %d) = %d, want %d", 5+offset, got, want)
		}
	}
}

func TestParseDay(t *testing.T) {
	day, err := ParseDay("2026-01-05")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !day.Equal(Day(2026, time.January, 5)) {
		t.Errorf("Expected 2026-01-05, got %v", day)
	}
	if FormatDay(day) != "2026-01-05" {
		t.Errorf("Expected round trip, got %q", FormatDay(day))
	}

	if _, err := ParseDay("05.01.2026"); err == nil {
		t.Error("Expected an error for a non-ISO date")
	}
}

func TestDayOfNormalizes(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	stamp := time.Date(2026, time.January, 5, 23, 30, 0, 0, loc)

	day := DayOf(stamp)
	if !day.Equal(Day(2026, time.January, 5)) {
		t.Errorf("Expected the calendar day to survive normalization, got %v", day)
	}
	if day.Location() != time.UTC {
		t.Errorf("Expected UTC, got %v", day.Location())
	}
}

func TestDateRange(t *testing.T) {
	span := NewDateRange(Day(2026, time.January, 5), Day(2026, time.January, 9))

	if span.Empty() {
		t.Error("Expected a non-empty range")
	}
	if span.Len() != 5 {
		t.Errorf("Expected 5 days, got %d", span.Len())
	}
	if days := span.Days(); len(days) != 5 || !days[0].Equal(span.First) || !days[4].Equal(span.Last) {
		t.Errorf("Unexpected day list: %v", days)
	}
	if !span.Contains(Day(2026, time.January, 7)) {
		t.Error("Expected the range to contain a middle day")
	}
	if span.Contains(Day(2026, time.January, 10)) {
		t.Error("Expected the range not to contain a later day")
	}
	if span.String() != "2026-01-05..2026-01-09" {
		t.Errorf("Unexpected string form: %q", span.String())
	}
}

func TestDateRangeEmpty(t *testing.T) {
	span := NewDateRange(Day(2026, time.January, 9), Day(2026, time.January, 5))

	if !span.Empty() {
		t.Error("Expected an inverted range to be empty")
	}
	if span.Len() != 0 {
		t.Errorf("Expected length 0, got %d", span.Len())
	}
	if days := span.Days(); days != nil {
		t.Errorf("Expected no days, got %v", days)
	}
}

func TestDateIntervalCovers(t *testing.T) {
	interval := DateInterval{From: Day(2026, time.January, 6), To: Day(2026, time.January, 8)}

	if !interval.Covers(Day(2026, time.January, 6)) || !interval.Covers(Day(2026, time.January, 8)) {
		t.Error("Expected the bounds to be covered")
	}
	if interval.Covers(Day(2026, time.January, 5)) || interval.Covers(Day(2026, time.January, 9)) {
		t.Error("Expected days outside the interval not to be covered")
	}
}
