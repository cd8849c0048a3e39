package calendar

import (
	"testing"
	"time"

	"github.com/arnavshah/workload-api-go/pkg/models"
)

func day(d int) time.Time {
	return models.Day(2026, time.January, d)
}

func weekSpan() models.DateRange {
	// Monday 2026-01-05 through Sunday 2026-01-11.
	return models.NewDateRange(day(5), day(11))
}

func TestWorkingDaysExcludesWeekends(t *testing.T) {
	cal := New(models.DefaultSettings(), nil)

	working := cal.WorkingDays(weekSpan(), nil, false)

	if len(working) != 5 {
		t.Errorf("Expected 5 working days, got %d", len(working))
	}
	if working[day(10)] || working[day(11)] {
		t.Error("Expected Saturday and Sunday to be days off")
	}
}

func TestWorkingDaysExcludesHolidays(t *testing.T) {
	settings := models.DefaultSettings()
	settings.Holidays = []models.DateInterval{{From: day(7), To: day(8)}}
	cal := New(settings, nil)

	working := cal.WorkingDays(weekSpan(), nil, false)

	if len(working) != 3 {
		t.Errorf("Expected 3 working days, got %d", len(working))
	}
	if working[day(7)] || working[day(8)] {
		t.Error("Expected holiday days to be days off")
	}
}

func TestWorkingDaysVacationAppliesToUserOnly(t *testing.T) {
	settings := models.DefaultSettings()
	settings.Vacations[1] = []models.DateInterval{{From: day(6), To: day(6)}}
	cal := New(settings, nil)

	user := &models.User{ID: 1, LastName: "Miller"}
	group := &models.Group{ID: 7, Name: "Backend"}

	if cal.WorkingDays(weekSpan(), user, false)[day(6)] {
		t.Error("Expected the vacation day to be off for the user")
	}
	if !cal.WorkingDays(weekSpan(), group, false)[day(6)] {
		t.Error("Expected the vacation day to be a working day for the group")
	}
	if !cal.WorkingDays(weekSpan(), nil, false)[day(6)] {
		t.Error("Expected the vacation day to be a working day in general")
	}
}

func TestWorkingDaysCustomWeekdays(t *testing.T) {
	settings := models.DefaultSettings()
	settings.WorkingWeekdays = map[int]bool{6: true, 7: true}
	cal := New(settings, nil)

	working := cal.WorkingDays(weekSpan(), nil, false)

	if len(working) != 2 {
		t.Errorf("Expected 2 working days, got %d", len(working))
	}
	if !working[day(10)] || !working[day(11)] {
		t.Error("Expected the weekend to be working days")
	}
}

func TestWorkingDaysMemoized(t *testing.T) {
	settings := models.DefaultSettings()
	cal := New(settings, nil)

	first := cal.WorkingDays(weekSpan(), nil, false)
	if len(first) != 5 {
		t.Fatalf("Expected 5 working days, got %d", len(first))
	}

	// A settings change without invalidation still serves the old result.
	settings.Holidays = []models.DateInterval{{From: day(7), To: day(7)}}
	cached := cal.WorkingDays(weekSpan(), nil, false)
	if len(cached) != 5 {
		t.Errorf("Expected the memoized result, got %d working days", len(cached))
	}

	// Bypassing recomputes and sees the new holiday.
	fresh := cal.WorkingDays(weekSpan(), nil, true)
	if len(fresh) != 4 {
		t.Errorf("Expected 4 working days after bypass, got %d", len(fresh))
	}
}

func TestInvalidateFlushesStore(t *testing.T) {
	settings := models.DefaultSettings()
	cal := New(settings, nil)

	cal.WorkingDays(weekSpan(), nil, false)
	settings.Holidays = []models.DateInterval{{From: day(7), To: day(7)}}
	cal.Invalidate()

	fresh := cal.WorkingDays(weekSpan(), nil, false)
	if len(fresh) != 4 {
		t.Errorf("Expected 4 working days after invalidation, got %d", len(fresh))
	}
}

func TestRealDistanceInDays(t *testing.T) {
	cal := New(models.DefaultSettings(), nil)

	// Two full weeks hold ten working days.
	distance := cal.RealDistanceInDays(models.NewDateRange(day(5), day(18)), nil)
	if distance != 10 {
		t.Errorf("Expected 10 working days, got %d", distance)
	}
}

func TestFirstWorkingDayOnOrAfter(t *testing.T) {
	cal := New(models.DefaultSettings(), nil)

	// From Saturday the next working day is Monday.
	found, ok := cal.FirstWorkingDayOnOrAfter(day(10), weekSpan(), nil)
	if ok {
		t.Errorf("Expected no working day after Saturday inside the week span, got %s", models.FormatDay(found))
	}

	span := models.NewDateRange(day(5), day(18))
	found, ok = cal.FirstWorkingDayOnOrAfter(day(10), span, nil)
	if !ok || !found.Equal(day(12)) {
		t.Errorf("Expected Monday 2026-01-12, got %v (ok=%v)", found, ok)
	}

	found, ok = cal.FirstWorkingDayOnOrAfter(day(5), span, nil)
	if !ok || !found.Equal(day(5)) {
		t.Errorf("Expected the same day when it is a working day, got %v (ok=%v)", found, ok)
	}
}
