package workload

import (
	"time"

	"github.com/arnavshah/workload-api-go/pkg/calendar"
	"github.com/arnavshah/workload-api-go/pkg/capacity"
	"github.com/arnavshah/workload-api-go/pkg/models"
)

// Allocator spreads one work item's remaining effort across the days of
// a date range. It is a pure function of (item, range, today) plus the
// read-only calendar and capacity lookups.
type Allocator struct {
	settings *models.Settings
	cal      *calendar.Calendar
	caps     *capacity.Resolver
}

// NewAllocator builds an Allocator over shared calendar and capacity
// components.
func NewAllocator(settings *models.Settings, cal *calendar.Calendar, caps *capacity.Resolver) *Allocator {
	return &Allocator{settings: settings, cal: cal, caps: caps}
}

// HoursPerDay computes the daily allocation of the item over the span.
// The returned map holds exactly one entry per calendar day of the span;
// an empty span yields an empty map.
//
// Three mutually exclusive strategies apply:
//   - due date in the past: the whole remaining effort lands on the first
//     working day at or after today;
//   - start or due date missing: days inside the known window are active
//     with zero hours and flagged as unestimated;
//   - fully scheduled: the remaining effort is spread evenly over the
//     working days between max(today, start) and the due date.
func (a *Allocator) HoursPerDay(item *models.WorkItem, span models.DateRange, today time.Time) models.DailyAllocation {
	result := make(models.DailyAllocation, span.Len())
	if span.Empty() {
		return result
	}

	remaining := item.RemainingHours(a.settings)
	working := a.cal.WorkingDays(span, item.Assignee, false)

	switch {
	case item.DueDate != nil && item.DueDate.Before(today):
		a.allocateOverdue(item, span, today, remaining, working, result)
	case item.DueDate == nil || item.StartDate == nil:
		a.allocatePartiallyScheduled(item, span, working, result)
	default:
		a.allocateScheduled(item, span, today, remaining, working, result)
	}

	a.applyThresholds(item.Assignee, result)

	return result
}

// allocateOverdue puts the full remaining effort on the first working day
// at or after today. When the span holds no such day the hours stay
// unplaced; the aggregation then only counts the item, it never fails.
func (a *Allocator) allocateOverdue(item *models.WorkItem, span models.DateRange, today time.Time, remaining float64, working map[time.Time]bool, result models.DailyAllocation) {
	due := *item.DueDate

	for _, day := range span.Days() {
		active := !day.After(due) && (item.StartDate == nil || !item.StartDate.Before(day))
		result[day] = models.DayLoad{
			Active:  active,
			Holiday: !working[day],
		}
	}

	a.placeOnFirstWorkingDay(item, span, today, remaining, result)
}

// allocatePartiallyScheduled handles items missing their start date, due
// date or both. No estimate can be spread; days inside the one-sided
// window are active and flagged unestimated, except on holidays.
func (a *Allocator) allocatePartiallyScheduled(item *models.WorkItem, span models.DateRange, working map[time.Time]bool, result models.DailyAllocation) {
	for _, day := range span.Days() {
		holiday := !working[day]

		active := (item.DueDate != nil && !day.After(*item.DueDate)) ||
			(item.StartDate != nil && !day.Before(*item.StartDate)) ||
			(item.StartDate == nil && item.DueDate == nil)

		if active {
			result[day] = models.DayLoad{
				Active:     true,
				NoEstimate: !holiday,
				Holiday:    holiday,
			}
		} else {
			result[day] = models.DayLoad{Holiday: holiday}
		}
	}
}

// allocateScheduled spreads the remaining effort evenly across the
// working days left until the due date. Days before today inside the
// window are active but already accounted for, so they carry no hours.
func (a *Allocator) allocateScheduled(item *models.WorkItem, span models.DateRange, today time.Time, remaining float64, working map[time.Time]bool, result models.DailyAllocation) {
	start := *item.StartDate
	due := *item.DueDate

	remainingSpan := models.NewDateRange(maxDay(today, start), due)
	workdays := a.cal.RealDistanceInDays(remainingSpan, item.Assignee)

	var hoursPerWorkday float64
	if workdays > 0 {
		hoursPerWorkday = remaining / float64(workdays)
	}

	for _, day := range span.Days() {
		holiday := !working[day]

		switch {
		case day.Before(start) || day.After(due):
			result[day] = models.DayLoad{Holiday: holiday}
		case day.Before(today):
			result[day] = models.DayLoad{Active: true, Holiday: holiday}
		default:
			hours := hoursPerWorkday
			if holiday {
				hours = 0.0
			}
			result[day] = models.DayLoad{
				Hours:      hours,
				Active:     true,
				NoEstimate: item.EstimatedHours == nil && !holiday,
				Holiday:    holiday,
			}
		}
	}

	// The whole remaining window can consist of days off, e.g. start equal
	// to due on a holiday. Fall back to dumping the effort on the first
	// working day at or after today instead of dividing by zero.
	if workdays == 0 && remaining > 0 {
		a.placeOnFirstWorkingDay(item, span, today, remaining, result)
	}
}

func (a *Allocator) placeOnFirstWorkingDay(item *models.WorkItem, span models.DateRange, today time.Time, remaining float64, result models.DailyAllocation) {
	target := models.NewDateRange(maxDay(today, span.First), span.Last)
	day, ok := a.cal.FirstWorkingDayOnOrAfter(today, target, item.Assignee)
	if !ok {
		return
	}
	load := result[day]
	load.Hours = remaining
	result[day] = load
}

func (a *Allocator) applyThresholds(assignee models.Assignee, result models.DailyAllocation) {
	for day, load := range result {
		triple := a.caps.Triple(assignee, load.Holiday)
		load.Low = triple.Low
		load.Normal = triple.Normal
		load.High = triple.High
		result[day] = load
	}
}

func maxDay(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
