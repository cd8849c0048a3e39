package workload

import (
	"errors"
	"fmt"
	"time"

	"github.com/arnavshah/workload-api-go/pkg/calendar"
	"github.com/arnavshah/workload-api-go/pkg/capacity"
	"github.com/arnavshah/workload-api-go/pkg/models"
)

var (
	// ErrInvalidRange is returned when the requested range is missing one
	// of its bounds.
	ErrInvalidRange = errors.New("workload: date range must have both bounds set")
	// ErrInvalidToday is returned when the reference day is unset.
	ErrInvalidToday = errors.New("workload: today must be a valid date")
)

// Aggregator folds per-item allocations into per-assignee and per-group
// summaries. It carries no state across calls beyond the calendar cache.
type Aggregator struct {
	settings *models.Settings
	cal      *calendar.Calendar
	caps     *capacity.Resolver
	alloc    *Allocator
}

// NewAggregator wires an Aggregator with its allocator over shared
// calendar and capacity components.
func NewAggregator(settings *models.Settings, cal *calendar.Calendar, caps *capacity.Resolver) *Aggregator {
	return &Aggregator{
		settings: settings,
		cal:      cal,
		caps:     caps,
		alloc:    NewAllocator(settings, cal, caps),
	}
}

// ByUser computes one summary per assignee for the given items. Items
// assigned to a group are booked on that group's placeholder. Items
// without an assignee are skipped and reported in the warnings slice;
// a single bad item never aborts the rest of the aggregation.
func (g *Aggregator) ByUser(items []*models.WorkItem, span models.DateRange, today time.Time) (map[string]*models.AssigneeSummary, []string, error) {
	if span.First.IsZero() || span.Last.IsZero() {
		return nil, nil, ErrInvalidRange
	}
	if today.IsZero() {
		return nil, nil, ErrInvalidToday
	}

	today = models.DayOf(today)
	summaries := make(map[string]*models.AssigneeSummary)
	var warnings []string

	placeholders := make(map[int]*models.GroupPlaceholder)

	for _, item := range items {
		if nilAssignee(item.Assignee) {
			warnings = append(warnings, fmt.Sprintf("item %d has no assignee and was skipped", item.ID))
			continue
		}
		if item.HasChildren && !g.settings.IncludeParentItems {
			// Parents do not directly add to the workload; their children
			// carry the effort.
			continue
		}

		assignee := item.Assignee
		if group, ok := assignee.(*models.Group); ok {
			placeholder, seen := placeholders[group.ID]
			if !seen {
				placeholder = &models.GroupPlaceholder{Group: group}
				placeholders[group.ID] = placeholder
			}
			assignee = placeholder
		}

		working := g.cal.WorkingDays(span, assignee, false)
		firstWorkingDay, ok := g.cal.FirstWorkingDayOnOrAfter(today, span, assignee)
		if !ok {
			firstWorkingDay = today
		}

		key := assignee.AssigneeKey()
		summary, seen := summaries[key]
		if !seen {
			summary = g.newSummary(assignee, span, working)
			summaries[key] = summary
		}

		allocation := g.alloc.HoursPerDay(item, span, today)

		g.classify(item, allocation, summary, firstWorkingDay, today)

		if item.Visible {
			project := g.projectBucket(summary, item, span, working)
			g.classifyProject(item, allocation, project, firstWorkingDay, today)
			project.Items[item.ID] = allocation
		} else if !item.OverdueAt(today) {
			g.foldInvisible(summary, allocation, span)
		}
	}

	return summaries, warnings, nil
}

func (g *Aggregator) newSummary(assignee models.Assignee, span models.DateRange, working map[time.Time]bool) *models.AssigneeSummary {
	summary := &models.AssigneeSummary{
		Assignee:  assignee,
		Total:     make(map[time.Time]*models.SummaryDay, span.Len()),
		Invisible: make(map[time.Time]*models.InvisibleDay),
		Projects:  make(map[int]*models.ProjectSummary),
	}
	g.initTotal(summary.Total, assignee, span, working)
	return summary
}

// initTotal seeds a total bucket with zero hours, the holiday flag from
// the working calendar and the thresholds effective on each day.
func (g *Aggregator) initTotal(total map[time.Time]*models.SummaryDay, assignee models.Assignee, span models.DateRange, working map[time.Time]bool) {
	for _, day := range span.Days() {
		holiday := !working[day]
		triple := g.caps.Triple(assignee, holiday)
		total[day] = &models.SummaryDay{
			Holiday: holiday,
			Low:     triple.Low,
			Normal:  triple.Normal,
			High:    triple.High,
		}
	}
}

// classify books one item either on the overdue counters, the
// unscheduled counters or the per-day total. Overdue implies a due date,
// so that check always precedes the unscheduled one.
func (g *Aggregator) classify(item *models.WorkItem, allocation models.DailyAllocation, summary *models.AssigneeSummary, firstWorkingDay, today time.Time) {
	switch {
	case item.OverdueAt(today):
		summary.OverdueHours += allocation.HoursOn(firstWorkingDay)
		summary.OverdueCount++
	case item.Unscheduled():
		summary.UnscheduledHours += item.RemainingHours(g.settings)
		summary.UnscheduledCount++
	default:
		foldHours(summary.Total, allocation)
	}
}

func (g *Aggregator) classifyProject(item *models.WorkItem, allocation models.DailyAllocation, project *models.ProjectSummary, firstWorkingDay, today time.Time) {
	switch {
	case item.OverdueAt(today):
		project.OverdueHours += allocation.HoursOn(firstWorkingDay)
		project.OverdueCount++
	case item.Unscheduled():
		project.UnscheduledHours += item.RemainingHours(g.settings)
		project.UnscheduledCount++
	default:
		foldHours(project.Total, allocation)
	}
}

func (g *Aggregator) projectBucket(summary *models.AssigneeSummary, item *models.WorkItem, span models.DateRange, working map[time.Time]bool) *models.ProjectSummary {
	project, ok := summary.Projects[item.ProjectID]
	if !ok {
		project = &models.ProjectSummary{
			ProjectID:   item.ProjectID,
			ProjectName: item.ProjectName,
			Total:       make(map[time.Time]*models.SummaryDay, span.Len()),
			Items:       make(map[int]models.DailyAllocation),
		}
		g.initTotal(project.Total, summary.Assignee, span, working)
		summary.Projects[item.ProjectID] = project
	}
	return project
}

// foldInvisible adds a redacted item's hours to the invisible bucket.
// The bucket's holiday flags come from the assignee-independent calendar,
// matching the redaction: no personal vacation data leaks through it.
func (g *Aggregator) foldInvisible(summary *models.AssigneeSummary, allocation models.DailyAllocation, span models.DateRange) {
	working := g.cal.WorkingDays(span, nil, false)
	for _, day := range span.Days() {
		entry, ok := summary.Invisible[day]
		if !ok {
			entry = &models.InvisibleDay{Holiday: !working[day]}
			summary.Invisible[day] = entry
		}
		entry.Hours += allocation.HoursOn(day)
	}
}

// nilAssignee also catches a nil concrete pointer stored in the
// interface, which compares non-nil but cannot be used.
func nilAssignee(a models.Assignee) bool {
	switch v := a.(type) {
	case *models.User:
		return v == nil
	case *models.Group:
		return v == nil
	case *models.GroupPlaceholder:
		return v == nil
	}
	return a == nil
}

func foldHours(total map[time.Time]*models.SummaryDay, allocation models.DailyAllocation) {
	for day, load := range allocation {
		if entry, ok := total[day]; ok {
			entry.Hours += load.Hours
		}
	}
}
