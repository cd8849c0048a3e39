package models

import "time"

// DayLoad is the per-day record of one item's allocation.
type DayLoad struct {
	Hours      float64
	Active     bool
	NoEstimate bool
	Holiday    bool
	Low        float64
	Normal     float64
	High       float64
}

// DailyAllocation maps every day of the requested range to the item's
// load on that day. Keys cover the range exactly, one entry per calendar
// day, no gaps.
type DailyAllocation map[time.Time]DayLoad

// HoursOn returns the hours placed on the given day, zero if the day is
// not part of the allocation.
func (a DailyAllocation) HoursOn(day time.Time) float64 {
	return a[day].Hours
}

// SummaryDay is one day of an aggregated total: summed hours, the holiday
// flag and the capacity thresholds effective on that day.
type SummaryDay struct {
	Hours   float64
	Holiday bool
	Low     float64
	Normal  float64
	High    float64
}

// InvisibleDay is one day of the redacted bucket; only hours and the
// holiday flag survive redaction.
type InvisibleDay struct {
	Hours   float64
	Holiday bool
}

// ProjectSummary is the per-project sub-bucket of an assignee's summary,
// including the per-item allocation detail for visible items.
type ProjectSummary struct {
	ProjectID        int
	ProjectName      string
	OverdueHours     float64
	OverdueCount     int
	UnscheduledHours float64
	UnscheduledCount int
	Total            map[time.Time]*SummaryDay
	Items            map[int]DailyAllocation
}

// AssigneeSummary aggregates all items of one assignee over the requested
// range.
type AssigneeSummary struct {
	Assignee         Assignee
	OverdueHours     float64
	OverdueCount     int
	UnscheduledHours float64
	UnscheduledCount int
	Total            map[time.Time]*SummaryDay
	Invisible        map[time.Time]*InvisibleDay
	Projects         map[int]*ProjectSummary
}

// GroupSummary is the aggregate over all members of one group, plus the
// constituent member summaries in display order (placeholder first).
type GroupSummary struct {
	Group            *Group
	OverdueHours     float64
	OverdueCount     int
	UnscheduledHours float64
	UnscheduledCount int
	Total            map[time.Time]*SummaryDay
	// Invisible is nil when no member has redacted hours in the range.
	Invisible map[time.Time]*InvisibleDay
	Members   []*AssigneeSummary
}
