package calendar

import (
	"time"

	"github.com/arnavshah/workload-api-go/pkg/models"
	gocache "github.com/patrickmn/go-cache"
)

// Entries expire after 12 hours; holiday or vacation edits flush the
// store wholesale instead of invalidating single keys.
const (
	cacheTTL     = 12 * time.Hour
	cacheCleanup = 30 * time.Minute
)

// NewStore builds the process-wide memoization store shared by all
// Calendar instances.
func NewStore() *gocache.Cache {
	return gocache.New(cacheTTL, cacheCleanup)
}

// Calendar computes the working days of a date range for an assignee:
// enabled weekdays minus global holidays minus, for concrete users, that
// user's vacations. Results are memoized per (assignee, range).
type Calendar struct {
	settings *models.Settings
	store    *gocache.Cache
}

// New builds a Calendar over the given settings. The store may be shared
// across requests; pass nil to get a private one.
func New(settings *models.Settings, store *gocache.Cache) *Calendar {
	if store == nil {
		store = NewStore()
	}
	return &Calendar{settings: settings, store: store}
}

// WorkingDays returns the set of working days inside the span for the
// given assignee. A nil assignee means "no specific person": only the
// weekly pattern and global holidays apply. With bypass set the whole
// cache is flushed before recomputing.
func (c *Calendar) WorkingDays(span models.DateRange, assignee models.Assignee, bypass bool) map[time.Time]bool {
	if bypass {
		c.store.Flush()
	}

	key := assigneeKey(assignee) + "/" + span.String()
	if cached, ok := c.store.Get(key); ok {
		return cached.(map[time.Time]bool)
	}

	result := make(map[time.Time]bool)
	for _, day := range span.Days() {
		if !c.settings.WorkingWeekdays[models.Cwday(day)] {
			continue
		}
		if c.holiday(day) {
			continue
		}
		if c.vacation(day, assignee) {
			continue
		}
		result[day] = true
	}

	c.store.Set(key, result, gocache.DefaultExpiration)

	return result
}

// RealDistanceInDays is the number of working days in the span for the
// assignee, the divisor used when spreading effort evenly.
func (c *Calendar) RealDistanceInDays(span models.DateRange, assignee models.Assignee) int {
	return len(c.WorkingDays(span, assignee, false))
}

// FirstWorkingDayOnOrAfter finds the earliest working day of the span not
// before the given day. The second return value is false when the span
// holds no such day.
func (c *Calendar) FirstWorkingDayOnOrAfter(day time.Time, span models.DateRange, assignee models.Assignee) (time.Time, bool) {
	working := c.WorkingDays(span, assignee, false)
	var best time.Time
	found := false
	for d := range working {
		if d.Before(day) {
			continue
		}
		if !found || d.Before(best) {
			best = d
			found = true
		}
	}
	return best, found
}

// Invalidate drops every memoized entry. Called after holiday or
// vacation data changes.
func (c *Calendar) Invalidate() {
	c.store.Flush()
}

func (c *Calendar) holiday(day time.Time) bool {
	for _, interval := range c.settings.Holidays {
		if interval.Covers(day) {
			return true
		}
	}
	return false
}

// vacation applies to concrete users only; groups and placeholders are
// never absent.
func (c *Calendar) vacation(day time.Time, assignee models.Assignee) bool {
	user, ok := assignee.(*models.User)
	if !ok {
		return false
	}
	for _, interval := range c.settings.Vacations[user.ID] {
		if interval.Covers(day) {
			return true
		}
	}
	return false
}

func assigneeKey(assignee models.Assignee) string {
	if assignee == nil {
		return "all"
	}
	return assignee.AssigneeKey()
}
