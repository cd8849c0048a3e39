package models

import (
	"fmt"
	"time"
)

// Thresholds is the triple of daily-load boundaries used to classify how
// loaded an assignee is on a given day.
type Thresholds struct {
	Low    float64 `json:"low"`
	Normal float64 `json:"normal"`
	High   float64 `json:"high"`
}

// Assignee is anything a work item can be assigned to: a concrete user, a
// whole group, or the synthetic placeholder holding a group's not yet
// delegated work.
type Assignee interface {
	// AssigneeKey returns a stable identity string, unique across users,
	// groups and placeholders.
	AssigneeKey() string
	// DisplayName returns the name shown in tables and exports.
	DisplayName() string
}

// User is a concrete person. Thresholds is nil when the user has no own
// capacity configuration and falls back to the process default.
type User struct {
	ID          int         `json:"id"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	MainGroupID int         `json:"main_group_id,omitempty"`
	Thresholds  *Thresholds `json:"thresholds,omitempty"`
}

func (u *User) AssigneeKey() string {
	return fmt.Sprintf("user-%d", u.ID)
}

func (u *User) DisplayName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	return u.FirstName + " " + u.LastName
}

// Group is a set of users. Members carries the resolved member objects;
// the engine never queries membership itself.
type Group struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Members []*User `json:"members,omitempty"`
}

func (g *Group) AssigneeKey() string {
	return fmt.Sprintf("group-%d", g.ID)
}

func (g *Group) DisplayName() string {
	return g.Name
}

// GroupPlaceholder represents the portion of a group's workload that has
// not been assigned to an individual member yet. It behaves like a user
// for display and aggregation but delegates identity and membership to
// its group. It is never on vacation.
type GroupPlaceholder struct {
	Group *Group `json:"group"`
}

func (p *GroupPlaceholder) AssigneeKey() string {
	return fmt.Sprintf("group-dummy-%d", p.Group.ID)
}

func (p *GroupPlaceholder) DisplayName() string {
	return "Assigned to group " + p.Group.Name
}

// WorkItem is one open issue/task as handed over by the caller. All
// references are already resolved; the engine treats the item as
// read-only.
type WorkItem struct {
	ID             int        `json:"id"`
	Subject        string     `json:"subject"`
	Assignee       Assignee   `json:"-"`
	ProjectID      int        `json:"project_id"`
	ProjectName    string     `json:"project_name"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	EstimatedHours *float64   `json:"estimated_hours,omitempty"`
	DoneRatio      int        `json:"done_ratio"`
	Closed         bool       `json:"closed"`
	Visible        bool       `json:"visible"`
	HasChildren    bool       `json:"has_children"`
}

// OverdueAt reports whether the item's due date lies strictly before the
// given day and the item is still open.
func (w *WorkItem) OverdueAt(today time.Time) bool {
	return w.DueDate != nil && w.DueDate.Before(today) && !w.Closed
}

// Unscheduled reports whether the item has no due date at all.
func (w *WorkItem) Unscheduled() bool {
	return w.DueDate == nil
}

// Settings carries the global configuration the engine needs. It is built
// once per request and immutable afterwards.
type Settings struct {
	// WorkingWeekdays enables weekdays by commercial number, 1 Monday
	// through 7 Sunday.
	WorkingWeekdays map[int]bool
	// Holidays are global non-working intervals applying to everyone.
	Holidays []DateInterval
	// Vacations maps a user ID to that user's absence intervals. Groups
	// and placeholders are never on vacation.
	Vacations map[int][]DateInterval
	// DefaultThresholds applies to users without own configuration.
	DefaultThresholds Thresholds
	// IncludeParentItems lets items with children take part in the
	// allocation. Off by default: children carry their own estimates and
	// the parent must not be counted twice.
	IncludeParentItems bool
}

// DefaultSettings returns a Monday-to-Friday working week with no
// holidays or vacations.
func DefaultSettings() *Settings {
	return &Settings{
		WorkingWeekdays: map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true},
		Vacations:       map[int][]DateInterval{},
	}
}

// RemainingHours is the item's estimated effort weighted by its
// unfinished ratio. Items without an estimate contribute nothing, and so
// do parent items unless the settings include them: their children carry
// the effort.
func (w *WorkItem) RemainingHours(settings *Settings) float64 {
	if w.EstimatedHours == nil {
		return 0.0
	}
	if w.HasChildren && !settings.IncludeParentItems {
		return 0.0
	}
	return *w.EstimatedHours * (100.0 - float64(w.DoneRatio)) / 100.0
}
