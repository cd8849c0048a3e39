package models

// Wire types for the workload endpoints. Dates travel as ISO strings
// (YYYY-MM-DD); resolution into domain objects happens in the handlers.

// WorkloadInput is the request body for the workload computation. Users,
// groups and items arrive already filtered by the caller; the engine
// never re-checks permissions.
type WorkloadInput struct {
	FirstDay string         `json:"first_day"`
	LastDay  string         `json:"last_day"`
	Today    string         `json:"today"`
	Users    []UserInput    `json:"users"`
	Groups   []GroupInput   `json:"groups"`
	Items    []ItemInput    `json:"items"`
	Settings *SettingsInput `json:"settings,omitempty"`
}

// UserInput describes one selectable user. Thresholds may be omitted to
// use the stored or default configuration.
type UserInput struct {
	ID          int         `json:"id"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	MainGroupID int         `json:"main_group_id,omitempty"`
	Thresholds  *Thresholds `json:"thresholds,omitempty"`
}

// GroupInput describes one selected group and its member users.
type GroupInput struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	MemberIDs []int  `json:"member_ids"`
}

// ItemInput describes one open work item. Exactly one of the two
// assignment fields should be set.
type ItemInput struct {
	ID              int      `json:"id"`
	Subject         string   `json:"subject"`
	AssignedUserID  *int     `json:"assigned_user_id,omitempty"`
	AssignedGroupID *int     `json:"assigned_group_id,omitempty"`
	ProjectID       int      `json:"project_id"`
	ProjectName     string   `json:"project_name"`
	StartDate       *string  `json:"start_date,omitempty"`
	DueDate         *string  `json:"due_date,omitempty"`
	EstimatedHours  *float64 `json:"estimated_hours,omitempty"`
	DoneRatio       int      `json:"done_ratio"`
	Closed          bool     `json:"closed"`
	Visible         *bool    `json:"visible,omitempty"`
	HasChildren     bool     `json:"has_children"`
}

// IntervalInput is an inclusive date interval on the wire.
type IntervalInput struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// VacationInput is one user's absence interval on the wire.
type VacationInput struct {
	UserID int    `json:"user_id"`
	From   string `json:"from"`
	To     string `json:"to"`
}

// SettingsInput overrides the stored configuration for one request.
// Omitted sections fall back to the database and the environment.
type SettingsInput struct {
	WorkingWeekdays    []int           `json:"working_weekdays,omitempty"`
	Holidays           []IntervalInput `json:"holidays,omitempty"`
	Vacations          []VacationInput `json:"vacations,omitempty"`
	DefaultThresholds  *Thresholds     `json:"default_thresholds,omitempty"`
	IncludeParentItems bool            `json:"include_parent_items"`
}

// DayPayload is one day of an aggregated total in a response, including
// the load bucket the hours fall into.
type DayPayload struct {
	Date    string  `json:"date"`
	Hours   float64 `json:"hours"`
	Holiday bool    `json:"holiday"`
	Low     float64 `json:"low"`
	Normal  float64 `json:"normal"`
	High    float64 `json:"high"`
	Load    string  `json:"load"`
}

// InvisibleDayPayload is one day of a redacted bucket in a response.
type InvisibleDayPayload struct {
	Date    string  `json:"date"`
	Hours   float64 `json:"hours"`
	Holiday bool    `json:"holiday"`
}

// ItemDayPayload is one day of a single item's allocation detail.
type ItemDayPayload struct {
	Date       string  `json:"date"`
	Hours      float64 `json:"hours"`
	Active     bool    `json:"active"`
	NoEstimate bool    `json:"no_estimate"`
	Holiday    bool    `json:"holiday"`
}

// ItemAllocationPayload is the per-item detail of a visible item.
type ItemAllocationPayload struct {
	ItemID  int              `json:"item_id"`
	Subject string           `json:"subject,omitempty"`
	Days    []ItemDayPayload `json:"days"`
}

// ProjectPayload is one project sub-bucket of an assignee.
type ProjectPayload struct {
	ProjectID        int                     `json:"project_id"`
	ProjectName      string                  `json:"project_name"`
	OverdueCount     int                     `json:"overdue_count"`
	OverdueHours     float64                 `json:"overdue_hours"`
	UnscheduledCount int                     `json:"unscheduled_count"`
	UnscheduledHours float64                 `json:"unscheduled_hours"`
	Total            []DayPayload            `json:"total"`
	Items            []ItemAllocationPayload `json:"items"`
}

// AssigneePayload is the response row for one user or placeholder.
type AssigneePayload struct {
	Key              string                `json:"key"`
	Name             string                `json:"name"`
	Type             string                `json:"type"`
	MainGroup        string                `json:"main_group,omitempty"`
	OverdueCount     int                   `json:"overdue_count"`
	OverdueHours     float64               `json:"overdue_hours"`
	UnscheduledCount int                   `json:"unscheduled_count"`
	UnscheduledHours float64               `json:"unscheduled_hours"`
	Total            []DayPayload          `json:"total"`
	Invisible        []InvisibleDayPayload `json:"invisible,omitempty"`
	Projects         []ProjectPayload      `json:"projects,omitempty"`
}

// GroupPayload is the response row for one group aggregate with its
// member rows in display order.
type GroupPayload struct {
	GroupID          int                   `json:"group_id"`
	Name             string                `json:"name"`
	OverdueCount     int                   `json:"overdue_count"`
	OverdueHours     float64               `json:"overdue_hours"`
	UnscheduledCount int                   `json:"unscheduled_count"`
	UnscheduledHours float64               `json:"unscheduled_hours"`
	Total            []DayPayload          `json:"total"`
	Invisible        []InvisibleDayPayload `json:"invisible,omitempty"`
	Members          []AssigneePayload     `json:"members"`
}

// WorkloadResponse is the response body of the workload computation.
type WorkloadResponse struct {
	FirstDay string            `json:"first_day"`
	LastDay  string            `json:"last_day"`
	Today    string            `json:"today"`
	Days     []string          `json:"days"`
	Users    []AssigneePayload `json:"users"`
	Groups   []GroupPayload    `json:"groups,omitempty"`
	Warnings []string          `json:"warnings,omitempty"`
}
