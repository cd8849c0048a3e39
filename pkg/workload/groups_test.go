package workload

import (
	"testing"
	"time"

	"github.com/arnavshah/workload-api-go/pkg/models"
	"github.com/stretchr/testify/require"
)

func TestByGroupAddsAvailabilityRows(t *testing.T) {
	agg := newTestAggregator(testSettings())
	user := &models.User{ID: 1, FirstName: "Eva", LastName: "Miller", MainGroupID: 7}
	group := &models.Group{ID: 7, Name: "Backend", Members: []*models.User{user}}

	span := models.NewDateRange(mon, sun)
	result := agg.ByGroup(map[string]*models.AssigneeSummary{}, []*models.Group{group}, span)

	summary := result[7]
	require.NotNil(t, summary)
	require.Len(t, summary.Members, 1)

	member := summary.Members[0]
	require.Equal(t, "user-1", member.Assignee.AssigneeKey())
	require.Equal(t, 0.0, member.Total[mon].Hours)
	// A member without items still shows the available capacity per day.
	require.Equal(t, 8.0, member.Total[mon].High)
	require.Equal(t, 0.0, member.Total[sat].High)
}

func TestByGroupSumsCounters(t *testing.T) {
	agg := newTestAggregator(testSettings())
	u1 := &models.User{ID: 1, LastName: "Miller", MainGroupID: 7}
	u2 := &models.User{ID: 2, LastName: "Smith", MainGroupID: 7}
	group := &models.Group{ID: 7, Name: "Backend", Members: []*models.User{u1, u2}}

	span := models.NewDateRange(mon, fri)
	items := []*models.WorkItem{
		{ID: 10, Assignee: u1, DueDate: dayPtr(models.Day(2026, time.January, 2)), EstimatedHours: hoursPtr(4.0), Visible: true},
		{ID: 11, Assignee: u2, EstimatedHours: hoursPtr(5.0), Visible: true},
	}

	byUser, _, err := agg.ByUser(items, span, mon)
	require.NoError(t, err)

	summary := agg.ByGroup(byUser, []*models.Group{group}, span)[7]
	require.Equal(t, 1, summary.OverdueCount)
	require.InDelta(t, 4.0, summary.OverdueHours, 1e-9)
	require.Equal(t, 1, summary.UnscheduledCount)
	require.InDelta(t, 5.0, summary.UnscheduledHours, 1e-9)
}

func TestByGroupHolidayNeedsEveryMemberOff(t *testing.T) {
	settings := testSettings()
	settings.Vacations[1] = []models.DateInterval{{From: tue, To: tue}, {From: thu, To: thu}}
	settings.Vacations[2] = []models.DateInterval{{From: thu, To: thu}}
	agg := newTestAggregator(settings)

	u1 := &models.User{ID: 1, LastName: "Miller", MainGroupID: 7}
	u2 := &models.User{ID: 2, LastName: "Smith", MainGroupID: 7}
	group := &models.Group{ID: 7, Name: "Backend", Members: []*models.User{u1, u2}}

	span := models.NewDateRange(mon, sun)
	summary := agg.ByGroup(map[string]*models.AssigneeSummary{}, []*models.Group{group}, span)[7]

	// One member on vacation does not make the day off for the group.
	require.False(t, summary.Total[tue].Holiday)
	// Coinciding vacations of all members do.
	require.True(t, summary.Total[thu].Holiday)
	// Weekends are off for everyone, so they are off for the group too.
	require.True(t, summary.Total[sat].Holiday)
}

func TestByGroupSumsMemberHoursAndThresholds(t *testing.T) {
	agg := newTestAggregator(testSettings())
	u1 := &models.User{ID: 1, LastName: "Miller", MainGroupID: 7}
	u2 := &models.User{ID: 2, LastName: "Smith", MainGroupID: 7}
	group := &models.Group{ID: 7, Name: "Backend", Members: []*models.User{u1, u2}}

	span := models.NewDateRange(mon, fri)
	items := []*models.WorkItem{
		{ID: 10, Assignee: u1, StartDate: dayPtr(tue), DueDate: dayPtr(thu), EstimatedHours: hoursPtr(3.0), Visible: true},
		{ID: 11, Assignee: u2, StartDate: dayPtr(tue), DueDate: dayPtr(thu), EstimatedHours: hoursPtr(6.0), Visible: true},
	}

	byUser, _, err := agg.ByUser(items, span, mon)
	require.NoError(t, err)

	summary := agg.ByGroup(byUser, []*models.Group{group}, span)[7]
	require.InDelta(t, 3.0, summary.Total[wed].Hours, 1e-9)
	require.Equal(t, 16.0, summary.Total[wed].High)
}

func TestByGroupExcludesPlaceholderFromThresholds(t *testing.T) {
	agg := newTestAggregator(testSettings())
	u1 := &models.User{ID: 1, LastName: "Miller", MainGroupID: 7}
	group := &models.Group{ID: 7, Name: "Backend", Members: []*models.User{u1}}

	span := models.NewDateRange(mon, fri)
	items := []*models.WorkItem{
		{ID: 10, Assignee: group, StartDate: dayPtr(tue), DueDate: dayPtr(thu), EstimatedHours: hoursPtr(6.0), Visible: true},
	}

	byUser, _, err := agg.ByUser(items, span, mon)
	require.NoError(t, err)

	summary := agg.ByGroup(byUser, []*models.Group{group}, span)[7]
	require.Len(t, summary.Members, 2)
	// The placeholder's capacity is the members' capacity already; only
	// concrete users add to the group thresholds.
	require.Equal(t, 8.0, summary.Total[wed].High)
	require.InDelta(t, 2.0, summary.Total[wed].Hours, 1e-9)
}

func TestByGroupMemberOrder(t *testing.T) {
	agg := newTestAggregator(testSettings())
	u1 := &models.User{ID: 1, FirstName: "Zoe", LastName: "Abbot", MainGroupID: 7}
	u2 := &models.User{ID: 2, FirstName: "Al", LastName: "Zimmer", MainGroupID: 7}
	group := &models.Group{ID: 7, Name: "Backend", Members: []*models.User{u2, u1}}

	span := models.NewDateRange(mon, fri)
	items := []*models.WorkItem{
		{ID: 10, Assignee: group, StartDate: dayPtr(tue), DueDate: dayPtr(thu), EstimatedHours: hoursPtr(6.0), Visible: true},
	}

	byUser, _, err := agg.ByUser(items, span, mon)
	require.NoError(t, err)

	summary := agg.ByGroup(byUser, []*models.Group{group}, span)[7]
	require.Len(t, summary.Members, 3)
	require.IsType(t, &models.GroupPlaceholder{}, summary.Members[0].Assignee)
	require.Equal(t, "user-1", summary.Members[1].Assignee.AssigneeKey())
	require.Equal(t, "user-2", summary.Members[2].Assignee.AssigneeKey())
}

func TestByGroupIgnoresForeignMembers(t *testing.T) {
	agg := newTestAggregator(testSettings())
	// Member of the group, but their main group is another one.
	guest := &models.User{ID: 3, LastName: "Guest", MainGroupID: 9}
	group := &models.Group{ID: 7, Name: "Backend", Members: []*models.User{guest}}

	span := models.NewDateRange(mon, fri)
	summary := agg.ByGroup(map[string]*models.AssigneeSummary{}, []*models.Group{group}, span)[7]

	require.Empty(t, summary.Members)
}

func TestByGroupInvisibleNilWithoutHiddenHours(t *testing.T) {
	agg := newTestAggregator(testSettings())
	u1 := &models.User{ID: 1, LastName: "Miller", MainGroupID: 7}
	group := &models.Group{ID: 7, Name: "Backend", Members: []*models.User{u1}}

	span := models.NewDateRange(mon, fri)
	items := []*models.WorkItem{
		{ID: 10, Assignee: u1, StartDate: dayPtr(tue), DueDate: dayPtr(thu), EstimatedHours: hoursPtr(6.0), Visible: true},
	}

	byUser, _, err := agg.ByUser(items, span, mon)
	require.NoError(t, err)

	summary := agg.ByGroup(byUser, []*models.Group{group}, span)[7]
	require.Nil(t, summary.Invisible)
}

func TestByGroupCollectsHiddenHours(t *testing.T) {
	agg := newTestAggregator(testSettings())
	u1 := &models.User{ID: 1, LastName: "Miller", MainGroupID: 7}
	group := &models.Group{ID: 7, Name: "Backend", Members: []*models.User{u1}}

	span := models.NewDateRange(mon, fri)
	items := []*models.WorkItem{
		{ID: 10, Assignee: u1, StartDate: dayPtr(tue), DueDate: dayPtr(thu), EstimatedHours: hoursPtr(6.0), Visible: false},
	}

	byUser, _, err := agg.ByUser(items, span, mon)
	require.NoError(t, err)

	summary := agg.ByGroup(byUser, []*models.Group{group}, span)[7]
	require.NotNil(t, summary.Invisible)
	require.InDelta(t, 2.0, summary.Invisible[wed].Hours, 1e-9)
}
