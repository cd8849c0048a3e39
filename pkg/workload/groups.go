package workload

import (
	"sort"
	"time"

	"github.com/arnavshah/workload-api-go/pkg/models"
)

// ByGroup reduces the per-assignee output of ByUser into one summary per
// selected group. Members are the assignees whose main group is the
// group; the group placeholder always belongs to its own group and sorts
// first. Selected members without any items still show up with a
// zero-filled availability row.
func (g *Aggregator) ByGroup(byUser map[string]*models.AssigneeSummary, groups []*models.Group, span models.DateRange) map[int]*models.GroupSummary {
	merged := make(map[string]*models.AssigneeSummary, len(byUser))
	for key, summary := range byUser {
		merged[key] = summary
	}

	for _, group := range groups {
		for _, member := range group.Members {
			if member.MainGroupID != group.ID {
				continue
			}
			key := member.AssigneeKey()
			if _, ok := merged[key]; !ok {
				merged[key] = g.availabilitySummary(member, span)
			}
		}
	}

	result := make(map[int]*models.GroupSummary, len(groups))
	for _, group := range groups {
		result[group.ID] = g.summarizeGroup(group, membersOf(merged, group), span)
	}

	return result
}

func (g *Aggregator) summarizeGroup(group *models.Group, members []*models.AssigneeSummary, span models.DateRange) *models.GroupSummary {
	summary := &models.GroupSummary{
		Group:   group,
		Total:   make(map[time.Time]*models.SummaryDay, span.Len()),
		Members: members,
	}

	for _, member := range members {
		summary.OverdueHours += member.OverdueHours
		summary.OverdueCount += member.OverdueCount
		summary.UnscheduledHours += member.UnscheduledHours
		summary.UnscheduledCount += member.UnscheduledCount
	}

	for _, day := range span.Days() {
		// The group is only off when every member is off; a single working
		// member makes the day a working day for the group. Thresholds sum
		// over concrete users only, the placeholder already folds the
		// members' capacity elsewhere.
		entry := &models.SummaryDay{Holiday: true}
		for _, member := range members {
			memberDay, ok := member.Total[day]
			if !ok {
				continue
			}
			entry.Hours += memberDay.Hours
			entry.Holiday = entry.Holiday && memberDay.Holiday
			if _, isUser := member.Assignee.(*models.User); isUser {
				entry.Low += memberDay.Low
				entry.Normal += memberDay.Normal
				entry.High += memberDay.High
			}
		}
		summary.Total[day] = entry
	}

	summary.Invisible = invisibleOfMembers(members, span)

	return summary
}

// invisibleOfMembers sums the members' redacted buckets. It returns nil
// when no member carries redacted hours anywhere in the range.
func invisibleOfMembers(members []*models.AssigneeSummary, span models.DateRange) map[time.Time]*models.InvisibleDay {
	invisible := make(map[time.Time]*models.InvisibleDay, span.Len())
	anyHours := false

	for _, day := range span.Days() {
		entry := &models.InvisibleDay{Holiday: true}
		for _, member := range members {
			memberDay, ok := member.Invisible[day]
			if !ok {
				continue
			}
			entry.Hours += memberDay.Hours
			entry.Holiday = entry.Holiday && memberDay.Holiday
		}
		invisible[day] = entry
		if entry.Hours > 0 {
			anyHours = true
		}
	}

	if !anyHours {
		return nil
	}
	return invisible
}

// availabilitySummary builds the zero-filled row for a group member
// without items, so pure availability is still visible per day.
func (g *Aggregator) availabilitySummary(user *models.User, span models.DateRange) *models.AssigneeSummary {
	working := g.cal.WorkingDays(span, user, false)
	summary := &models.AssigneeSummary{
		Assignee:  user,
		Total:     make(map[time.Time]*models.SummaryDay, span.Len()),
		Invisible: make(map[time.Time]*models.InvisibleDay),
		Projects:  make(map[int]*models.ProjectSummary),
	}
	g.initTotal(summary.Total, user, span, working)
	return summary
}

func membersOf(merged map[string]*models.AssigneeSummary, group *models.Group) []*models.AssigneeSummary {
	var members []*models.AssigneeSummary
	for _, summary := range merged {
		if mainGroupID(summary.Assignee) == group.ID {
			members = append(members, summary)
		}
	}

	// Placeholder first, then users by last name.
	sort.Slice(members, func(i, j int) bool {
		pi := isPlaceholder(members[i].Assignee)
		pj := isPlaceholder(members[j].Assignee)
		if pi != pj {
			return pi
		}
		return sortName(members[i].Assignee) < sortName(members[j].Assignee)
	})

	return members
}

func mainGroupID(assignee models.Assignee) int {
	switch a := assignee.(type) {
	case *models.User:
		return a.MainGroupID
	case *models.GroupPlaceholder:
		return a.Group.ID
	}
	return 0
}

func isPlaceholder(assignee models.Assignee) bool {
	_, ok := assignee.(*models.GroupPlaceholder)
	return ok
}

func sortName(assignee models.Assignee) string {
	if user, ok := assignee.(*models.User); ok {
		return user.LastName + "\x00" + user.FirstName
	}
	return assignee.DisplayName()
}
