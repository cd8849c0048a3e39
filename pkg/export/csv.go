// Package export serializes workload summaries to delimited text. One
// assignee yields two lines: the planned hours per day and the available
// capacity per day.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/arnavshah/workload-api-go/pkg/models"
)

var staticColumns = []string{
	"status",
	"type",
	"name",
	"main_group",
	"number_of_overdue_items",
	"number_of_overdue_hours",
	"number_of_unscheduled_items",
	"number_of_unscheduled_hours",
}

// Exporter renders summaries for one date range. The day columns follow
// the static columns in ascending date order.
type Exporter struct {
	span models.DateRange
}

// New builds an Exporter for the given range.
func New(span models.DateRange) *Exporter {
	return &Exporter{span: span}
}

// Header returns the static column names followed by one column per day.
func (e *Exporter) Header() []string {
	header := append([]string{}, staticColumns...)
	for _, day := range e.span.Days() {
		header = append(header, models.FormatDay(day))
	}
	return header
}

// PlannedLine renders an assignee's summed hours per day plus the
// overdue/unscheduled counters.
func (e *Exporter) PlannedLine(summary *models.AssigneeSummary, mainGroup string) []string {
	line := []string{
		"planned",
		assigneeType(summary.Assignee),
		summary.Assignee.DisplayName(),
		mainGroup,
		strconv.Itoa(summary.OverdueCount),
		formatHours(summary.OverdueHours),
		strconv.Itoa(summary.UnscheduledCount),
		formatHours(summary.UnscheduledHours),
	}
	for _, day := range e.span.Days() {
		line = append(line, formatHours(summary.Total[day].Hours))
	}
	return line
}

// AvailableLine renders an assignee's maximum capacity per day, zero on
// days off.
func (e *Exporter) AvailableLine(summary *models.AssigneeSummary) []string {
	line := []string{
		"available",
		assigneeType(summary.Assignee),
		summary.Assignee.DisplayName(),
		"", "", "", "", "",
	}
	for _, day := range e.span.Days() {
		line = append(line, formatHours(summary.Total[day].High))
	}
	return line
}

// GroupPlannedLine renders the aggregate row of one group.
func (e *Exporter) GroupPlannedLine(summary *models.GroupSummary) []string {
	line := []string{
		"planned",
		"Aggregation",
		summary.Group.Name,
		"",
		strconv.Itoa(summary.OverdueCount),
		formatHours(summary.OverdueHours),
		strconv.Itoa(summary.UnscheduledCount),
		formatHours(summary.UnscheduledHours),
	}
	for _, day := range e.span.Days() {
		line = append(line, formatHours(summary.Total[day].Hours))
	}
	return line
}

// GroupAvailableLine renders the aggregate capacity row of one group,
// the per-day sum over its concrete members.
func (e *Exporter) GroupAvailableLine(summary *models.GroupSummary) []string {
	line := []string{
		"available",
		"Aggregation",
		summary.Group.Name,
		"", "", "", "", "",
	}
	for _, day := range e.span.Days() {
		line = append(line, formatHours(summary.Total[day].High))
	}
	return line
}

// WriteUsers writes the header plus a planned and an available line per
// assignee.
func (e *Exporter) WriteUsers(w io.Writer, summaries []*models.AssigneeSummary, mainGroup func(models.Assignee) string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(e.Header()); err != nil {
		return err
	}
	for _, summary := range summaries {
		if err := cw.Write(e.PlannedLine(summary, mainGroup(summary.Assignee))); err != nil {
			return err
		}
		if err := cw.Write(e.AvailableLine(summary)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteGroups writes the header plus, per group, the aggregate rows
// followed by the member rows in their display order.
func (e *Exporter) WriteGroups(w io.Writer, summaries []*models.GroupSummary, mainGroup func(models.Assignee) string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(e.Header()); err != nil {
		return err
	}
	for _, group := range summaries {
		if err := cw.Write(e.GroupPlannedLine(group)); err != nil {
			return err
		}
		if err := cw.Write(e.GroupAvailableLine(group)); err != nil {
			return err
		}
		for _, member := range group.Members {
			if err := cw.Write(e.PlannedLine(member, mainGroup(member.Assignee))); err != nil {
				return err
			}
			if err := cw.Write(e.AvailableLine(member)); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func assigneeType(assignee models.Assignee) string {
	switch assignee.(type) {
	case *models.User:
		return "User"
	case *models.GroupPlaceholder:
		return "Group"
	default:
		return "Aggregation"
	}
}

func formatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', 2, 64)
}
