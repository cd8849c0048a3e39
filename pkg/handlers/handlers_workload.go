package handlers

import (
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/arnavshah/workload-api-go/pkg/calendar"
	"github.com/arnavshah/workload-api-go/pkg/capacity"
	"github.com/arnavshah/workload-api-go/pkg/database"
	"github.com/arnavshah/workload-api-go/pkg/export"
	"github.com/arnavshah/workload-api-go/pkg/models"
	"github.com/arnavshah/workload-api-go/pkg/workload"
	"github.com/gin-gonic/gin"
)

// workloadRequest is a fully resolved computation request: wire input
// merged with the stored configuration.
type workloadRequest struct {
	span     models.DateRange
	today    time.Time
	settings *models.Settings
	users    []*models.User
	groups   []*models.Group
	items    []*models.WorkItem

	userByID  map[int]*models.User
	groupByID map[int]*models.Group

	itemSubjects map[int]string

	// sharedCache is false when the request overrides settings; the
	// process-wide memoization would otherwise serve stale working days.
	sharedCache bool
}

// ComputeWorkload handles the JSON workload computation request
func (h *Handler) ComputeWorkload(c *gin.Context) {
	var input models.WorkloadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, err := h.resolveInput(&input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.runWorkload(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.RecordUsage(c, len(req.items), len(req.users))

	c.JSON(http.StatusOK, resp)
}

// ExportWorkloadCSV runs the same computation and renders it as
// delimited text, one planned and one available line per assignee.
func (h *Handler) ExportWorkloadCSV(c *gin.Context) {
	var input models.WorkloadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, err := h.resolveInput(&input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	byUser, byGroup, _, err := h.aggregate(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.RecordUsage(c, len(req.items), len(req.users))

	exporter := export.New(req.span)
	var out strings.Builder

	if len(req.groups) > 0 {
		if err := exporter.WriteGroups(&out, sortedGroups(byGroup), req.mainGroupName); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not write CSV"})
			return
		}
	} else {
		if err := exporter.WriteUsers(&out, sortedSummaries(byUser), req.mainGroupName); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not write CSV"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"csv": out.String()})
}

func (h *Handler) aggregate(req *workloadRequest) (map[string]*models.AssigneeSummary, map[int]*models.GroupSummary, []string, error) {
	store := h.Calendars
	if !req.sharedCache {
		store = calendar.NewStore()
	}

	cal := calendar.New(req.settings, store)
	caps := capacity.NewResolver(req.settings)
	agg := workload.NewAggregator(req.settings, cal, caps)

	byUser, warnings, err := agg.ByUser(req.items, req.span, req.today)
	if err != nil {
		return nil, nil, nil, err
	}

	byGroup := agg.ByGroup(byUser, req.groups, req.span)

	return byUser, byGroup, warnings, nil
}

func (h *Handler) runWorkload(req *workloadRequest) (*models.WorkloadResponse, error) {
	byUser, byGroup, warnings, err := h.aggregate(req)
	if err != nil {
		return nil, err
	}

	days := req.span.Days()
	resp := &models.WorkloadResponse{
		FirstDay: models.FormatDay(req.span.First),
		LastDay:  models.FormatDay(req.span.Last),
		Today:    models.FormatDay(req.today),
		Warnings: warnings,
	}
	for _, day := range days {
		resp.Days = append(resp.Days, models.FormatDay(day))
	}

	for _, summary := range sortedSummaries(byUser) {
		resp.Users = append(resp.Users, req.assigneePayload(summary, days))
	}

	for _, group := range sortedGroups(byGroup) {
		payload := models.GroupPayload{
			GroupID:          group.Group.ID,
			Name:             group.Group.Name,
			OverdueCount:     group.OverdueCount,
			OverdueHours:     group.OverdueHours,
			UnscheduledCount: group.UnscheduledCount,
			UnscheduledHours: group.UnscheduledHours,
			Total:            dayPayloads(group.Total, days),
			Invisible:        invisiblePayloads(group.Invisible, days),
		}
		for _, member := range group.Members {
			payload.Members = append(payload.Members, req.assigneePayload(member, days))
		}
		resp.Groups = append(resp.Groups, payload)
	}

	return resp, nil
}

func (req *workloadRequest) assigneePayload(summary *models.AssigneeSummary, days []time.Time) models.AssigneePayload {
	payload := models.AssigneePayload{
		Key:              summary.Assignee.AssigneeKey(),
		Name:             summary.Assignee.DisplayName(),
		Type:             assigneeType(summary.Assignee),
		MainGroup:        req.mainGroupName(summary.Assignee),
		OverdueCount:     summary.OverdueCount,
		OverdueHours:     summary.OverdueHours,
		UnscheduledCount: summary.UnscheduledCount,
		UnscheduledHours: summary.UnscheduledHours,
		Total:            dayPayloads(summary.Total, days),
		Invisible:        invisiblePayloads(summary.Invisible, days),
	}

	projectIDs := make([]int, 0, len(summary.Projects))
	for id := range summary.Projects {
		projectIDs = append(projectIDs, id)
	}
	sort.Ints(projectIDs)

	for _, id := range projectIDs {
		project := summary.Projects[id]
		pp := models.ProjectPayload{
			ProjectID:        project.ProjectID,
			ProjectName:      project.ProjectName,
			OverdueCount:     project.OverdueCount,
			OverdueHours:     project.OverdueHours,
			UnscheduledCount: project.UnscheduledCount,
			UnscheduledHours: project.UnscheduledHours,
			Total:            dayPayloads(project.Total, days),
		}

		itemIDs := make([]int, 0, len(project.Items))
		for itemID := range project.Items {
			itemIDs = append(itemIDs, itemID)
		}
		sort.Ints(itemIDs)

		for _, itemID := range itemIDs {
			allocation := project.Items[itemID]
			ip := models.ItemAllocationPayload{
				ItemID:  itemID,
				Subject: req.itemSubjects[itemID],
			}
			for _, day := range days {
				load := allocation[day]
				ip.Days = append(ip.Days, models.ItemDayPayload{
					Date:       models.FormatDay(day),
					Hours:      load.Hours,
					Active:     load.Active,
					NoEstimate: load.NoEstimate,
					Holiday:    load.Holiday,
				})
			}
			pp.Items = append(pp.Items, ip)
		}

		payload.Projects = append(payload.Projects, pp)
	}

	return payload
}

func (req *workloadRequest) mainGroupName(assignee models.Assignee) string {
	switch a := assignee.(type) {
	case *models.User:
		if group, ok := req.groupByID[a.MainGroupID]; ok {
			return group.Name
		}
	case *models.GroupPlaceholder:
		return a.Group.Name
	}
	return ""
}

func dayPayloads(total map[time.Time]*models.SummaryDay, days []time.Time) []models.DayPayload {
	payloads := make([]models.DayPayload, 0, len(days))
	for _, day := range days {
		entry := total[day]
		if entry == nil {
			entry = &models.SummaryDay{}
		}
		triple := models.Thresholds{Low: entry.Low, Normal: entry.Normal, High: entry.High}
		payloads = append(payloads, models.DayPayload{
			Date:    models.FormatDay(day),
			Hours:   entry.Hours,
			Holiday: entry.Holiday,
			Low:     entry.Low,
			Normal:  entry.Normal,
			High:    entry.High,
			Load:    capacity.LoadClass(entry.Hours, triple),
		})
	}
	return payloads
}

func invisiblePayloads(invisible map[time.Time]*models.InvisibleDay, days []time.Time) []models.InvisibleDayPayload {
	if len(invisible) == 0 {
		return nil
	}
	anyHours := false
	payloads := make([]models.InvisibleDayPayload, 0, len(days))
	for _, day := range days {
		entry := invisible[day]
		if entry == nil {
			entry = &models.InvisibleDay{}
		}
		if entry.Hours > 0 {
			anyHours = true
		}
		payloads = append(payloads, models.InvisibleDayPayload{
			Date:    models.FormatDay(day),
			Hours:   entry.Hours,
			Holiday: entry.Holiday,
		})
	}
	if !anyHours {
		return nil
	}
	return payloads
}

func sortedSummaries(byUser map[string]*models.AssigneeSummary) []*models.AssigneeSummary {
	summaries := make([]*models.AssigneeSummary, 0, len(byUser))
	for _, summary := range byUser {
		summaries = append(summaries, summary)
	}
	// Placeholders first, then users by name, mirroring the member order
	// inside groups.
	sort.Slice(summaries, func(i, j int) bool {
		ti, tj := assigneeType(summaries[i].Assignee), assigneeType(summaries[j].Assignee)
		if ti != tj {
			return ti < tj // "Group" sorts before "User"
		}
		return summaries[i].Assignee.DisplayName() < summaries[j].Assignee.DisplayName()
	})
	return summaries
}

func sortedGroups(byGroup map[int]*models.GroupSummary) []*models.GroupSummary {
	groups := make([]*models.GroupSummary, 0, len(byGroup))
	for _, group := range byGroup {
		groups = append(groups, group)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Group.Name < groups[j].Group.Name
	})
	return groups
}

func assigneeType(assignee models.Assignee) string {
	switch assignee.(type) {
	case *models.GroupPlaceholder:
		return "Group"
	case *models.Group:
		return "Aggregation"
	default:
		return "User"
	}
}

// resolveInput merges the wire input with stored configuration and
// resolves all cross references. Date parameters default the same way
// the interactive view does: today now, a window from ten days back to
// fifty days ahead, capped at twelve months.
func (h *Handler) resolveInput(input *models.WorkloadInput) (*workloadRequest, error) {
	today := models.DayOf(time.Now())
	if input.Today != "" {
		parsed, err := models.ParseDay(input.Today)
		if err != nil {
			return nil, err
		}
		today = parsed
	}

	first := today.AddDate(0, 0, -10)
	if input.FirstDay != "" {
		parsed, err := models.ParseDay(input.FirstDay)
		if err != nil {
			return nil, err
		}
		first = parsed
	}

	last := today.AddDate(0, 0, 50)
	if input.LastDay != "" {
		parsed, err := models.ParseDay(input.LastDay)
		if err != nil {
			return nil, err
		}
		last = parsed
	}

	// Today must be visible, and overly long windows are capped to keep
	// running times bounded.
	if today.Before(first) {
		first = today
	}
	if limit := first.AddDate(0, 12, -1); limit.Before(last) {
		last = limit
	}

	req := &workloadRequest{
		span:         models.NewDateRange(first, last),
		today:        today,
		userByID:     make(map[int]*models.User),
		groupByID:    make(map[int]*models.Group),
		itemSubjects: make(map[int]string),
		sharedCache:  input.Settings == nil,
	}

	settings, err := h.resolveSettings(input.Settings)
	if err != nil {
		return nil, err
	}
	req.settings = settings

	storedThresholds := h.storedThresholds()

	for _, ui := range input.Users {
		user := &models.User{
			ID:          ui.ID,
			FirstName:   ui.FirstName,
			LastName:    ui.LastName,
			MainGroupID: ui.MainGroupID,
			Thresholds:  ui.Thresholds,
		}
		if row, ok := storedThresholds[user.ID]; ok {
			if user.Thresholds == nil {
				user.Thresholds = &models.Thresholds{
					Low:    row.ThresholdLow,
					Normal: row.ThresholdNormal,
					High:   row.ThresholdHigh,
				}
			}
			if user.MainGroupID == 0 {
				user.MainGroupID = row.MainGroupID
			}
		}
		req.users = append(req.users, user)
		req.userByID[user.ID] = user
	}

	for _, gi := range input.Groups {
		group := &models.Group{ID: gi.ID, Name: gi.Name}
		for _, memberID := range gi.MemberIDs {
			if member, ok := req.userByID[memberID]; ok {
				group.Members = append(group.Members, member)
			}
		}
		req.groups = append(req.groups, group)
		req.groupByID[group.ID] = group
	}

	for _, ii := range input.Items {
		item := &models.WorkItem{
			ID:             ii.ID,
			Subject:        ii.Subject,
			ProjectID:      ii.ProjectID,
			ProjectName:    ii.ProjectName,
			EstimatedHours: ii.EstimatedHours,
			DoneRatio:      ii.DoneRatio,
			Closed:         ii.Closed,
			Visible:        ii.Visible == nil || *ii.Visible,
			HasChildren:    ii.HasChildren,
		}
		if ii.AssignedUserID != nil {
			// Leave the assignee unset for unknown IDs; a typed nil would
			// dodge the aggregator's nil check and blow up downstream.
			if user, ok := req.userByID[*ii.AssignedUserID]; ok {
				item.Assignee = user
			}
		} else if ii.AssignedGroupID != nil {
			if group, ok := req.groupByID[*ii.AssignedGroupID]; ok {
				item.Assignee = group
			}
		}
		if ii.StartDate != nil {
			day, err := models.ParseDay(*ii.StartDate)
			if err != nil {
				return nil, err
			}
			item.StartDate = &day
		}
		if ii.DueDate != nil {
			day, err := models.ParseDay(*ii.DueDate)
			if err != nil {
				return nil, err
			}
			item.DueDate = &day
		}
		req.items = append(req.items, item)
		req.itemSubjects[item.ID] = item.Subject
	}

	return req, nil
}

func (h *Handler) resolveSettings(in *models.SettingsInput) (*models.Settings, error) {
	settings := models.DefaultSettings()
	settings.DefaultThresholds = envThresholds()

	if in != nil {
		if len(in.WorkingWeekdays) > 0 {
			settings.WorkingWeekdays = map[int]bool{}
			for _, cwday := range in.WorkingWeekdays {
				if cwday >= 1 && cwday <= 7 {
					settings.WorkingWeekdays[cwday] = true
				}
			}
		}
		if in.DefaultThresholds != nil {
			settings.DefaultThresholds = *in.DefaultThresholds
		}
		settings.IncludeParentItems = in.IncludeParentItems
	}

	if in != nil && len(in.Holidays) > 0 {
		for _, hi := range in.Holidays {
			interval, err := parseInterval(hi.From, hi.To)
			if err != nil {
				return nil, err
			}
			settings.Holidays = append(settings.Holidays, interval)
		}
	} else {
		var stored []database.Holiday
		h.DB.Find(&stored)
		for _, row := range stored {
			settings.Holidays = append(settings.Holidays, models.DateInterval{
				From: models.DayOf(row.StartDate),
				To:   models.DayOf(row.EndDate),
			})
		}
	}

	if in != nil && len(in.Vacations) > 0 {
		for _, vi := range in.Vacations {
			interval, err := parseInterval(vi.From, vi.To)
			if err != nil {
				return nil, err
			}
			settings.Vacations[vi.UserID] = append(settings.Vacations[vi.UserID], interval)
		}
	} else {
		var stored []database.Vacation
		h.DB.Find(&stored)
		for _, row := range stored {
			settings.Vacations[row.UserID] = append(settings.Vacations[row.UserID], models.DateInterval{
				From: models.DayOf(row.DateFrom),
				To:   models.DayOf(row.DateTo),
			})
		}
	}

	return settings, nil
}

func (h *Handler) storedThresholds() map[int]database.UserThreshold {
	var rows []database.UserThreshold
	h.DB.Find(&rows)
	result := make(map[int]database.UserThreshold, len(rows))
	for _, row := range rows {
		result[row.UserID] = row
	}
	return result
}

func parseInterval(from, to string) (models.DateInterval, error) {
	fromDay, err := models.ParseDay(from)
	if err != nil {
		return models.DateInterval{}, err
	}
	toDay, err := models.ParseDay(to)
	if err != nil {
		return models.DateInterval{}, err
	}
	return models.DateInterval{From: fromDay, To: toDay}, nil
}

func envThresholds() models.Thresholds {
	return models.Thresholds{
		Low:    envFloat("WORKLOAD_THRESHOLD_LOW", 4.0),
		Normal: envFloat("WORKLOAD_THRESHOLD_NORMAL", 6.0),
		High:   envFloat("WORKLOAD_THRESHOLD_HIGH", 8.0),
	}
}

func envFloat(name string, fallback float64) float64 {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return value
}
