package handlers

import (
	"strings"
	"testing"

	"github.com/arnavshah/workload-api-go/pkg/database"
	"github.com/arnavshah/workload-api-go/pkg/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testHandler(t *testing.T) *Handler {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Could not open test database: %v", err)
	}
	db.AutoMigrate(&database.Holiday{}, &database.Vacation{}, &database.UserThreshold{})
	return NewHandler(db)
}

func intPtr(v int) *int {
	return &v
}

func TestResolveInputUnknownAssignee(t *testing.T) {
	h := testHandler(t)

	input := &models.WorkloadInput{
		FirstDay: "2026-01-05",
		LastDay:  "2026-01-09",
		Today:    "2026-01-05",
		Users:    []models.UserInput{{ID: 1, LastName: "Miller"}},
		Items: []models.ItemInput{
			{ID: 10, AssignedUserID: intPtr(99), EstimatedHours: hoursValue(5.0)},
		},
	}

	req, err := h.resolveInput(input)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// An unknown user ID must leave the assignee unset, not store a nil
	// pointer inside the interface.
	if req.items[0].Assignee != nil {
		t.Errorf("Expected no assignee for an unknown user ID, got %#v", req.items[0].Assignee)
	}

	resp, err := h.runWorkload(req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(resp.Warnings) != 1 || !strings.Contains(resp.Warnings[0], "item 10") {
		t.Errorf("Expected a warning about the skipped item, got %v", resp.Warnings)
	}
}

func TestResolveInputResolvesAssignees(t *testing.T) {
	h := testHandler(t)

	input := &models.WorkloadInput{
		FirstDay: "2026-01-05",
		LastDay:  "2026-01-09",
		Today:    "2026-01-05",
		Users:    []models.UserInput{{ID: 1, LastName: "Miller"}},
		Groups:   []models.GroupInput{{ID: 7, Name: "Backend", MemberIDs: []int{1}}},
		Items: []models.ItemInput{
			{ID: 10, AssignedUserID: intPtr(1)},
			{ID: 11, AssignedGroupID: intPtr(7)},
			{ID: 12, AssignedGroupID: intPtr(99)},
		},
	}

	req, err := h.resolveInput(input)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if key := req.items[0].Assignee.AssigneeKey(); key != "user-1" {
		t.Errorf("Expected user-1, got %q", key)
	}
	if key := req.items[1].Assignee.AssigneeKey(); key != "group-7" {
		t.Errorf("Expected group-7, got %q", key)
	}
	if req.items[2].Assignee != nil {
		t.Errorf("Expected no assignee for an unknown group ID, got %#v", req.items[2].Assignee)
	}
}

func hoursValue(v float64) *float64 {
	return &v
}
