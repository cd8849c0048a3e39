package capacity

import (
	"github.com/arnavshah/workload-api-go/pkg/models"
)

// Kind selects one of the three load boundaries.
type Kind string

const (
	Low    Kind = "low"
	Normal Kind = "normal"
	High   Kind = "high"
)

// Resolver looks up capacity thresholds per assignee and day. Holidays
// and unresolved assignees always resolve to zero capacity.
type Resolver struct {
	settings *models.Settings
}

// NewResolver builds a Resolver over the given settings.
func NewResolver(settings *models.Settings) *Resolver {
	return &Resolver{settings: settings}
}

// Threshold resolves one boundary value for the assignee on a day with
// the given holiday state.
func (r *Resolver) Threshold(kind Kind, assignee models.Assignee, holiday bool) float64 {
	t := r.Triple(assignee, holiday)
	switch kind {
	case Low:
		return t.Low
	case Normal:
		return t.Normal
	case High:
		return t.High
	}
	return 0.0
}

// Triple resolves all three boundaries at once. Returns the zero triple
// on holidays and for nil assignees. A user falls back to the process
// default when it has no own configuration; a group or placeholder sums
// the triples of the group's members.
func (r *Resolver) Triple(assignee models.Assignee, holiday bool) models.Thresholds {
	if holiday || assignee == nil {
		return models.Thresholds{}
	}

	switch a := assignee.(type) {
	case *models.User:
		return r.userTriple(a)
	case *models.Group:
		return r.sumMembers(a)
	case *models.GroupPlaceholder:
		return r.sumMembers(a.Group)
	}
	return models.Thresholds{}
}

func (r *Resolver) userTriple(user *models.User) models.Thresholds {
	if user.Thresholds != nil {
		return *user.Thresholds
	}
	return r.settings.DefaultThresholds
}

func (r *Resolver) sumMembers(group *models.Group) models.Thresholds {
	var sum models.Thresholds
	for _, member := range group.Members {
		t := r.userTriple(member)
		sum.Low += t.Low
		sum.Normal += t.Normal
		sum.High += t.High
	}
	return sum
}

// LoadClass buckets an hour value against a threshold triple. Used to
// color the daily load in tables and exports.
func LoadClass(hours float64, t models.Thresholds) string {
	switch {
	case hours < t.Low:
		return "none"
	case hours < t.Normal:
		return "low"
	case hours < t.High:
		return "normal"
	default:
		return "high"
	}
}
