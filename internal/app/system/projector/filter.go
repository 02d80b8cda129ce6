// internal/app/system/projector/filter.go
package projector

import (
	"strings"
	"time"

	"github.com/dalemusser/taskhub/internal/app/system/status"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
)

// StatusOverdue is the synthetic status filter value: not completed and
// past the end date.
const StatusOverdue = "Overdue"

// Filter holds list/board filter parameters. Zero values mean "no
// constraint".
type Filter struct {
	// Query is matched as a folded substring against name and category
	// (projects) or name and assignee names (tasks).
	Query string

	// Status is an exact status value, or StatusOverdue.
	Status string

	// From/To select entities whose date range overlaps [From, To].
	// Entities without dates never match a date-range filter.
	From *time.Time
	To   *time.Time
}

func (f Filter) folded() string {
	return text.Fold(strings.TrimSpace(f.Query))
}

// FilterTasks returns the tasks matching f at the given time.
func FilterTasks(tasks []models.Task, f Filter, now time.Time) []models.Task {
	q := f.folded()
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if q != "" && !taskMatchesQuery(t, q) {
			continue
		}
		if !statusMatches(t.Status, t.EndDate, f.Status, now) {
			continue
		}
		if !rangeOverlaps(t.StartDate, t.EndDate, f.From, f.To) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// FilterProjects returns the projects matching f at the given time.
// Archived projects are always excluded.
func FilterProjects(projects []models.Project, f Filter, now time.Time) []models.Project {
	q := f.folded()
	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if p.Archived {
			continue
		}
		if q != "" && !projectMatchesQuery(p, q) {
			continue
		}
		if !statusMatches(p.Status, p.EndDate, f.Status, now) {
			continue
		}
		if !rangeOverlaps(p.StartDate, p.EndDate, f.From, f.To) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func taskMatchesQuery(t models.Task, q string) bool {
	if strings.Contains(t.NameCI, q) || strings.Contains(text.Fold(t.Name), q) {
		return true
	}
	for _, a := range t.Assignees {
		if strings.Contains(text.Fold(a.Name), q) {
			return true
		}
	}
	return false
}

func projectMatchesQuery(p models.Project, q string) bool {
	return strings.Contains(text.Fold(p.Name), q) ||
		strings.Contains(text.Fold(p.Category), q)
}

// statusMatches applies an exact status filter or the synthetic
// Overdue predicate. Completed entities are never overdue.
func statusMatches(entityStatus string, end *time.Time, want string, now time.Time) bool {
	switch want {
	case "":
		return true
	case StatusOverdue:
		return isOverdue(entityStatus, end, now)
	default:
		return entityStatus == want
	}
}

func isOverdue(entityStatus string, end *time.Time, now time.Time) bool {
	if entityStatus == status.TaskCompleted { // same string as ProjectCompleted
		return false
	}
	return end != nil && dateOnly(*end).Before(dateOnly(now))
}

// rangeOverlaps tests whether [start, end] overlaps the filter window
// [from, to]. Nil filter sides are unbounded; an entity with no dates
// only matches when no window is set.
func rangeOverlaps(start, end, from, to *time.Time) bool {
	if from == nil && to == nil {
		return true
	}
	if start == nil && end == nil {
		return false
	}
	lo, hi := start, end
	if lo == nil {
		lo = hi
	}
	if hi == nil {
		hi = lo
	}
	if to != nil && dateOnly(*lo).After(dateOnly(*to)) {
		return false
	}
	if from != nil && dateOnly(*hi).Before(dateOnly(*from)) {
		return false
	}
	return true
}
