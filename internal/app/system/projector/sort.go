// internal/app/system/projector/sort.go
package projector

import (
	"sort"
	"time"

	"github.com/dalemusser/taskhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
)

// Sort orders for lists. The default is start date, newest first.
type SortOrder string

const (
	SortStartAsc  SortOrder = "start_asc"
	SortStartDesc SortOrder = "start_desc"
	SortEndAsc    SortOrder = "end_asc"
	SortEndDesc   SortOrder = "end_desc"
	SortName      SortOrder = "name"

	DefaultSort = SortStartDesc
)

// SortTasks returns a sorted copy of tasks. Rows without the sort date
// sink to the end regardless of direction; ties keep the incoming
// order (the sort is stable).
func SortTasks(tasks []models.Task, order SortOrder) []models.Task {
	out := make([]models.Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		return less(order,
			out[i].StartDate, out[i].EndDate, out[i].Name,
			out[j].StartDate, out[j].EndDate, out[j].Name)
	})
	return out
}

// SortProjects returns a sorted copy of projects.
func SortProjects(projects []models.Project, order SortOrder) []models.Project {
	out := make([]models.Project, len(projects))
	copy(out, projects)
	sort.SliceStable(out, func(i, j int) bool {
		return less(order,
			out[i].StartDate, out[i].EndDate, out[i].Name,
			out[j].StartDate, out[j].EndDate, out[j].Name)
	})
	return out
}

func less(order SortOrder, startI, endI *time.Time, nameI string, startJ, endJ *time.Time, nameJ string) bool {
	switch order {
	case SortName:
		return text.Fold(nameI) < text.Fold(nameJ)
	case SortStartAsc:
		return dateLess(startI, startJ, false)
	case SortEndAsc:
		return dateLess(endI, endJ, false)
	case SortEndDesc:
		return dateLess(endI, endJ, true)
	default: // SortStartDesc
		return dateLess(startI, startJ, true)
	}
}

// dateLess compares two optional dates. Nil always loses so undated
// rows land at the bottom in both directions.
func dateLess(a, b *time.Time, desc bool) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	if desc {
		return a.After(*b)
	}
	return a.Before(*b)
}
