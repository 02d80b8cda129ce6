// internal/app/system/projector/timeline.go
package projector

import (
	"fmt"
	"time"

	"github.com/dalemusser/taskhub/internal/app/system/status"
	"github.com/dalemusser/taskhub/internal/domain/models"
)

// TaskTimeline returns the timeline label for a task as of now.
func TaskTimeline(t models.Task, now time.Time) string {
	return timeline(now, t.StartDate, t.EndDate, t.CompletedAt, t.Status == status.TaskCompleted)
}

// ProjectTimeline returns the timeline label for a project as of now.
// Projects carry no completion timestamp, so a completed project is
// labeled relative to now.
func ProjectTimeline(p models.Project, now time.Time) string {
	return timeline(now, p.StartDate, p.EndDate, nil, p.Status == status.ProjectCompleted)
}

// timeline produces one of: "No end date", "Starts tomorrow",
// "Starts in N days", "N days left", "N days overdue", "N days
// before/after due date", or "Completed on due date". Day counts are
// whole calendar days.
func timeline(now time.Time, start, end, completedAt *time.Time, completed bool) string {
	if end == nil {
		return "No end date"
	}

	if completed {
		at := now
		if completedAt != nil {
			at = *completedAt
		}
		d := daysBetween(at, *end)
		switch {
		case d == 0:
			return "Completed on due date"
		case d > 0:
			return fmt.Sprintf("%s before due date", days(d))
		default:
			return fmt.Sprintf("%s after due date", days(-d))
		}
	}

	if start != nil {
		if d := daysBetween(now, *start); d > 0 {
			if d == 1 {
				return "Starts tomorrow"
			}
			return fmt.Sprintf("Starts in %s", days(d))
		}
	}

	d := daysBetween(now, *end)
	if d >= 0 {
		return fmt.Sprintf("%s left", days(d))
	}
	return fmt.Sprintf("%s overdue", days(-d))
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
