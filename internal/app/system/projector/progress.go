// internal/app/system/projector/progress.go
package projector

import (
	"math"

	"github.com/dalemusser/taskhub/internal/app/system/status"
	"github.com/dalemusser/taskhub/internal/domain/models"
)

// Progress returns the project completion percentage:
// round(100 * completed / total), 0 for an empty task list. It is the
// only source of a project's progress; the value is never stored.
func Progress(tasks []models.Task) int {
	if len(tasks) == 0 {
		return 0
	}
	completed := 0
	for _, t := range tasks {
		if t.Status == status.TaskCompleted {
			completed++
		}
	}
	return int(math.Round(100 * float64(completed) / float64(len(tasks))))
}
