// internal/app/system/projector/board.go
package projector

import (
	"github.com/dalemusser/taskhub/internal/app/system/status"
	"github.com/dalemusser/taskhub/internal/app/system/workflow"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Column is one Kanban bucket: a status and its tasks in display order.
type Column struct {
	Status string
	Tasks  []models.Task
}

// TaskBoard partitions tasks into the fixed status columns (To do,
// In progress, Completed). Tasks stored as "Pending completion" land in
// the In progress column; the collapse happens only here, at the view
// boundary — the stored status is untouched.
//
// orders maps a column status to the remembered manual ordering for
// that bucket (from the board_orders collection). Known ids come
// first, in remembered order; unseen ids append at the end in their
// incoming order, so a re-render after new tasks appear never scrambles
// what the user arranged.
func TaskBoard(tasks []models.Task, orders map[string][]primitive.ObjectID) []Column {
	buckets := make(map[string][]models.Task, 3)
	for _, t := range tasks {
		s := workflow.NormalizeTask(t.Status)
		buckets[s] = append(buckets[s], t)
	}

	cols := make([]Column, 0, 3)
	for _, s := range status.TaskStatuses() {
		cols = append(cols, Column{
			Status: s,
			Tasks:  applyOrder(buckets[s], orders[s]),
		})
	}
	return cols
}

// applyOrder arranges tasks per a remembered id list. Deterministic:
// remembered ids first (skipping ids no longer present), then the rest
// in incoming order.
func applyOrder(tasks []models.Task, order []primitive.ObjectID) []models.Task {
	if len(order) == 0 {
		return tasks
	}
	byID := make(map[primitive.ObjectID]int, len(tasks))
	for i, t := range tasks {
		byID[t.ID] = i
	}
	out := make([]models.Task, 0, len(tasks))
	used := make(map[primitive.ObjectID]bool, len(order))
	for _, id := range order {
		if i, ok := byID[id]; ok && !used[id] {
			out = append(out, tasks[i])
			used[id] = true
		}
	}
	for _, t := range tasks {
		if !used[t.ID] {
			out = append(out, t)
		}
	}
	return out
}

// MergeOrder reconciles a remembered ordering with the ids currently in
// a bucket: known ids keep their remembered positions (dropping ids
// that left the bucket), unseen ids append at the end. This is what
// gets persisted back after a drag, keeping the stored order free of
// stale ids.
func MergeOrder(remembered, current []primitive.ObjectID) []primitive.ObjectID {
	present := make(map[primitive.ObjectID]bool, len(current))
	for _, id := range current {
		present[id] = true
	}
	out := make([]primitive.ObjectID, 0, len(current))
	seen := make(map[primitive.ObjectID]bool, len(current))
	for _, id := range remembered {
		if present[id] && !seen[id] {
			out = append(out, id)
			seen[id] = true
		}
	}
	for _, id := range current {
		if !seen[id] {
			out = append(out, id)
			seen[id] = true
		}
	}
	return out
}
