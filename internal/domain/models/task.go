// internal/domain/models/task.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task belongs to a project (referenced by the project's formatted
// code, not its ObjectID, matching how the boards address projects).
//
// Invariants enforced by the service layer, not here:
//   - A task's date range must lie inside its project's date range, and
//     a task may not carry dates at all when the project has none.
//   - end date >= start date.
//   - Only the sole assignee of a task may self-complete it; everyone
//     else needs edit authority on the project.
type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectCode string             `bson:"project_code" json:"project_code"`

	Name   string `bson:"name" json:"name"`
	NameCI string `bson:"name_ci" json:"name_ci"`

	Status string `bson:"status" json:"status"` // see system/status

	StartDate *time.Time `bson:"start_date,omitempty" json:"start_date,omitempty"`
	EndDate   *time.Time `bson:"end_date,omitempty" json:"end_date,omitempty"`

	// CompletedAt is stamped when the task transitions to Completed.
	// Reopening the task leaves it in place so timeline labels can
	// still compare it against the due date.
	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`

	Assignees []Assignee `bson:"assignees,omitempty" json:"assignees,omitempty"`
	Notes     []Note     `bson:"notes,omitempty" json:"notes,omitempty"`

	CreatedByID   primitive.ObjectID `bson:"created_by_id,omitempty" json:"created_by_id,omitempty"`
	CreatedByName string             `bson:"created_by_name,omitempty" json:"created_by_name,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Assignee is an id+name pair referencing a member of the task's
// project. The name is denormalized for display.
type Assignee struct {
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`
	Name   string             `bson:"name" json:"name"`
}

// SoleAssignee returns the task's single assignee when the assignee
// list has exactly one entry. The sole-assignee rule is what lets a
// plain member complete their own work.
func (t Task) SoleAssignee() (Assignee, bool) {
	if len(t.Assignees) != 1 {
		return Assignee{}, false
	}
	return t.Assignees[0], true
}

// IsAssigned reports whether the given user appears in the assignee list.
func (t Task) IsAssigned(userID primitive.ObjectID) bool {
	for _, a := range t.Assignees {
		if a.UserID == userID {
			return true
		}
	}
	return false
}

// HasDates reports whether the task defines at least one date.
func (t Task) HasDates() bool {
	return t.StartDate != nil || t.EndDate != nil
}

// Note is an embedded comment on a task or project.
type Note struct {
	ID         string             `bson:"id" json:"id"` // uuid
	AuthorID   primitive.ObjectID `bson:"author_id" json:"author_id"`
	AuthorName string             `bson:"author_name" json:"author_name"`
	Body       string             `bson:"body" json:"body"` // sanitized before persistence
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}
