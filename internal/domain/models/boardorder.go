// internal/domain/models/boardorder.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BoardOrder remembers the user-chosen ordering of tasks inside one
// Kanban column. It is stored alongside, never inside, the canonical
// task documents: the task list stays authoritative for membership and
// the order list only settles display order. Exactly one document per
// (scope, status).
type BoardOrder struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	// Scope is the project code the board belongs to, or "" for the
	// cross-project board.
	Scope  string `bson:"scope" json:"scope"`
	Status string `bson:"status" json:"status"`

	// TaskIDs holds known task ids in display order. Tasks present in
	// the column but absent here are appended after the known ones.
	TaskIDs []primitive.ObjectID `bson:"task_ids" json:"task_ids"`

	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
