// internal/domain/models/notification.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification kinds.
const (
	NotifyTaskAssigned  = "task_assigned"
	NotifyTaskStatus    = "task_status_changed"
	NotifyProjectStatus = "project_status_changed"
	NotifyNoteAdded     = "note_added"
)

// Notification is a per-user inbox entry written by the mutation
// service after a successful change. Delivery to the user is the view
// layer's concern; this module only records and lists them.
type Notification struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RecipientID primitive.ObjectID `bson:"recipient_id" json:"recipient_id"`
	Kind        string             `bson:"kind" json:"kind"`

	ProjectCode string             `bson:"project_code,omitempty" json:"project_code,omitempty"`
	TaskID      primitive.ObjectID `bson:"task_id,omitempty" json:"task_id,omitempty"`

	Message string `bson:"message" json:"message"`
	Read    bool   `bson:"read" json:"read"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
