// internal/domain/models/project.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project priorities.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
	PriorityUrgent = "Urgent"
)

// Member role tags inside a project's member list. At most one member
// of a project carries the lead tag.
const (
	MemberRoleLead   = "lead"
	MemberRoleMember = "member"
)

// Project is a unit of work tracked on the admin boards.
//
// NOTE:
//   - Progress is never stored on the document. It is always computed
//     from the current statuses of the project's tasks (see the
//     projector package).
//   - Tasks are not embedded; they live in the tasks collection and
//     reference the project by its formatted Code.
type Project struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	// Code is the human-facing formatted identifier, e.g. "PRJ0042".
	// Allocated once at creation from the counters collection and
	// never reused.
	Code string `bson:"code" json:"code"`

	Name   string `bson:"name" json:"name"`
	NameCI string `bson:"name_ci" json:"name_ci"` // lowercase, diacritics-stripped

	Category   string   `bson:"category,omitempty" json:"category,omitempty"`
	CategoryCI string   `bson:"category_ci,omitempty" json:"category_ci,omitempty"`
	Tags       []string `bson:"tags,omitempty" json:"tags,omitempty"`

	Priority string `bson:"priority" json:"priority"` // Low | Medium | High | Urgent
	Status   string `bson:"status" json:"status"`     // see system/status

	StartDate *time.Time `bson:"start_date,omitempty" json:"start_date,omitempty"`
	EndDate   *time.Time `bson:"end_date,omitempty" json:"end_date,omitempty"`

	// Archived projects are hidden from default listings instead of
	// being hard-deleted.
	Archived bool `bson:"archived" json:"archived"`

	Members []Member         `bson:"members,omitempty" json:"members,omitempty"`
	Notes   []Note           `bson:"notes,omitempty" json:"notes,omitempty"`
	Files   []FileAttachment `bson:"files,omitempty" json:"files,omitempty"`

	CreatedByID   primitive.ObjectID `bson:"created_by_id,omitempty" json:"created_by_id,omitempty"`
	CreatedByName string             `bson:"created_by_name,omitempty" json:"created_by_name,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Member is a user's embedded membership entry on a project.
type Member struct {
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`
	Name   string             `bson:"name" json:"name"`
	Role   string             `bson:"role" json:"role"` // lead | member
}

// Lead returns the project's lead member, if one is set.
func (p Project) Lead() (Member, bool) {
	for _, m := range p.Members {
		if m.Role == MemberRoleLead {
			return m, true
		}
	}
	return Member{}, false
}

// IsLead reports whether the given user is this project's lead.
func (p Project) IsLead(userID primitive.ObjectID) bool {
	lead, ok := p.Lead()
	return ok && lead.UserID == userID
}

// HasMember reports whether the given user appears in the member list.
func (p Project) HasMember(userID primitive.ObjectID) bool {
	for _, m := range p.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// HasDates reports whether the project defines at least one of its
// start/end dates. Tasks may only carry dates when this is true.
func (p Project) HasDates() bool {
	return p.StartDate != nil || p.EndDate != nil
}

// FileAttachment is stored metadata for a file associated with a
// project. Blob storage itself is handled outside this module.
type FileAttachment struct {
	ID         string             `bson:"id" json:"id"` // uuid
	Name       string             `bson:"name" json:"name"`
	Size       int64              `bson:"size,omitempty" json:"size,omitempty"`
	UploadedBy primitive.ObjectID `bson:"uploaded_by,omitempty" json:"uploaded_by,omitempty"`
	UploadedAt time.Time          `bson:"uploaded_at" json:"uploaded_at"`
}
