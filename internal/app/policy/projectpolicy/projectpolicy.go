// Package projectpolicy decides what an actor may do to a specific
// project. The rules:
//   - Superadmins and admins can do everything.
//   - A lead can do everything on the projects they lead, and nothing
//     beyond viewing on projects they do not lead.
//   - Plain members cannot mutate projects at all.
//   - Moving a project to "Pending completion" is the one exception to
//     the admin blanket: only the project's own lead may request it.
//     Admins act on the request afterwards (confirm to Completed or
//     send back to In Progress), which their blanket edit right
//     already covers.
//
// Resolve is pure: it looks only at the project's embedded member list
// and the actor, so callers can evaluate it before any store call.
package projectpolicy

import (
	"context"

	"github.com/dalemusser/taskhub/internal/app/system/authz"
	"github.com/dalemusser/taskhub/internal/app/system/status"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Resolve computes the actor's capabilities on the given project.
func Resolve(p models.Project, a models.Actor) authz.Capabilities {
	if authz.IsAdmin(a) {
		return authz.All
	}
	if p.IsLead(a.UserID) {
		return authz.All
	}
	return authz.None
}

// AllowsTransition reports whether the actor may move the project to
// target. It layers the pending-completion exception on top of the
// general capability check; transition-table legality is checked
// separately by the workflow package.
func AllowsTransition(p models.Project, a models.Actor, target string) bool {
	if target == status.ProjectPendingCompletion {
		return p.IsLead(a.UserID)
	}
	return Resolve(p, a).CanComplete
}

// CanCreate reports whether the actor may create projects. Project
// creation is a privileged operation: admins and superadmins only.
func CanCreate(a models.Actor) bool {
	return authz.IsAdmin(a)
}

// LeadsAnyProject reports whether the user is the lead member of at
// least one unarchived project, consulting the authoritative projects
// collection. The identity package uses this to derive the lead role.
func LeadsAnyProject(ctx context.Context, db *mongo.Database, userID primitive.ObjectID) (bool, error) {
	n, err := db.Collection("projects").CountDocuments(ctx, bson.M{
		"archived": false,
		"members": bson.M{"$elemMatch": bson.M{
			"user_id": userID,
			"role":    models.MemberRoleLead,
		}},
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
