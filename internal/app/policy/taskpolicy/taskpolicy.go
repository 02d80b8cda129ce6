// Package taskpolicy decides what an actor may do to a specific task.
// Task authority flows from the parent project: admins and the
// project's lead hold full edit rights, and a plain member holds
// exactly one narrow right — completing (or otherwise transitioning)
// a task they solely own.
package taskpolicy

import (
	"github.com/dalemusser/taskhub/internal/app/policy/projectpolicy"
	"github.com/dalemusser/taskhub/internal/app/system/authz"
	"github.com/dalemusser/taskhub/internal/domain/models"
)

// Resolve computes the actor's capabilities on the given task. The
// parent project must be the task's own project; passing a different
// project yields the capabilities the actor would have there, which is
// how a lead of project A ends up with nothing on a task of project B.
func Resolve(p models.Project, t models.Task, a models.Actor) authz.Capabilities {
	if caps := projectpolicy.Resolve(p, a); caps.CanEdit {
		return caps
	}
	// The sole-assignee rule: a member who is the single assignee of a
	// task may move it through its statuses, but may not edit or
	// remove it.
	if sole, ok := t.SoleAssignee(); ok && sole.UserID == a.UserID {
		return authz.Capabilities{CanComplete: true}
	}
	return authz.None
}

// CanCreate reports whether the actor may create a task under the
// given project: admins, superadmins, or that project's lead.
func CanCreate(p models.Project, a models.Actor) bool {
	return authz.IsAdmin(a) || p.IsLead(a.UserID)
}
