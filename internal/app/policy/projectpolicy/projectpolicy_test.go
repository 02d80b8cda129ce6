package projectpolicy_test

import (
	"testing"

	"github.com/dalemusser/taskhub/internal/app/policy/projectpolicy"
	"github.com/dalemusser/taskhub/internal/app/system/authz"
	"github.com/dalemusser/taskhub/internal/app/system/status"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func projectWithLead(leadID primitive.ObjectID) models.Project {
	return models.Project{
		Code: "PRJ0001",
		Name: "Network Refresh",
		Members: []models.Member{
			{UserID: leadID, Name: "Lena Lead", Role: models.MemberRoleLead},
			{UserID: primitive.NewObjectID(), Name: "Mo Member", Role: models.MemberRoleMember},
		},
	}
}

func TestResolve_AdminAndSuperAdminGetEverything(t *testing.T) {
	p := projectWithLead(primitive.NewObjectID())
	for _, role := range []string{authz.RoleAdmin, authz.RoleSuperAdmin} {
		a := models.Actor{UserID: primitive.NewObjectID(), Role: role}
		caps := projectpolicy.Resolve(p, a)
		if !caps.CanEdit || !caps.CanComplete || !caps.CanRemove {
			t.Errorf("role %s: want all capabilities, got %+v", role, caps)
		}
	}
}

func TestResolve_LeadOnlyOnOwnProject(t *testing.T) {
	leadID := primitive.NewObjectID()
	own := projectWithLead(leadID)
	other := projectWithLead(primitive.NewObjectID())
	a := models.Actor{UserID: leadID, Role: authz.RoleLead}

	if caps := projectpolicy.Resolve(own, a); !caps.CanEdit {
		t.Errorf("lead on own project: want CanEdit, got %+v", caps)
	}
	if caps := projectpolicy.Resolve(other, a); caps != authz.None {
		t.Errorf("lead on another project: want none, got %+v", caps)
	}
}

func TestResolve_MemberGetsNothing(t *testing.T) {
	p := projectWithLead(primitive.NewObjectID())
	a := models.Actor{UserID: p.Members[1].UserID, Role: authz.RoleMember}
	if caps := projectpolicy.Resolve(p, a); caps != authz.None {
		t.Errorf("member: want none, got %+v", caps)
	}
}

func TestAllowsTransition_PendingCompletionIsLeadOnly(t *testing.T) {
	leadID := primitive.NewObjectID()
	p := projectWithLead(leadID)

	lead := models.Actor{UserID: leadID, Role: authz.RoleLead}
	admin := models.Actor{UserID: primitive.NewObjectID(), Role: authz.RoleAdmin}
	super := models.Actor{UserID: primitive.NewObjectID(), Role: authz.RoleSuperAdmin}

	if !projectpolicy.AllowsTransition(p, lead, status.ProjectPendingCompletion) {
		t.Error("lead should be able to request pending completion")
	}
	if projectpolicy.AllowsTransition(p, admin, status.ProjectPendingCompletion) {
		t.Error("admin must not request pending completion directly")
	}
	if projectpolicy.AllowsTransition(p, super, status.ProjectPendingCompletion) {
		t.Error("superadmin must not request pending completion directly")
	}

	// Admins keep every other transition, including acting on a
	// pending request.
	if !projectpolicy.AllowsTransition(p, admin, status.ProjectCompleted) {
		t.Error("admin should be able to complete")
	}
	if !projectpolicy.AllowsTransition(p, admin, status.ProjectOnHold) {
		t.Error("admin should be able to put on hold")
	}
}

func TestCanCreate(t *testing.T) {
	if !projectpolicy.CanCreate(models.Actor{Role: authz.RoleAdmin}) {
		t.Error("admin should create projects")
	}
	if !projectpolicy.CanCreate(models.Actor{Role: authz.RoleSuperAdmin}) {
		t.Error("superadmin should create projects")
	}
	if projectpolicy.CanCreate(models.Actor{Role: authz.RoleLead}) {
		t.Error("lead must not create projects")
	}
	if projectpolicy.CanCreate(models.Actor{Role: authz.RoleMember}) {
		t.Error("member must not create projects")
	}
}
