package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/taskhub/internal/app/system/authz"
	"github.com/dalemusser/taskhub/internal/app/system/status"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given name, email, and role.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Email:     email,
		EmailCI:   text.Fold(email),
		Role:      role,
		Status:    status.Active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateProject creates a test project with the given code and name.
func (f *Fixtures) CreateProject(ctx context.Context, code, name string, members ...models.Member) models.Project {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Project{
		ID:        primitive.NewObjectID(),
		Code:      code,
		Name:      name,
		NameCI:    text.Fold(name),
		Status:    status.ProjectNotStarted,
		Priority:  models.PriorityMedium,
		Members:   members,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("projects").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test project: %v", err)
	}
	return p
}

// CreateTask creates a test task under the given project code.
func (f *Fixtures) CreateTask(ctx context.Context, projectCode, name string, assignees ...models.Assignee) models.Task {
	f.t.Helper()

	now := time.Now().UTC()
	task := models.Task{
		ID:          primitive.NewObjectID(),
		ProjectCode: projectCode,
		Name:        name,
		NameCI:      text.Fold(name),
		Status:      status.TaskToDo,
		Assignees:   assignees,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("tasks").InsertOne(ctx, task); err != nil {
		f.t.Fatalf("failed to create test task: %v", err)
	}
	return task
}

// Actor builds an actor for the given user.
func Actor(u models.User) models.Actor {
	return models.Actor{UserID: u.ID, Name: u.Name, Role: u.Role}
}

// AdminActor returns an actor with the admin role.
func AdminActor() models.Actor {
	return models.Actor{
		UserID: primitive.NewObjectID(),
		Name:   "Test Admin",
		Role:   authz.RoleAdmin,
	}
}

// MemberActor returns an actor with the member role.
func MemberActor() models.Actor {
	return models.Actor{
		UserID: primitive.NewObjectID(),
		Name:   "Test Member",
		Role:   authz.RoleMember,
	}
}
