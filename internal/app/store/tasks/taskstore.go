// internal/app/store/tasks/taskstore.go
package taskstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/taskhub/internal/app/system/status"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var ErrNotFound = errors.New("task not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("tasks")}
}

func (s *Store) Create(ctx context.Context, t models.Task) (models.Task, error) {
	now := time.Now().UTC()
	t.ID = primitive.NewObjectID()
	t.NameCI = text.Fold(t.Name)
	if t.Status == "" {
		t.Status = status.TaskToDo
	}
	t.CreatedAt = now
	t.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Task, error) {
	var t models.Task
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return models.Task{}, ErrNotFound
	}
	if err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// ListByProject returns all tasks belonging to a project, oldest first.
func (s *Store) ListByProject(ctx context.Context, projectCode string) ([]models.Task, error) {
	return s.find(ctx, bson.M{"project_code": projectCode})
}

// ListByAssignee returns every task the user is assigned to, across
// projects.
func (s *Store) ListByAssignee(ctx context.Context, userID primitive.ObjectID) ([]models.Task, error) {
	return s.find(ctx, bson.M{"assignees.user_id": userID})
}

func (s *Store) List(ctx context.Context) ([]models.Task, error) {
	return s.find(ctx, bson.M{})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var rows []models.Task
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateStatus sets the task's status. completedAt, when non-nil, is
// stamped alongside; a nil completedAt leaves any existing stamp in
// place so a reopened task keeps the record of when it last finished.
func (s *Store) UpdateStatus(ctx context.Context, id primitive.ObjectID, stat string, completedAt *time.Time) error {
	fields := bson.M{"status": stat}
	if completedAt != nil {
		fields["completed_at"] = completedAt
	}
	return s.set(ctx, id, fields)
}

// UpdateDetails replaces the task's editable fields.
func (s *Store) UpdateDetails(ctx context.Context, id primitive.ObjectID, name, stat string, start, end *time.Time, assignees []models.Assignee) error {
	return s.set(ctx, id, bson.M{
		"name":       name,
		"name_ci":    text.Fold(name),
		"status":     stat,
		"start_date": start,
		"end_date":   end,
		"assignees":  assignees,
	})
}

// AddNote appends a note to the task.
func (s *Store) AddNote(ctx context.Context, id primitive.ObjectID, note models.Note) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{
		"$push": bson.M{"notes": note},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the task outright. Tasks, unlike projects, have no
// archive state.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByProject removes every task under a project. Used when a
// project is purged by an operator.
func (s *Store) DeleteByProject(ctx context.Context, projectCode string) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"project_code": projectCode})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *Store) set(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updated_at"] = time.Now().UTC()
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
