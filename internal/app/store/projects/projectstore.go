// internal/app/store/projects/projectstore.go
package projectstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/taskhub/internal/app/system/status"
	"github.com/dalemusser/taskhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrNotFound      = errors.New("project not found")
	ErrDuplicateCode = errors.New("a project with this code already exists")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("projects")}
}

// Create inserts a new project. The caller supplies the formatted code
// (allocated from the counters collection); defaults fill in the rest.
func (s *Store) Create(ctx context.Context, p models.Project) (models.Project, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.NameCI = text.Fold(p.Name)
	p.CategoryCI = text.Fold(p.Category)
	if p.Status == "" {
		p.Status = status.ProjectNotStarted
	}
	if p.Priority == "" {
		p.Priority = models.PriorityMedium
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Project{}, ErrDuplicateCode
		}
		return models.Project{}, err
	}
	return p, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Project, error) {
	var p models.Project
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return models.Project{}, ErrNotFound
	}
	if err != nil {
		return models.Project{}, err
	}
	return p, nil
}

func (s *Store) GetByCode(ctx context.Context, code string) (models.Project, error) {
	var p models.Project
	err := s.c.FindOne(ctx, bson.M{"code": code}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return models.Project{}, ErrNotFound
	}
	if err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// List returns all unarchived projects, newest first. Archived rows
// are only reachable through ListArchived.
func (s *Store) List(ctx context.Context) ([]models.Project, error) {
	return s.find(ctx, bson.M{"archived": false})
}

func (s *Store) ListArchived(ctx context.Context) ([]models.Project, error) {
	return s.find(ctx, bson.M{"archived": true})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var rows []models.Project
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateStatus sets only the status field.
func (s *Store) UpdateStatus(ctx context.Context, id primitive.ObjectID, stat string) error {
	return s.set(ctx, id, bson.M{"status": stat})
}

// UpdateDetails replaces the project's editable fields. Dates may be
// cleared by passing nil.
func (s *Store) UpdateDetails(ctx context.Context, id primitive.ObjectID, name, category string, tags []string, priority string, start, end *time.Time) error {
	return s.set(ctx, id, bson.M{
		"name":        name,
		"name_ci":     text.Fold(name),
		"category":    category,
		"category_ci": text.Fold(category),
		"tags":        tags,
		"priority":    priority,
		"start_date":  start,
		"end_date":    end,
	})
}

// SetMembers replaces the embedded member list.
func (s *Store) SetMembers(ctx context.Context, id primitive.ObjectID, members []models.Member) error {
	return s.set(ctx, id, bson.M{"members": members})
}

// SetArchived flips the archived flag. Projects are archived rather
// than deleted in the normal flow.
func (s *Store) SetArchived(ctx context.Context, id primitive.ObjectID, archived bool) error {
	return s.set(ctx, id, bson.M{"archived": archived})
}

// AddNote appends a note to the project.
func (s *Store) AddNote(ctx context.Context, id primitive.ObjectID, note models.Note) error {
	return s.push(ctx, id, "notes", note)
}

// AddFile appends file metadata to the project.
func (s *Store) AddFile(ctx context.Context, id primitive.ObjectID, file models.FileAttachment) error {
	return s.push(ctx, id, "files", file)
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

func (s *Store) push(ctx context.Context, id primitive.ObjectID, field string, value any) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{
		"$push": bson.M{field: value},
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
