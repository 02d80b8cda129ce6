// internal/app/store/boardorders/boardorderstore.go
package boardorderstore

import (
	"context"
	"time"

	"github.com/dalemusser/taskhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store persists the remembered per-column card order for boards.
// One document per (scope, status); scope is a project code, or the
// empty string for the cross-project board.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("board_orders")}
}

// Get returns the remembered order for a column. A column that has
// never been rearranged yields an empty order, not an error.
func (s *Store) Get(ctx context.Context, scope, stat string) (models.BoardOrder, error) {
	var o models.BoardOrder
	err := s.c.FindOne(ctx, bson.M{"scope": scope, "status": stat}).Decode(&o)
	if err == mongo.ErrNoDocuments {
		return models.BoardOrder{Scope: scope, Status: stat}, nil
	}
	if err != nil {
		return models.BoardOrder{}, err
	}
	return o, nil
}

// GetScope returns every remembered column order for a scope, keyed
// by status, in the shape the board projector consumes.
func (s *Store) GetScope(ctx context.Context, scope string) (map[string][]primitive.ObjectID, error) {
	cur, err := s.c.Find(ctx, bson.M{"scope": scope})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	orders := make(map[string][]primitive.ObjectID)
	for cur.Next(ctx) {
		var o models.BoardOrder
		if err := cur.Decode(&o); err != nil {
			return nil, err
		}
		orders[o.Status] = o.TaskIDs
	}
	return orders, cur.Err()
}

// Save upserts the order for a column.
func (s *Store) Save(ctx context.Context, scope, stat string, taskIDs []primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"scope": scope, "status": stat},
		bson.M{"$set": bson.M{
			"task_ids":   taskIDs,
			"updated_at": time.Now().UTC(),
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

// DeleteScope drops every remembered order for a scope. Used when a
// project is purged.
func (s *Store) DeleteScope(ctx context.Context, scope string) error {
	_, err := s.c.DeleteMany(ctx, bson.M{"scope": scope})
	return err
}
