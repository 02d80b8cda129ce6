// internal/app/store/counters/counterstore.go
package counterstore

import (
	"context"

	"github.com/dalemusser/taskhub/internal/app/system/codes"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store hands out monotonically increasing sequence numbers, one
// counter document per name. Allocation is a single atomic
// findAndModify so concurrent creators never receive the same value.
type Store struct {
	c *mongo.Collection
}

const projectCounter = "project_code"

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("counters")}
}

// Next increments and returns the named counter, starting at 1.
func (s *Store) Next(ctx context.Context, name string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Seq, nil
}

// NextProjectCode allocates the next project code, e.g. "PRJ0042".
func (s *Store) NextProjectCode(ctx context.Context) (string, error) {
	seq, err := s.Next(ctx, projectCounter)
	if err != nil {
		return "", err
	}
	return codes.FormatProject(seq), nil
}
