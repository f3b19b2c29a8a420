package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no document has the requested id.
var ErrNotFound = errors.New("document not found")

// ErrDuplicate is returned when a document with the same id already exists.
var ErrDuplicate = errors.New("document already exists")

// Collection gives CRUD access to one collection of records keyed by a string _id.
type Collection[T any] struct {
	coll *mongo.Collection
}

// Name is the MongoDB collection name.
func (c *Collection[T]) Name() string {
	return c.coll.Name()
}

// List returns every document of the collection ordered by id.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	cursor, err := c.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c.Name(), err)
	}

	docs := make([]T, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.Name(), err)
	}
	return docs, nil
}

// Get fetches one document by id.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var doc T
	err := c.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc, fmt.Errorf("%s %s: %w", c.Name(), id, ErrNotFound)
	}
	if err != nil {
		return doc, fmt.Errorf("find %s %s: %w", c.Name(), id, err)
	}
	return doc, nil
}

// Create inserts a document. The document must already carry its id.
func (c *Collection[T]) Create(ctx context.Context, doc T) error {
	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("insert into %s: %w", c.Name(), ErrDuplicate)
		}
		return fmt.Errorf("insert into %s: %w", c.Name(), err)
	}
	return nil
}

// Update replaces the document with the given id.
func (c *Collection[T]) Update(ctx context.Context, id string, doc T) error {
	res, err := c.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: id}}, doc)
	if err != nil {
		return fmt.Errorf("replace %s %s: %w", c.Name(), id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s %s: %w", c.Name(), id, ErrNotFound)
	}
	return nil
}

// Delete removes the document with the given id.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	res, err := c.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", c.Name(), id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s %s: %w", c.Name(), id, ErrNotFound)
	}
	return nil
}
