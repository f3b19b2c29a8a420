package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ChangeEvent is the part of a change stream document the services read.
type ChangeEvent struct {
	OperationType string `bson:"operationType"`
	Namespace     struct {
		Collection string `bson:"coll"`
	} `bson:"ns"`
	DocumentKey struct {
		ID string `bson:"_id"`
	} `bson:"documentKey"`
}

// Watch subscribes to inserts, updates, replaces and deletes on the record
// collections and calls fn for each change until ctx is done. Change streams
// require a replica set or an Atlas cluster.
func (r *MongoDBRepository) Watch(ctx context.Context, fn func(ChangeEvent)) error {
	names := make(bson.A, 0, len(RecordCollections))
	for _, name := range RecordCollections {
		names = append(names, name)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "ns.coll", Value: bson.D{{Key: "$in", Value: names}}},
			{Key: "operationType", Value: bson.D{{Key: "$in", Value: bson.A{"insert", "update", "replace", "delete"}}}},
		}}},
	}

	stream, err := r.db.Watch(ctx, pipeline, options.ChangeStream().SetFullDocument(options.Default))
	if err != nil {
		return fmt.Errorf("open change stream: %w", err)
	}
	defer func() { _ = stream.Close(context.Background()) }()

	for stream.Next(ctx) {
		var event ChangeEvent
		if err := stream.Decode(&event); err != nil {
			return fmt.Errorf("decode change event: %w", err)
		}
		fn(event)
	}

	if err := stream.Err(); err != nil && !errors.Is(err, context.Canceled) && ctx.Err() == nil {
		return fmt.Errorf("change stream: %w", err)
	}
	return nil
}
