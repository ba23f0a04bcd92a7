package checks

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/schemakit/pkg/schema"
)

// Counter is the part of *mongo.Collection used by the document checks.
type Counter interface {
	CountDocuments(ctx context.Context, filter any, opts ...options.Lister[options.CountOptions]) (int64, error)
}

// MongoUnique accepts values no document in coll holds under field.
func MongoUnique(coll Counter, field string) schema.CheckFunc {
	return func(ctx context.Context, _ string, value any) (bool, error) {
		n, err := countMatches(ctx, coll, field, value)
		return n == 0, err
	}
}

// MongoExists accepts values at least one document in coll holds under field.
func MongoExists(coll Counter, field string) schema.CheckFunc {
	return func(ctx context.Context, _ string, value any) (bool, error) {
		n, err := countMatches(ctx, coll, field, value)
		return n > 0, err
	}
}

func countMatches(ctx context.Context, coll Counter, field string, value any) (int64, error) {
	n, err := coll.CountDocuments(ctx, bson.D{{Key: field, Value: value}}, options.Count().SetLimit(1))
	if err != nil {
		return 0, errors.Join(ErrLookupFailed, err)
	}
	return n, nil
}
