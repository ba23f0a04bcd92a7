package checks_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/schemakit/pkg/checks"
)

type fakeCollection struct {
	docs   map[any]int64
	err    error
	filter any
}

func (c *fakeCollection) CountDocuments(_ context.Context, filter any, _ ...options.Lister[options.CountOptions]) (int64, error) {
	c.filter = filter
	if c.err != nil {
		return 0, c.err
	}
	d := filter.(bson.D)
	return c.docs[d[0].Value], nil
}

func TestMongoUnique(t *testing.T) {
	t.Parallel()

	coll := &fakeCollection{docs: map[any]int64{"gopher": 1}}
	check := checks.MongoUnique(coll, "username")

	ok, err := check(context.Background(), "username", "gopher")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, bson.D{{Key: "username", Value: "gopher"}}, coll.filter)

	ok, err = check(context.Background(), "username", "newbie")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMongoExists(t *testing.T) {
	t.Parallel()

	coll := &fakeCollection{docs: map[any]int64{"acme": 1}}
	check := checks.MongoExists(coll, "slug")

	ok, err := check(context.Background(), "org", "acme")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = check(context.Background(), "org", "umbrella")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMongoCheck_Error(t *testing.T) {
	t.Parallel()

	boom := errors.New("server selection timeout")
	_, err := checks.MongoUnique(&fakeCollection{err: boom}, "email")(context.Background(), "email", "a@b.co")
	assert.ErrorIs(t, err, checks.ErrLookupFailed)
	assert.ErrorIs(t, err, boom)
}
