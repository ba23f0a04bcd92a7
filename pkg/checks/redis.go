package checks

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/schemakit/pkg/schema"
)

// SetMembers is the part of a Redis client used by the set checks.
// *redis.Client, *redis.ClusterClient and redis.UniversalClient satisfy it.
type SetMembers interface {
	SIsMember(ctx context.Context, key string, member any) *redis.BoolCmd
}

// RedisMember accepts values that are members of the Redis set at key.
func RedisMember(client SetMembers, key string) schema.CheckFunc {
	return func(ctx context.Context, _ string, value any) (bool, error) {
		return isMember(ctx, client, key, value)
	}
}

// RedisAbsent accepts values that are not members of the Redis set at key,
// e.g. a denylist of reserved names.
func RedisAbsent(client SetMembers, key string) schema.CheckFunc {
	return func(ctx context.Context, _ string, value any) (bool, error) {
		found, err := isMember(ctx, client, key, value)
		return !found, err
	}
}

func isMember(ctx context.Context, client SetMembers, key string, value any) (bool, error) {
	found, err := client.SIsMember(ctx, key, fmt.Sprint(value)).Result()
	if err != nil {
		return false, errors.Join(ErrLookupFailed, err)
	}
	return found, nil
}
