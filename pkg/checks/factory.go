package checks

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/dmitrymomot/schemakit/pkg/cache"
	"github.com/dmitrymomot/schemakit/pkg/schema"
)

// Factory builds a check from named string arguments.
type Factory func(args map[string]string) (schema.CheckFunc, error)

// Factories maps check names, as used in schema definitions, to factories.
type Factories map[string]Factory

// Build resolves name and builds the check.
func (f Factories) Build(name string, args map[string]string) (schema.CheckFunc, error) {
	factory, ok := f[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCheck, name)
	}
	fn, err := factory(args)
	if err != nil {
		return nil, fmt.Errorf("check %q: %w", name, err)
	}
	return fn, nil
}

// Names returns the registered check names in sorted order.
func (f Factories) Names() []string {
	return slices.Sorted(maps.Keys(f))
}

// Merge returns a new set holding the factories of f and others. Later sets
// win on name clashes.
func (f Factories) Merge(others ...Factories) Factories {
	out := make(Factories, len(f))
	maps.Copy(out, f)
	for _, o := range others {
		maps.Copy(out, o)
	}
	return out
}

// WithCache wraps every factory so the checks it builds memoise their
// verdicts in c.
func (f Factories) WithCache(c *cache.LRUCache[string, bool]) Factories {
	out := make(Factories, len(f))
	for name, factory := range f {
		out[name] = func(args map[string]string) (schema.CheckFunc, error) {
			fn, err := factory(args)
			if err != nil {
				return nil, err
			}
			return Cached(cacheID(name, args), fn, c), nil
		}
	}
	return out
}

func cacheID(name string, args map[string]string) string {
	var b strings.Builder
	b.WriteString(name)
	for _, k := range slices.Sorted(maps.Keys(args)) {
		fmt.Fprintf(&b, "\x00%s=%s", k, args[k])
	}
	return b.String()
}

// RedisFactories registers "redis.member" and "redis.absent". Both take a
// "set" argument naming the Redis key.
func RedisFactories(client SetMembers) Factories {
	return Factories{
		"redis.member": func(args map[string]string) (schema.CheckFunc, error) {
			set, err := argument(args, "set")
			if err != nil {
				return nil, err
			}
			return RedisMember(client, set), nil
		},
		"redis.absent": func(args map[string]string) (schema.CheckFunc, error) {
			set, err := argument(args, "set")
			if err != nil {
				return nil, err
			}
			return RedisAbsent(client, set), nil
		},
	}
}

// PostgresFactories registers "postgres.exists" and "postgres.unique". Both
// take "table" and "column" arguments.
func PostgresFactories(db Querier) Factories {
	build := func(ctor func(Querier, string, string) schema.CheckFunc) Factory {
		return func(args map[string]string) (schema.CheckFunc, error) {
			table, err := argument(args, "table")
			if err != nil {
				return nil, err
			}
			column, err := argument(args, "column")
			if err != nil {
				return nil, err
			}
			return ctor(db, table, column), nil
		}
	}
	return Factories{
		"postgres.exists": build(PostgresExists),
		"postgres.unique": build(PostgresUnique),
	}
}

// MongoFactories registers "mongo.exists" and "mongo.unique". Both take
// "collection" and "field" arguments; collection resolves the former.
func MongoFactories(collection func(name string) Counter) Factories {
	build := func(ctor func(Counter, string) schema.CheckFunc) Factory {
		return func(args map[string]string) (schema.CheckFunc, error) {
			name, err := argument(args, "collection")
			if err != nil {
				return nil, err
			}
			field, err := argument(args, "field")
			if err != nil {
				return nil, err
			}
			return ctor(collection(name), field), nil
		}
	}
	return Factories{
		"mongo.exists": build(MongoExists),
		"mongo.unique": build(MongoUnique),
	}
}

func argument(args map[string]string, name string) (string, error) {
	v := strings.TrimSpace(args[name])
	if v == "" {
		return "", fmt.Errorf("%w: %q", ErrMissingArgument, name)
	}
	return v, nil
}
