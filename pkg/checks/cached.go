package checks

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/schemakit/pkg/cache"
	"github.com/dmitrymomot/schemakit/pkg/schema"
)

// Cached memoises the verdicts of fn in c. id distinguishes checks sharing
// one cache. Errors are never cached.
func Cached(id string, fn schema.CheckFunc, c *cache.LRUCache[string, bool]) schema.CheckFunc {
	return func(ctx context.Context, key string, value any) (bool, error) {
		ck := fmt.Sprintf("%s\x00%s\x00%T\x00%v", id, key, value, value)
		if ok, hit := c.Get(ck); hit {
			return ok, nil
		}
		ok, err := fn(ctx, key, value)
		if err != nil {
			return false, err
		}
		c.Put(ck, ok)
		return ok, nil
	}
}
