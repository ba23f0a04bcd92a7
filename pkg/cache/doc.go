// Package cache provides a generic, thread-safe LRU cache with optional
// expiry. The checks package uses it to remember verdicts of expensive custom
// checks (database or network lookups) between validation runs.
//
// # Usage
//
//	verdicts := cache.NewLRUCache[string, bool](1024, cache.WithTTL(time.Minute))
//	verdicts.Put("username=alice", true)
//
//	if ok, found := verdicts.Get("username=alice"); found {
//	    // reuse ok
//	}
//
// All operations are O(1) and guarded by a single mutex.
package cache
