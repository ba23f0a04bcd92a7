// Package checks provides ready-made custom checks for schema fields backed
// by Redis, PostgreSQL and MongoDB, plus memoisation through an LRU cache.
//
// Every constructor returns a schema.CheckFunc that can be placed in a
// schema.Check directly:
//
//	&schema.StringField{
//		Base: schema.Base{Key: "email", Checks: []schema.Check{{
//			Func:    checks.PostgresUnique(pool, "users", "email"),
//			Message: "This email is already registered",
//		}}},
//	}
//
// Factories build the same checks from string arguments so that schema
// definitions loaded from files can refer to them by name.
package checks
