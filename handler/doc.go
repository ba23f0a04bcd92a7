// Package handler exposes schema validation over HTTP.
//
// Validate is a middleware that decodes a JSON object body, validates it and
// hands the augmented record to the next handler through the request
// context, or answers 422 with the failure:
//
//	r := chi.NewRouter()
//	r.Use(handler.RequestID)
//	r.With(handler.Validate(v)).Post("/signup", func(w http.ResponseWriter, r *http.Request) {
//		record := handler.RecordFromContext(r.Context())
//		...
//	})
//
// NewRouter serves a set of named validators:
//
//	GET  /schemas                 list the registered schemas
//	POST /schemas/{name}/validate validate the body against one schema
//	GET  /healthz                 liveness
//	GET  /readyz                  readiness of the configured dependencies
//
// Responses share the JSONResponse envelope. Errors carry a machine
// readable code, a message and, for validation failures, the offending
// field path in Details.
package handler
