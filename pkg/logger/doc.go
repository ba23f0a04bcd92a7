// Package logger builds *slog.Logger values with functional options and a
// handler decorator that injects attributes taken from context.Context.
//
// New picks slog.NewJSONHandler or slog.NewTextHandler from the configured
// Format and wraps it with LogHandlerDecorator, which runs every registered
// ContextExtractor before delegating. Attribute helpers in attr.go keep key
// names consistent across the schema engine and the HTTP layer.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithDevelopment("schemad"),
//	    logger.WithContextExtractors(handler.RequestIDExtractor()),
//	)
//
//	log.DebugContext(ctx, "validation failed",
//	    logger.Field("address.city"),
//	    logger.Reason(`The field "city" has not been provided.`),
//	)
//
// Error returns an empty attribute for nil errors, so it can be passed
// unconditionally.
package logger
