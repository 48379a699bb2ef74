// Package logger builds configured slog.Logger instances with support for
// injecting context-scoped attributes (user ID, request ID) into every record.
//
// Usage:
//
//	log := logger.New(
//	    logger.WithProduction("gatekit"),
//	    logger.WithContextExtractors(auth.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "permissions resolved") // includes user_id when present
package logger
