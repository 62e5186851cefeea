// Package logger builds the structured slog.Logger used across the editor.
//
// New assembles a text or JSON handler from functional options and wraps it
// in a decorator that pulls request-scoped attributes (request id, environment)
// out of the context on every record. The attribute helpers in attr.go keep
// key names consistent between packages:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "emailcraft"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.WarnContext(ctx, "preview target missing",
//		logger.Component("preview"),
//		logger.Field("content.heroTitle"),
//		logger.Error(err),
//	)
package logger
