// Package logger builds the service's *slog.Logger and holds the attribute
// helpers used across packages so log keys stay consistent.
//
// New applies functional options on top of production defaults (JSON, info
// level, stdout) and wraps the handler so that request-scoped values are
// pulled from the context on every record:
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Production, "varlayer"),
//		logger.WithContextExtractors(requestid.LoggerExtractor(), account.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "variable created",
//		logger.TemplateID(tpl.ID),
//		logger.VariableID(v.ID),
//	)
//
// FromConfig does the same from environment-driven settings.
//
// Attribute helpers return an empty slog.Attr for nil values, which slog
// drops, so call sites need no nil checks:
//
//	log.ErrorContext(ctx, "persist failed", logger.Error(err))
package logger
