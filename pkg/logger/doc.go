// Package logger builds log/slog loggers from functional options and
// provides attribute helpers with stable keys.
//
// # Usage
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithFormat(logger.FormatText),
//		logger.WithAttr(logger.Component("vcheck")),
//	)
//	log.Debug("constraint evaluated",
//		logger.Constraint("size"),
//		logger.Outcome("invalid"),
//		logger.Violations(1),
//	)
//
// Defaults are JSON output to stderr at info level. WithDevelopment and
// WithProduction apply presets; WithEnvironment picks one of them from a
// configuration string.
//
// # Context Attributes
//
// WithContextExtractors and WithContextValue register extractors that run on
// every record logged through the *Context methods:
//
//	log := logger.New(logger.WithContextValue("run_id", runIDKey{}))
//	log.InfoContext(ctx, "run started")
//
// # Attribute Helpers
//
// Error and Errors return an empty Attr for nil input, which slog drops.
// The remaining helpers (Constraint, Path, Outcome, Violations, Check,
// Duration, Component, Group) only fix the attribute keys.
package logger
