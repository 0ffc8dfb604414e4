// Package logger builds slog loggers for the mentionkit service.
//
// New returns a *slog.Logger configured with functional options. Its handler
// is wrapped in a LogHandlerDecorator that runs ContextExtractor callbacks on
// every record, which is how request ids and tenant ids reach access logs
// without being threaded through every call:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.AppEnv, cfg.AppName),
//		logger.WithContextExtractors(requestid.LoggerExtractor(), tenant.LoggerExtractor()),
//	)
//
// The attribute helpers (RequestID, TenantID, MentionTypes, MentionCount and
// friends) keep key names consistent. Mention identifiers and labels are never
// logged; only types and counts are.
package logger
