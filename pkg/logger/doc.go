// Package logger builds slog loggers for the server.
//
// New returns a *slog.Logger whose handler is wrapped by LogHandlerDecorator,
// which runs registered ContextExtractor callbacks on every record. The server
// registers extractors for the request id and the signed-in user id:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.AppEnv, cfg.AppName),
//		logger.WithContextExtractors(requestid.LoggerExtractor(), identity.LoggerExtractor()),
//	)
//
// Attribute helpers (Error, Component, CacheKey, ...) keep key names
// consistent. Error and Errors return an empty Attr for nil errors, so they
// can be passed without a nil check.
package logger
