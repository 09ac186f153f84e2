// Package requestid tags each login redirect request with a correlation ID.
//
// Middleware reuses a well-formed incoming X-Request-ID header or mints a
// UUIDv4, echoes it in the response and stores it in the request context.
// LoggerExtractor plugs the ID into loggers built with pkg/logger, so every
// record logged with the request context carries request_id.
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	r.Use(requestid.Middleware)
package requestid
