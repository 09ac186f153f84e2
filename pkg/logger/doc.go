// Package logger builds slog loggers for the multipass codec and CLI.
//
// New creates a *slog.Logger configured by Option functions: output format
// (text or JSON), minimum level, static attributes, per-environment defaults
// and ContextExtractor callbacks that pull attributes out of a
// context.Context on every record.
//
// # Architecture
//
// New picks slog.NewTextHandler or slog.NewJSONHandler and wraps it in
// LogHandlerDecorator, which runs the registered extractors before
// delegating. Attribute helpers in attr.go keep key names consistent; Email
// masks the local part so customer addresses are never logged in clear.
//
// # Usage
//
//	import "github.com/dmitrymomot/multipass/pkg/logger"
//
//	log := logger.New(
//	    logger.WithEnvironment(environment.Production, "multipass"),
//	)
//	log.Info("multipass token issued",
//	    logger.Email("example@example.com"), // e******@example.com
//	    logger.StoreHost("your-store.myshopify.com"),
//	)
package logger
