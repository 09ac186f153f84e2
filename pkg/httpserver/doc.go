// Package httpserver runs an http.Handler until its context is cancelled,
// then shuts down gracefully.
//
//	srv := httpserver.New(cfg, httpserver.WithLogger(log))
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Config is loadable with pkg/config. Start failures wrap ErrStart, shutdown
// failures wrap ErrShutdown.
package httpserver
