package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/dmitrymomot/multipass/pkg/logger"
)

var (
	// ErrStart indicates that the server failed to start.
	ErrStart = errors.New("failed to start HTTP server")
	// ErrShutdown indicates that graceful shutdown failed.
	ErrShutdown = errors.New("failed to shutdown HTTP server gracefully")
)

// Config holds listener settings.
type Config struct {
	Addr            string        `env:"MULTIPASS_HTTP_ADDR" envDefault:"127.0.0.1:8080"` // Listen address
	ReadTimeout     time.Duration `env:"MULTIPASS_HTTP_READ_TIMEOUT" envDefault:"10s"`    // Max time to read a request
	WriteTimeout    time.Duration `env:"MULTIPASS_HTTP_WRITE_TIMEOUT" envDefault:"10s"`   // Max time to write a response
	ShutdownTimeout time.Duration `env:"MULTIPASS_HTTP_SHUTDOWN_TIMEOUT" envDefault:"5s"` // Grace period for in-flight requests
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for lifecycle events. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// Server serves one handler per Run call.
type Server struct {
	cfg Config
	log *slog.Logger
}

// New returns a Server. A zero Config listens on 127.0.0.1:8080 with a
// 5 second shutdown grace period and no read/write timeouts.
func New(cfg Config, opts ...Option) *Server {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8080"
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}
	s := &Server{cfg: cfg, log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run listens on the configured address and serves handler until ctx is done.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Addr)
	if err != nil {
		return errors.Join(ErrStart, err)
	}
	return s.Serve(ctx, ln, handler)
}

// Serve accepts connections on ln until ctx is done. ln is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener, handler http.Handler) error {
	if handler == nil {
		handler = http.NotFoundHandler()
	}
	srv := &http.Server{
		Handler:      handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.log.InfoContext(ctx, "http server started", slog.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Join(ErrStart, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.log.Error("http server shutdown failed", logger.Error(err))
		return errors.Join(ErrShutdown, err)
	}
	<-errCh
	s.log.Info("http server stopped")
	return nil
}

// Liveness answers 200 "ALIVE" to any request.
func Liveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ALIVE"))
}
