package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrymomot/authkit/pkg/logger"
)

type settings struct {
	addr            string
	timeouts        Timeouts
	shutdownTimeout time.Duration
	logger          *slog.Logger
	listener        net.Listener
	onStart         []func(addr string)
	onStop          []func()
}

// Server serves one handler until shut down. A Server runs at most once.
type Server struct {
	cfg settings

	mu   sync.Mutex
	srv  *http.Server
	once sync.Once
	err  error
}

func New(opts ...Option) *Server {
	cfg := settings{
		addr:            ":8080",
		shutdownTimeout: 5 * time.Second,
		logger:          logger.Discard(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{cfg: cfg}
}

// Run serves handler and blocks until ctx is done, a termination signal
// arrives or serving fails. Shutdown errors are returned wrapped in
// ErrShutdown and listener errors in ErrStart.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	if handler == nil {
		handler = http.NotFoundHandler()
	}

	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	srv := &http.Server{
		Addr:              s.cfg.addr,
		Handler:           handler,
		ReadTimeout:       s.cfg.timeouts.Read,
		ReadHeaderTimeout: s.cfg.timeouts.ReadHeader,
		WriteTimeout:      s.cfg.timeouts.Write,
		IdleTimeout:       s.cfg.timeouts.Idle,
		ErrorLog:          slog.NewLogLogger(s.cfg.logger.Handler(), slog.LevelError),
	}
	s.srv = srv
	s.mu.Unlock()

	ln := s.cfg.listener
	if ln == nil {
		var err error
		if ln, err = net.Listen("tcp", srv.Addr); err != nil {
			return errors.Join(ErrStart, err)
		}
	}

	addr := ln.Addr().String()
	s.cfg.logger.InfoContext(ctx, "http server listening", logger.Component("httpserver"), slog.String("addr", addr))
	for _, fn := range s.cfg.onStart {
		fn(addr)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Join(ErrStart, err)
		}
		return s.Shutdown(context.WithoutCancel(ctx))
	case <-sigCtx.Done():
	}

	shutdownErr := s.Shutdown(context.WithoutCancel(ctx))
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Join(ErrStart, err)
	}
	return shutdownErr
}

// Shutdown drains the running server. Repeated calls return the first result.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	s.once.Do(func() {
		ctx, cancel := context.WithTimeout(ctx, s.cfg.shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.err = errors.Join(ErrShutdown, err)
		}
		s.cfg.logger.InfoContext(ctx, "http server stopped", logger.Component("httpserver"))
		for _, fn := range s.cfg.onStop {
			fn()
		}
	})
	return s.err
}
