package httpserver

import (
	"log/slog"
	"net"
	"time"
)

// Option configures a Server.
type Option func(*settings)

// Timeouts groups the http.Server timeouts. Zero fields are left unchanged.
type Timeouts struct {
	Read       time.Duration
	ReadHeader time.Duration
	Write      time.Duration
	Idle       time.Duration
}

// WithAddr sets the listen address. Empty keeps the default.
func WithAddr(addr string) Option {
	return func(s *settings) {
		if addr != "" {
			s.addr = addr
		}
	}
}

func WithTimeouts(t Timeouts) Option {
	return func(s *settings) {
		if t.Read > 0 {
			s.timeouts.Read = t.Read
		}
		if t.ReadHeader > 0 {
			s.timeouts.ReadHeader = t.ReadHeader
		}
		if t.Write > 0 {
			s.timeouts.Write = t.Write
		}
		if t.Idle > 0 {
			s.timeouts.Idle = t.Idle
		}
	}
}

// WithShutdownTimeout bounds the graceful drain.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithListener serves on ln instead of listening on the configured address.
func WithListener(ln net.Listener) Option {
	return func(s *settings) { s.listener = ln }
}

// WithStartHook runs fn with the bound address once the server is listening.
func WithStartHook(fn func(addr string)) Option {
	return func(s *settings) {
		if fn != nil {
			s.onStart = append(s.onStart, fn)
		}
	}
}

// WithStopHook runs fn after the server has shut down.
func WithStopHook(fn func()) Option {
	return func(s *settings) {
		if fn != nil {
			s.onStop = append(s.onStop, fn)
		}
	}
}
