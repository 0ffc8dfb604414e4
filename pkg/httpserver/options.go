package httpserver

import (
	"log/slog"
	"net"
	"net/http"
	"time"
)

// Option configures a Server. Invalid arguments panic at construction.
type Option func(*config)

func WithAddr(addr string) Option {
	if addr == "" {
		panic("httpserver: WithAddr requires a non-empty address")
	}
	return func(c *config) { c.addr = addr }
}

func WithReadTimeout(d time.Duration) Option {
	mustPositive("WithReadTimeout", d)
	return func(c *config) { c.readTimeout = d }
}

func WithReadHeaderTimeout(d time.Duration) Option {
	mustPositive("WithReadHeaderTimeout", d)
	return func(c *config) { c.readHeaderTimeout = d }
}

func WithWriteTimeout(d time.Duration) Option {
	mustPositive("WithWriteTimeout", d)
	return func(c *config) { c.writeTimeout = d }
}

func WithIdleTimeout(d time.Duration) Option {
	mustPositive("WithIdleTimeout", d)
	return func(c *config) { c.idleTimeout = d }
}

// WithShutdownTimeout bounds how long Shutdown waits for in-flight requests.
func WithShutdownTimeout(d time.Duration) Option {
	mustPositive("WithShutdownTimeout", d)
	return func(c *config) { c.shutdownTimeout = d }
}

// WithServer serves through srv. Fields already set on srv are kept.
func WithServer(srv *http.Server) Option {
	if srv == nil {
		panic("httpserver: WithServer requires a server")
	}
	return func(c *config) { c.server = srv }
}

// WithLogger sets the logger for lifecycle events. Nil discards them.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithSignalHandling toggles shutdown on SIGINT and SIGTERM. Enabled by default.
func WithSignalHandling(enabled bool) Option {
	return func(c *config) { c.handleSignals = enabled }
}

// WithStartHook registers a callback invoked with the bound address once the
// server accepts connections.
func WithStartHook(h func(net.Addr)) Option {
	if h == nil {
		panic("httpserver: WithStartHook requires a hook")
	}
	return func(c *config) { c.startHooks = append(c.startHooks, h) }
}

// WithStopHook registers a callback invoked after the server has stopped serving.
func WithStopHook(h func()) Option {
	if h == nil {
		panic("httpserver: WithStopHook requires a hook")
	}
	return func(c *config) { c.stopHooks = append(c.stopHooks, h) }
}

func mustPositive(name string, d time.Duration) {
	if d <= 0 {
		panic("httpserver: " + name + " requires a positive duration")
	}
}
