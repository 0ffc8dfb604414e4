package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/mentionkit/pkg/directory"
	"github.com/dmitrymomot/mentionkit/pkg/httpserver"
	"github.com/dmitrymomot/mentionkit/pkg/logger"
	"github.com/dmitrymomot/mentionkit/pkg/ratelimiter"
	"github.com/dmitrymomot/mentionkit/pkg/requestid"
	"github.com/dmitrymomot/mentionkit/pkg/tenant"
)

const readinessTimeout = 2 * time.Second

// API serves the demo endpoints for one directory.
type API struct {
	store directory.Store
	cfg   *config
	log   *slog.Logger
}

// New returns an API over store. It panics on a nil store.
func New(store directory.Store, opts ...Option) *API {
	if store == nil {
		panic("api: New requires a directory store")
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	log := cfg.logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &API{store: store, cfg: cfg, log: log.With(logger.Component("api"))}
}

// Routes returns the HTTP handler with the full middleware stack.
func (a *API) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		a.cfg.clientIP.Middleware,
		a.accessLog,
		middleware.Recoverer,
		corsHandler(a.cfg.allowedOrigins),
	)

	r.Get("/health", httpserver.HealthCheckHandler(a.log, 0))
	r.Get("/health/ready", httpserver.HealthCheckHandler(a.log, readinessTimeout, a.cfg.checks...))

	r.Group(func(r chi.Router) {
		r.Use(tenant.Middleware(
			tenant.NewHeaderResolver(tenant.DefaultHeader, a.cfg.defaultTenant),
			tenant.WithErrorHandler(a.writeError),
		))
		if a.cfg.limiter != nil {
			r.Use(ratelimiter.Middleware(a.cfg.limiter, tenantKey, ratelimiter.WithErrorHandler(a.writeError)))
		}
		r.Get("/suggest", a.handle(a.suggest))
		r.With(middleware.AllowContentType("application/json")).
			Post("/resolve", a.handle(a.resolve))
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		a.writeError(w, r, HTTPError{Status: http.StatusNotFound, Code: "not_found", Message: "not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		a.writeError(w, r, HTTPError{Status: http.StatusMethodNotAllowed, Code: "method_not_allowed", Message: "method not allowed"})
	})
	return r
}

func tenantKey(r *http.Request) string {
	id, _ := tenant.IDFromContext(r.Context())
	return id
}

type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func (a *API) handle(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			a.writeError(w, r, err)
		}
	}
}

// writeError logs err and answers with its client-safe form. Client errors
// are logged at warn, everything else at error.
func (a *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	httpErr := toHTTPError(err)
	level := slog.LevelWarn
	if httpErr.Status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	a.log.Log(r.Context(), level, "request failed",
		slog.String("code", httpErr.Code),
		logger.Error(err),
	)

	body := errorBody{Error: errorDetail{
		Code:      httpErr.Code,
		Message:   httpErr.Message,
		RequestID: requestid.FromContext(r.Context()),
	}}
	if werr := writeJSON(w, httpErr.Status, body); werr != nil {
		a.log.WarnContext(r.Context(), "write error response", logger.Error(werr))
	}
}
