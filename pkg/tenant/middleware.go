package tenant

import (
	"net/http"
	"strings"
)

// Middleware resolves the tenant identifier of each request and stores it in
// the request context. Requests that name no tenant fail with
// ErrNoTenantInContext. Whether the tenant exists is left to the handlers.
func Middleware(resolver Resolver, opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{errorHandler: defaultErrorHandler}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, skip := range cfg.skipPaths {
				if strings.HasPrefix(r.URL.Path, skip) {
					next.ServeHTTP(w, r)
					return
				}
			}

			id, err := resolver.Resolve(r)
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}
			if id == "" {
				cfg.errorHandler(w, r, ErrNoTenantInContext)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithID(r.Context(), id)))
		})
	}
}
