package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dmitrymomot/mentionkit/pkg/logger"
	"github.com/dmitrymomot/mentionkit/pkg/requestid"
	"github.com/dmitrymomot/mentionkit/pkg/tenant"
)

// corsHandler allows the configured origins without credentials. Preflight
// requests are answered before routing and tenant resolution.
func corsHandler(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", tenant.DefaultHeader, requestid.Header},
		ExposedHeaders: []string{requestid.Header, "Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:         600,
	})
}

func (a *API) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		a.log.InfoContext(r.Context(), "http request",
			logger.HTTPRequest(r.Method, r.URL.Path, status),
			logger.Duration(time.Since(start)),
		)
	})
}
