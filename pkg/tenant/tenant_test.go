package tenant_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mentionkit/pkg/logger"
	"github.com/dmitrymomot/mentionkit/pkg/tenant"
)

func TestHeaderResolver(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "uses header", header: "acme", want: "acme"},
		{name: "trims header", header: "  acme  ", want: "acme"},
		{name: "falls back to default", header: "", want: "demo"},
		{name: "blank header falls back", header: "   ", want: "demo"},
		{name: "rejects spaces", header: "ac me", wantErr: tenant.ErrInvalidIdentifier},
		{name: "rejects path characters", header: "../etc", wantErr: tenant.ErrInvalidIdentifier},
		{name: "rejects long ids", header: strings.Repeat("a", 65), wantErr: tenant.ErrInvalidIdentifier},
	}

	resolver := tenant.NewHeaderResolver("", "demo")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(tenant.DefaultHeader, tt.header)
			}

			got, err := resolver.Resolve(req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidIdentifier(t *testing.T) {
	t.Parallel()

	for _, id := range []string{"demo", "acme-corp", "tenant_42", "eu.acme", strings.Repeat("x", 64)} {
		assert.True(t, tenant.ValidIdentifier(id), id)
	}
	for _, id := range []string{"", "a b", "a/b", "ünicode", "a;drop", strings.Repeat("x", 65)} {
		assert.False(t, tenant.ValidIdentifier(id), id)
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := tenant.IDFromContext(r.Context())
		if !ok {
			id = "none"
		}
		_, _ = w.Write([]byte(id))
	})

	t.Run("stores the tenant in context", func(t *testing.T) {
		t.Parallel()

		h := tenant.Middleware(tenant.NewHeaderResolver("", "demo"))(echo)
		req := httptest.NewRequest(http.MethodGet, "/suggest", nil)
		req.Header.Set("X-Tenant-Id", "acme")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "acme", rec.Body.String())
	})

	t.Run("invalid identifier", func(t *testing.T) {
		t.Parallel()

		h := tenant.Middleware(tenant.NewHeaderResolver("", "demo"))(echo)
		req := httptest.NewRequest(http.MethodGet, "/suggest", nil)
		req.Header.Set("X-Tenant-Id", "a b")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing tenant without default", func(t *testing.T) {
		t.Parallel()

		h := tenant.Middleware(tenant.NewHeaderResolver("", ""))(echo)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/suggest", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("skip paths", func(t *testing.T) {
		t.Parallel()

		h := tenant.Middleware(tenant.NewHeaderResolver("", ""), tenant.WithSkipPaths("/health"))(echo)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "none", rec.Body.String())
	})

	t.Run("custom error handler", func(t *testing.T) {
		t.Parallel()

		var got error
		resolver := tenant.ResolverFunc(func(*http.Request) (string, error) {
			return "", errors.New("boom")
		})
		h := tenant.Middleware(resolver, tenant.WithErrorHandler(func(w http.ResponseWriter, _ *http.Request, err error) {
			got = err
			w.WriteHeader(http.StatusTeapot)
		}))(echo)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.EqualError(t, got, "boom")
	})
}

func TestContext(t *testing.T) {
	t.Parallel()

	_, ok := tenant.IDFromContext(context.Background())
	assert.False(t, ok)
	assert.Panics(t, func() { tenant.MustIDFromContext(context.Background()) })

	ctx := tenant.WithID(context.Background(), "acme")
	id, ok := tenant.IDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "acme", id)
	assert.Equal(t, "acme", tenant.MustIDFromContext(ctx))
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf), logger.WithContextExtractors(tenant.LoggerExtractor()))
	log.InfoContext(tenant.WithID(context.Background(), "acme"), "hello")

	assert.Contains(t, buf.String(), `"tenant_id":"acme"`)
}
