package clientip

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/dmitrymomot/mentionkit/pkg/logger"
)

// Common proxy headers, in the order most deployments should trust them.
const (
	HeaderCFConnectingIP = "CF-Connecting-IP"
	HeaderXForwardedFor  = "X-Forwarded-For"
	HeaderXRealIP        = "X-Real-IP"
)

// Extractor finds the client address of a request. Headers are consulted in
// order and only when listed, since any client can send them; RemoteAddr is
// the fallback.
type Extractor struct {
	headers []string
}

// New returns an Extractor that trusts the given headers. With none it only
// uses RemoteAddr.
func New(trustedHeaders ...string) *Extractor {
	headers := make([]string, 0, len(trustedHeaders))
	for _, h := range trustedHeaders {
		if h = strings.TrimSpace(h); h != "" {
			headers = append(headers, http.CanonicalHeaderKey(h))
		}
	}
	return &Extractor{headers: headers}
}

// FromRequest returns the normalized client IP, or "" when none is valid.
// X-Forwarded-For contributes its first valid entry.
func (e *Extractor) FromRequest(r *http.Request) string {
	for _, h := range e.headers {
		value := r.Header.Get(h)
		if value == "" {
			continue
		}
		for part := range strings.SplitSeq(value, ",") {
			if ip := parseIP(part); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

// Middleware stores the client IP in the request context.
func (e *Extractor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ip := e.FromRequest(r); ip != "" {
			r = r.WithContext(WithContext(r.Context(), ip))
		}
		next.ServeHTTP(w, r)
	})
}

// parseIP unmaps IPv4-in-IPv6 and drops zones.
func parseIP(s string) string {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return ""
	}
	return addr.Unmap().WithZone("").String()
}

type contextKey struct{}

func WithContext(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, contextKey{}, ip)
}

// FromContext returns the IP stored by Middleware, or "".
func FromContext(ctx context.Context) string {
	ip, _ := ctx.Value(contextKey{}).(string)
	return ip
}

// LoggerExtractor adds "client_ip" to log records made with a request context.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if ip := FromContext(ctx); ip != "" {
			return logger.ClientIP(ip), true
		}
		return slog.Attr{}, false
	}
}
