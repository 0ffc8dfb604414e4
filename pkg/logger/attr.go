package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under the key "request_id".
// An empty id yields an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// TenantID records the tenant under the key "tenant_id".
// An empty id yields an empty Attr.
func TenantID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("tenant_id", id)
}

// ClientIP records the client address under the key "client_ip".
func ClientIP(ip string) slog.Attr {
	return slog.String("client_ip", ip)
}

// MentionTypes records canonical mention types under the key "mention_types".
// Never pass identifiers or labels here.
func MentionTypes(types []string) slog.Attr {
	return slog.Any("mention_types", types)
}

// MentionCount records the number of mentions under the key "mention_count".
func MentionCount(n int) slog.Attr {
	return slog.Int("mention_count", n)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// HTTPRequest groups method, path and status under the key "http".
func HTTPRequest(method, path string, status int) slog.Attr {
	return slog.Group("http",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
	)
}
