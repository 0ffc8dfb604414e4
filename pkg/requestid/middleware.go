package requestid

import (
	"net/http"

	"github.com/google/uuid"
)

const (
	// Header carries the request id in both directions.
	Header = "X-Request-ID"

	maxIDLength = 128
)

// Middleware reuses a well-formed client request id or generates a new one,
// stores it in the request context and echoes it in the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(Header)
		if !isValidRequestID(requestID) {
			requestID = newID()
		}
		w.Header().Set(Header, requestID)
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), requestID)))
	})
}

// newID prefers time-ordered v7 ids so that logs sort by arrival.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// isValidRequestID accepts 1-128 characters of [A-Za-z0-9_-].
func isValidRequestID(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}
