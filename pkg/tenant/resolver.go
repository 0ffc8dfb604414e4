package tenant

import (
	"net/http"
	"strings"
)

// DefaultHeader is the header the demo client sends its tenant in.
const DefaultHeader = "X-Tenant-Id"

const maxIdentifierLength = 64

// Resolver extracts the tenant identifier from a request.
// An empty identifier means the request names no tenant.
type Resolver interface {
	Resolve(r *http.Request) (string, error)
}

// ResolverFunc is an adapter to allow the use of ordinary functions as Resolvers.
type ResolverFunc func(r *http.Request) (string, error)

// Resolve calls the function.
func (f ResolverFunc) Resolve(r *http.Request) (string, error) {
	return f(r)
}

// HeaderResolver reads the tenant from a request header, falling back to
// Default when the header is absent or blank.
type HeaderResolver struct {
	HeaderName string
	Default    string
}

// NewHeaderResolver creates a resolver for headerName (DefaultHeader when
// empty) with a fallback tenant.
func NewHeaderResolver(headerName, fallback string) *HeaderResolver {
	if headerName == "" {
		headerName = DefaultHeader
	}
	return &HeaderResolver{HeaderName: headerName, Default: fallback}
}

// Resolve returns the trimmed header value or the default. Malformed values
// fail with ErrInvalidIdentifier.
func (r *HeaderResolver) Resolve(req *http.Request) (string, error) {
	id := strings.TrimSpace(req.Header.Get(r.HeaderName))
	if id == "" {
		return r.Default, nil
	}
	if !ValidIdentifier(id) {
		return "", ErrInvalidIdentifier
	}
	return id, nil
}

// ValidIdentifier accepts up to 64 characters of letters, digits, '.', '-' and '_'.
func ValidIdentifier(id string) bool {
	if id == "" || len(id) > maxIdentifierLength {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.':
		default:
			return false
		}
	}
	return true
}
