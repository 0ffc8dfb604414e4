package api

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/mentionkit/pkg/directory"
	"github.com/dmitrymomot/mentionkit/pkg/mention"
	"github.com/dmitrymomot/mentionkit/pkg/ratelimiter"
	"github.com/dmitrymomot/mentionkit/pkg/tenant"
)

// HTTPError is an error response with a stable code and a client-safe message.
type HTTPError struct {
	Status  int
	Code    string
	Message string
}

func (e HTTPError) Error() string { return e.Code }

var (
	ErrMalformedBody = HTTPError{Status: http.StatusBadRequest, Code: "malformed_body", Message: "request body must be a JSON object"}
	ErrBodyTooLarge  = HTTPError{Status: http.StatusRequestEntityTooLarge, Code: "body_too_large", Message: "request body too large"}
	ErrTenantUnknown = HTTPError{Status: http.StatusNotFound, Code: "unknown_tenant", Message: "unknown tenant"}
	ErrRateLimited   = HTTPError{Status: http.StatusTooManyRequests, Code: "rate_limited", Message: "too many requests"}
	ErrInternal      = HTTPError{Status: http.StatusInternalServerError, Code: "internal_error", Message: "internal error"}
)

// toHTTPError maps domain errors onto client responses. Messages come from the
// matched sentinel, so nothing from the request leaks back.
func toHTTPError(err error) HTTPError {
	var httpErr HTTPError
	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &httpErr):
		return httpErr
	case errors.As(err, &maxBytes):
		return ErrBodyTooLarge
	case errors.Is(err, ratelimiter.ErrRateLimited):
		return ErrRateLimited
	case errors.Is(err, mention.ErrParse):
		return badRequest("invalid_mention", mention.ErrParse)
	case errors.Is(err, mention.ErrInvalidPayload):
		return ErrMalformedBody
	case errors.Is(err, mention.ErrTooManyMentions):
		return badRequest("ambiguous_mention", mention.ErrTooManyMentions)
	case errors.Is(err, directory.ErrUnknownTenant):
		return badRequest("unknown_tenant", directory.ErrUnknownTenant)
	case errors.Is(err, directory.ErrUnsupportedType):
		return badRequest("unsupported_type", directory.ErrUnsupportedType)
	case errors.Is(err, directory.ErrEntityNotFound):
		return badRequest("mention_not_found", directory.ErrEntityNotFound)
	case errors.Is(err, tenant.ErrInvalidIdentifier):
		return badRequest("invalid_tenant", tenant.ErrInvalidIdentifier)
	case errors.Is(err, tenant.ErrNoTenantInContext):
		return badRequest("tenant_required", tenant.ErrNoTenantInContext)
	default:
		return ErrInternal
	}
}

func badRequest(code string, sentinel error) HTTPError {
	return HTTPError{Status: http.StatusBadRequest, Code: code, Message: sentinel.Error()}
}
