package tenant

import "errors"

var (
	// ErrInvalidIdentifier is returned when the tenant identifier is malformed.
	ErrInvalidIdentifier = errors.New("invalid tenant identifier")

	// ErrNoTenantInContext is returned when no tenant is found in context.
	ErrNoTenantInContext = errors.New("no tenant in context")
)
