package directory

import "errors"

// Messages are safe to return to clients as is: none of them carry the
// offending identifier.
var (
	ErrUnknownTenant   = errors.New("unknown tenant")
	ErrUnsupportedType = errors.New("unsupported mention type")
	ErrEntityNotFound  = errors.New("mention not found in this account")
	ErrInvalidEntity   = errors.New("entity requires a tenant, a type and a non-nil id")
	ErrInvalidSeed     = errors.New("invalid directory seed")
	ErrBackend         = errors.New("directory backend failed")
)

// IsValidationError reports whether err means a mention did not pass tenant
// validation, as opposed to the directory being unavailable.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrUnknownTenant) ||
		errors.Is(err, ErrUnsupportedType) ||
		errors.Is(err, ErrEntityNotFound)
}
