package mention

import (
	"context"

	"github.com/google/uuid"
)

// Validator confirms that every mention in a Result exists and is visible
// under the caller's tenant. Implementations live in the host application,
// usually backed by a database, and must fail on an unknown tenant, an
// unsupported type or an identifier outside the tenant's scope.
type Validator[ID comparable] interface {
	Validate(ctx context.Context, mentions *Result[ID]) error
}

// ValidatorFunc adapts an ordinary function to the Validator interface.
type ValidatorFunc[ID comparable] func(ctx context.Context, mentions *Result[ID]) error

// Validate calls f.
func (f ValidatorFunc[ID]) Validate(ctx context.Context, mentions *Result[ID]) error {
	return f(ctx, mentions)
}

// ParseAndValidate parses payload with UUID identifiers and validates the
// result with v. Validator errors are returned as is.
func ParseAndValidate(ctx context.Context, payload any, v Validator[uuid.UUID], opts ...Option) (*Result[uuid.UUID], error) {
	return ParseAndValidateWith(ctx, payload, UUIDParser, v, opts...)
}

// ParseAndValidateWith is ParseAndValidate with a custom identifier parser.
// The validator is called exactly once, also for an empty result.
func ParseAndValidateWith[ID comparable](ctx context.Context, payload any, parseID IDParser[ID], v Validator[ID], opts ...Option) (*Result[ID], error) {
	if v == nil {
		return nil, ErrNilValidator
	}

	mentions, err := ParseWith(payload, parseID, opts...)
	if err != nil {
		return nil, err
	}
	if err := v.Validate(ctx, mentions); err != nil {
		return nil, err
	}
	return mentions, nil
}
