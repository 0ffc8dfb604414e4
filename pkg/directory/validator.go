package directory

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/dmitrymomot/mentionkit/pkg/mention"
)

// Validator checks parsed mentions against one tenant's directory.
// It implements mention.Validator for UUID identifiers.
type Validator struct {
	store    Store
	tenantID string
}

var _ mention.Validator[uuid.UUID] = (*Validator)(nil)

// NewValidator returns a Validator scoped to tenantID.
func NewValidator(store Store, tenantID string) *Validator {
	return &Validator{store: store, tenantID: tenantID}
}

// Validate fails with ErrUnknownTenant, ErrUnsupportedType or
// ErrEntityNotFound on the first mention that does not belong to the tenant.
// The tenant is checked even when there are no mentions.
func (v *Validator) Validate(ctx context.Context, mentions *mention.Result[uuid.UUID]) error {
	ok, err := v.store.HasTenant(ctx, v.tenantID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnknownTenant
	}
	if mentions.IsEmpty() {
		return nil
	}

	supported, err := v.store.Types(ctx, v.tenantID)
	if err != nil {
		return err
	}

	for mentionType, items := range mentions.Groups() {
		if !slices.Contains(supported, mentionType) {
			return ErrUnsupportedType
		}
		for _, m := range items {
			if _, err := v.store.Lookup(ctx, v.tenantID, mentionType, m.ID()); err != nil {
				return err
			}
		}
	}
	return nil
}

// Resolve replaces client-supplied labels with the directory's own, keeping
// group and mention order. Every mention must resolve.
func Resolve(ctx context.Context, store Store, tenantID string, mentions *mention.Result[uuid.UUID]) ([]Entity, error) {
	out := make([]Entity, 0, mentions.Len())
	for mentionType, items := range mentions.Groups() {
		for _, m := range items {
			e, err := store.Lookup(ctx, tenantID, mentionType, m.ID())
			if err != nil {
				return nil, err
			}
			out = append(out, e)
		}
	}
	return out, nil
}

// ToResult groups entities into a mention result carrying their labels.
func ToResult(entities []Entity) *mention.Result[uuid.UUID] {
	mentions := make([]mention.Mention[uuid.UUID], len(entities))
	for i, e := range entities {
		mentions[i] = e.Mention()
	}
	return mention.NewResult(mentions...)
}
