package directory

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrymomot/mentionkit/pkg/mention"
)

// DefaultSearchLimit caps Search results when no positive limit is given.
const DefaultSearchLimit = 6

// Entity is a mentionable record owned by a tenant.
type Entity struct {
	TenantID string    `json:"-" yaml:"-"`
	Type     string    `json:"type" yaml:"type"`
	ID       uuid.UUID `json:"id" yaml:"id"`
	Label    string    `json:"label" yaml:"label"`
}

// Mention returns the entity as a mention carrying its authoritative label.
func (e Entity) Mention() mention.Mention[uuid.UUID] {
	return mention.New(e.Type, e.ID).WithLabel(e.Label)
}

// Store looks up tenant-scoped entities.
//
// Lookup fails with ErrUnknownTenant, ErrUnsupportedType or ErrEntityNotFound,
// in that order of precedence. Search matches the query case-insensitively
// against "type label" and returns entities grouped by type in a stable order.
type Store interface {
	Lookup(ctx context.Context, tenantID, entityType string, id uuid.UUID) (Entity, error)
	Search(ctx context.Context, tenantID, query string, limit int) ([]Entity, error)
	HasTenant(ctx context.Context, tenantID string) (bool, error)
	Types(ctx context.Context, tenantID string) ([]string, error)
}

// Writer registers tenants and entities. Put replaces the label of an
// existing (tenant, type, id) entry.
type Writer interface {
	AddTenant(ctx context.Context, tenantID string) error
	Put(ctx context.Context, entities ...Entity) error
}

// normalizeEntity canonicalizes the type and checks required fields.
func normalizeEntity(e Entity) (Entity, error) {
	e.Type = mention.NormalizeType(e.Type)
	switch {
	case e.TenantID == "":
		return e, ErrInvalidEntity
	case e.Type == "":
		return e, ErrInvalidEntity
	case e.ID == uuid.Nil:
		return e, ErrInvalidEntity
	}
	return e, nil
}

func searchLimit(limit int) int {
	if limit <= 0 {
		return DefaultSearchLimit
	}
	return limit
}
