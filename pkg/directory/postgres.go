package directory

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/mentionkit/pkg/mention"
	"github.com/dmitrymomot/mentionkit/pkg/pg"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrations returns the goose migrations creating the PostgresStore schema.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

// DB is the subset of *pgxpool.Pool used by PostgresStore.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// PostgresStore is a Store and Writer over the mention_entities table.
type PostgresStore struct {
	db DB
}

// NewPostgresStore returns a store using db. The schema must have been
// applied with pg.Migrate and Migrations.
func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const (
	queryAddTenant = `INSERT INTO mention_tenants (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`

	queryUpsertEntity = `INSERT INTO mention_entities (tenant_id, entity_type, id, label)
VALUES ($1, $2, $3, $4)
ON CONFLICT (tenant_id, entity_type, id) DO UPDATE SET label = EXCLUDED.label`

	queryLookup = `SELECT label FROM mention_entities
WHERE tenant_id = $1 AND entity_type = $2 AND id = $3`

	queryHasTenant = `SELECT EXISTS (SELECT 1 FROM mention_tenants WHERE id = $1)`

	queryHasType = `SELECT EXISTS (SELECT 1 FROM mention_entities WHERE tenant_id = $1 AND entity_type = $2)`

	queryTypes = `SELECT entity_type FROM mention_entities
WHERE tenant_id = $1
GROUP BY entity_type
ORDER BY min(position)`

	querySearch = `SELECT e.entity_type, e.id, e.label
FROM mention_entities e
JOIN (
    SELECT entity_type, min(position) AS first_position
    FROM mention_entities
    WHERE tenant_id = $1
    GROUP BY entity_type
) t ON t.entity_type = e.entity_type
WHERE e.tenant_id = $1
  AND ($2 = '' OR strpos(lower(e.entity_type || ' ' || e.label), $2) > 0)
ORDER BY t.first_position, e.position
LIMIT $3`
)

// AddTenant implements Writer.
func (s *PostgresStore) AddTenant(ctx context.Context, tenantID string) error {
	if tenantID == "" {
		return ErrInvalidEntity
	}
	if _, err := s.db.Exec(ctx, queryAddTenant, tenantID); err != nil {
		return errors.Join(ErrBackend, err)
	}
	return nil
}

// Put implements Writer. Missing tenants are created. All rows are sent in
// one batch.
func (s *PostgresStore) Put(ctx context.Context, entities ...Entity) error {
	if len(entities) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	tenants := make(map[string]struct{})
	for _, e := range entities {
		n, err := normalizeEntity(e)
		if err != nil {
			return err
		}
		if _, ok := tenants[n.TenantID]; !ok {
			tenants[n.TenantID] = struct{}{}
			batch.Queue(queryAddTenant, n.TenantID)
		}
		batch.Queue(queryUpsertEntity, n.TenantID, n.Type, n.ID, n.Label)
	}

	results := s.db.SendBatch(ctx, batch)
	for range batch.Len() {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return errors.Join(ErrBackend, err)
		}
	}
	if err := results.Close(); err != nil {
		return errors.Join(ErrBackend, err)
	}
	return nil
}

// Lookup implements Store.
func (s *PostgresStore) Lookup(ctx context.Context, tenantID, entityType string, id uuid.UUID) (Entity, error) {
	entityType = mention.NormalizeType(entityType)

	var label string
	err := s.db.QueryRow(ctx, queryLookup, tenantID, entityType, id).Scan(&label)
	if err == nil {
		return Entity{TenantID: tenantID, Type: entityType, ID: id, Label: label}, nil
	}
	if !pg.IsNotFoundError(err) {
		return Entity{}, errors.Join(ErrBackend, err)
	}

	// Classify the miss the same way MemoryStore does.
	ok, err := s.HasTenant(ctx, tenantID)
	if err != nil {
		return Entity{}, err
	}
	if !ok {
		return Entity{}, ErrUnknownTenant
	}
	if err := s.db.QueryRow(ctx, queryHasType, tenantID, entityType).Scan(&ok); err != nil {
		return Entity{}, errors.Join(ErrBackend, err)
	}
	if !ok {
		return Entity{}, ErrUnsupportedType
	}
	return Entity{}, ErrEntityNotFound
}

// Search implements Store.
func (s *PostgresStore) Search(ctx context.Context, tenantID, query string, limit int) ([]Entity, error) {
	ok, err := s.HasTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnknownTenant
	}

	query = strings.ToLower(strings.TrimSpace(query))
	rows, err := s.db.Query(ctx, querySearch, tenantID, query, searchLimit(limit))
	if err != nil {
		return nil, errors.Join(ErrBackend, err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Entity, error) {
		e := Entity{TenantID: tenantID}
		err := row.Scan(&e.Type, &e.ID, &e.Label)
		return e, err
	})
	if err != nil {
		return nil, errors.Join(ErrBackend, err)
	}
	return out, nil
}

// HasTenant implements Store.
func (s *PostgresStore) HasTenant(ctx context.Context, tenantID string) (bool, error) {
	var ok bool
	if err := s.db.QueryRow(ctx, queryHasTenant, tenantID).Scan(&ok); err != nil {
		return false, errors.Join(ErrBackend, err)
	}
	return ok, nil
}

// Types implements Store.
func (s *PostgresStore) Types(ctx context.Context, tenantID string) ([]string, error) {
	ok, err := s.HasTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnknownTenant
	}

	rows, err := s.db.Query(ctx, queryTypes, tenantID)
	if err != nil {
		return nil, errors.Join(ErrBackend, err)
	}
	types, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, errors.Join(ErrBackend, err)
	}
	return types, nil
}
