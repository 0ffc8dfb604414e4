package directory_test

import (
	"context"
	"io/fs"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mentionkit/pkg/directory"
	"github.com/dmitrymomot/mentionkit/pkg/mention"
	"github.com/dmitrymomot/mentionkit/pkg/pg"
)

func TestMigrations_Embedded(t *testing.T) {
	t.Parallel()

	files, err := fs.Glob(directory.Migrations(), "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	data, err := fs.ReadFile(directory.Migrations(), files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "-- +goose Up")
	assert.Contains(t, string(data), "mention_entities")
}

// TestPostgresStore runs against a real database when MENTIONKIT_TEST_PG_URL is set.
func TestPostgresStore(t *testing.T) {
	url := os.Getenv("MENTIONKIT_TEST_PG_URL")
	if url == "" {
		t.Skip("MENTIONKIT_TEST_PG_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := pg.Config{
		ConnectionString: url,
		MaxOpenConns:     4,
		RetryAttempts:    1,
		MigrationsTable:  "mentionkit_test_migrations",
	}
	pool, err := pg.Connect(ctx, cfg)
	require.NoError(t, err)
	defer pool.Close()
	require.NoError(t, pg.Migrate(ctx, pool, directory.Migrations(), cfg, nil))

	tenant := "test-" + uuid.NewString()
	store := directory.NewPostgresStore(pool)

	ok, err := store.HasTenant(ctx, tenant)
	require.NoError(t, err)
	assert.False(t, ok)

	entities := directory.DemoEntities()
	for i := range entities {
		entities[i].TenantID = tenant
	}
	require.NoError(t, store.Put(ctx, entities...))
	require.NoError(t, store.Put(ctx, directory.Entity{TenantID: tenant, Type: "person", ID: jimID, Label: "Jim H."}))

	e, err := store.Lookup(ctx, tenant, "contact", jimID)
	require.NoError(t, err)
	assert.Equal(t, "Jim H.", e.Label)

	_, err = store.Lookup(ctx, tenant, "deal", jimID)
	assert.ErrorIs(t, err, directory.ErrUnsupportedType)
	_, err = store.Lookup(ctx, tenant, "meeting", jimID)
	assert.ErrorIs(t, err, directory.ErrEntityNotFound)
	_, err = store.Lookup(ctx, "missing-"+tenant, "contact", jimID)
	assert.ErrorIs(t, err, directory.ErrUnknownTenant)

	types, err := store.Types(ctx, tenant)
	require.NoError(t, err)
	assert.Equal(t, []string{"contact", "meeting", "assignment"}, types)

	got, err := store.Search(ctx, tenant, "", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dwight Schrute", "Jim H.", "Conference Room All Hands", "Follow up with David"}, labels(got))

	got, err = store.Search(ctx, tenant, "MEETING conf", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Conference Room All Hands"}, labels(got))

	_, err = mention.ParseAndValidate(ctx, mentionsPayload(ref("contact", dwightID, "x")), directory.NewValidator(store, tenant))
	require.NoError(t, err)
}
