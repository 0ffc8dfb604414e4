package pg_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mentionkit/pkg/pg"
)

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	assert.False(t, pg.IsNotFoundError(nil))
	assert.False(t, pg.IsNotFoundError(errors.New("boom")))
	assert.True(t, pg.IsNotFoundError(pgx.ErrNoRows))
	assert.True(t, pg.IsNotFoundError(fmt.Errorf("lookup: %w", pgx.ErrNoRows)))
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	ok := pg.Healthcheck(pingFunc(func(context.Context) error { return nil }))
	require.NoError(t, ok(context.Background()))

	down := errors.New("connection refused")
	failing := pg.Healthcheck(pingFunc(func(context.Context) error { return down }))
	err := failing(context.Background())
	assert.ErrorIs(t, err, pg.ErrHealthcheckFailed)
	assert.ErrorIs(t, err, down)
}

func TestConnect_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := pg.Connect(context.Background(), pg.Config{})
	assert.ErrorIs(t, err, pg.ErrEmptyConnectionString)

	_, err = pg.Connect(context.Background(), pg.Config{ConnectionString: "postgres://%zz"})
	assert.ErrorIs(t, err, pg.ErrFailedToParseDBConfig)
}

func TestMigrate_NilFilesystem(t *testing.T) {
	t.Parallel()

	err := pg.Migrate(context.Background(), nil, nil, pg.Config{}, nil)
	assert.ErrorIs(t, err, pg.ErrFailedToApplyMigrations)
	assert.ErrorIs(t, err, pg.ErrMigrationsNotProvided)
}
