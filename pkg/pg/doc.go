// Package pg connects to PostgreSQL with pgx/v5 and applies goose migrations.
//
// It backs the PostgreSQL directory store:
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, directory.Migrations, cfg, log); err != nil {
//		return err
//	}
//
// Connect retries with a linearly growing delay so that the service can start
// alongside the database. Healthcheck adapts the pool to the readiness probe
// signature used by the HTTP server.
package pg
