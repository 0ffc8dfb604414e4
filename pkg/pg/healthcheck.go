package pg

import (
	"context"
	"errors"
)

// Pinger is the part of *pgxpool.Pool used by Healthcheck.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Healthcheck returns a readiness probe for the pool.
func Healthcheck(conn Pinger) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := conn.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
