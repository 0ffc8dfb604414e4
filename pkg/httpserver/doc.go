// Package httpserver runs an http.Handler with graceful shutdown.
//
// Server binds its listener before serving, so address errors surface from
// Run as ErrStart instead of being lost in a goroutine. Run blocks until its
// context is cancelled, SIGINT/SIGTERM arrives (see WithSignalHandling) or
// Shutdown is called, then drains in-flight requests within the shutdown
// timeout.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server exited", logger.Error(err))
//	}
//
// HealthCheckHandler serves JSON liveness and readiness probes built from
// named Check values such as pg.Healthcheck and redis.Healthcheck.
package httpserver
