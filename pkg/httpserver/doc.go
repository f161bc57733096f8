// Package httpserver runs an http.Handler with graceful shutdown and exposes
// liveness/readiness handlers.
//
// Run blocks until the context is cancelled, SIGINT/SIGTERM arrives or the
// listener fails, then drains in-flight requests within the shutdown timeout:
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	return srv.Run(ctx, router)
//
// HealthCheckHandler reports readiness of named dependencies such as the
// Postgres pool or the Redis client.
package httpserver
