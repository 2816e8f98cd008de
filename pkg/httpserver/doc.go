// Package httpserver runs an http.Handler with graceful shutdown.
//
// Run binds the listener first, so address errors surface immediately, then
// serves until the context is cancelled or SIGINT/SIGTERM is received. Shutdown
// drains in-flight requests within the shutdown timeout and then runs the stop
// hooks, which is where storage clients are closed.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP,
//		httpserver.WithLogger(log),
//		httpserver.WithStopHook(func(context.Context) error { return rdb.Close() }),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// HealthCheckHandler serves liveness and readiness probes as JSON.
package httpserver
