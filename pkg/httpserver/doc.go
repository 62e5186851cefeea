// Package httpserver runs the editor's HTTP handler with timeouts taken from
// the environment and shuts it down gracefully on context cancellation or
// SIGINT/SIGTERM.
//
//	srv := httpserver.New(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
package httpserver
