// Package httpserver runs an http.Handler with graceful shutdown.
//
// Run binds the listener itself so callers can ask for ":0" and read the
// chosen address from Addr once Ready is closed. It blocks until the context
// is cancelled, one of the configured signals (os.Interrupt and SIGTERM by
// default) arrives or Shutdown is called, then drains in-flight requests for
// at most the shutdown timeout.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Listen failures are wrapped with ErrStart and drain failures with
// ErrShutdown; match them with errors.Is.
package httpserver
