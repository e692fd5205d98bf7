// Package httpserver runs an http.Handler until its context is cancelled and
// then shuts it down gracefully.
//
//	srv := httpserver.New(cfg, router, log)
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	if err := srv.Run(ctx); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Liveness and Readiness provide the probe endpoints.
package httpserver
