package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kilianp07/libscan/infra/logger"
)

// StartPromServer serves Prometheus metrics on addr until ctx is canceled.
func StartPromServer(ctx context.Context, addr string) error {
	return Serve(ctx, addr, nil)
}

// Serve exposes /metrics together with routes on addr until ctx is canceled.
// A dedicated ServeMux is used to avoid interfering with other handlers.
func Serve(ctx context.Context, addr string, routes map[string]http.Handler) error {
	log := logger.New("http-server")
	srv := &http.Server{Addr: addr, Handler: NewMux(routes), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("server shutdown: %v", err)
		}
		cancel()
	}()
	log.Infof("serving on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// NewMux returns a ServeMux with /metrics and the given routes mounted.
func NewMux(routes map[string]http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	for pattern, h := range routes {
		mux.Handle(pattern, h)
	}
	return mux
}
