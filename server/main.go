// Package server exposes the scrape pipeline over a small JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

func RunHTTPServer(ctx context.Context, l *slog.Logger, s ListingScraper, port string) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: getRootHandler(l, s),
	}

	errCh := make(chan error, 1)
	go func() {
		l.Info("listening", "port", port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		sdCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(sdCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return ctx.Err()
	}
}
