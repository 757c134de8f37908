package server

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
)

// allowedOrigins covers the local dev frontends that consume this API.
func allowedOrigins() []string {
	return []string{"http://localhost:5173", "http://localhost:3000"}
}

func getRootHandler(l *slog.Logger, s ListingScraper) http.Handler {
	r := mux.NewRouter()
	maxBytes := int64(1048576)
	headers := []string{"Content-Type", "Authorization"}
	methods := []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	origins := allowedOrigins()

	// the scrape routes only require a bearer token when a server secret is
	// configured
	auth := func() handlerAdapter {
		if getSecretKey() == "" {
			return func(next http.HandlerFunc) http.HandlerFunc { return next }
		}
		return mustAuth()
	}

	r.Handle("/api/health", adaptHandler(
		handleHealth(),
		apiMode(l, maxBytes, headers, methods, origins),
	)).Methods(http.MethodGet)
	r.Handle("/token", adaptHandler(
		handleIssueToken(l),
		apiMode(l, maxBytes, headers, methods, origins),
		// no token required here
	)).Methods(http.MethodPost)

	r.Handle("/api/scrape", adaptHandler(
		handleScrape(l, s),
		apiMode(l, maxBytes, headers, methods, origins),
		auth(),
	)).Methods(http.MethodPost)
	r.Handle("/api/test", adaptHandler(
		handleTest(l, s),
		apiMode(l, maxBytes, headers, methods, origins),
		auth(),
	)).Methods(http.MethodGet)
	return r
}
