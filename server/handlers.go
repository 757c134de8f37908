package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/brojonat/gofferup/offerup"
)

// sampleListingURL backs the /api/test route.
const sampleListingURL = "https://offerup.com/item/detail/4bc65998-e110-3dc8-b0d9-89bbbafd8994"

// ListingScraper is the pipeline the API fronts.
type ListingScraper interface {
	Scrape(ctx context.Context, url string, opts offerup.ScrapeOptions) (*offerup.ListingRecord, error)
}

func writeInternalError(l *slog.Logger, w http.ResponseWriter, e error) {
	var pcs [1]uintptr
	runtime.Callers(2, pcs[:]) // skip [Callers, Infof]
	r := slog.NewRecord(time.Now(), slog.LevelError, e.Error(), pcs[0])
	_ = l.Handler().Handle(context.Background(), r)
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(DefaultJSONResponse{Error: "internal error"})
}

func writeServerError(l *slog.Logger, w http.ResponseWriter, e error) {
	l.Error("unexpected error handling scrape", "error", e.Error())
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(ScrapeResponse{
		Success:   false,
		Error:     fmt.Sprintf("unexpected error: %s", e.Error()),
		ErrorType: "server_error",
	})
}

func handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(HealthResponse{
			Status:  "healthy",
			Message: "scraper API is running",
		})
	}
}

func handleScrape(l *slog.Logger, s ListingScraper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body ScrapeRequestBody
		if err := decodeJSONBody(r, &body); err != nil {
			var mr *MalformedRequest
			if errors.As(err, &mr) {
				w.WriteHeader(mr.Status)
				json.NewEncoder(w).Encode(ScrapeResponse{Success: false, Error: mr.Msg})
			} else {
				writeInternalError(l, w, err)
			}
			return
		}
		if body.URL == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ScrapeResponse{Success: false, Error: "url parameter is required"})
			return
		}

		l.Info("scrape request received", "url", body.URL, "download_image", body.DownloadImage)
		rec, err := s.Scrape(r.Context(), body.URL, offerup.ScrapeOptions{DownloadImage: body.DownloadImage})
		if err != nil {
			if offerup.IsScraperError(err) {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(ScrapeResponse{Success: false, Error: err.Error(), ErrorType: "scraper_error"})
				return
			}
			writeServerError(l, w, err)
			return
		}
		l.Info("scrape successful", "title", rec.Title)
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(ScrapeResponse{Success: true, Data: rec})
	}
}

// handleTest runs the pipeline against a fixed sample listing.
func handleTest(l *slog.Logger, s ListingScraper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := s.Scrape(r.Context(), sampleListingURL, offerup.ScrapeOptions{})
		if err != nil {
			l.Error("test scrape failed", "error", err.Error())
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ScrapeResponse{Success: false, Error: err.Error()})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(ScrapeResponse{Success: true, Message: "test scrape successful", Data: rec})
	}
}

// handleIssueToken returns a bearer token for the scrape routes
func handleIssueToken(l *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t := r.Header.Get("Authorization")
		if t == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(DefaultJSONResponse{Error: "must supply authorization header"})
			return
		}
		email := r.URL.Query().Get("email")
		if email == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(DefaultJSONResponse{Error: "must supply email"})
			return
		}
		if t != getSecretKey() {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(DefaultJSONResponse{Error: "not authorized"})
			return
		}
		sc := jwtStandardClaims(2 * 7 * 24 * time.Hour)
		c := authJWTClaims{
			StandardClaims: sc,
			Email:          email,
		}
		token, err := generateAccessToken(c)
		if err != nil {
			writeInternalError(l, w, err)
			return
		}
		l.Warn("issuing token", "email", email)
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(DefaultJSONResponse{Message: token})
	}
}
