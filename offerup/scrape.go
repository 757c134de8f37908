// Package offerup implements the listing-scrape pipeline: validate the URL,
// fetch the page, extract the embedded JSON payload, parse it into a
// normalized record, and optionally download the first photo.
package offerup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

// ScrapeOptions controls the optional image-download side effect of a
// single scrape.
type ScrapeOptions struct {
	DownloadImage bool
	// ImageDir overrides the configured image directory when non-empty.
	ImageDir string
}

// Scraper runs the pipeline. It is safe to reuse across invocations; each
// Scrape call is independent.
type Scraper struct {
	cfg         *Config
	fetcher     *Fetcher
	imageClient *http.Client
	logger      *slog.Logger
}

func NewScraper(cfg *Config, l *slog.Logger) (*Scraper, error) {
	f, err := NewFetcher(cfg, l)
	if err != nil {
		return nil, err
	}
	return &Scraper{
		cfg:         cfg,
		fetcher:     f,
		imageClient: &http.Client{Timeout: cfg.ImageTimeout},
		logger:      l,
	}, nil
}

// Scrape runs the stages strictly in sequence; the first failure is
// terminal and no partial record is returned. Image download is the one
// best-effort stage: its failure only leaves DownloadedImagePath unset.
func (s *Scraper) Scrape(ctx context.Context, rawURL string, opts ScrapeOptions) (*ListingRecord, error) {
	lu, err := validateURLForHost(rawURL, s.cfg.Domain)
	if err != nil {
		return nil, err
	}
	s.logger.Info("valid listing URL", "listing_id", lu.ListingID)

	html, err := s.fetcher.Fetch(ctx, lu.URL)
	if err != nil {
		return nil, err
	}

	payload, err := ExtractPayload(html)
	if err != nil {
		return nil, err
	}
	s.logger.Info("payload extracted")

	rec, err := ParseListing(payload)
	if err != nil {
		return nil, err
	}
	s.logger.Info("listing parsed", "title", rec.Title)

	if opts.DownloadImage && rec.FirstImageURL != nil && *rec.FirstImageURL != "" {
		dir := opts.ImageDir
		if dir == "" {
			dir = s.cfg.ImageDir
		}
		filename := fmt.Sprintf("%s_%s.jpg", SanitizeFilename(rec.Title, s.cfg.MaxFilenameLength), rec.ListingID)
		path, err := s.downloadImage(ctx, *rec.FirstImageURL, dir, filename)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return nil, wrapError(KindInterrupted, "image download interrupted", err)
			}
			s.logger.Warn("image download failed", "error", err.Error())
		} else {
			s.logger.Info("image saved", "path", path)
			rec.DownloadedImagePath = &path
		}
	}

	return rec, nil
}
