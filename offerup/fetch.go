package offerup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net"
	"net/http"
	"net/http/cookiejar"
	"time"

	"golang.org/x/net/publicsuffix"
)

// Fetcher performs the page request with a bounded exponential-backoff
// retry on timeouts. HTTP status errors and connection failures are never
// retried.
type Fetcher struct {
	cfg    *Config
	client *http.Client
	logger *slog.Logger

	// sleep is swapped out in tests to observe the backoff schedule.
	sleep func(time.Duration)
}

func NewFetcher(cfg *Config, l *slog.Logger) (*Fetcher, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}
	client := &http.Client{
		Jar: jar,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{Timeout: cfg.ConnectTimeout}).DialContext,
		},
		Timeout: cfg.RequestTimeout,
	}
	return &Fetcher{cfg: cfg, client: client, logger: l, sleep: time.Sleep}, nil
}

// Fetch GETs url and returns the response body text. Timeouts are retried
// up to MaxRetryAttempts with waits of RetryBackoffFactor^0, ^1, ...
// seconds; any other failure returns immediately with its classification.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= f.cfg.MaxRetryAttempts; attempt++ {
		f.logger.Info("fetching page", "url", url, "attempt", attempt, "max_attempts", f.cfg.MaxRetryAttempts)
		body, err := f.doRequest(ctx, url)
		if err == nil {
			f.logger.Info("page fetched", "bytes", len(body))
			return body, nil
		}
		if IsScraperError(err) {
			// HTTP status classification, fail immediately
			return "", err
		}
		if ctx.Err() != nil {
			return "", wrapError(KindInterrupted, "fetch interrupted", err)
		}
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			lastErr = err
			if attempt < f.cfg.MaxRetryAttempts {
				wait := backoffWait(f.cfg.RetryBackoffFactor, attempt)
				f.logger.Info("request timed out, backing off", "wait", wait.String())
				f.sleep(wait)
			}
			continue
		}
		return "", wrapError(KindConnection, "connection error, check your internet connection", err)
	}
	return "", wrapError(KindTimeout, fmt.Sprintf("request timed out after %d attempts", f.cfg.MaxRetryAttempts), lastErr)
}

func (f *Fetcher) doRequest(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	for k, v := range f.cfg.requestHeaders() {
		req.Header.Set(k, v)
	}
	res, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", classifyStatus(res.StatusCode)
	}
	b, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func classifyStatus(code int) *Error {
	switch {
	case code == http.StatusNotFound:
		return &Error{Kind: KindNotFound, StatusCode: code, msg: "listing not found (404), it may have been removed"}
	case code == http.StatusForbidden:
		return &Error{Kind: KindForbidden, StatusCode: code, msg: "access forbidden (403), you may be rate-limited"}
	case code >= 500:
		return &Error{Kind: KindServerError, StatusCode: code, msg: fmt.Sprintf("server error (%d), try again later", code)}
	default:
		return &Error{Kind: KindHTTPError, StatusCode: code, msg: fmt.Sprintf("HTTP error %d", code)}
	}
}

func backoffWait(factor, attempt int) time.Duration {
	return time.Duration(math.Pow(float64(factor), float64(attempt-1))) * time.Second
}
