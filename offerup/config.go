package offerup

import "time"

const defaultDomain = "offerup.com"

// payloadScriptID is the id of the script element that carries the embedded
// Next.js JSON payload on listing pages.
const payloadScriptID = "__NEXT_DATA__"

type Config struct {
	// Domain is the host the validator accepts listing URLs for.
	Domain    string
	UserAgent string

	// ConnectTimeout bounds dialing, RequestTimeout bounds the whole page
	// request, ImageTimeout bounds the image download.
	ConnectTimeout time.Duration
	RequestTimeout time.Duration
	ImageTimeout   time.Duration

	// MaxRetryAttempts is the total number of fetch attempts on repeated
	// timeouts. RetryBackoffFactor gives waits of factor^0, factor^1, ...
	// seconds between them.
	MaxRetryAttempts   int
	RetryBackoffFactor int

	ImageDir          string
	MaxFilenameLength int
}

func DefaultConfig() *Config {
	return &Config{
		Domain:             defaultDomain,
		UserAgent:          "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/141.0.0.0 Safari/537.36",
		ConnectTimeout:     10 * time.Second,
		RequestTimeout:     15 * time.Second,
		ImageTimeout:       30 * time.Second,
		MaxRetryAttempts:   3,
		RetryBackoffFactor: 2,
		ImageDir:           "downloaded_images",
		MaxFilenameLength:  200,
	}
}

// requestHeaders returns the browser-like header set sent with every page
// request. Accept-Encoding is intentionally left to the transport so that
// gzip responses are decompressed transparently.
func (c *Config) requestHeaders() map[string]string {
	return map[string]string{
		"User-Agent":                c.UserAgent,
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
		"Accept-Language":           "en-US,en;q=0.5",
		"Connection":                "keep-alive",
		"Upgrade-Insecure-Requests": "1",
	}
}
