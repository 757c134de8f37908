package offerup

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// listingIDPattern matches the listing identifier in a detail-page path.
var listingIDPattern = regexp.MustCompile(`/item/detail/([a-f0-9-]+)`)

// ListingURL is a validated listing URL with the identifier recovered from
// its path.
type ListingURL struct {
	URL       string
	ListingID string
}

// ValidateURL checks that raw names a listing on the default domain and
// extracts its identifier.
func ValidateURL(raw string) (ListingURL, error) {
	return validateURLForHost(raw, defaultDomain)
}

func validateURLForHost(raw, domain string) (ListingURL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ListingURL{}, newError(KindInvalidURL, "URL must be a non-empty string")
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ListingURL{}, newError(KindInvalidURL, invalidURLMessage(domain))
	}
	host := strings.ToLower(u.Hostname())
	if host != domain && !strings.HasSuffix(host, "."+domain) {
		return ListingURL{}, newError(KindInvalidURL, invalidURLMessage(domain))
	}
	m := listingIDPattern.FindStringSubmatch(u.Path)
	if m == nil {
		return ListingURL{}, newError(KindInvalidURL, invalidURLMessage(domain))
	}
	return ListingURL{URL: raw, ListingID: m[1]}, nil
}

func invalidURLMessage(domain string) string {
	return fmt.Sprintf("invalid listing URL, must be in format: https://%s/item/detail/[listing-id]", domain)
}
