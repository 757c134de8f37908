package offerup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateURL(t *testing.T) {
	cases := []struct {
		name   string
		url    string
		wantID string
	}{
		{
			name:   "canonical",
			url:    "https://offerup.com/item/detail/4bc65998-e110-3dc8-b0d9-89bbbafd8994",
			wantID: "4bc65998-e110-3dc8-b0d9-89bbbafd8994",
		},
		{
			name:   "www subdomain",
			url:    "https://www.offerup.com/item/detail/abc123",
			wantID: "abc123",
		},
		{
			name:   "surrounding whitespace",
			url:    "  https://offerup.com/item/detail/abc-123  ",
			wantID: "abc-123",
		},
		{
			name:   "uppercase host",
			url:    "https://OFFERUP.COM/item/detail/deadbeef",
			wantID: "deadbeef",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lu, err := ValidateURL(tc.url)
			require.NoError(t, err)
			assert.Equal(t, tc.wantID, lu.ListingID)
		})
	}
}

func TestValidateURLRejects(t *testing.T) {
	cases := []struct {
		name string
		url  string
	}{
		{name: "empty", url: ""},
		{name: "whitespace only", url: "   "},
		{name: "wrong domain", url: "https://example.com/item/detail/abc-123"},
		{name: "lookalike domain", url: "https://myofferup.com/item/detail/abc-123"},
		{name: "no detail path", url: "https://offerup.com/"},
		{name: "non-hex id", url: "https://offerup.com/item/detail/XYZ"},
		{name: "missing scheme", url: "offerup.com/item/detail/abc-123"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateURL(tc.url)
			require.Error(t, err)
			assert.Equal(t, KindInvalidURL, ErrorKind(err))
		})
	}
}

func TestValidateURLIdempotent(t *testing.T) {
	url := "https://offerup.com/item/detail/4bc65998-e110-3dc8-b0d9-89bbbafd8994"
	first, err := ValidateURL(url)
	require.NoError(t, err)
	second, err := ValidateURL(first.URL)
	require.NoError(t, err)
	assert.Equal(t, first.ListingID, second.ListingID)
}
