package offerup

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jmespath/go-jmespath"
)

// ListingRecord is the normalized output of a scrape. Title is always
// non-empty on success; every other field may be empty or nil.
type ListingRecord struct {
	Title               string  `json:"title"`
	Description         string  `json:"description"`
	FirstImageURL       *string `json:"first_image_url"`
	Price               string  `json:"price"`
	Location            string  `json:"location"`
	SellerName          string  `json:"seller_name"`
	ListingID           string  `json:"listing_id"`
	DownloadedImagePath *string `json:"downloaded_image_path,omitempty"`
}

// ParseListing navigates the embedded payload down to the listing entry
// under ROOT_QUERY and assembles the normalized record. The payload has no
// fixed schema, so every read is guarded; only a missing listing entry or a
// missing title is fatal.
func ParseListing(payload map[string]any) (*ListingRecord, error) {
	state, err := search("props.pageProps.initialApolloState", payload)
	if err != nil {
		return nil, err
	}
	stateMap, ok := state.(map[string]any)
	if !ok {
		return nil, newError(KindListingMissing, "could not find listing data in JSON structure")
	}
	rootQuery, ok := stateMap["ROOT_QUERY"].(map[string]any)
	if !ok {
		return nil, newError(KindListingMissing, "could not find listing data in JSON structure")
	}

	// the listing lives under a serialized query-signature key like
	// "listing({\"listingId\":...})"; any key with the prefix is the one
	var listing map[string]any
	for k, v := range rootQuery {
		if strings.HasPrefix(k, "listing(") {
			if m, ok := v.(map[string]any); ok {
				listing = m
				break
			}
		}
	}
	if listing == nil {
		return nil, newError(KindListingMissing, "could not find listing data in JSON structure")
	}

	title := scalarString(listing["title"])
	if title == "" {
		return nil, newError(KindTitleMissing, "title not found in listing data")
	}

	rec := &ListingRecord{
		Title:       title,
		Description: scalarString(listing["description"]),
		Price:       scalarString(listing["price"]),
		ListingID:   scalarString(listing["listingId"]),
	}

	loc, err := search("locationDetails.locationName", listing)
	if err != nil {
		return nil, err
	}
	rec.Location = scalarString(loc)

	img, err := search("photos[0].detailFull.url", listing)
	if err != nil {
		return nil, err
	}
	if s := scalarString(img); s != "" {
		rec.FirstImageURL = &s
	}

	// resolve the seller display name through the User:<id> sibling entry;
	// any broken link in the chain just leaves the name empty
	if id := ownerID(listing["owner"]); id != "" {
		if user, ok := stateMap["User:"+id].(map[string]any); ok {
			name, err := search("profile.name", user)
			if err != nil {
				return nil, err
			}
			rec.SellerName = scalarString(name)
		}
	}

	return rec, nil
}

func search(expr string, data any) (any, error) {
	res, err := jmespath.Search(expr, data)
	if err != nil {
		return nil, wrapError(KindParse, fmt.Sprintf("error navigating listing payload at %q", expr), err)
	}
	return res, nil
}

// ownerID normalizes the polymorphic owner shape into a single id. Inline
// owner objects carry an id, reference objects carry "__ref": "User:<id>",
// and a bare string is treated as a reference.
func ownerID(v any) string {
	switch owner := v.(type) {
	case map[string]any:
		if id, ok := owner["id"].(string); ok && id != "" {
			return id
		}
		if ref, ok := owner["__ref"].(string); ok {
			return refID(ref)
		}
	case string:
		return refID(owner)
	}
	return ""
}

func refID(ref string) string {
	parts := strings.Split(ref, ":")
	return parts[len(parts)-1]
}

// scalarString renders a scalar payload value in its raw string form.
// Prices arrive as JSON numbers on some pages.
func scalarString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return ""
	}
}
