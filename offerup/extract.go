package offerup

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractPayload locates the embedded JSON payload in a listing page and
// decodes it. A missing script element, an empty one, and a decode failure
// are distinct classifications.
func ExtractPayload(html string) (map[string]any, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, wrapError(KindPayloadMissing, "could not parse page HTML", err)
	}
	sel := doc.Find("script#" + payloadScriptID)
	if sel.Length() == 0 {
		return nil, newError(KindPayloadMissing, fmt.Sprintf(
			"could not find script element with id=%q, page structure may have changed", payloadScriptID))
	}
	text := sel.First().Text()
	if strings.TrimSpace(text) == "" {
		return nil, newError(KindPayloadEmpty, "payload script element found but contains no content")
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, wrapError(KindPayloadDecode, "failed to decode embedded JSON payload", err)
	}
	return payload, nil
}
