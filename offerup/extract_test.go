package offerup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// goodPageHTML is a minimal listing page carrying a well-formed payload.
const goodPageHTML = `<!DOCTYPE html>
<html>
<head><title>Listing</title></head>
<body>
  <div id="app">content</div>
  <script id="__NEXT_DATA__" type="application/json">{"props":{"pageProps":{}}}</script>
</body>
</html>`

// noScriptHTML lacks the payload script element entirely.
const noScriptHTML = `<!DOCTYPE html>
<html>
<head><title>Listing</title></head>
<body><script type="application/json">{"unrelated":true}</script></body>
</html>`

// emptyScriptHTML has the payload element but no content inside it.
const emptyScriptHTML = `<!DOCTYPE html>
<html>
<body><script id="__NEXT_DATA__" type="application/json"></script></body>
</html>`

// malformedScriptHTML has the payload element with broken JSON inside.
const malformedScriptHTML = `<!DOCTYPE html>
<html>
<body><script id="__NEXT_DATA__" type="application/json">{"props": {</script></body>
</html>`

func TestExtractPayload(t *testing.T) {
	payload, err := ExtractPayload(goodPageHTML)
	require.NoError(t, err)
	assert.Contains(t, payload, "props")
}

func TestExtractPayloadMissingElement(t *testing.T) {
	_, err := ExtractPayload(noScriptHTML)
	require.Error(t, err)
	assert.Equal(t, KindPayloadMissing, ErrorKind(err))
	assert.Contains(t, err.Error(), "page structure may have changed")
}

func TestExtractPayloadEmptyElement(t *testing.T) {
	_, err := ExtractPayload(emptyScriptHTML)
	require.Error(t, err)
	assert.Equal(t, KindPayloadEmpty, ErrorKind(err))
}

func TestExtractPayloadDecodeError(t *testing.T) {
	_, err := ExtractPayload(malformedScriptHTML)
	require.Error(t, err)
	assert.Equal(t, KindPayloadDecode, ErrorKind(err))
}

// the two extraction failure modes must remain distinguishable
func TestExtractPayloadFailureModesDistinct(t *testing.T) {
	_, missingErr := ExtractPayload(noScriptHTML)
	_, decodeErr := ExtractPayload(malformedScriptHTML)
	assert.NotEqual(t, ErrorKind(missingErr), ErrorKind(decodeErr))
}
