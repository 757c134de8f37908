package offerup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "punctuation and spaces", in: "My Couch: For Sale!", want: "My_Couch_For_Sale!"},
		{name: "path separators", in: `a/b\c`, want: "abc"},
		{name: "collapses underscore runs", in: "a  b__c", want: "a_b_c"},
		{name: "trims underscores", in: " leading and trailing ", want: "leading_and_trailing"},
		{name: "all invalid chars", in: `<>:"/\|?*`, want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SanitizeFilename(tc.in, 200))
		})
	}
}

func TestSanitizeFilenameMaxLength(t *testing.T) {
	got := SanitizeFilename(strings.Repeat("a", 300), 200)
	assert.Len(t, got, 200)
}
