package blog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Airport transfers made easy":  "airport-transfers-made-easy",
		"  Spaces   everywhere  ":      "spaces-everywhere",
		"Top 10 routes in 2025!":       "top-10-routes-in-2025",
		"CAPS & punctuation?!":         "caps-punctuation",
		"---":                          "",
		"":                             "",
		"already-a-slug":               "already-a-slug",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "input %q", in)
	}
}
