package feed_test

import (
	"testing"

	"gazette/feed"

	"github.com/stretchr/testify/assert"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{
			name:     "empty string",
			html:     "",
			expected: "",
		},
		{
			name:     "plain text untouched",
			html:     "no markup here",
			expected: "no markup here",
		},
		{
			name:     "tags collapse to single spaces",
			html:     "<p>first</p><p>second</p>",
			expected: "first second",
		},
		{
			name:     "nested markup",
			html:     "<div><strong>bold</strong> and <em>italic</em></div>",
			expected: "bold and italic",
		},
		{
			name:     "script content dropped",
			html:     "<p>visible</p><script>alert('hidden')</script>",
			expected: "visible",
		},
		{
			name:     "style content dropped",
			html:     "<style>.card { color: red }</style>text",
			expected: "text",
		},
		{
			name:     "entities decoded",
			html:     "Treasury &amp; Finance",
			expected: "Treasury & Finance",
		},
		{
			name:     "whitespace runs collapsed",
			html:     "spaced\n\n   out\ttext",
			expected: "spaced out text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, feed.PlainText(tt.html))
		})
	}
}
