package feed

import (
	"html"
	"regexp"
	"strings"
)

// Pre-compiled expressions for the plain-text projection.
var (
	scriptTag = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	allTags   = regexp.MustCompile(`<[^>]*>`)
	multiWS   = regexp.MustCompile(`\s+`)
)

// PlainText projects HTML to searchable plain text. Script and style blocks
// are dropped entirely, every other tag collapses to a single space, entities
// are decoded and whitespace runs collapse to one space.
func PlainText(content string) string {
	content = scriptTag.ReplaceAllString(content, " ")
	content = styleTag.ReplaceAllString(content, " ")
	content = allTags.ReplaceAllString(content, " ")
	content = html.UnescapeString(content)
	content = multiWS.ReplaceAllString(content, " ")
	return strings.TrimSpace(content)
}
