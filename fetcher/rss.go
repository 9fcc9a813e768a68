package fetcher

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"gazette/models"
)

const maxRSSItems = 200

// MakeID derives a stable 16-hex-character GUID from a URL.
func MakeID(url string) string {
	sum := sha1.Sum([]byte(url))
	return hex.EncodeToString(sum[:])[:16]
}

// UnifiedRSS renders the collected items as a single RSS 2.0 document so the
// daily feed can be followed from a regular reader.
func UnifiedRSS(items []models.Item, now time.Time, siteTitle string) string {
	if len(items) > maxRSSItems {
		items = items[:maxRSSItems]
	}
	nowStr := now.Format(time.RFC1123Z)

	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<rss version=\"2.0\">\n<channel>\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", escapeXML(siteTitle))
	b.WriteString("<link>https://example.com/</link>\n")
	b.WriteString("<description>Unified feed generated daily</description>\n")
	fmt.Fprintf(&b, "<lastBuildDate>%s</lastBuildDate>\n", nowStr)

	for _, item := range items {
		pubDate := nowStr
		if t, err := time.Parse(time.RFC3339, item.PublishedAt); err == nil {
			pubDate = t.Format(time.RFC1123Z)
		}

		b.WriteString("<item>\n")
		fmt.Fprintf(&b, "<title>%s</title>\n", escapeXML(item.Title))
		fmt.Fprintf(&b, "<link>%s</link>\n", escapeXML(item.URL))
		fmt.Fprintf(&b, "<guid isPermaLink=\"false\">%s</guid>\n", MakeID(item.URL))
		fmt.Fprintf(&b, "<pubDate>%s</pubDate>\n", pubDate)
		if item.Summary != "" {
			fmt.Fprintf(&b, "<description>%s</description>\n", escapeXML(item.Summary))
		}
		b.WriteString("</item>\n")
	}

	b.WriteString("</channel>\n</rss>\n")
	return b.String()
}

func escapeXML(s string) string {
	var b strings.Builder
	// xml.EscapeText only fails on writer errors, which strings.Builder
	// never returns
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
