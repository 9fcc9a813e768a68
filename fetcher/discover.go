package fetcher

import (
	"bytes"
	"net/url"
	"strings"

	"gazette/models"

	"github.com/PuerkitoBio/goquery"
)

// DiscoverFeedLinks finds advertised RSS/Atom feeds in a homepage. Looks at
// link rel=alternate elements first, then anchors whose href hints at a
// feed. Results are absolute URLs, deduplicated preserving order.
func DiscoverFeedLinks(html []byte, baseURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, err
	}

	var feeds []string

	doc.Find(`link[rel="alternate"], link[rel="ALTERNATE"]`).Each(func(_ int, sel *goquery.Selection) {
		linkType := strings.ToLower(sel.AttrOr("type", ""))
		if !strings.Contains(linkType, "rss") && !strings.Contains(linkType, "atom") && !strings.Contains(linkType, "xml") {
			return
		}
		if href := sel.AttrOr("href", ""); href != "" {
			feeds = append(feeds, resolveURL(baseURL, href))
		}
	})

	// Some sites only expose the feed in a plain anchor
	doc.Find("a").Each(func(_ int, sel *goquery.Selection) {
		href := sel.AttrOr("href", "")
		if href == "" {
			return
		}
		lower := strings.ToLower(href)
		for _, hint := range []string{"/feed", "rss", "atom", ".xml"} {
			if strings.Contains(lower, hint) {
				feeds = append(feeds, resolveURL(baseURL, href))
				return
			}
		}
	})

	seen := make(map[string]bool, len(feeds))
	var uniq []string
	for _, u := range feeds {
		if !seen[u] {
			uniq = append(uniq, u)
			seen[u] = true
		}
	}
	return uniq, nil
}

// ScrapeItems extracts title+link items from a homepage using the source's
// CSS selector. Used when no feed was discovered; published times are
// unknown at page-list level.
func ScrapeItems(html []byte, baseURL string, selector string) ([]models.Item, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, err
	}

	if selector == "" {
		selector = "a"
	}

	var items []models.Item
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		href := sel.AttrOr("href", "")
		title := StripWhitespace(sel.Text())
		if href == "" || title == "" {
			return
		}
		items = append(items, models.Item{
			Title: title,
			URL:   CleanURL(resolveURL(baseURL, href)),
		})
	})
	return items, nil
}

func resolveURL(base string, href string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(ref).String()
}
