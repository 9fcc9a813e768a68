package fetcher

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"gazette/models"
)

var whitespaceRuns = regexp.MustCompile(`\s+`)

// StripWhitespace collapses whitespace runs to a single space and trims.
func StripWhitespace(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(whitespaceRuns.ReplaceAllString(s, " "))
}

// CleanURL strips query parameters and fragments, mostly tracking noise.
func CleanURL(raw string) string {
	if raw == "" {
		return raw
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	parsed.RawQuery = ""
	parsed.Fragment = ""
	return parsed.String()
}

// Normalize deduplicates by URL keeping the first occurrence and filters to
// items published today in the given timezone. Items without a parseable
// published time are kept and shown without one. The result is sorted newest
// first, undated items last.
func Normalize(items []models.Item, now time.Time, tz *time.Location) []models.Item {
	start := time.Date(now.In(tz).Year(), now.In(tz).Month(), now.In(tz).Day(), 0, 0, 0, 0, tz)
	end := start.AddDate(0, 0, 1)

	seen := make(map[string]bool, len(items))
	var today []models.Item
	for _, item := range items {
		if item.URL == "" || seen[item.URL] {
			continue
		}
		seen[item.URL] = true

		published, ok := parsePublished(item.PublishedAt, tz)
		if ok && (published.Before(start) || !published.Before(end)) {
			continue
		}
		today = append(today, item)
	}

	sort.SliceStable(today, func(i, j int) bool {
		ti, iok := parsePublished(today[i].PublishedAt, tz)
		tj, jok := parsePublished(today[j].PublishedAt, tz)
		if iok != jok {
			return iok
		}
		return ti.After(tj)
	})

	return today
}

func parsePublished(value string, tz *time.Location) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false
	}
	return t.In(tz), true
}
