package feed

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"regexp"
	"sort"
	"time"

	"gazette/models"

	"github.com/microcosm-cc/bluemonday"
	"github.com/samber/lo"
)

//go:embed templates/*
var templates embed.FS

var pageTemplate = template.Must(template.ParseFS(templates, "templates/page.html"))

// All feed content is untrusted. Bodies pass through this policy before they
// are handed to the template as pre-escaped HTML.
var sanitizer = bluemonday.UGCPolicy()

const timestampLayout = "02 Jan 2006 15:04"

// Card is one rendered announcement.
type Card struct {
	Title     string
	URL       string
	Source    string
	Published string
	BodyHTML  template.HTML
	BodyText  string
}

// PageView is everything the page template consumes. Each render fully
// replaces the display region, there is no incremental diffing.
type PageView struct {
	SiteTitle   string
	Subtitle    string
	Query       string
	Source      string
	Sources     []string
	Cards       []Card
	Diagnostics []string
	Summary     string
	LoadError   string
}

// BuildPage converts the visible subset plus feed metadata into a view.
func BuildPage(siteTitle string, doc *models.FeedDocument, visible []models.Item, query string, source string) PageView {
	view := PageView{
		SiteTitle: siteTitle,
		Subtitle:  subtitle(doc),
		Query:     query,
		Source:    source,
		Sources:   SourceOptions(doc.Items),
		Summary:   fmt.Sprintf("%d announcements · generated %s", len(visible), formatGeneratedAt(doc.GeneratedAt)),
	}

	for _, record := range doc.Errors {
		raw, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			raw = []byte(fmt.Sprintf("%v", record))
		}
		view.Diagnostics = append(view.Diagnostics, string(raw))
	}

	for _, item := range visible {
		view.Cards = append(view.Cards, buildCard(item))
	}

	return view
}

// BuildErrorPage is the terminal state after a load failure. No partial
// rendering happens, only the error card.
func BuildErrorPage(siteTitle string, err error) PageView {
	return PageView{
		SiteTitle: siteTitle,
		LoadError: err.Error(),
	}
}

// RenderPage writes the page for the view. Replaces any prior output.
func RenderPage(w io.Writer, view PageView) error {
	return pageTemplate.Execute(w, view)
}

func buildCard(item models.Item) Card {
	card := Card{
		Title:     item.Title,
		URL:       item.URL,
		Source:    item.Source,
		Published: FormatTimestamp(item.PublishedAt),
	}
	if card.Title == "" {
		card.Title = "(untitled)"
	}

	// Prefer the HTML body over the plain summary
	if item.ContentHTML != "" {
		card.BodyHTML = template.HTML(sanitizer.Sanitize(item.ContentHTML))
	} else if item.Summary != "" {
		card.BodyText = item.Summary
	}

	return card
}

// SourceOptions returns the deduplicated source values in lexicographic
// order, for the filter control.
func SourceOptions(items []models.Item) []string {
	sources := lo.FilterMap(items, func(item models.Item, _ int) (string, bool) {
		return item.Source, item.Source != ""
	})
	sources = lo.Uniq(sources)
	sort.Strings(sources)
	return sources
}

// FormatTimestamp renders an item timestamp for display, empty string when
// the value is absent or unparseable.
func FormatTimestamp(value string) string {
	if value == "" {
		return ""
	}
	t, err := parseTimestamp(value)
	if err != nil {
		return ""
	}
	return t.Format(timestampLayout)
}

func formatGeneratedAt(value string) string {
	if value == "" {
		return "n/a"
	}
	t, err := parseTimestamp(value)
	if err != nil {
		return value
	}
	return t.Format(timestampLayout)
}

func parseTimestamp(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", value)
}

var tzfileWrapper = regexp.MustCompile(`^tzfile\('(.*)'\)$`)

// DisplayTimezone strips the tzfile('...') wrapper some generators emit
// around the timezone name. Anything else passes through untouched.
func DisplayTimezone(tz string) string {
	if m := tzfileWrapper.FindStringSubmatch(tz); m != nil {
		return m[1]
	}
	return tz
}

func subtitle(doc *models.FeedDocument) string {
	tz := DisplayTimezone(doc.Timezone)
	switch {
	case doc.Date == "" && tz == "":
		return ""
	case tz == "":
		return doc.Date
	case doc.Date == "":
		return tz
	}
	return doc.Date + " · " + tz
}
