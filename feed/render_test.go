package feed_test

import (
	"bytes"
	"strings"
	"testing"

	"gazette/feed"
	"gazette/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderToString(t *testing.T, view feed.PageView) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, feed.RenderPage(&buf, view))
	return buf.String()
}

func TestSourceOptions(t *testing.T) {
	tests := []struct {
		name     string
		items    []models.Item
		expected []string
	}{
		{
			name:     "no items",
			items:    nil,
			expected: []string{},
		},
		{
			name: "deduplicated and sorted",
			items: []models.Item{
				{Source: "Treasury"},
				{Source: "Health"},
				{Source: "Treasury"},
				{Source: "Defence"},
			},
			expected: []string{"Defence", "Health", "Treasury"},
		},
		{
			name: "empty sources skipped",
			items: []models.Item{
				{Source: ""},
				{Source: "Health"},
			},
			expected: []string{"Health"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, feed.SourceOptions(tt.items))
		})
	}
}

func TestBuildPageSanitizesBodyHTML(t *testing.T) {
	doc := &models.FeedDocument{
		Items: []models.Item{
			{
				Title:       "Injected",
				URL:         "http://x",
				Source:      "X",
				ContentHTML: `<p>legit</p><script>alert("pwned")</script><img src=x onerror="alert(1)">`,
			},
		},
	}

	view := feed.BuildPage("Test", doc, doc.Items, "", "")
	out := renderToString(t, view)

	assert.Contains(t, out, "legit")
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "pwned")
	assert.NotContains(t, out, "onerror")
}

func TestBuildPagePrefersContentHTMLOverSummary(t *testing.T) {
	doc := &models.FeedDocument{
		Items: []models.Item{
			{Title: "A", URL: "http://x", Source: "X", Summary: "the summary", ContentHTML: "<p>the body</p>"},
		},
	}

	view := feed.BuildPage("Test", doc, doc.Items, "", "")

	assert.Contains(t, string(view.Cards[0].BodyHTML), "the body")
	assert.Empty(t, view.Cards[0].BodyText)
}

func TestBuildPageTolerantOfMissingFields(t *testing.T) {
	doc := &models.FeedDocument{
		Items: []models.Item{
			{URL: "http://x", Source: "X"},
		},
	}

	view := feed.BuildPage("Test", doc, doc.Items, "", "")

	require.Len(t, view.Cards, 1)
	assert.Equal(t, "(untitled)", view.Cards[0].Title)
	assert.Empty(t, view.Cards[0].Published)
	assert.Empty(t, view.Cards[0].BodyText)
	assert.Empty(t, view.Cards[0].BodyHTML)
}

func TestRenderEmptyState(t *testing.T) {
	doc := &models.FeedDocument{
		Date:        "2024-01-01",
		GeneratedAt: "2024-01-01T00:00:00Z",
		Timezone:    "UTC",
	}

	view := feed.BuildPage("Test", doc, nil, "", "")
	out := renderToString(t, view)

	assert.Equal(t, 1, strings.Count(out, "No announcements match."))
	assert.Contains(t, out, "0 announcements")
}

func TestRenderErrorPage(t *testing.T) {
	view := feed.BuildErrorPage("Test", &feed.LoadError{Status: 404})
	out := renderToString(t, view)

	assert.Equal(t, 1, strings.Count(out, "could not load feed: HTTP 404"))
	// No item cards, no empty-state card, no filter controls
	assert.NotContains(t, out, "No announcements match.")
	assert.NotContains(t, out, `class="badge"`)
	assert.NotContains(t, out, "<form")
}

func TestRenderDiagnostics(t *testing.T) {
	doc := &models.FeedDocument{
		Items: []models.Item{
			{Title: "A", URL: "http://x", Source: "X"},
		},
		Errors: []models.ErrorRecord{
			{"source": "Treasury", "error": "HTTPError: 503"},
		},
	}

	view := feed.BuildPage("Test", doc, doc.Items, "", "")
	out := renderToString(t, view)

	// Diagnostics are collapsible and do not block item rendering
	assert.Contains(t, out, "<details")
	assert.Contains(t, out, "HTTPError: 503")
	assert.Contains(t, out, "http://x")
}

func TestBuildPageSummaryLine(t *testing.T) {
	doc := &models.FeedDocument{
		GeneratedAt: "2024-06-01T10:30:00+10:00",
		Items: []models.Item{
			{Title: "A", URL: "http://x", Source: "X"},
			{Title: "B", URL: "http://y", Source: "Y"},
		},
	}

	view := feed.BuildPage("Test", doc, doc.Items[:1], "", "X")
	assert.Equal(t, "1 announcements · generated 01 Jun 2024 10:30", view.Summary)

	view = feed.BuildPage("Test", &models.FeedDocument{}, nil, "", "")
	assert.Equal(t, "0 announcements · generated n/a", view.Summary)
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected string
	}{
		{
			name:     "absent",
			value:    "",
			expected: "",
		},
		{
			name:     "unparseable",
			value:    "yesterday-ish",
			expected: "",
		},
		{
			name:     "rfc3339 with offset",
			value:    "2024-06-01T10:30:00+10:00",
			expected: "01 Jun 2024 10:30",
		},
		{
			name:     "naive timestamp",
			value:    "2024-06-01T10:30:00",
			expected: "01 Jun 2024 10:30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, feed.FormatTimestamp(tt.value))
		})
	}
}

func TestDisplayTimezone(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected string
	}{
		{
			name:     "plain name untouched",
			value:    "Australia/Brisbane",
			expected: "Australia/Brisbane",
		},
		{
			name:     "tzfile wrapper stripped",
			value:    "tzfile('Australia/Brisbane')",
			expected: "Australia/Brisbane",
		},
		{
			name:     "only the literal wrapper pattern",
			value:    "tzfile(Australia/Brisbane)",
			expected: "tzfile(Australia/Brisbane)",
		},
		{
			name:     "empty",
			value:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, feed.DisplayTimezone(tt.value))
		})
	}
}
