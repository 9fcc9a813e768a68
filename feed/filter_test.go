package feed_test

import (
	"testing"

	"gazette/feed"
	"gazette/models"

	"github.com/stretchr/testify/assert"
)

func exampleDocument() *models.FeedDocument {
	return &models.FeedDocument{
		Date:        "2024-01-01",
		GeneratedAt: "2024-01-01T00:00:00Z",
		Timezone:    "UTC",
		Items: []models.Item{
			{Title: "A", URL: "http://x", Source: "X", Summary: "s1"},
			{Title: "B", URL: "http://y", Source: "Y", Summary: "s2"},
		},
	}
}

func TestVisibleNoFilters(t *testing.T) {
	doc := exampleDocument()
	ix := feed.BuildIndex(doc.Items)

	visible := feed.Visible(doc, ix, "", "")

	assert.Equal(t, doc.Items, visible)
}

func TestVisibleSourceFilter(t *testing.T) {
	doc := exampleDocument()
	ix := feed.BuildIndex(doc.Items)

	visible := feed.Visible(doc, ix, "", "X")

	assert.Len(t, visible, 1)
	assert.Equal(t, "A", visible[0].Title)
}

func TestVisibleSourceFilterIsExact(t *testing.T) {
	doc := exampleDocument()
	ix := feed.BuildIndex(doc.Items)

	assert.Empty(t, feed.Visible(doc, ix, "", "x"))
	assert.Empty(t, feed.Visible(doc, ix, "", "Z"))
}

func TestVisibleIsIdempotent(t *testing.T) {
	doc := exampleDocument()
	ix := feed.BuildIndex(doc.Items)

	first := feed.Visible(doc, ix, "s1", "X")
	second := feed.Visible(doc, ix, "s1", "X")

	assert.Equal(t, first, second)
}

func TestVisibleCombinesQueryAndSource(t *testing.T) {
	doc := exampleDocument()
	ix := feed.BuildIndex(doc.Items)

	// Query matches both items' titles loosely, source narrows to one
	visible := feed.Visible(doc, ix, "s1", "Y")
	assert.Empty(t, visible)

	visible = feed.Visible(doc, ix, "s2", "Y")
	assert.Len(t, visible, 1)
	assert.Equal(t, "B", visible[0].Title)
}

func TestVisibleDoesNotMutateDocument(t *testing.T) {
	doc := exampleDocument()
	ix := feed.BuildIndex(doc.Items)

	original := append([]models.Item(nil), doc.Items...)
	_ = feed.Visible(doc, ix, "s1", "X")

	assert.Equal(t, original, doc.Items)
}
