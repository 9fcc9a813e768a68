package feed

import "gazette/models"

// Visible computes the visible subset for a query and source selection. Pure
// function of its inputs; recomputed on every change, never mutates the
// document's items.
func Visible(doc *models.FeedDocument, ix *Index, query string, source string) []models.Item {
	positions := ix.Match(query)

	visible := make([]models.Item, 0, len(positions))
	for _, pos := range positions {
		item := doc.Items[pos]
		if source != "" && item.Source != source {
			continue
		}
		visible = append(visible, item)
	}
	return visible
}
