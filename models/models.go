package models

// FeedDocument is the single JSON payload consumed per page load. It is
// immutable once loaded; filtering and rendering work on views of Items.
type FeedDocument struct {
	Date        string        `json:"date"`
	Timezone    string        `json:"timezone"`
	GeneratedAt string        `json:"generated_at"`
	Count       int           `json:"count"`
	Items       []Item        `json:"items"`
	Errors      []ErrorRecord `json:"errors,omitempty"`
}

// Item is one announcement record. Source is the filter key; the renderer
// tolerates any field being absent.
type Item struct {
	Title       string `json:"title,omitempty"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at,omitempty"`
	Summary     string `json:"summary,omitempty"`
	ContentHTML string `json:"content_html,omitempty"`
}

// ErrorRecord is an upstream per-source failure reported inside the feed
// document. No schema is enforced, the record is surfaced verbatim.
type ErrorRecord map[string]any

// Source is one configured announcements source. Selector is the CSS
// selector used when the homepage exposes no RSS or Atom feed.
type Source struct {
	Name     string `toml:"name"`
	Homepage string `toml:"homepage"`
	Selector string `toml:"selector,omitempty"`
}
