package feed

import (
	"sort"
	"strings"

	"gazette/models"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// MatchTolerance is the fixed approximate-match threshold on a 0-1 scale
// where 0 is an exact match. Items scoring above it are excluded.
const MatchTolerance = 0.3

// Index is the fuzzy-search structure over the loaded items. It is built
// once per load and never updated incrementally.
type Index struct {
	entries []indexEntry
}

type indexEntry struct {
	pos    int
	fields []string
}

// BuildIndex derives three searchable text fields per item: the title, the
// summary and the plain-text projection of the HTML content.
func BuildIndex(items []models.Item) *Index {
	entries := make([]indexEntry, 0, len(items))
	for i, item := range items {
		entries = append(entries, indexEntry{
			pos: i,
			fields: []string{
				strings.ToLower(item.Title),
				strings.ToLower(item.Summary),
				strings.ToLower(PlainText(item.ContentHTML)),
			},
		})
	}
	return &Index{entries: entries}
}

// Match returns the positions of items matching the query, best match first.
// Scores stay internal to the index. A blank query matches every item in
// original order.
func (ix *Index) Match(query string) []int {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		positions := make([]int, 0, len(ix.entries))
		for _, e := range ix.entries {
			positions = append(positions, e.pos)
		}
		return positions
	}

	tokens := strings.Fields(query)

	type ranked struct {
		pos   int
		score float64
	}

	var matches []ranked
	for _, e := range ix.entries {
		score := itemScore(e.fields, tokens)
		if score <= MatchTolerance {
			matches = append(matches, ranked{pos: e.pos, score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score < matches[j].score
	})

	positions := make([]int, 0, len(matches))
	for _, m := range matches {
		positions = append(positions, m.pos)
	}
	return positions
}

// itemScore is the best score across the derived fields. Every query token
// must match a field for it to count, the worst token decides the field
// score.
func itemScore(fields []string, tokens []string) float64 {
	best := 1.0
	for _, field := range fields {
		if field == "" {
			continue
		}
		score := 0.0
		for _, token := range tokens {
			ts := tokenScore(field, token)
			if ts > score {
				score = ts
			}
		}
		if score < best {
			best = score
		}
	}
	return best
}

// tokenScore scores one query token against one field. Exact substring
// matches score 0, otherwise the best normalized edit distance against the
// field's words.
func tokenScore(field, token string) float64 {
	if strings.Contains(field, token) {
		return 0
	}

	best := 1.0
	for _, word := range strings.Fields(field) {
		dist := fuzzy.LevenshteinDistance(token, word)
		span := max(len([]rune(token)), len([]rune(word)))
		if span == 0 {
			continue
		}
		score := float64(dist) / float64(span)
		if score < best {
			best = score
		}
	}
	return best
}
