package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"gazette/feed"
	"gazette/models"

	"github.com/mmcdole/gofeed"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"
)

const userAgent = "GazetteBot/0.1 (+github)"

// Prometheus metrics for the fetch pipeline
var (
	sourcesFetched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gazette_sources_fetched_total",
		Help: "Total number of source fetch attempts",
	})
	sourceErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gazette_source_errors_total",
		Help: "Total number of failed source fetches",
	})
	itemsCollected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gazette_items_collected_total",
		Help: "Total number of announcement items collected",
	})
)

// Fetcher collects announcement items from configured sources.
type Fetcher struct {
	client *http.Client
	parser *gofeed.Parser
	tz     *time.Location
}

func New(tz *time.Location) *Fetcher {
	client := &http.Client{Timeout: 20 * time.Second}

	parser := gofeed.NewParser()
	parser.UserAgent = userAgent

	return &Fetcher{
		client: client,
		parser: parser,
		tz:     tz,
	}
}

type sourceResult struct {
	source string
	items  []models.Item
	err    error
}

// FetchAll fetches every source through a bounded worker pool and returns
// the collected items plus one error record per failed source. Ordering of
// the result is not significant, the normalize stage sorts.
func (f *Fetcher) FetchAll(ctx context.Context, sources []models.Source, workers int) ([]models.Item, []models.ErrorRecord) {
	if workers < 1 {
		workers = 4
	}

	jobs := make(chan models.Source, len(sources))
	results := make(chan sourceResult, len(sources))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for src := range jobs {
				items, err := f.FetchSource(ctx, src)
				results <- sourceResult{source: src.Name, items: items, err: err}
			}
		}()
	}

	for _, src := range sources {
		jobs <- src
	}
	close(jobs)

	wg.Wait()
	close(results)

	var collected []models.Item
	var errors []models.ErrorRecord
	for res := range results {
		if res.err != nil {
			log.WithFields(log.Fields{
				"source": res.source,
				"error":  res.err,
			}).Warn("Source fetch failed")
			errors = append(errors, models.ErrorRecord{
				"source": res.source,
				"error":  res.err.Error(),
			})
			continue
		}
		for i := range res.items {
			res.items[i].Source = res.source
		}
		collected = append(collected, res.items...)
	}

	return collected, errors
}

// FetchSource loads one source's homepage, prefers any advertised RSS or
// Atom feeds and falls back to scraping the page with the configured
// selector.
func (f *Fetcher) FetchSource(ctx context.Context, src models.Source) ([]models.Item, error) {
	sourcesFetched.Inc()

	html, err := f.get(ctx, src.Homepage)
	if err != nil {
		sourceErrors.Inc()
		return nil, err
	}

	feedLinks, err := DiscoverFeedLinks(html, src.Homepage)
	if err != nil {
		sourceErrors.Inc()
		return nil, fmt.Errorf("parse homepage: %w", err)
	}

	var items []models.Item
	if len(feedLinks) > 0 {
		// Try the first couple of feeds at most
		if len(feedLinks) > 2 {
			feedLinks = feedLinks[:2]
		}
		for _, feedURL := range feedLinks {
			feedItems, err := f.fetchFeed(ctx, feedURL)
			if err != nil {
				log.WithFields(log.Fields{
					"source": src.Name,
					"feed":   feedURL,
					"error":  err,
				}).Warn("Skipping unparseable feed")
				continue
			}
			items = append(items, feedItems...)
		}
	} else {
		items, err = ScrapeItems(html, src.Homepage, src.Selector)
		if err != nil {
			sourceErrors.Inc()
			return nil, fmt.Errorf("scrape homepage: %w", err)
		}
	}

	log.WithFields(log.Fields{
		"source": src.Name,
		"feeds":  len(feedLinks),
		"items":  len(items),
	}).Info("Fetched source")

	itemsCollected.Add(float64(len(items)))
	return items, nil
}

const maxEntriesPerFeed = 50

func (f *Fetcher) fetchFeed(ctx context.Context, feedURL string) ([]models.Item, error) {
	body, err := f.get(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	parsed, err := f.parser.ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	entries := parsed.Items
	if len(entries) > maxEntriesPerFeed {
		entries = entries[:maxEntriesPerFeed]
	}

	var items []models.Item
	for _, entry := range entries {
		item, ok := f.entryToItem(entry)
		if !ok {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (f *Fetcher) entryToItem(entry *gofeed.Item) (models.Item, bool) {
	url := CleanURL(entry.Link)
	title := StripWhitespace(entry.Title)
	if url == "" || title == "" {
		return models.Item{}, false
	}

	item := models.Item{
		Title:       title,
		URL:         url,
		Summary:     StripWhitespace(feed.PlainText(entry.Description)),
		ContentHTML: entry.Content,
	}

	published := entry.PublishedParsed
	if published == nil {
		published = entry.UpdatedParsed
	}
	if published != nil {
		item.PublishedAt = published.In(f.tz).Format(time.RFC3339)
	}

	return item, true
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-AU,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: HTTP %d", url, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
