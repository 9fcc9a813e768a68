package fetcher

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gazette/models"

	log "github.com/sirupsen/logrus"
)

// WriteOutputs writes the feed document to data/<date>.json and
// data/latest.json, plus the unified RSS rendition. The dated file keeps a
// browsable history, latest.json is what the page loads.
func WriteOutputs(dataDir string, doc *models.FeedDocument, now time.Time, siteTitle string) error {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal feed document: %w", err)
	}

	dailyPath := filepath.Join(dataDir, doc.Date+".json")
	latestPath := filepath.Join(dataDir, "latest.json")

	if err := os.WriteFile(dailyPath, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", dailyPath, err)
	}
	if err := os.WriteFile(latestPath, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", latestPath, err)
	}

	rssPath := filepath.Join(dataDir, "unified.xml")
	if err := os.WriteFile(rssPath, []byte(UnifiedRSS(doc.Items, now, siteTitle)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", rssPath, err)
	}

	log.WithFields(log.Fields{
		"items":  len(doc.Items),
		"errors": len(doc.Errors),
		"path":   dailyPath,
	}).Info("Wrote feed document")

	return nil
}
