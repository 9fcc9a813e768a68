package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"gazette/models"
)

// LoadError is fatal to the page session. Status is the HTTP status code
// when the response was unsuccessful, 0 for transport and parse failures.
type LoadError struct {
	Status int
	Err    error
}

func (e *LoadError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("could not load feed: HTTP %d", e.Status)
	}
	return fmt.Sprintf("could not load feed: %v", e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Loader fetches the feed document. One load per page session, no retries.
type Loader interface {
	Load(ctx context.Context) (*models.FeedDocument, error)
}

// HTTPLoader fetches data/latest.json relative to a base URL, bypassing any
// cache layer between loader and origin.
type HTTPLoader struct {
	client  *http.Client
	baseURL string
}

func NewHTTPLoader(baseURL string) *HTTPLoader {
	return &HTTPLoader{
		client:  &http.Client{},
		baseURL: baseURL,
	}
}

func (l *HTTPLoader) Load(ctx context.Context) (*models.FeedDocument, error) {
	url := l.baseURL + "/data/latest.json"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &LoadError{Status: resp.StatusCode}
	}

	var doc models.FeedDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, &LoadError{Err: fmt.Errorf("parse feed document: %w", err)}
	}

	return &doc, nil
}

// FileLoader reads latest.json from a local data directory. Used when the
// server hosts the data files it was pointed at.
type FileLoader struct {
	dataDir string
}

func NewFileLoader(dataDir string) *FileLoader {
	return &FileLoader{dataDir: dataDir}
}

func (l *FileLoader) Load(_ context.Context) (*models.FeedDocument, error) {
	data, err := os.ReadFile(filepath.Join(l.dataDir, "latest.json"))
	if err != nil {
		return nil, &LoadError{Err: err}
	}

	var doc models.FeedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Err: fmt.Errorf("parse feed document: %w", err)}
	}

	return &doc, nil
}
