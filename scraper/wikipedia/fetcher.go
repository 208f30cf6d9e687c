package wikipedia

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"spotify-records-scraper/config"
	"spotify-records-scraper/utils"
)

// Fetcher retrieves the raw HTML of a page.
type Fetcher interface {
	Fetch(url string) (string, error)
}

// HTTPFetcher downloads pages with a plain HTTP client. An identifying
// User-Agent is always sent; Wikipedia rejects anonymous clients.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	retry     *utils.RetryConfig
}

// NewHTTPFetcher creates an HTTPFetcher with the configured timeout and
// retry policy.
func NewHTTPFetcher(cfg *config.Config, logger *utils.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		client:    &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutS) * time.Second},
		userAgent: cfg.UserAgent,
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// Fetch downloads the page body, retrying transient failures.
func (f *HTTPFetcher) Fetch(url string) (string, error) {
	var body string

	err := f.retry.Do("fetch-page", func() error {
		req, err := http.NewRequest(http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("User-Agent", f.userAgent)

		resp, err := f.client.Do(req)
		if err != nil {
			return fmt.Errorf("get %s: %w", url, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return fmt.Errorf("get %s: unexpected status %s", url, resp.Status)
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}

		body = string(data)
		return nil
	})

	return body, err
}
