package wikipedia

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"

	"spotify-records-scraper/config"
	"spotify-records-scraper/utils"
)

// BrowserFetcher renders pages through headless Chrome. It exists for
// deployments where the plain HTTP client gets blocked by the source server;
// selected with FETCH_MODE=browser.
type BrowserFetcher struct {
	userAgent string
	chromeBin string
	timeout   time.Duration
	retry     *utils.RetryConfig
	logger    *utils.Logger
}

// NewBrowserFetcher creates a BrowserFetcher from the configuration.
func NewBrowserFetcher(cfg *config.Config, logger *utils.Logger) *BrowserFetcher {
	return &BrowserFetcher{
		userAgent: cfg.UserAgent,
		chromeBin: cfg.ChromeBin,
		timeout:   time.Duration(cfg.HTTPTimeoutS) * time.Second,
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		logger: logger,
	}
}

// Fetch navigates to the page in a fresh headless browser context and
// returns the rendered HTML.
func (f *BrowserFetcher) Fetch(url string) (string, error) {
	chromeBin := f.chromeBin
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	f.logger.Debug("[fetch] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(f.userAgent),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	defer cancelAlloc()

	var html string

	err := f.retry.Do("fetch-page-browser", func() error {
		ctx, cancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
		defer cancel()

		ctx, cancelTimeout := context.WithTimeout(ctx, f.timeout)
		defer cancelTimeout()

		if err := chromedp.Run(ctx,
			chromedp.Navigate(url),
			chromedp.OuterHTML("html", &html),
		); err != nil {
			return fmt.Errorf("chromedp fetch %s: %w", url, err)
		}
		return nil
	})

	return html, err
}

// findChromeBinary locates a Chrome/Chromium binary.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
