package wikipedia

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"spotify-records-scraper/config"
	"spotify-records-scraper/models"
	"spotify-records-scraper/utils"
)

// Scraper extracts the ranking table from the configured source page.
type Scraper struct {
	cfg     *config.Config
	logger  *utils.Logger
	fetcher Fetcher
}

// New creates a ready-to-use Scraper. The fetch transport is chosen by
// FETCH_MODE ("http" by default, "browser" for headless Chrome).
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	var fetcher Fetcher
	if cfg.FetchMode == "browser" {
		fetcher = NewBrowserFetcher(cfg, logger)
	} else {
		fetcher = NewHTTPFetcher(cfg, logger)
	}
	return &Scraper{cfg: cfg, logger: logger, fetcher: fetcher}
}

// Scrape fetches the source page and returns the normalized records for
// scrapingDate plus the number of skipped rows. One malformed row never
// aborts the batch; a missing table or fetch failure does.
func (s *Scraper) Scrape(scrapingDate time.Time) ([]*models.StreamRecord, int, error) {
	s.logger.Info("[wikipedia] Fetching %s", s.cfg.SourceURL)

	body, err := s.fetcher.Fetch(s.cfg.SourceURL)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: parse document: %v", ErrTableNotFound, err)
	}

	return s.extract(doc, scrapingDate)
}

func (s *Scraper) extract(doc *goquery.Document, scrapingDate time.Time) ([]*models.StreamRecord, int, error) {
	table, err := locateTable(doc, s.cfg.TargetHeading)
	if err != nil {
		return nil, 0, err
	}

	var records []*models.StreamRecord
	skipped := 0

	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 { // header row
			return
		}

		rec, err := parseRow(row, scrapingDate)
		if err != nil {
			skipped++
			if errors.Is(err, errTooFewCells) {
				s.logger.Debug("[wikipedia] Row %d skipped: %v", i, err)
			} else {
				s.logger.Warn("[wikipedia] Row %d skipped: %v", i, err)
			}
			return
		}
		records = append(records, rec)
	})

	s.logger.Info("[wikipedia] Extracted %d records (%d rows skipped)", len(records), skipped)
	return records, skipped, nil
}
