package wikipedia

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"spotify-records-scraper/config"
	"spotify-records-scraper/utils"
)

const fixturePage = `
<html><body>
<h2>History</h2>
<table class="wikitable">
  <tr><th>Year</th><th>Event</th></tr>
  <tr><td>2015</td><td>Launch</td></tr>
</table>
<h2>Most-streamed songs</h2>
<table class="wikitable">
  <tr><th>Rank</th><th>Song</th><th>Artist</th><th>Streams</th><th>Release date</th><th>Daily average</th><th>Days</th></tr>
  <tr>
    <td>1</td><td>&quot;Song A&quot;</td><td>Artist A</td>
    <td>2.5 billion<sup>[1]</sup><span class="date-style">29 November 2019</span></td>
    <td>2020</td><td>5 million</td><td>120</td>
  </tr>
  <tr><td>2</td><td>broken row</td><td>only four</td><td>cells</td></tr>
  <tr>
    <td>3</td><td>Song C</td><td>Artist C</td>
    <td>800 million</td><td>29 November 2019[3]</td><td>4,200[4]</td><td>37[2]</td>
  </tr>
</table>
</body></html>`

type stubFetcher struct {
	body string
	err  error
}

func (f *stubFetcher) Fetch(string) (string, error) { return f.body, f.err }

func testScraper(body string) *Scraper {
	cfg := &config.Config{
		SourceURL:     "https://example.org/records",
		TargetHeading: "Most-streamed songs",
	}
	return &Scraper{cfg: cfg, logger: utils.NewLogger(), fetcher: &stubFetcher{body: body}}
}

func parseFixture(t *testing.T, page string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func TestLocateTablePicksLabeledSection(t *testing.T) {
	doc := parseFixture(t, fixturePage)

	table, err := locateTable(doc, "Most-streamed songs")
	if err != nil {
		t.Fatalf("locateTable: %v", err)
	}
	// The first wikitable on the page belongs to another section.
	if got := table.Find("tr").Length(); got != 4 {
		t.Errorf("located wrong table: %d rows, want 4", got)
	}
}

func TestLocateTableMissingHeading(t *testing.T) {
	doc := parseFixture(t, fixturePage)

	if _, err := locateTable(doc, "Most-streamed albums"); err == nil {
		t.Fatal("expected error for absent section")
	} else if !strings.Contains(err.Error(), "target table not found") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestScrapeScenario(t *testing.T) {
	s := testScraper(fixturePage)
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	records, skipped, err := s.Scrape(day)
	if err != nil {
		t.Fatalf("Scrape: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records: got %d, want 2", len(records))
	}
	if skipped != 1 {
		t.Errorf("skipped: got %d, want 1", skipped)
	}

	a, c := records[0], records[1]

	if a.Rank != 1 || a.Song != "Song A" || a.Artist != "Artist A" {
		t.Errorf("record A identity: %+v", a)
	}
	if !a.ScrapingDate.Equal(day) {
		t.Errorf("record A date: got %v, want %v", a.ScrapingDate, day)
	}
	if a.Streams == nil || *a.Streams != 2.5e9 {
		t.Errorf("record A streams: got %v, want 2.5e9", a.Streams)
	}
	if a.RecordDate == nil || *a.RecordDate != "2019-11-29" {
		t.Errorf("record A record date: got %v, want 2019-11-29", a.RecordDate)
	}
	if a.ReleaseYear == nil || *a.ReleaseYear != 2020 {
		t.Errorf("record A release year: got %v, want 2020", a.ReleaseYear)
	}
	// "5 million" is not a bare number, so the daily average fails soft.
	if a.DailyAverage != nil {
		t.Errorf("record A daily average: got %v, want nil", a.DailyAverage)
	}
	if a.DaysOnRecord == nil || *a.DaysOnRecord != 120 {
		t.Errorf("record A days: got %v, want 120", a.DaysOnRecord)
	}

	if c.Rank != 3 || c.Song != "Song C" {
		t.Errorf("record C identity: %+v", c)
	}
	if c.Streams == nil || *c.Streams != 8e8 {
		t.Errorf("record C streams: got %v, want 8e8", c.Streams)
	}
	if c.ReleaseYear == nil || *c.ReleaseYear != 2019 {
		t.Errorf("record C release year: got %v, want 2019", c.ReleaseYear)
	}
	if c.DailyAverage == nil || *c.DailyAverage != 4200 {
		t.Errorf("record C daily average: got %v, want 4200", c.DailyAverage)
	}
	if c.DaysOnRecord == nil || *c.DaysOnRecord != 37 {
		t.Errorf("record C days: got %v, want 37", c.DaysOnRecord)
	}
	if c.RecordDate != nil {
		t.Errorf("record C record date: got %v, want nil", c.RecordDate)
	}
}

func TestScrapeUnparseableRankSkipsRow(t *testing.T) {
	page := strings.Replace(fixturePage, "<td>3</td>", "<td>N/A</td>", 1)
	s := testScraper(page)

	records, skipped, err := s.Scrape(time.Now())
	if err != nil {
		t.Fatalf("Scrape: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("records: got %d, want 1", len(records))
	}
	if skipped != 2 {
		t.Errorf("skipped: got %d, want 2", skipped)
	}
}

func TestScrapeMissingTableAborts(t *testing.T) {
	s := testScraper("<html><body><h2>Nothing here</h2></body></html>")

	if _, _, err := s.Scrape(time.Now()); err == nil {
		t.Fatal("expected structural error for missing table")
	}
}

func TestScrapeEmptyTableIsNotAnError(t *testing.T) {
	page := `<html><body>
		<h2>Most-streamed songs</h2>
		<table class="wikitable"><tr><th>Rank</th><th>Song</th></tr></table>
	</body></html>`
	s := testScraper(page)

	records, skipped, err := s.Scrape(time.Now())
	if err != nil {
		t.Fatalf("Scrape: %v", err)
	}
	if len(records) != 0 || skipped != 0 {
		t.Errorf("got %d records, %d skipped; want 0, 0", len(records), skipped)
	}
}
