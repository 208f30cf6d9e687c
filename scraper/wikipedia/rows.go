package wikipedia

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"spotify-records-scraper/models"
	"spotify-records-scraper/services"
)

// errTooFewCells marks rows that cannot hold a full entry (spanning cells,
// sub-headers). They are skipped without a warning.
var errTooFewCells = errors.New("too few cells")

var quoteStripper = strings.NewReplacer(`"`, "", "“", "", "”", "")

// parseRow maps one table row onto a StreamRecord. Column positions are
// fixed: rank, song, artist, streams, release year, daily average and an
// optional trailing days-on-record column.
func parseRow(row *goquery.Selection, scrapingDate time.Time) (rec *models.StreamRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec, err = nil, fmt.Errorf("row panic: %v", r)
		}
	}()

	cells := row.Find("th, td")
	if cells.Length() < 6 {
		return nil, errTooFewCells
	}

	rank := services.SafeInt(cells.Eq(0).Text())
	if rank == nil {
		return nil, fmt.Errorf("unparseable rank %q", strings.TrimSpace(cells.Eq(0).Text()))
	}

	rec = &models.StreamRecord{
		ScrapingDate: scrapingDate,
		Rank:         *rank,
		Song:         quoteStripper.Replace(strings.TrimSpace(cells.Eq(1).Text())),
		Artist:       strings.TrimSpace(cells.Eq(2).Text()),
		Streams:      services.ParseStreams(cells.Eq(3).Text()),
		ReleaseYear:  services.ParseYear(cells.Eq(4).Text()),
		DailyAverage: services.SafeFloat(cutFootnote(cells.Eq(5).Text())),
	}

	// The streams cell may embed the record-setting date in a sub-element.
	// Its absence, or an unparseable value, leaves RecordDate nil.
	if span := cells.Eq(3).Find("span.date-style"); span.Length() > 0 {
		rec.RecordDate = services.ParseExactDate(span.First().Text())
	}

	if cells.Length() > 6 {
		rec.DaysOnRecord = services.SafeInt(cutFootnote(cells.Eq(6).Text()))
	}

	return rec, nil
}

// cutFootnote truncates cell text at the first bracketed reference marker.
func cutFootnote(text string) string {
	return strings.TrimSpace(strings.SplitN(text, "[", 2)[0])
}
