package services

import (
	"testing"
	"time"

	"spotify-records-scraper/models"
	"spotify-records-scraper/utils"
)

func sampleRecords() []*models.StreamRecord {
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	rec := func(rank int, song string, streams float64, year int) *models.StreamRecord {
		r := &models.StreamRecord{ScrapingDate: day, Rank: rank, Song: song, Artist: "Artist"}
		if streams > 0 {
			r.Streams = &streams
		}
		if year > 0 {
			r.ReleaseYear = &year
		}
		return r
	}
	return []*models.StreamRecord{
		rec(1, "Song A", 4e9, 2019),
		rec(2, "Song B", 3e9, 2017),
		rec(3, "Song C", 2e9, 2024),
		rec(4, "Song D", 0, 2019), // no stream data
		rec(5, "Song E", 1e9, 0),  // no release year
	}
}

func TestInsightCounts(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())
	r := svc.Generate(sampleRecords(), 2)
	if r.TotalRecords != 5 {
		t.Errorf("TotalRecords: got %d, want 5", r.TotalRecords)
	}
	if r.SkippedRows != 2 {
		t.Errorf("SkippedRows: got %d, want 2", r.SkippedRows)
	}
}

func TestInsightStreamStats(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())
	r := svc.Generate(sampleRecords(), 0)
	if r.MinStreams != 1e9 {
		t.Errorf("MinStreams: got %g, want 1e9", r.MinStreams)
	}
	if r.MaxStreams != 4e9 {
		t.Errorf("MaxStreams: got %g, want 4e9", r.MaxStreams)
	}
	if r.AverageStreams != 2.5e9 {
		t.Errorf("AverageStreams: got %g, want 2.5e9", r.AverageStreams)
	}
	if r.MostStreamed == nil || r.MostStreamed.Song != "Song A" {
		t.Errorf("MostStreamed: got %v, want Song A", r.MostStreamed)
	}
}

func TestInsightTopSongs(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())
	r := svc.Generate(sampleRecords(), 0)
	if len(r.TopSongs) != 4 {
		t.Fatalf("TopSongs len: got %d, want 4", len(r.TopSongs))
	}
	if r.TopSongs[0].Song != "Song A" || r.TopSongs[3].Song != "Song E" {
		t.Errorf("TopSongs order: got %q ... %q", r.TopSongs[0].Song, r.TopSongs[3].Song)
	}
}

func TestInsightDecades(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())
	r := svc.Generate(sampleRecords(), 0)
	if r.SongsByDecade["2010s"] != 3 {
		t.Errorf("2010s count: got %d, want 3", r.SongsByDecade["2010s"])
	}
	if r.SongsByDecade["2020s"] != 1 {
		t.Errorf("2020s count: got %d, want 1", r.SongsByDecade["2020s"])
	}
}

func TestInsightEmptyInput(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())
	r := svc.Generate(nil, 3)
	if r.TotalRecords != 0 {
		t.Errorf("expected 0 total records for empty input")
	}
	if r.SkippedRows != 3 {
		t.Errorf("SkippedRows: got %d, want 3", r.SkippedRows)
	}
}
