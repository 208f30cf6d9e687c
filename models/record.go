package models

import "time"

// StreamRecord is one normalized ranking entry as seen on one collection day.
// Pointer fields are nullable: a cell that fails to parse stays nil and the
// record is still stored.
type StreamRecord struct {
	ID           int64
	ScrapingDate time.Time
	Rank         int
	Song         string
	Artist       string
	Streams      *float64
	ReleaseYear  *int
	DailyAverage *float64
	RecordDate   *string // ISO yyyy-mm-dd
	DaysOnRecord *int
}

// RunSummary holds the computed analytics over one day's batch.
type RunSummary struct {
	TotalRecords   int
	SkippedRows    int
	AverageStreams float64
	MinStreams     float64
	MaxStreams     float64
	MostStreamed   *StreamRecord
	TopSongs       []*StreamRecord
	SongsByDecade  map[string]int
}
