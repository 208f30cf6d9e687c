package storage

import (
	"time"

	"spotify-records-scraper/models"
)

// RecordWriter is the write-side contract of the record store.
type RecordWriter interface {
	EnsureSchema() error
	ReplaceBatch(date time.Time, records []*models.StreamRecord) error
	Close() error
}

// RecordReader is the read-side contract consumed by chart/report generators.
type RecordReader interface {
	QueryBySong(pattern string) ([]*models.StreamRecord, error)
	QueryLatestTop(n int) ([]*models.StreamRecord, error)
}
