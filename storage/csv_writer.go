package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"spotify-records-scraper/models"
)

// ChartExporter writes the CSV feeds consumed by the external chart
// generator: an append-only history for one tracked song and a snapshot of
// the latest top ranking.
type ChartExporter struct {
	dir string
}

// NewChartExporter creates the charts directory if needed.
func NewChartExporter(dir string) (*ChartExporter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("csv: create charts dir: %w", err)
	}
	return &ChartExporter{dir: dir}, nil
}

// AppendSongHistory appends the given snapshots to song_evolution_data.csv,
// writing the header only when the file is new.
func (e *ChartExporter) AppendSongHistory(records []*models.StreamRecord) error {
	if len(records) == 0 {
		return nil
	}

	path := filepath.Join(e.dir, "song_evolution_data.csv")
	_, statErr := os.Stat(path)
	newFile := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("csv: open %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if newFile {
		if err := w.Write([]string{"scraping_date", "rank", "streams", "daily_average"}); err != nil {
			return fmt.Errorf("csv: write header: %w", err)
		}
	}

	for _, r := range records {
		row := []string{
			r.ScrapingDate.Format(dateLayout),
			strconv.Itoa(r.Rank),
			formatNullable(r.Streams),
			formatNullable(r.DailyAverage),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

// WriteTopSnapshot writes the latest top ranking to a timestamped file.
func (e *ChartExporter) WriteTopSnapshot(records []*models.StreamRecord) (string, error) {
	name := "top_songs_" + time.Now().Format("2006-01-02_15-04-05") + ".csv"
	path := filepath.Join(e.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("csv: create %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"rank", "song", "artist", "streams"}); err != nil {
		return "", fmt.Errorf("csv: write header: %w", err)
	}

	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Rank),
			r.Song,
			r.Artist,
			formatNullable(r.Streams),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("csv: write row: %w", err)
		}
	}

	w.Flush()
	return path, w.Error()
}

func formatNullable(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
