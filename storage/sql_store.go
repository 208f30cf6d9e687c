package storage

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"spotify-records-scraper/models"
)

const dateLayout = "2006-01-02"

// SQLStore persists stream records in SQLite (default) or PostgreSQL.
// Collection dates are stored as ISO text in both dialects so the scan path
// is shared.
type SQLStore struct {
	db     *sql.DB
	driver string
}

// NewSQLStore opens the database for the given driver ("sqlite" or
// "postgres"), verifies connectivity and ensures the schema exists.
func NewSQLStore(driver, dsn string) (*SQLStore, error) {
	if driver != "sqlite" && driver != "postgres" {
		return nil, fmt.Errorf("storage: unsupported driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: open: %w", err)
	}

	if driver == "sqlite" {
		// Single connection: the run model is sequential, and it keeps
		// in-memory databases coherent (each connection to :memory: would
		// otherwise see its own database).
		db.SetMaxOpenConns(1)
		for _, pragma := range []string{
			"PRAGMA journal_mode = WAL",
			"PRAGMA busy_timeout = 10000",
			"PRAGMA foreign_keys = ON",
		} {
			if _, err := db.Exec(pragma); err != nil {
				db.Close()
				return nil, fmt.Errorf("storage: %s: %w", pragma, err)
			}
		}
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: ping failed after retries: %w", err)
	}

	s := &SQLStore{db: db, driver: driver}
	if err := s.EnsureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// EnsureSchema creates the record table and its uniqueness constraint if
// absent. Safe to call on every run.
func (s *SQLStore) EnsureSchema() error {
	idColumn := "id INTEGER PRIMARY KEY AUTOINCREMENT"
	if s.driver == "postgres" {
		idColumn = "id BIGSERIAL PRIMARY KEY"
	}

	_, err := s.db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS spotify_records (
			%s,
			scraping_date  TEXT    NOT NULL,
			rank           INTEGER NOT NULL,
			song           TEXT    NOT NULL,
			artist         TEXT    NOT NULL,
			streams        REAL,
			release_year   INTEGER,
			daily_average  REAL,
			record_date    TEXT,
			days_on_record INTEGER,
			UNIQUE(scraping_date, rank, song, artist)
		);

		CREATE INDEX IF NOT EXISTS idx_spotify_records_song ON spotify_records(song);
		CREATE INDEX IF NOT EXISTS idx_spotify_records_date ON spotify_records(scraping_date);
	`, idColumn))
	if err != nil {
		return fmt.Errorf("storage: ensure schema: %w", err)
	}
	return nil
}

// ReplaceBatch atomically replaces the stored batch for date with records:
// the day's existing rows are deleted and the new ones inserted inside one
// transaction, so a failure leaves the previous state intact.
func (s *SQLStore) ReplaceBatch(date time.Time, records []*models.StreamRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: begin: %w", err)
	}
	defer tx.Rollback()

	day := date.Format(dateLayout)

	if _, err := tx.Exec(s.rebind("DELETE FROM spotify_records WHERE scraping_date = ?"), day); err != nil {
		return fmt.Errorf("storage: delete day %s: %w", day, err)
	}

	stmt, err := tx.Prepare(s.rebind(`
		INSERT INTO spotify_records
			(scraping_date, rank, song, artist, streams, release_year, daily_average, record_date, days_on_record)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`))
	if err != nil {
		return fmt.Errorf("storage: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(day, r.Rank, r.Song, r.Artist,
			r.Streams, r.ReleaseYear, r.DailyAverage, r.RecordDate, r.DaysOnRecord); err != nil {
			return fmt.Errorf("storage: insert rank %d: %w", r.Rank, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: commit: %w", err)
	}
	return nil
}

const selectColumns = `
	SELECT id, scraping_date, rank, song, artist, streams,
	       release_year, daily_average, record_date, days_on_record
	FROM spotify_records
`

// QueryBySong returns every stored snapshot of songs whose title contains
// pattern, in chronological order.
func (s *SQLStore) QueryBySong(pattern string) ([]*models.StreamRecord, error) {
	rows, err := s.db.Query(
		s.rebind(selectColumns+"WHERE song LIKE ? ORDER BY scraping_date, rank"),
		"%"+pattern+"%")
	if err != nil {
		return nil, fmt.Errorf("storage: query by song: %w", err)
	}
	return scanRecords(rows)
}

// QueryLatestTop returns the top n records of the most recent collection day.
func (s *SQLStore) QueryLatestTop(n int) ([]*models.StreamRecord, error) {
	rows, err := s.db.Query(s.rebind(selectColumns+`
		WHERE scraping_date = (SELECT MAX(scraping_date) FROM spotify_records)
		ORDER BY rank
		LIMIT ?`), n)
	if err != nil {
		return nil, fmt.Errorf("storage: query latest top: %w", err)
	}
	return scanRecords(rows)
}

// Close releases the database handle.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// rebind rewrites ? placeholders into $n form when talking to PostgreSQL.
func (s *SQLStore) rebind(query string) string {
	if s.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func scanRecords(rows *sql.Rows) ([]*models.StreamRecord, error) {
	defer rows.Close()

	var records []*models.StreamRecord
	for rows.Next() {
		var (
			r       models.StreamRecord
			day     string
			streams sql.NullFloat64
			year    sql.NullInt64
			daily   sql.NullFloat64
			recDate sql.NullString
			days    sql.NullInt64
		)
		if err := rows.Scan(&r.ID, &day, &r.Rank, &r.Song, &r.Artist,
			&streams, &year, &daily, &recDate, &days); err != nil {
			return nil, fmt.Errorf("storage: scan row: %w", err)
		}

		d, err := time.Parse(dateLayout, day)
		if err != nil {
			return nil, fmt.Errorf("storage: bad scraping_date %q: %w", day, err)
		}
		r.ScrapingDate = d

		if streams.Valid {
			r.Streams = &streams.Float64
		}
		if year.Valid {
			y := int(year.Int64)
			r.ReleaseYear = &y
		}
		if daily.Valid {
			r.DailyAverage = &daily.Float64
		}
		if recDate.Valid {
			r.RecordDate = &recDate.String
		}
		if days.Valid {
			n := int(days.Int64)
			r.DaysOnRecord = &n
		}

		records = append(records, &r)
	}
	return records, rows.Err()
}
