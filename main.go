package main

import (
	"flag"
	"os"
	"time"

	"github.com/robfig/cron/v3"

	"spotify-records-scraper/config"
	"spotify-records-scraper/scraper/wikipedia"
	"spotify-records-scraper/services"
	"spotify-records-scraper/storage"
	"spotify-records-scraper/utils"
)

func main() {
	once := flag.Bool("once", false, "run a single collection and exit")
	flag.Parse()

	cfg := config.Load()
	logger := utils.NewRotatingLogger(cfg.LogPath, cfg.LogMaxSizeMB, cfg.LogBackups)

	logger.Info("=== Spotify streaming-records scraper starting ===")
	logger.Info("Config — source: %s | heading: %q | driver: %s | schedule: %s",
		cfg.SourceURL, cfg.TargetHeading, cfg.DBDriver, cfg.ScheduleAt)

	store, err := storage.NewSQLStore(cfg.DBDriver, cfg.DSN())
	if err != nil {
		logger.Error("Failed to open record store: %v", err)
		os.Exit(1)
	}
	defer store.Close()

	exporter, err := storage.NewChartExporter(cfg.ChartsDir)
	if err != nil {
		logger.Error("Failed to prepare charts directory: %v", err)
		os.Exit(1)
	}

	scraper := wikipedia.New(cfg, logger)
	insights := services.NewInsightService(logger)

	run := func() {
		if err := runOnce(cfg, logger, scraper, store, exporter, insights); err != nil {
			logger.Error("Run failed: %v", err)
		}
	}

	// First collection happens immediately; the cron trigger covers the
	// following days.
	run()

	if *once {
		return
	}

	c := cron.New()
	if _, err := c.AddFunc(cfg.CronSpec(), run); err != nil {
		logger.Error("Invalid schedule %q: %v", cfg.CronSpec(), err)
		os.Exit(1)
	}
	logger.Info("Scheduler armed — daily at %s", cfg.ScheduleAt)
	c.Run()
}

// runOnce performs one full collection: fetch, extract, persist, report.
// A failure aborts only this run; the scheduler keeps going.
func runOnce(
	cfg *config.Config,
	logger *utils.Logger,
	scraper *wikipedia.Scraper,
	store *storage.SQLStore,
	exporter *storage.ChartExporter,
	insights *services.InsightService,
) error {
	logger.Info("Starting daily collection")
	day := time.Now()

	if err := store.EnsureSchema(); err != nil {
		return err
	}

	records, skipped, err := scraper.Scrape(day)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		logger.Warn("No records extracted — batch write skipped")
		return nil
	}

	if err := store.ReplaceBatch(day, records); err != nil {
		return err
	}
	logger.Info("Stored batch of %d records for %s", len(records), day.Format("2006-01-02"))

	exportChartFeeds(cfg, logger, store, exporter)

	insights.Print(insights.Generate(records, skipped))
	logger.Info("Daily collection completed")
	return nil
}

// exportChartFeeds refreshes the CSV artifacts for the external chart
// generator. Export problems are logged, not fatal: the batch is already
// durable.
func exportChartFeeds(cfg *config.Config, logger *utils.Logger, store storage.RecordReader, exporter *storage.ChartExporter) {
	history, err := store.QueryBySong(cfg.TrackedSong)
	if err != nil {
		logger.Warn("Tracked-song query failed: %v", err)
	} else if len(history) == 0 {
		logger.Info("No stored data for tracked song %q", cfg.TrackedSong)
	} else if err := exporter.AppendSongHistory(history); err != nil {
		logger.Warn("Song history export failed: %v", err)
	}

	top, err := store.QueryLatestTop(cfg.TopN)
	if err != nil {
		logger.Warn("Top-%d query failed: %v", cfg.TopN, err)
		return
	}
	path, err := exporter.WriteTopSnapshot(top)
	if err != nil {
		logger.Warn("Top snapshot export failed: %v", err)
		return
	}
	logger.Info("Chart feeds updated (%s)", path)
}
