package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"spotify-records-scraper/models"
	"spotify-records-scraper/utils"
)

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate computes the run summary over one day's batch.
func (s *InsightService) Generate(records []*models.StreamRecord, skipped int) *models.RunSummary {
	summary := &models.RunSummary{
		SkippedRows:   skipped,
		SongsByDecade: make(map[string]int),
	}

	if len(records) == 0 {
		return summary
	}

	summary.TotalRecords = len(records)

	var streamed []*models.StreamRecord
	for _, r := range records {
		if r.Streams != nil {
			streamed = append(streamed, r)
		}
		if r.ReleaseYear != nil {
			decade := strconv.Itoa(*r.ReleaseYear/10*10) + "s"
			summary.SongsByDecade[decade]++
		}
	}

	if len(streamed) > 0 {
		summary.MinStreams = *streamed[0].Streams
		summary.MaxStreams = *streamed[0].Streams
		var total float64
		for _, r := range streamed {
			total += *r.Streams
			if *r.Streams < summary.MinStreams {
				summary.MinStreams = *r.Streams
			}
			if *r.Streams >= summary.MaxStreams {
				summary.MaxStreams = *r.Streams
				summary.MostStreamed = r
			}
		}
		summary.AverageStreams = total / float64(len(streamed))

		top := make([]*models.StreamRecord, len(streamed))
		copy(top, streamed)
		sort.Slice(top, func(i, j int) bool {
			return *top[i].Streams > *top[j].Streams
		})
		if len(top) > 5 {
			top = top[:5]
		}
		summary.TopSongs = top
	}

	return summary
}

// Print renders the run summary to stdout.
func (s *InsightService) Print(r *models.RunSummary) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  🎧 STREAMING RECORDS RUN SUMMARY\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Records collected : \033[1m%d\033[0m\n", r.TotalRecords)
	fmt.Printf("  Rows skipped      : \033[1m%d\033[0m\n", r.SkippedRows)
	fmt.Println()

	fmt.Printf("\033[1;33m  Stream Counts\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.AverageStreams > 0 {
		fmt.Printf("  Average : \033[1;32m%.2fB\033[0m\n", r.AverageStreams/1e9)
		fmt.Printf("  Minimum : \033[1;32m%.2fB\033[0m\n", r.MinStreams/1e9)
		fmt.Printf("  Maximum : \033[1;32m%.2fB\033[0m\n", r.MaxStreams/1e9)
	} else {
		fmt.Printf("  No stream data available\n")
	}
	fmt.Println()

	if r.MostStreamed != nil {
		fmt.Printf("\033[1;33m  Most-Streamed Song\033[0m\n")
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  %s — %s\n", truncate(r.MostStreamed.Song, 36), r.MostStreamed.Artist)
		fmt.Printf("  Streams : \033[1;31m%.2fB\033[0m\n", *r.MostStreamed.Streams/1e9)
		fmt.Println()
	}

	fmt.Printf("\033[1;33m  Top 5 by Streams\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.TopSongs) == 0 {
		fmt.Printf("  No stream data\n")
	} else {
		for i, rec := range r.TopSongs {
			fmt.Printf("  \033[1m%d.\033[0m %-40s \033[1;32m%.2fB\033[0m\n",
				i+1, truncate(rec.Song, 38), *rec.Streams/1e9)
		}
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Songs by Release Decade\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.SongsByDecade) == 0 {
		fmt.Printf("  No release-year data\n")
	} else {
		decades := make([]string, 0, len(r.SongsByDecade))
		for d := range r.SongsByDecade {
			decades = append(decades, d)
		}
		sort.Strings(decades)
		for _, d := range decades {
			bar := strings.Repeat("█", r.SongsByDecade[d])
			fmt.Printf("  %-8s %s (%d)\n", d, bar, r.SongsByDecade[d])
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
