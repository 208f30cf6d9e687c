package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	SourceURL     string
	TargetHeading string
	UserAgent     string
	FetchMode     string // "http" or "browser"
	HTTPTimeoutS  int
	MaxRetries    int

	DBDriver         string // "sqlite" or "postgres"
	SQLitePath       string
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	ScheduleAt  string
	ChartsDir   string
	TrackedSong string
	TopN        int

	LogPath      string
	LogMaxSizeMB int
	LogBackups   int
	ChromeBin    string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		SourceURL:     getEnv("SOURCE_URL", "https://en.wikipedia.org/wiki/List_of_Spotify_streaming_records"),
		TargetHeading: getEnv("TARGET_HEADING", "Most-streamed songs"),
		UserAgent:     getEnv("USER_AGENT", "Mozilla/5.0"),
		FetchMode:     getEnv("FETCH_MODE", "http"),
		HTTPTimeoutS:  getEnvInt("HTTP_TIMEOUT_SEC", 30),
		MaxRetries:    getEnvInt("MAX_RETRIES", 3),

		DBDriver:         getEnv("DB_DRIVER", "sqlite"),
		SQLitePath:       getEnv("SQLITE_PATH", "./spotify_records.db"),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "spotify_records"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		ScheduleAt:  getEnv("SCHEDULE_AT", "15:00"),
		ChartsDir:   getEnv("CHARTS_DIR", "./charts"),
		TrackedSong: getEnv("TRACKED_SONG", "Die With A Smile"),
		TopN:        getEnvInt("TOP_N", 10),

		LogPath:      getEnv("LOG_PATH", "./spotify_scraper.log"),
		LogMaxSizeMB: getEnvInt("LOG_MAX_SIZE_MB", 5),
		LogBackups:   getEnvInt("LOG_BACKUPS", 3),
		ChromeBin:    getEnv("CHROME_BIN", ""),
	}
}

// DSN returns the connection string for the configured database driver.
func (c *Config) DSN() string {
	if c.DBDriver == "postgres" {
		return "host=" + c.PostgresHost +
			" port=" + c.PostgresPort +
			" user=" + c.PostgresUser +
			" password=" + c.PostgresPassword +
			" dbname=" + c.PostgresDB +
			" sslmode=" + c.PostgresSSLMode
	}
	return c.SQLitePath
}

// CronSpec converts the "HH:MM" schedule time into a standard cron expression.
// Malformed values fall back to the 15:00 default.
func (c *Config) CronSpec() string {
	hh, mm := 15, 0
	if len(c.ScheduleAt) == 5 && c.ScheduleAt[2] == ':' {
		h, errH := strconv.Atoi(c.ScheduleAt[:2])
		m, errM := strconv.Atoi(c.ScheduleAt[3:])
		if errH == nil && errM == nil && h >= 0 && h < 24 && m >= 0 && m < 60 {
			hh, mm = h, m
		}
	}
	return strconv.Itoa(mm) + " " + strconv.Itoa(hh) + " * * *"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
