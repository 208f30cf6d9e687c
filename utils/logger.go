package utils

import (
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger provides structured, leveled logging throughout the application.
// It writes colored lines to the console and, when configured, plain lines
// to a size-rotated log file.
type Logger struct {
	out  *log.Logger
	err  *log.Logger
	file *log.Logger
}

// NewLogger creates a Logger writing to stdout/stderr only.
func NewLogger() *Logger {
	return &Logger{
		out: log.New(os.Stdout, "", 0),
		err: log.New(os.Stderr, "", 0),
	}
}

// NewRotatingLogger creates a Logger that additionally writes to a rotating
// file sink bounded by size and backup count, so the long-lived scheduler
// process cannot fill the disk.
func NewRotatingLogger(path string, maxSizeMB, backups int) *Logger {
	l := NewLogger()
	l.file = log.New(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: backups,
	}, "", 0)
	return l
}

func (l *Logger) timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

func (l *Logger) logf(console *log.Logger, level, color, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	ts := l.timestamp()
	console.Printf("[%s] \033[%sm%-5s\033[0m %s\n", ts, color, level, msg)
	if l.file != nil {
		l.file.Printf("[%s] %-5s %s\n", ts, level, msg)
	}
}

func (l *Logger) Info(format string, args ...any) {
	l.logf(l.out, "INFO", "32", format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.logf(l.out, "WARN", "33", format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.logf(l.err, "ERROR", "31", format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	l.logf(l.out, "DEBUG", "36", format, args...)
}
