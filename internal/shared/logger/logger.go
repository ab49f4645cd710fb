package logger

import (
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// New initializes a new zerolog.Logger.
// 'devMode' enables human-readable console logging.
func New(devMode bool) zerolog.Logger {
	return zerolog.New(stderrWriter(devMode)).With().Timestamp().Logger()
}

func stderrWriter(devMode bool) io.Writer {
	if devMode {
		// Human-readable, colorful output for local development
		return zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}
	}
	// Efficient JSON output for production
	return os.Stderr
}

// FileOptions configures NewWithFile.
type FileOptions struct {
	Dir       string // defaults to ./logs
	Prefix    string // defaults to "helper"
	Threshold string // zerolog level name, e.g. "info"
}

// FileName returns the daily log file name for day:
// {dir}/{prefix}-{YYYY-MM-DD}-{crc32 of the date, hex}.log
func FileName(dir, prefix string, day time.Time) string {
	date := day.Format("2006-01-02")
	return filepath.Join(dir, fmt.Sprintf("%s-%s-%08x.log", prefix, date, crc32.ChecksumIEEE([]byte(date))))
}

// NewWithFile returns a logger writing JSON lines to the daily log file
// and to stderr, filtered by the threshold. The returned closer closes the file.
func NewWithFile(devMode bool, opts FileOptions, now time.Time) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(opts.Threshold)
	if err != nil || opts.Threshold == "" {
		return zerolog.Logger{}, nil, fmt.Errorf("invalid log threshold %q", opts.Threshold)
	}

	dir := opts.Dir
	if dir == "" {
		dir = "logs"
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "helper"
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zerolog.Logger{}, nil, fmt.Errorf("create logs dir %q failed: %w", dir, err)
	}

	f, err := os.OpenFile(FileName(dir, prefix, now), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Logger{}, nil, fmt.Errorf("open log file: %w", err)
	}

	w := zerolog.MultiLevelWriter(stderrWriter(devMode), f)
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), f, nil
}

// FormatLog prefixes message with "file:line" (file reduced to its base
// name). The message is returned as is when both are empty.
func FormatLog(message, file string, line int) string {
	if file == "" && line == 0 {
		return message
	}
	return fmt.Sprintf("%s:%d %s", filepath.Base(file), line, message)
}

// Log writes "context: message" at level with params as structured fields
// and the caller's file:line attached.
func Log(l *zerolog.Logger, level zerolog.Level, context, message string, params map[string]any) {
	msg := context
	if message != "" {
		msg = fmt.Sprintf("%s: %s", context, message)
	}
	l.WithLevel(level).Caller(1).Fields(params).Msg(msg)
}
