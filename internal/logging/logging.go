package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-cz/devslog"
	"github.com/phsym/console-slog"
	slogformatter "github.com/samber/slog-formatter"

	"github.com/davebream/timeridle/internal/idle"
)

const (
	LogFileName = "timeridle.log"

	defaultMaxBytes = 10 * 1024 * 1024
	defaultMaxAge   = 7 * 24 * time.Hour
)

// RotatingWriter appends to a log file and moves it aside once it would grow
// past maxBytes. Moved-aside files older than maxAge are removed on rotation.
type RotatingWriter struct {
	mu       sync.Mutex
	path     string
	maxBytes int64
	maxAge   time.Duration
	file     *os.File
	size     int64
	now      func() time.Time
}

func NewRotatingWriter(path string, maxBytes int64, maxAge time.Duration) (*RotatingWriter, error) {
	rw := &RotatingWriter{path: path, maxBytes: maxBytes, maxAge: maxAge, now: time.Now}
	if err := rw.open(); err != nil {
		return nil, err
	}
	return rw, nil
}

func (rw *RotatingWriter) open() error {
	f, err := os.OpenFile(rw.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("stat log file: %w", err)
	}
	rw.file, rw.size = f, info.Size()
	return nil
}

func (rw *RotatingWriter) Write(p []byte) (int, error) {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	if rw.size > 0 && rw.size+int64(len(p)) > rw.maxBytes {
		// A failed rotation keeps writing to the current file.
		_ = rw.rotate()
	}
	n, err := rw.file.Write(p)
	rw.size += int64(n)
	return n, err
}

// rotate renames the current file to path.<timestamp>[.N] and reopens path.
// N is added when a file with the same timestamp already exists.
func (rw *RotatingWriter) rotate() error {
	if err := rw.file.Close(); err != nil {
		return fmt.Errorf("close log file: %w", err)
	}
	stamp := rw.path + "." + rw.now().UTC().Format("20060102T150405.000")
	aside := stamp
	for seq := 1; ; seq++ {
		if _, err := os.Lstat(aside); errors.Is(err, os.ErrNotExist) {
			break
		}
		aside = fmt.Sprintf("%s.%d", stamp, seq)
	}
	renameErr := os.Rename(rw.path, aside)
	if err := rw.open(); err != nil {
		return err
	}
	if renameErr != nil {
		return fmt.Errorf("rotate log file: %w", renameErr)
	}
	rw.removeExpired()
	return nil
}

func (rw *RotatingWriter) removeExpired() {
	matches, err := filepath.Glob(rw.path + ".*")
	if err != nil {
		return
	}
	cutoff := rw.now().Add(-rw.maxAge)
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		if info.ModTime().Before(cutoff) {
			os.Remove(m)
		}
	}
}

func (rw *RotatingWriter) Close() error {
	rw.mu.Lock()
	defer rw.mu.Unlock()
	if rw.file == nil {
		return nil
	}
	err := rw.file.Close()
	rw.file = nil
	return err
}

// ParseLevel accepts debug, info, warn and error in any case. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

var formatAttrs = slogformatter.NewFormatterHandler(
	slogformatter.ErrorFormatter("error"),
	slogformatter.FormatByType(func(t idle.Timer) slog.Value {
		return slog.GroupValue(
			slog.String("id", t.ID),
			slog.Time("target", t.Target),
			slog.Duration("interval", t.Interval),
			slog.Bool("repeating", t.Repeating),
		)
	}),
)

// NewHandler builds a handler writing to w in one of the formats "json",
// "console" or "dev".
func NewHandler(w io.Writer, level slog.Level, format string) (slog.Handler, error) {
	var h slog.Handler
	switch strings.ToLower(format) {
	case "json":
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	case "", "console":
		h = console.NewHandler(w, &console.HandlerOptions{
			Level:      level,
			TimeFormat: time.TimeOnly,
		})
	case "dev":
		h = devslog.NewHandler(w, &devslog.Options{
			HandlerOptions: &slog.HandlerOptions{Level: level},
			SortKeys:       true,
			TimeFormat:     time.RFC3339Nano,
		})
	default:
		return nil, fmt.Errorf("unknown log format %q (want json, console or dev)", format)
	}
	return formatAttrs(h), nil
}

// Setup creates a logger writing JSON to a rotating file in logDir. If
// alsoStderr is true, records are mirrored to stderr.
// Returns the logger and a cleanup function to close the log file.
func Setup(logDir string, level slog.Level, alsoStderr bool) (*slog.Logger, func(), error) {
	rw, err := NewRotatingWriter(filepath.Join(logDir, LogFileName), defaultMaxBytes, defaultMaxAge)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logging: %w", err)
	}

	var w io.Writer = rw
	if alsoStderr {
		w = io.MultiWriter(rw, os.Stderr)
	}
	h, err := NewHandler(w, level, "json")
	if err != nil {
		rw.Close()
		return nil, nil, err
	}
	return slog.New(h), func() { rw.Close() }, nil
}

// SessionLogger creates a child logger tagged with a monitoring session id.
func SessionLogger(parent *slog.Logger, sessionID string) *slog.Logger {
	return parent.With("session", sessionID)
}
