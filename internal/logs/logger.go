package logs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"taskpad/internal/log"
	loglogrus "taskpad/internal/log/logrus"
)

const (
	// FormatText is the default human readable log format.
	FormatText = "text"
	// FormatJSON writes one JSON object per line.
	FormatJSON = "json"

	fileName = "debug.log"
)

// Options configures the file sink.
type Options struct {
	// Dir is the directory holding debug.log. Empty means the current directory.
	Dir     string
	Format  string
	Debug   bool
	Version string
}

var (
	logFile *os.File
	mu      sync.Mutex
)

// Open opens (or creates) the debug log file and returns a logger writing to it.
// The terminal belongs to the TUI, so nothing is ever written to stdout/stderr.
func Open(opts Options) (log.Logger, error) {
	mu.Lock()
	defer mu.Unlock()

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return log.Noop, fmt.Errorf("could not create log directory: %w", err)
	}

	logPath := filepath.Join(dir, fileName)
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return log.Noop, fmt.Errorf("could not open log file %s: %w", logPath, err)
	}

	if logFile != nil {
		logFile.Close()
	}
	logFile = f

	logger := New(f, opts)
	logger.Debugf("Logger writing to %s", logPath)
	return logger, nil
}

// New returns a logrus backed logger writing to w.
func New(w io.Writer, opts Options) log.Logger {
	l := logrus.New()
	l.Out = w

	if opts.Debug {
		l.SetLevel(logrus.DebugLevel)
	}

	switch opts.Format {
	case FormatJSON:
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	kv := log.Kv{"app": "taskpad"}
	if opts.Version != "" {
		kv["version"] = opts.Version
	}
	return loglogrus.NewLogrus(logrus.NewEntry(l)).WithValues(kv)
}

// Close closes the log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		return err
	}
	return nil
}
