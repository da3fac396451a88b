// Package debug provides opt-in diagnostic logging for tlv.
//
// The terminal UI owns stdout, so diagnostics go to a rotating file instead.
// Logging is disabled unless TLV_DEBUG is set or Enable is called.
package debug

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	envVar = "TLV_DEBUG"

	maxSizeMB  = 5
	maxBackups = 3
)

var (
	mu      sync.Mutex
	enabled bool
	logger  *log.Logger
	closer  io.Closer
)

func init() {
	if v := os.Getenv(envVar); v != "" && v != "0" && v != "false" {
		Enable("")
	}
}

// DefaultPath returns the log file location used when Enable gets an empty path.
func DefaultPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "tlv", "debug.log")
}

// Enable turns on logging to a rotating file at path.
func Enable(path string) {
	if path == "" {
		path = DefaultPath()
	}
	_ = os.MkdirAll(filepath.Dir(path), 0o755)

	rotating := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		Compress:   false,
	}
	setOutput(rotating, rotating)
}

// SetOutput routes log lines to w. Passing nil disables logging.
func SetOutput(w io.Writer) {
	setOutput(w, nil)
}

func setOutput(w io.Writer, c io.Closer) {
	mu.Lock()
	defer mu.Unlock()

	if closer != nil {
		_ = closer.Close()
		closer = nil
	}
	if w == nil {
		enabled = false
		logger = nil
		return
	}
	enabled = true
	logger = log.New(w, "[tlv] ", log.LstdFlags|log.Lmicroseconds)
	closer = c
}

// Enabled reports whether debug logging is on.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// Log writes a formatted line when debugging is enabled.
func Log(format string, args ...interface{}) {
	mu.Lock()
	l := logger
	mu.Unlock()
	if l == nil {
		return
	}
	l.Printf(format, args...)
}

// Close flushes and closes the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	enabled = false
	logger = nil
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	return err
}
