// Package logbuf keeps a process-wide, size-bounded ring of recent log lines
// for the debug panel, and owns the global logger that feeds it.
package logbuf

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultCapacity bounds the ring; older lines are dropped first.
const DefaultCapacity = 200

// Buffer is a fixed-capacity ring of log lines. It implements io.Writer so it
// can sit in the logger's output chain.
type Buffer struct {
	mu    sync.Mutex
	lines []string
	start int
}

func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{lines: make([]string, 0, capacity)}
}

// Append adds one line, evicting the oldest when full.
func (b *Buffer) Append(line string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.lines) < cap(b.lines) {
		b.lines = append(b.lines, line)
		return
	}
	b.lines[b.start] = line
	b.start = (b.start + 1) % len(b.lines)
}

// Write splits p on newlines and appends each non-empty line.
func (b *Buffer) Write(p []byte) (int, error) {
	for _, line := range bytes.Split(p, []byte("\n")) {
		if len(line) > 0 {
			b.Append(string(line))
		}
	}
	return len(p), nil
}

// Recent returns up to n of the newest lines, oldest first.
func (b *Buffer) Recent(n int) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	size := len(b.lines)
	if n > size {
		n = size
	}
	if n <= 0 {
		return nil
	}
	out := make([]string, 0, n)
	for i := size - n; i < size; i++ {
		out = append(out, b.lines[(b.start+i)%size])
	}
	return out
}

func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.lines)
}

var (
	ring = NewBuffer(DefaultCapacity)

	// Logger is the global logger instance, set by Init. The nil-guarded
	// wrappers below stay safe before Init (e.g. in tests).
	Logger *log.Logger
)

// Init points the global logger at a rotating file under dir plus the
// in-process ring that the debug panel reads.
func Init(dir string, debug bool) error {
	logDir := filepath.Join(dir, "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "perftrack.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}

	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}

	Logger = log.NewWithOptions(io.MultiWriter(fileWriter, ring), log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "perftrack",
	})
	return nil
}

// Recent returns up to n of the newest global log lines, oldest first.
func Recent(n int) []string {
	return ring.Recent(n)
}

func Debug(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
