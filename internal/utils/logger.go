package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const logTimeLayout = "2006-01-02 15:04:05"

// Logger writes timestamped lines to a log file and optionally mirrors them to stdout.
type Logger struct {
	mu        sync.Mutex
	writeFile *os.File
	stdout    io.Writer
}

// defaultLogPath returns the gateway log path rooted next to the running executable.
func defaultLogPath() string {
	exe, err := os.Executable()
	if err == nil {
		if resolved, rerr := filepath.EvalSymlinks(exe); rerr == nil && resolved != "" {
			exe = resolved
		}
		return NewPaths(filepath.Dir(exe)).LogFile()
	}
	return NewPaths(filepath.Join(os.TempDir(), "jarvisgw")).LogFile()
}

// NewLogger opens the given log file for appending. When the file cannot be
// opened every line goes to stdout instead. mirror additionally copies each
// line to stdout.
func NewLogger(logFile string, mirror bool) *Logger {
	logger := &Logger{}
	if mirror {
		logger.stdout = os.Stdout
	}
	if logFile == "" {
		logFile = defaultLogPath()
	}
	_ = os.MkdirAll(filepath.Dir(logFile), 0o755)

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: Error opening log file (%s): %v\n", time.Now().Format(logTimeLayout), logFile, err)
		logger.stdout = os.Stdout
		return logger
	}
	logger.writeFile = f
	return logger
}

// NewStdoutLogger returns a logger that only writes to w (stdout when nil).
func NewStdoutLogger(w io.Writer) *Logger {
	if w == nil {
		w = os.Stdout
	}
	return &Logger{stdout: w}
}

// Write appends a timestamped message to the log.
func (l *Logger) Write(message string) {
	if l == nil {
		return
	}
	line := fmt.Sprintf("%s: %s\n", time.Now().Format(logTimeLayout), strings.TrimRight(message, "\n"))
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.writeFile != nil {
		_, _ = l.writeFile.WriteString(line)
	}
	if l.stdout != nil {
		_, _ = io.WriteString(l.stdout, line)
	}
}

// Writef formats and writes a message.
func (l *Logger) Writef(format string, args ...interface{}) {
	l.Write(fmt.Sprintf(format, args...))
}

// Close closes the underlying file handle.
func (l *Logger) Close() {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.writeFile != nil {
		_ = l.writeFile.Close()
		l.writeFile = nil
	}
}

// File returns the underlying write file handle when available.
func (l *Logger) File() *os.File {
	if l == nil {
		return nil
	}
	return l.writeFile
}

// LogWriter adapts a Logger to io.Writer for frameworks like gin and net/http.
type LogWriter struct{ Log *Logger }

func (w LogWriter) Write(p []byte) (int, error) {
	if msg := strings.TrimRight(string(p), "\n"); msg != "" {
		w.Log.Write(msg)
	}
	return len(p), nil
}
