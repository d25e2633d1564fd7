package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Logger is a small leveled logger with optional file output.
type Logger struct {
	Verbose bool
	writer  io.Writer
	mu      sync.Mutex
	fileLog *os.File
}

// New creates a new Logger writing to stdout.
func New(verbose bool) *Logger {
	return &Logger{
		Verbose: verbose,
		writer:  os.Stdout,
	}
}

// SetOutput redirects console output, mainly for tests.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writer = w
}

// SetFileLog enables logging to a file.
func (l *Logger) SetFileLog(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	l.fileLog = f
	return nil
}

// Close closes the log file if open.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.fileLog != nil {
		return l.fileLog.Close()
	}
	return nil
}

// Info logs informational messages.
func (l *Logger) Info(format string, args ...interface{}) {
	l.log("INFO", format, args...)
}

// Debug logs detailed messages. Shown only in verbose mode, but always
// written to the log file when one is configured.
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.Verbose {
		l.log("DEBUG", format, args...)
	} else if l.fileLog != nil {
		l.logToFile("DEBUG", format, args...)
	}
}

// Warn logs warning messages.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log("WARN", format, args...)
}

// Error logs error messages to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf("[ERROR] "+format+"\n", args...)
	fmt.Fprint(os.Stderr, msg)

	if l.fileLog != nil {
		l.fileLog.WriteString(msg)
	}
}

func (l *Logger) log(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var msg string
	if level == "INFO" {
		msg = fmt.Sprintf(format+"\n", args...)
	} else {
		msg = fmt.Sprintf("["+level+"] "+format+"\n", args...)
	}

	fmt.Fprint(l.writer, msg)

	if l.fileLog != nil {
		l.fileLog.WriteString(msg)
	}
}

func (l *Logger) logToFile(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.fileLog != nil {
		l.fileLog.WriteString(fmt.Sprintf("["+level+"] "+format+"\n", args...))
	}
}
