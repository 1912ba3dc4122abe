package droidlink

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LogLevel is the severity of a log message.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarning
	LevelError
	// LevelNone disables logging.
	LevelNone
)

var levelNames = map[LogLevel]string{
	LevelDebug:   "DEBUG",
	LevelInfo:    "INFO",
	LevelWarning: "WARNING",
	LevelError:   "ERROR",
	LevelNone:    "NONE",
}

// ParseLevel converts a level name such as "DEBUG" to its LogLevel.
func ParseLevel(name string) (LogLevel, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for level, levelName := range levelNames {
		if levelName == upper {
			return level, nil
		}
	}
	return LevelNone, fmt.Errorf("droidlink: invalid log level %q", name)
}

// Logger is a leveled log sink implementing io.Writer, so it plugs straight
// into Communicator.SetLogger. Each message carries its level as a prefix
// ("DEBUG: ...", "ERROR: ..."); messages below the configured level are
// dropped, the rest are written as timestamped lines.
type Logger struct {
	mu     sync.Mutex
	level  LogLevel
	output io.WriteCloser
	prefix string
}

// NewLogger creates a Logger writing to output. A nil output defaults to
// os.Stdout. The prefix names the subsystem in each line.
func NewLogger(output io.WriteCloser, level LogLevel, prefix string) *Logger {
	if output == nil {
		output = os.Stdout
	}
	return &Logger{level: level, output: output, prefix: prefix}
}

// NewFileLogger creates a Logger appending to a size-rotated log file.
func NewFileLogger(path string, level LogLevel, prefix string) *Logger {
	return NewLogger(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
	}, level, prefix)
}

// SetLevel updates the minimum level that gets written.
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Level returns the current minimum level.
func (l *Logger) Level() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// Write implements io.Writer. The message's level is inferred from its
// prefix; messages without a recognizable prefix count as INFO.
func (l *Logger) Write(p []byte) (int, error) {
	message := strings.TrimSpace(string(p))
	level := messageLevel(message)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.level == LevelNone || level < l.level {
		return len(p), nil
	}

	line := fmt.Sprintf("%s [%s] <%s> %s\n",
		time.Now().Format(time.RFC3339), levelNames[level], l.prefix, message)
	if _, err := l.output.Write([]byte(line)); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Close closes the underlying output unless it is os.Stdout.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.output == os.Stdout {
		return nil
	}
	return l.output.Close()
}

func messageLevel(message string) LogLevel {
	upper := strings.ToUpper(message)
	switch {
	case strings.HasPrefix(upper, "DEBUG:"):
		return LevelDebug
	case strings.HasPrefix(upper, "INFO:"):
		return LevelInfo
	case strings.HasPrefix(upper, "WARNING:"), strings.HasPrefix(upper, "WARN:"):
		return LevelWarning
	case strings.HasPrefix(upper, "ERROR:"):
		return LevelError
	default:
		return LevelInfo
	}
}
