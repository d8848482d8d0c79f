package logging

import (
	"fmt"
	"io"
	"log"
	"strings"
)

const (
	// TraceLevel indicates a log message's level of criticality
	TraceLevel = iota
	// DebugLevel indicates a log message's level of criticality
	DebugLevel
	// InfoLevel indicates a log message's level of criticality
	InfoLevel
	// WarnLevel indicates a log message's level of criticality
	WarnLevel
	// ErrorLevel indicates a log message's level of criticality
	ErrorLevel
	// FatalLevel indicates a log message's level of criticality
	FatalLevel
)

// LogLevelToString translates a log level enum to a string representation
func LogLevelToString(level int) string {
	switch level {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "TRACE"
	}
}

// StringToLogLevel translates a (case-insensitive) level name to a log level enum
func StringToLogLevel(name string) (int, error) {
	for level := TraceLevel; level <= FatalLevel; level++ {
		if strings.EqualFold(name, LogLevelToString(level)) {
			return level, nil
		}
	}
	return TraceLevel, fmt.Errorf("Unknown log level %q", name)
}

// Logger writes leveled messages to a log.Logger, discarding those below its threshold
type Logger struct {
	level  int
	logger *log.Logger
}

// New creates a Logger writing to w. Messages below level are discarded.
func New(w io.Writer, level int) *Logger {
	return &Logger{
		level:  level,
		logger: log.New(w, "", log.LstdFlags),
	}
}

// Discard is a Logger which never writes anything
func Discard() *Logger {
	return New(io.Discard, FatalLevel+1)
}

// Enabled returns true iff messages at level would be written
func (l *Logger) Enabled(level int) bool {
	return level >= l.level
}

// Logf writes a formatted message at a particular level
func (l *Logger) Logf(level int, format string, v ...interface{}) {
	if !l.Enabled(level) {
		return
	}
	l.logger.Printf("[%s] %s", LogLevelToString(level), fmt.Sprintf(format, v...))
}

// Debugf writes a formatted message at DebugLevel
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.Logf(DebugLevel, format, v...)
}

// Infof writes a formatted message at InfoLevel
func (l *Logger) Infof(format string, v ...interface{}) {
	l.Logf(InfoLevel, format, v...)
}

// Warnf writes a formatted message at WarnLevel
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.Logf(WarnLevel, format, v...)
}

// Errorf writes a formatted message at ErrorLevel
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.Logf(ErrorLevel, format, v...)
}
