package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// LogLevel represents the severity of a log message
type LogLevel string

const (
	LogLevelDebug LogLevel = "DEBUG"
	LogLevelInfo  LogLevel = "INFO"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelError LogLevel = "ERROR"
	LogLevelFatal LogLevel = "FATAL"
)

// ParseLevel converts a config value into a LogLevel, defaulting to INFO
func ParseLevel(s string) LogLevel {
	switch LogLevel(strings.ToUpper(strings.TrimSpace(s))) {
	case LogLevelDebug:
		return LogLevelDebug
	case LogLevelWarn, "WARNING":
		return LogLevelWarn
	case LogLevelError:
		return LogLevelError
	case LogLevelFatal:
		return LogLevelFatal
	default:
		return LogLevelInfo
	}
}

func (l LogLevel) zerolog() zerolog.Level {
	switch l {
	case LogLevelDebug:
		return zerolog.DebugLevel
	case LogLevelWarn:
		return zerolog.WarnLevel
	case LogLevelError:
		return zerolog.ErrorLevel
	case LogLevelFatal:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

var (
	defaultsMu     sync.RWMutex
	defaultLevel   = LogLevelInfo
	defaultOutputs = []io.Writer{zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "2006-01-02 15:04:05.000"}}
)

// Configure sets the level and outputs used by loggers created afterwards
func Configure(level LogLevel, outputs ...io.Writer) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaultLevel = level
	if len(outputs) > 0 {
		defaultOutputs = outputs
	}
}

// Logger is a component-scoped structured logger
type Logger struct {
	component string
	minLevel  LogLevel
	outputs   []io.Writer
	zl        zerolog.Logger
	mu        sync.Mutex
}

// NewLogger creates a new logger for a specific component
func NewLogger(component string) *Logger {
	defaultsMu.RLock()
	l := &Logger{
		component: component,
		minLevel:  defaultLevel,
		outputs:   append([]io.Writer(nil), defaultOutputs...),
	}
	defaultsMu.RUnlock()

	l.rebuild()
	return l
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	l := &Logger{component: "nop", minLevel: LogLevelFatal}
	l.zl = zerolog.Nop()
	return l
}

// rebuild must be called with mu held or before the logger is shared
func (l *Logger) rebuild() {
	var w io.Writer = io.Discard
	switch len(l.outputs) {
	case 0:
	case 1:
		w = l.outputs[0]
	default:
		w = zerolog.MultiLevelWriter(l.outputs...)
	}

	l.zl = zerolog.New(w).
		Level(l.minLevel.zerolog()).
		With().
		Timestamp().
		Str("component", l.component).
		Logger()
}

// Component returns the component name
func (l *Logger) Component() string {
	return l.component
}

// SetMinLevel sets the minimum log level to output
func (l *Logger) SetMinLevel(level LogLevel) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.minLevel = level
	l.rebuild()
	return l
}

// SetOutput replaces all outputs with w
func (l *Logger) SetOutput(w io.Writer) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.outputs = []io.Writer{w}
	l.rebuild()
	return l
}

func (l *Logger) log(level LogLevel, message string, err error, context map[string]interface{}) {
	l.mu.Lock()
	zl := l.zl
	l.mu.Unlock()

	var ev *zerolog.Event
	switch level {
	case LogLevelDebug:
		ev = zl.Debug()
	case LogLevelInfo:
		ev = zl.Info()
	case LogLevelWarn:
		ev = zl.Warn()
	case LogLevelError:
		ev = zl.Error()
	case LogLevelFatal:
		// WithLevel records the entry without exiting the process.
		ev = zl.WithLevel(zerolog.FatalLevel)
	}
	if ev == nil {
		return
	}

	if err != nil {
		ev = ev.Err(err)
	}
	if len(context) > 0 {
		ev = ev.Fields(context)
	}
	ev.Msg(message)
}

// Debug logs a debug message
func (l *Logger) Debug(message string) {
	l.log(LogLevelDebug, message, nil, nil)
}

// DebugWithContext logs a debug message with context
func (l *Logger) DebugWithContext(message string, context map[string]interface{}) {
	l.log(LogLevelDebug, message, nil, context)
}

// Info logs an info message
func (l *Logger) Info(message string) {
	l.log(LogLevelInfo, message, nil, nil)
}

// InfoWithContext logs an info message with context
func (l *Logger) InfoWithContext(message string, context map[string]interface{}) {
	l.log(LogLevelInfo, message, nil, context)
}

// Warn logs a warning message
func (l *Logger) Warn(message string) {
	l.log(LogLevelWarn, message, nil, nil)
}

// WarnWithContext logs a warning message with context
func (l *Logger) WarnWithContext(message string, context map[string]interface{}) {
	l.log(LogLevelWarn, message, nil, context)
}

// WarnWithError logs a recoverable failure with its cause
func (l *Logger) WarnWithError(message string, err error, context map[string]interface{}) {
	l.log(LogLevelWarn, message, err, context)
}

// Error logs an error message
func (l *Logger) Error(message string, err error) {
	l.log(LogLevelError, message, err, nil)
}

// ErrorWithContext logs an error message with context
func (l *Logger) ErrorWithContext(message string, err error, context map[string]interface{}) {
	l.log(LogLevelError, message, err, context)
}

// FatalWithContext logs a non-recoverable error. It does not exit.
func (l *Logger) FatalWithContext(message string, err error, context map[string]interface{}) {
	l.log(LogLevelFatal, message, err, context)
}

// WithContext returns a logger that attaches context to every entry
func (l *Logger) WithContext(context map[string]interface{}) *ContextLogger {
	return &ContextLogger{
		logger:  l,
		context: context,
	}
}

// ContextLogger is a logger with pre-set context
type ContextLogger struct {
	logger  *Logger
	context map[string]interface{}
}

func (cl *ContextLogger) Debug(message string) {
	cl.logger.log(LogLevelDebug, message, nil, cl.context)
}

func (cl *ContextLogger) Info(message string) {
	cl.logger.log(LogLevelInfo, message, nil, cl.context)
}

func (cl *ContextLogger) Warn(message string) {
	cl.logger.log(LogLevelWarn, message, nil, cl.context)
}

func (cl *ContextLogger) Error(message string, err error) {
	cl.logger.log(LogLevelError, message, err, cl.context)
}
