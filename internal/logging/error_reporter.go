package logging

import (
	"sync"
	"time"
)

// ErrorCategory represents the category of an error
type ErrorCategory string

const (
	ErrorCategoryStorage ErrorCategory = "storage"
	ErrorCategoryCatalog ErrorCategory = "catalog"
	ErrorCategoryConfig  ErrorCategory = "config"
	ErrorCategoryWatcher ErrorCategory = "watcher"
)

// ErrorSeverity represents the severity of an error
type ErrorSeverity string

const (
	ErrorSeverityLow      ErrorSeverity = "low"
	ErrorSeverityMedium   ErrorSeverity = "medium"
	ErrorSeverityHigh     ErrorSeverity = "high"
	ErrorSeverityCritical ErrorSeverity = "critical"
)

// ErrorReport is a single reported failure
type ErrorReport struct {
	Timestamp time.Time
	Category  ErrorCategory
	Severity  ErrorSeverity
	Component string
	Message   string
	Error     error
	Context   map[string]interface{}
}

// ErrorCallback is called synchronously when an error is reported
type ErrorCallback func(report *ErrorReport)

// ErrorReporter logs failures, keeps a bounded history and notifies
// subscribers such as the GUI's error dialog
type ErrorReporter struct {
	logger *Logger

	historyMu  sync.RWMutex
	history    []*ErrorReport
	maxHistory int

	callbacksMu sync.RWMutex
	callbacks   []ErrorCallback
}

// NewErrorReporter creates a new error reporter
func NewErrorReporter(logger *Logger) *ErrorReporter {
	if logger == nil {
		logger = NewLogger("ErrorReporter")
	}
	return &ErrorReporter{
		logger:     logger,
		maxHistory: 100,
	}
}

// Report records and dispatches an error report
func (er *ErrorReporter) Report(report *ErrorReport) {
	if report.Timestamp.IsZero() {
		report.Timestamp = time.Now()
	}

	er.logError(report)

	er.historyMu.Lock()
	er.history = append(er.history, report)
	if len(er.history) > er.maxHistory {
		er.history = er.history[len(er.history)-er.maxHistory:]
	}
	er.historyMu.Unlock()

	er.callbacksMu.RLock()
	callbacks := append([]ErrorCallback(nil), er.callbacks...)
	er.callbacksMu.RUnlock()

	for _, callback := range callbacks {
		callback(report)
	}
}

// ReportError reports an error with optional context
func (er *ErrorReporter) ReportError(category ErrorCategory, severity ErrorSeverity, component, message string, err error, context map[string]interface{}) {
	er.Report(&ErrorReport{
		Category:  category,
		Severity:  severity,
		Component: component,
		Message:   message,
		Error:     err,
		Context:   context,
	})
}

func (er *ErrorReporter) logError(report *ErrorReport) {
	context := map[string]interface{}{
		"category": string(report.Category),
		"severity": string(report.Severity),
		"reporter": report.Component,
	}
	for k, v := range report.Context {
		context[k] = v
	}

	switch report.Severity {
	case ErrorSeverityCritical:
		er.logger.FatalWithContext(report.Message, report.Error, context)
	case ErrorSeverityHigh:
		er.logger.ErrorWithContext(report.Message, report.Error, context)
	case ErrorSeverityMedium:
		er.logger.WarnWithError(report.Message, report.Error, context)
	default:
		er.logger.InfoWithContext(report.Message, context)
	}
}

// OnError registers a callback invoked for every report
func (er *ErrorReporter) OnError(callback ErrorCallback) {
	er.callbacksMu.Lock()
	defer er.callbacksMu.Unlock()
	er.callbacks = append(er.callbacks, callback)
}

// RecentErrors returns up to n of the most recent reports, oldest first
func (er *ErrorReporter) RecentErrors(n int) []*ErrorReport {
	er.historyMu.RLock()
	defer er.historyMu.RUnlock()

	if n > len(er.history) {
		n = len(er.history)
	}
	if n < 0 {
		n = 0
	}
	result := make([]*ErrorReport, n)
	copy(result, er.history[len(er.history)-n:])
	return result
}
