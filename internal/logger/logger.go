package logger

// Logger is the component-tagged logging interface used throughout the
// application. It is constructed once in main and injected; no package keeps
// a logging singleton of its own.
type Logger interface {
	Debug(component, message string, fields map[string]interface{})
	Info(component, message string, fields map[string]interface{})
	Warning(component, message string, fields map[string]interface{})
	Error(component string, err error, fields map[string]interface{})
}
