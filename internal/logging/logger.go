// Package logging defines the structured logging surface the rest of the
// application codes against, with a logrus-backed implementation and a mock
// for tests.
package logging

// Field is one key-value pair of structured log context.
type Field struct {
	Key   string
	Value interface{}
}

// Logger is the structured logging interface. Components take a Logger so
// tests can substitute a mock and inspect what was logged.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// Fatal logs and exits the program.
	Fatal(msg string, fields ...Field)

	// WithError attaches an error to every subsequent log call.
	WithError(err error) Logger
	// WithField attaches a single field to every subsequent log call.
	WithField(key string, value interface{}) Logger
	// WithFields attaches several fields to every subsequent log call.
	WithFields(fields ...Field) Logger
}
