package logging

import "github.com/sirupsen/logrus"

// global is the fallback logrus instance handed to packages that have not
// been given a configured logger yet.
var global = logrus.New()

// GetLogger returns the shared fallback logrus instance.
func GetLogger() *logrus.Logger {
	return global
}

// SetAllLogLevels sets the level on the standard logrus logger and the
// shared fallback instance. Called once at startup, before any package
// level loggers emit anything.
func SetAllLogLevels(level logrus.Level) {
	logrus.SetLevel(level)
	global.SetLevel(level)
}
