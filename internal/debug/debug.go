package debug

import (
	"io"
	"os"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

var enabled int32 = 0

var logger = &logrus.Logger{
	Out:       os.Stderr,
	Formatter: &logrus.TextFormatter{DisableTimestamp: true},
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.DebugLevel,
}

// Fields is a set of structured fields attached to a log line.
type Fields = logrus.Fields

// Toggle turns on/off debug mode
func Toggle(on bool) {
	val := int32(0)
	if on {
		val = 1
	}
	atomic.StoreInt32(&enabled, val)
}

// Enabled reports whether debug mode is on.
func Enabled() bool {
	return atomic.LoadInt32(&enabled) == 1
}

// SetOutput changes where debug logs are written, stderr by default.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// Do executes a function if debug is enabled, usually for side effects.
func Do(f func()) {
	if !Enabled() {
		return
	}
	f()
}

// Format a log line and writes it to stderr if debug is enabled
func Format(format string, args ...interface{}) {
	if !Enabled() {
		return
	}
	logger.Debugf(format, args...)
}

// Log writes msg with the structured fields to stderr if debug is enabled.
func Log(fields Fields, msg string) {
	if !Enabled() {
		return
	}
	logger.WithFields(fields).Debug(msg)
}
