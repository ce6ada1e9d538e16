// Package log provides the small logger injection point used across
// spanscope, mirroring the teacher's *log.Logger + SetLogger convention
// rather than pulling in a structured-logging dependency the pack does not
// otherwise use.
package log

import (
	"io"
	stdlog "log"
)

// Logger is satisfied by *log.Logger; callers inject their own for tests or
// to redirect to a file.
type Logger interface {
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

// Default returns the standard library's default logger.
func Default() Logger { return stdlog.Default() }

// Discard returns a Logger that drops everything, used by tests that don't
// want log noise.
func Discard() Logger { return stdlog.New(io.Discard, "", 0) }
