// Package log wraps the standard logger used for diagnostics.
//
// Diagnostics always go to stderr so stdout stays a single machine-readable
// line. When a log file is configured the same lines are also appended to a
// rotated file.
package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures where diagnostics are written
type Options struct {
	Stderr  io.Writer // defaults to os.Stderr
	File    string    // optional rotated log file
	Verbose bool      // enables Debug output
}

var (
	mu      sync.Mutex
	std     = log.New(os.Stderr, "", log.LstdFlags)
	verbose bool
	rotator *lumberjack.Logger
)

// Setup points the package logger at the configured outputs
func Setup(opts Options) {
	mu.Lock()
	defer mu.Unlock()

	if rotator != nil {
		rotator.Close()
		rotator = nil
	}

	var out io.Writer = os.Stderr
	if opts.Stderr != nil {
		out = opts.Stderr
	}

	if opts.File != "" {
		rotator = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // MB
			MaxBackups: 2,
			MaxAge:     28, // days
			Compress:   true,
		}
		out = io.MultiWriter(out, rotator)
	}

	std.SetOutput(out)
	verbose = opts.Verbose
}

// Close flushes and closes the log file, if any
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if rotator == nil {
		return nil
	}
	err := rotator.Close()
	rotator = nil
	return err
}

// Printf calls Output to print to the logger
func Printf(format string, v ...interface{}) {
	std.Output(2, fmt.Sprintf(format, v...))
}

// Debugf prints with a [DEBUG] prefix when verbose output is enabled
func Debugf(format string, v ...interface{}) {
	if !isVerbose() {
		return
	}
	std.Output(2, "[DEBUG] "+fmt.Sprintf(format, v...))
}

func isVerbose() bool {
	mu.Lock()
	defer mu.Unlock()
	return verbose
}
