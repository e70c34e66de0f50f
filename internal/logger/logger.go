/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package logger provides a small logger for compiler diagnostics. Debug
// output is off by default so library consumers see nothing unless they
// opt in.
package logger

import (
	"io"
	"log"
	"os"
)

var (
	output  io.Writer = os.Stderr
	logger            = log.New(output, "", 0)
	verbose           = os.Getenv("TSIMTSUM_DEBUG") != ""
)

// SetOutput configures the logger output destination.
// Use io.Discard to silence all logging.
func SetOutput(w io.Writer) {
	output = w
	logger = log.New(output, "", 0)
}

// SetVerbose toggles debug output.
func SetVerbose(v bool) {
	verbose = v
}

// Warn logs a warning message.
func Warn(format string, args ...any) {
	logger.Printf("warning: "+format, args...)
}

// Info logs an informational message.
func Info(format string, args ...any) {
	logger.Printf(format, args...)
}

// Debug logs a debug message when verbose output is enabled.
func Debug(format string, args ...any) {
	if verbose {
		logger.Printf("debug: "+format, args...)
	}
}
