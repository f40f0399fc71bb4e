// Package errors reports command failures: one "Error: ..." line on
// stderr, a structured record in the log, and a non-zero exit.
package errors

import (
	"fmt"
	"os"

	"hallbook/internal/logger"
)

// Format renders an error as the single line shown to the user. A nil
// error renders as the empty string.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return "Error: " + err.Error()
}

// Formatf is Format for a message built from a format string.
func Formatf(format string, args ...interface{}) string {
	return Format(fmt.Errorf(format, args...))
}

// Fatal logs the error, prints it, and exits with code 1. A nil error
// is a no-op so callers can pass a command's result through
// unconditionally.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}

// Fatalf is Fatal for a message built from a format string.
func Fatalf(format string, args ...interface{}) {
	Fatal(fmt.Errorf(format, args...))
}
