package logging

import (
	"fmt"
	"io"
	"os"
)

// DebugEnv is the environment variable that switches on debug printing.
const DebugEnv = "MOMENTUM_DEBUG"

// debugOut is where Debugf and Debugln write; tests swap it.
var debugOut io.Writer = os.Stderr

// DebugEnabled returns true if MOMENTUM_DEBUG is set to a non-empty value
func DebugEnabled() bool {
	return os.Getenv(DebugEnv) != ""
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintf(debugOut, format, args...)
	}
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintln(debugOut, args...)
	}
}
