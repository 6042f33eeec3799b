package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

// verboseMode controls whether Debug output is emitted
var verboseMode bool

// debugLogger writes diagnostic output to stderr so it never mixes with
// the user-facing output on stdout
var debugLogger = log.NewWithOptions(os.Stderr, log.Options{
	Level:           log.WarnLevel,
	ReportTimestamp: false,
	Prefix:          "rtvm",
})

// SetVerbose enables or disables verbose debug output
func SetVerbose(enabled bool) {
	verboseMode = enabled
	if enabled {
		debugLogger.SetLevel(log.DebugLevel)
	} else {
		debugLogger.SetLevel(log.WarnLevel)
	}
}

// IsVerbose reports whether verbose debug output is enabled
func IsVerbose() bool {
	return verboseMode
}

// CheckVerboseEnv enables verbose mode when RTVM_VERBOSE is set to a
// truthy value. Called early so debug output covers command startup.
func CheckVerboseEnv() {
	switch os.Getenv("RTVM_VERBOSE") {
	case "1", "true", "yes":
		SetVerbose(true)
	}
}

// Debug prints a debug message when verbose mode is enabled
func Debug(format string, args ...interface{}) {
	if !verboseMode {
		return
	}
	debugLogger.Debug(fmt.Sprintf("%s %s", debugSymbol, fmt.Sprintf(format, args...)))
}

// Debugf prints a debug message without the symbol prefix
func Debugf(format string, args ...interface{}) {
	if !verboseMode {
		return
	}
	debugLogger.Debugf(format, args...)
}
