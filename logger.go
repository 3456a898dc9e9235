package agentrun

import (
	"log"
	"os"
)

// Logger is the interface the SDK uses for diagnostic logging.
type Logger interface {
	// Debugf logs a formatted debug message.
	Debugf(format string, args ...any)
}

// noopLogger discards all messages. It is the default when verbose logging
// is not enabled.
type noopLogger struct{}

func (noopLogger) Debugf(string, ...any) {}

// stderrLogger writes debug messages to standard error.
type stderrLogger struct {
	out *log.Logger
}

func (l *stderrLogger) Debugf(format string, args ...any) {
	l.out.Printf(format, args...)
}

// debugEnabled reports whether the given environment value enables verbose
// logging. The disabling values form an allow-list: "", "0", "false",
// "FALSE" and "False" disable; any other value enables.
func debugEnabled(value string) bool {
	switch value {
	case "", "0", "false", "FALSE", "False":
		return false
	}
	return true
}

// newLoggerFromEnv builds the logger once, at client construction, from the
// AGENTRUN_DEBUG environment variable. The logger lives as long as the
// client; there is no process-wide mutable flag.
func newLoggerFromEnv() Logger {
	if debugEnabled(os.Getenv(envDebug)) {
		return &stderrLogger{out: log.New(os.Stderr, "agentrun: ", log.LstdFlags)}
	}
	return noopLogger{}
}
