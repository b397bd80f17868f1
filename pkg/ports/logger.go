// Package ports defines interfaces for external dependencies.
package ports

// LogLevel is the minimum severity a logger prints.
type LogLevel int

const (
	LevelDebug LogLevel = iota // per-frame and per-page details from stages
	LevelInfo                  // run progress from the orchestrator
	LevelWarn                  // debug output or cleanup failed; the run continues
	LevelError                 // the run is aborted
	LevelQuiet                 // nothing is printed
)

var levelNames = [...]string{
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
	LevelQuiet: "quiet",
}

// String returns the flag spelling of the level.
func (l LogLevel) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "unknown"
	}
	return levelNames[l]
}

// ParseLogLevel parses a level name. Unknown names mean LevelInfo.
func ParseLogLevel(s string) LogLevel {
	for i, name := range levelNames {
		if name == s {
			return LogLevel(i)
		}
	}
	return LevelInfo
}

// Logger prints printf-style messages. msg doubles as the go-l10n lexicon
// key, so it must be a constant format string and arguments must not be
// pre-formatted into it.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})

	// WithComponent returns a logger that prefixes every line with [component].
	WithComponent(component string) Logger
}
