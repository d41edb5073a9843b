package scroll

import (
	"log/slog"
	"os"
)

// scrollLogLevel controls the package logger level.
// Set the SCROLL_DEBUG environment variable to enable debug logging.
var scrollLogLevel = new(slog.LevelVar)

func init() {
	if os.Getenv("SCROLL_DEBUG") != "" {
		scrollLogLevel.Set(slog.LevelDebug)
	} else {
		scrollLogLevel.Set(slog.LevelInfo)
	}
}

// logger is the package logger for virtualization and interaction debugging.
var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: scrollLogLevel}))

// DebugLoggingEnabled reports whether debug logging is active.
func DebugLoggingEnabled() bool {
	return scrollLogLevel.Level() <= slog.LevelDebug
}
