package forest

import (
	"io"
	"log/slog"
)

// NewLogger returns a text logger writing to w at the given minimum level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// LevelFromFlags maps the usual -vv, -v and -q command line flags to a log
// level. Very verbose wins over verbose, which wins over quiet; with none
// set the level is Warn.
func LevelFromFlags(vv, v, quiet bool) slog.Level {
	switch {
	case vv:
		return slog.LevelDebug
	case v:
		return slog.LevelInfo
	case quiet:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// orDiscard returns log, or a logger that drops everything if log is nil.
func orDiscard(log *slog.Logger) *slog.Logger {
	if log != nil {
		return log
	}
	return slog.New(slog.DiscardHandler)
}
