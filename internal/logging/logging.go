// Package logging builds the slog handlers used by the command-line tool and
// the MCP server.
//
// Logs always go to stderr: stdout carries the converter's result line and,
// for the server, the JSON-RPC stream.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// EnvLevel names the environment variable that selects the log level.
const EnvLevel = "TRANSPARENT_BG_LOG_LEVEL"

// ParseLevel maps a level name to a slog.Level. Unknown or empty names fall
// back to def.
func ParseLevel(name string, def slog.Level) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return def
	}
}

// NewTerminalHandler returns a tint handler writing to w. Colour is only
// enabled when w is a terminal.
func NewTerminalHandler(w io.Writer, level slog.Leveler) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    !isTerminal(w),
	})
}

// New returns a logger writing to stderr at the given level.
func New(level slog.Leveler) *slog.Logger {
	return slog.New(NewTerminalHandler(os.Stderr, level))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(tint.NewHandler(io.Discard, &tint.Options{Level: slog.LevelError + 1, NoColor: true}))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
