// Package logging configures the zerolog logger used by the command line.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Log formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Options selects the level, format and destination of log output.
type Options struct {
	Level  string
	Format string
	Out    io.Writer
}

// New builds a logger from opts. An empty or unknown level falls back to
// info; any format other than console produces JSON lines.
func New(opts Options) zerolog.Logger {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	level, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}

	if opts.Format == FormatConsole {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
