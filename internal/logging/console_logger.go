package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Format selects how ConsoleLogger renders entries.
type Format int

const (
	// FormatConsole renders one human-readable line per entry.
	FormatConsole Format = iota
	// FormatJSON renders one JSON object per entry.
	FormatJSON
)

// ConsoleLogger writes log messages to stderr through zerolog.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	log zerolog.Logger
}

// NewLogger creates a ConsoleLogger writing to w in the given format.
// Every entry carries a "run" field that is unique per logger.
func NewLogger(w io.Writer, format Format, verbose bool) *ConsoleLogger {
	out := w
	if format == FormatConsole {
		out = zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    !isTerminal(w),
			TimeFormat: time.RFC3339,
		}
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	return &ConsoleLogger{
		log: zerolog.New(out).
			Level(level).
			With().
			Timestamp().
			Str("run", uuid.NewString()).
			Logger(),
	}
}

func isTerminal(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	l.log.Debug().Msg(render(format, args))
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.log.Info().Msg(render(format, args))
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.log.Error().Msg(render(format, args))
}

func render(format string, args []interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
