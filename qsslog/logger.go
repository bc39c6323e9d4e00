package qsslog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger wraps a zerolog.Logger with the narrow set of calls this module's
// error-handling policy needs: Warn (log and continue) and Error (log and
// abort the current batch), plus Info for non-error operational traces.
// The simulation loop logs both pass-limit relaxation and a failed trigger
// advance at Warn.
type Logger struct {
	z zerolog.Logger
}

// New constructs a Logger writing structured JSON to w at the given
// minimum level. Passing nil for w defaults to os.Stderr, and an empty
// level string defaults to "info".
func New(w io.Writer, level string) Logger {
	if w == nil {
		w = os.Stderr
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return Logger{z: zerolog.New(w).Level(lvl).With().Timestamp().Logger()}
}

// Nop returns a Logger that discards every event, for tests and callers
// that don't want log output.
func Nop() Logger {
	return Logger{z: zerolog.Nop()}
}

func (l Logger) Info() *zerolog.Event  { return l.z.Info() }
func (l Logger) Warn() *zerolog.Event  { return l.z.Warn() }
func (l Logger) Error() *zerolog.Event { return l.z.Error() }

// With returns a child Logger with the given component name attached, as
// the "component" field, to every subsequent event.
func (l Logger) With(component string) Logger {
	return Logger{z: l.z.With().Str("component", component).Logger()}
}
