// Package obslog provides the engine's two-stream logger: an Info
// stream for tick/subsystem progress and an Error stream for warnings
// and failures, mirroring the teacher's InfoLog/ErrorLog split
// (setupLogging in the teacher's utils.go) but backed by zerolog
// instead of the standard library's *log.Logger.
package obslog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger bundles the two streams. Subsystems take one of these, never
// the global zerolog logger directly, so tests can redirect both
// streams to a buffer.
type Logger struct {
	Info  zerolog.Logger
	Error zerolog.Logger
}

// New builds a Logger writing Info at info level and Error at warn
// level and above, both to w (os.Stdout in production, a bytes.Buffer
// in tests).
func New(w io.Writer) *Logger {
	base := zerolog.New(w).With().Timestamp().Logger()
	return &Logger{
		Info:  base.Level(zerolog.InfoLevel),
		Error: base.Level(zerolog.WarnLevel),
	}
}

// Default returns a Logger writing console-formatted output to
// stderr, for command-line tools.
func Default() *Logger {
	cw := zerolog.ConsoleWriter{Out: os.Stderr}
	return New(cw)
}

// Tick returns a child Info logger pre-populated with the current
// tick number, so every subsystem log line in a tick carries it.
func (l *Logger) Tick(tick int64) zerolog.Logger {
	return l.Info.With().Int64("tick", tick).Logger()
}

// Subsystem returns a child Error logger tagged with the subsystem
// name and entity id, for the "log and continue with the next entity"
// policy of spec §7.
func (l *Logger) Subsystem(name string, entity uint64) zerolog.Logger {
	return l.Error.With().Str("subsystem", name).Uint64("entity", entity).Logger()
}
