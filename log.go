package touchpad

import (
	"os"

	"github.com/rs/zerolog"
)

// bugLog is the process-wide sink for internal argument-check failures —
// state machines receiving input that the calling convention says cannot
// happen. It mirrors the C core's separate argcheck/error log, kept apart
// from the per-instance diagnostic logger below so a caller can silence
// routine tap/scroll chatter without also losing bug reports.
var bugLog = NewLogger().Level(zerolog.WarnLevel)

// SetBugLogger overrides the process-wide bug log sink. Intended for tests
// that want to assert no bugs were logged, or for embedding applications
// that route all logging through one sink.
func SetBugLogger(l zerolog.Logger) {
	bugLog = l
}

func logBug(msg string, fields ...interface{}) {
	ev := bugLog.Warn()
	for i := 0; i+1 < len(fields); i += 2 {
		key, _ := fields[i].(string)
		ev = ev.Interface(key, fields[i+1])
	}
	ev.Msg(msg)
}

// NewLogger returns the default per-instance structured logger, writing
// leveled, timestamped lines to stderr. Callers may build their own
// zerolog.Logger and pass it to NewTouchpad instead.
func NewLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05.000"}).
		With().Timestamp().Logger()
}
