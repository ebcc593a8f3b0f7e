package crossdim

import (
	"os"
	"sync/atomic"

	"github.com/rs/zerolog"
)

var logger = newLoggerSlot()

func newLoggerSlot() *atomic.Pointer[zerolog.Logger] {
	l := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Str("component", "crossdim").Logger()
	p := new(atomic.Pointer[zerolog.Logger])
	p.Store(&l)
	return p
}

// Logger returns the package logger. Factories and scenes created without an
// explicit logger write here.
func Logger() zerolog.Logger {
	return *logger.Load()
}

// SetLogger replaces the package logger.
func SetLogger(l zerolog.Logger) {
	logger.Store(&l)
}

// Alerter surfaces a failure to whoever is running the engine. Load failures
// are alerted rather than returned.
type Alerter interface {
	Alert(msg string)
}

// AlertFunc adapts a function to the Alerter interface.
type AlertFunc func(msg string)

// Alert calls f(msg).
func (f AlertFunc) Alert(msg string) { f(msg) }

// LogAlerter alerts by writing an error-level log line.
type LogAlerter struct {
	Log zerolog.Logger
}

// Alert logs msg at error level.
func (a LogAlerter) Alert(msg string) {
	a.Log.Error().Msg(msg)
}
