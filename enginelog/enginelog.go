// Package enginelog is the structured logging facade shared by the search
// loop and the self-play harness: a levelled, module-tagged logger in
// place of a bare *log.Logger field.
package enginelog

import (
	"os"

	logging "github.com/op/go-logging"
)

// Logger wraps a named go-logging backend. The zero value is not usable;
// construct one with New.
type Logger struct {
	log *logging.Logger
}

var format = logging.MustStringFormatter(
	`%{time:15:04:05.000} %{level:.4s} %{module}: %{message}`,
)

// New returns a Logger tagged with module (typically the package name:
// "mcts", "selfplay", "playout"), writing to stderr at the given minimum
// level.
func New(module string, level logging.Level) *Logger {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatted := logging.NewBackendFormatter(backend, format)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(level, module)

	log := logging.MustGetLogger(module)
	log.SetBackend(leveled)
	return &Logger{log: log}
}

func (l *Logger) Debugf(format string, args ...interface{}) { l.log.Debugf(format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.log.Infof(format, args...) }
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.log.Warningf(format, args...)
}
func (l *Logger) Errorf(format string, args ...interface{}) { l.log.Errorf(format, args...) }

// Noop returns a Logger that only surfaces CRITICAL-level messages, for
// callers (tests, library embedders) that don't want search-loop output.
func Noop() *Logger {
	return New("weiqi", logging.CRITICAL)
}
