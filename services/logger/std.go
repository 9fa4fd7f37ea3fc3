package logsvc

import (
	"log"

	"github.com/oetutor/tutorhub/core"
)

// StdLogger writes to a standard library logger.
type StdLogger struct {
	std *log.Logger
}

var _ core.Logger = (*StdLogger)(nil)

func NewStdLogger(std *log.Logger) *StdLogger {
	return &StdLogger{std: std}
}

func (l StdLogger) Info(msg string, args ...interface{}) {
	l.std.Println(append([]interface{}{"INFO:", msg}, args...)...)
}

func (l StdLogger) Error(msg string, err error, args ...interface{}) {
	l.std.Println(append([]interface{}{"ERROR:", msg, err}, args...)...)
}
