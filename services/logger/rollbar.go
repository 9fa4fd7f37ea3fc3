package logsvc

import (
	"log"

	"github.com/rollbar/rollbar-go"

	"github.com/oetutor/tutorhub/core"
)

// RollbarLogger mirrors everything to stdout and forwards errors to
// rollbar. Only used when a token is configured.
type RollbarLogger struct {
	std *log.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetEnabled(conf.RollbarToken != "")
	return &RollbarLogger{std: std}
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	l.std.Println(append([]interface{}{"INFO:", msg}, args...)...)
	rollbar.Info(append([]interface{}{msg}, args...)...)
}

func (l RollbarLogger) Error(msg string, err error, args ...interface{}) {
	l.std.Println(append([]interface{}{"ERROR:", msg, err}, args...)...)
	rollbar.Error(append([]interface{}{msg, err}, args...)...)
}

// Close flushes queued items; call on shutdown.
func (l RollbarLogger) Close() error {
	rollbar.Close()
	return nil
}
