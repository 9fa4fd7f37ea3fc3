package core

// Logger reports application events; the rollbar implementation forwards
// errors to the error tracker when a token is configured.
type Logger interface {
	Info(msg string, args ...interface{})
	Error(msg string, err error, args ...interface{})
}
