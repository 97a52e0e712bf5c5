package logsvc

import (
	"io"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/trezcool/campus/core"
	"github.com/trezcool/campus/core/auth"
)

// ConsoleLogger writes structured logs through zerolog.
type ConsoleLogger struct {
	zl zerolog.Logger
}

var _ core.Logger = (*ConsoleLogger)(nil)

func NewConsoleLogger(zl zerolog.Logger) *ConsoleLogger {
	return &ConsoleLogger{zl: zl}
}

// NewHumanLogger returns a ConsoleLogger writing human readable lines to w.
func NewHumanLogger(w io.Writer, debug bool) *ConsoleLogger {
	lvl := zerolog.InfoLevel
	if debug {
		lvl = zerolog.DebugLevel
	}
	zl := zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).
		Level(lvl).
		With().Timestamp().Logger()
	return NewConsoleLogger(zl)
}

// NewNopLogger discards everything.
func NewNopLogger() *ConsoleLogger {
	return NewConsoleLogger(zerolog.Nop())
}

// With returns a logger adding key=val to every entry.
func (l ConsoleLogger) With(key, val string) *ConsoleLogger {
	return &ConsoleLogger{zl: l.zl.With().Str(key, val).Logger()}
}

// expected fmt: msg | error, map[string]interface{}, auth.User
func (l ConsoleLogger) log(ev *zerolog.Event, msg string, args []interface{}) {
	var nErrs int
	for _, arg := range args {
		switch a := arg.(type) {
		case nil:
		case error:
			if nErrs == 0 {
				ev = ev.Err(a)
			} else {
				ev = ev.AnErr("error"+strconv.Itoa(nErrs), a)
			}
			nErrs++
		case map[string]interface{}:
			ev = ev.Fields(a)
		case auth.User:
			ev = ev.Str("user", a.ID).Str("role", string(a.Role))
		case string:
			ev = ev.Str("detail", a)
		default:
			ev = ev.Interface("extra", a)
		}
	}
	ev.Msg(msg)
}

func (l ConsoleLogger) Debug(msg string, args ...interface{}) { l.log(l.zl.Debug(), msg, args) }
func (l ConsoleLogger) Info(msg string, args ...interface{})  { l.log(l.zl.Info(), msg, args) }
func (l ConsoleLogger) Warn(msg string, args ...interface{})  { l.log(l.zl.Warn(), msg, args) }
func (l ConsoleLogger) Error(msg string, args ...interface{}) { l.log(l.zl.Error(), msg, args) }
func (l ConsoleLogger) Fatal(msg string, args ...interface{}) { l.log(l.zl.Fatal(), msg, args) }
