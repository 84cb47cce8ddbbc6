package logsvc

import (
	"log"

	"github.com/trezcool/kazi/core"
)

// ConsoleLogger writes structured-ish lines to a std logger; the default for
// the console apps and for tests.
type ConsoleLogger struct {
	std     *log.Logger
	debug   bool
	enabled bool
}

var _ core.Logger = (*ConsoleLogger)(nil)

func NewConsoleLogger(std *log.Logger, conf *core.Config) *ConsoleLogger {
	return &ConsoleLogger{std: std, debug: conf.Debug, enabled: true}
}

func (l *ConsoleLogger) Enable(enabled bool) {
	l.enabled = enabled
}

func (l *ConsoleLogger) Debug(msg string, args ...interface{}) {
	if l.enabled && l.debug {
		l.print("DEBUG: "+msg, args)
	}
}

func (l *ConsoleLogger) Info(msg string, args ...interface{}) {
	if l.enabled {
		l.print("INFO: "+msg, args)
	}
}

func (l *ConsoleLogger) Error(msg string, args ...interface{}) {
	if l.enabled {
		l.print("ERROR: "+msg, args)
	}
}

func (l *ConsoleLogger) print(msg string, args []interface{}) {
	l.std.Println(msg)
	for _, arg := range args {
		l.std.Printf("%+v\n", arg)
	}
}
