package slot

import (
	"os"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

var logger atomic.Pointer[log.Logger]

func init() {
	logger.Store(log.NewWithOptions(os.Stderr, log.Options{
		Level:  log.WarnLevel,
		Prefix: "slot",
	}))
}

// Logger returns the logger slots report to.
func Logger() *log.Logger { return logger.Load() }

// SetLogger replaces the package logger. A nil l restores a logger that
// discards everything below log.FatalLevel.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.NewWithOptions(os.Stderr, log.Options{Level: log.FatalLevel})
	}
	logger.Store(l)
}
