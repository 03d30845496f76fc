package notify

import (
	"sync"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Logger is the structured logger type used throughout this package, an
// alias for the logiface logger bound to stumpy's zero-allocation JSON
// event implementation (see logiface-stumpy's ExampleEvent_Bytes_...
// example). This mirrors eventloop/logging.go's package-level structured
// logging hook, but targets the real logiface+stumpy dependency the
// monorepo already ships, instead of a hand-rolled Logger interface.
type Logger = logiface.Logger[*stumpy.Event]

var (
	defaultLoggerMu sync.RWMutex
	defaultLogger   = stumpy.L.New(stumpy.L.WithStumpy())
)

// SetLogger installs the package-level default logger used by dispatchers
// that were not configured with [WithLogger]. Passing nil restores a
// default stumpy-backed logger.
func SetLogger(l *Logger) {
	defaultLoggerMu.Lock()
	defer defaultLoggerMu.Unlock()
	if l == nil {
		l = stumpy.L.New(stumpy.L.WithStumpy())
	}
	defaultLogger = l
}

func globalLogger() *Logger {
	defaultLoggerMu.RLock()
	defer defaultLoggerMu.RUnlock()
	return defaultLogger
}
