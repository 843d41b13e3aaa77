package logger

import (
	"sync"
)

var (
	globalMu     sync.RWMutex
	globalLogger = Nop()
)

// SetGlobal replaces the process logger used by Get. A nil l resets it to Nop.
// Client instances never read it; they carry their own logger.
func SetGlobal(l *Logger) {
	if l == nil {
		l = Nop()
	}
	globalMu.Lock()
	globalLogger = l
	globalMu.Unlock()
}

// Global returns the process logger. It is silent until SetGlobal is called.
func Global() *Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// registry is the named-logger registry.
var registry = &loggerRegistry{
	loggers: make(map[string]*Logger),
}

type loggerRegistry struct {
	mu      sync.RWMutex
	loggers map[string]*Logger
}

// Register stores a named logger in the registry.
func Register(name string, l *Logger) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.loggers[name] = l
}

// Get retrieves a named logger. If the name is not registered it returns the
// global logger tagged with the requested component name.
func Get(name string) *Logger {
	registry.mu.RLock()
	l, ok := registry.loggers[name]
	registry.mu.RUnlock()
	if ok {
		return l
	}
	return Global().WithComponent(name)
}
