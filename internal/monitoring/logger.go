package monitoring

import (
	"io"
	"log"
	"sync"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

var (
	streamsMu   sync.RWMutex
	opsLogger   *log.Logger
	diagLogger  *log.Logger
	traceLogger *log.Logger
)

// SetLogWriters configures the three analysis logging streams.
// Pass nil for any writer to disable that stream.
//
//   - ops: actionable warnings (rejected input, recovered faults)
//   - diag: per-analysis stage summaries, tuning context
//   - trace: per-frame / per-candidate telemetry
func SetLogWriters(ops, diag, trace io.Writer) {
	streamsMu.Lock()
	defer streamsMu.Unlock()
	opsLogger = newLogger("[contact] ", ops)
	diagLogger = newLogger("[contact] ", diag)
	traceLogger = newLogger("[contact] ", trace)
}

// SetLegacyLogger routes all three streams to a single writer.
// Pass nil to disable all logging.
func SetLegacyLogger(w io.Writer) {
	SetLogWriters(w, w, w)
}

func newLogger(prefix string, w io.Writer) *log.Logger {
	if w == nil {
		return nil
	}
	return log.New(w, prefix, log.LstdFlags|log.Lmicroseconds)
}

// Opsf logs to the ops stream.
func Opsf(format string, args ...interface{}) {
	streamsMu.RLock()
	l := opsLogger
	streamsMu.RUnlock()
	if l != nil {
		l.Printf(format, args...)
	}
}

// Diagf logs to the diag stream.
func Diagf(format string, args ...interface{}) {
	streamsMu.RLock()
	l := diagLogger
	streamsMu.RUnlock()
	if l != nil {
		l.Printf(format, args...)
	}
}

// Tracef logs to the trace stream.
func Tracef(format string, args ...interface{}) {
	streamsMu.RLock()
	l := traceLogger
	streamsMu.RUnlock()
	if l != nil {
		l.Printf(format, args...)
	}
}
