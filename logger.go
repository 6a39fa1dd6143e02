package hwlayer

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every record. Enabled reports false, so layer traces
// are never formatted while logging is off.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger returns the default silent logger.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr holds the active logger; render threads read it while the
// host may replace it.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger routes the diagnostics of hwlayer and its sub-packages to l.
// Pass nil to silence them again, which is also the default. It may be
// called while layers are in use.
//
// What is logged, by level:
//   - [slog.LevelDebug]: one "<op> HW Layer DisplayList <node> <w>x<h>"
//     record per layer transition (Allocate, Reset, ContextLost, Destroy)
//     carrying "api" and "handle" attributes
//   - [slog.LevelInfo]: "devicecache: initialized" / "devicecache: terminated"
//     and "renderstate: context lost" with the number of live layers
//   - [slog.LevelWarn]: a driver that returned no handle or could not back
//     a texture with storage; the layer stays unallocated
//
// The layer trace is only formatted when Debug is enabled:
//
//	hwlayer.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the logger set by SetLogger. Drivers, caches and layers
// all log through it.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
