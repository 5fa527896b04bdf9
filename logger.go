package switchgrid

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/switchgrid/render"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

// liveSurfaces holds the open surfaces, so that SetLogger reaches targets
// created before it was called. A surface stays registered until Close.
var liveSurfaces sync.Map // *Surface -> struct{}

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for switchgrid and all its sub-packages.
// By default, switchgrid produces no log output.
//
// SetLogger is safe for concurrent use. Pass nil to restore the default
// silent behavior.
//
// Log levels used by switchgrid:
//   - [slog.LevelDebug]: per-frame diagnostics (pick coordinates, decoded IDs, target resize)
//   - [slog.LevelInfo]: lifecycle events (GPU adapter selected, new game, win)
//   - [slog.LevelWarn]: non-fatal issues (readback failures ignored by hosts)
//
// Example:
//
//	switchgrid.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	liveSurfaces.Range(func(key, _ any) bool {
		propagateLogger(key.(*Surface).target, l)
		return true
	})
}

// Logger returns the current logger used by switchgrid.
// Sub-packages (gpu/, integration/gridcanvas/) call this to share the same
// logger configuration without introducing import cycles.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by targets that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// propagateLogger passes the logger to a target if it implements
// loggerSetter.
func propagateLogger(t render.Target, l *slog.Logger) {
	if ls, ok := t.(loggerSetter); ok {
		ls.SetLogger(l)
	}
}
