package switchgrid

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/switchgrid/render"
)

func TestNopHandler_Enabled(t *testing.T) {
	h := nopHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(context.Background(), level) {
			t.Errorf("nopHandler.Enabled(%v) = true, want false", level)
		}
	}
}

func TestNopHandler_WithAttrs(t *testing.T) {
	h := nopHandler{}
	if _, ok := h.WithAttrs([]slog.Attr{slog.String("key", "val")}).(nopHandler); !ok {
		t.Error("nopHandler.WithAttrs() did not return nopHandler")
	}
	if _, ok := h.WithGroup("group").(nopHandler); !ok {
		t.Error("nopHandler.WithGroup() did not return nopHandler")
	}
}

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default logger should not be enabled for %v", level)
		}
	}
}

func TestSetLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	custom := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	SetLogger(custom)

	if Logger() != custom {
		t.Error("Logger() did not return the custom logger set via SetLogger")
	}
	Logger().Info("test message", "key", "value")
	if !strings.Contains(buf.String(), "test message") {
		t.Errorf("expected log output to contain 'test message', got: %s", buf.String())
	}
}

func TestSetLoggerNilRestoresSilent(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	SetLogger(slog.Default())
	SetLogger(nil)

	l := Logger()
	if l == nil {
		t.Fatal("SetLogger(nil) should set nop logger, not nil")
	}
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should produce a disabled logger")
	}
}

// loggingTarget records the logger it receives.
type loggingTarget struct {
	*render.SoftwareTarget
	logger *slog.Logger
}

func (t *loggingTarget) SetLogger(l *slog.Logger) { t.logger = l }

func TestSetLoggerPropagatesToTargets(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	target := &loggingTarget{SoftwareTarget: render.NewSoftwareTarget()}
	s, err := New(target, WithOverlay(nil))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if target.logger != orig {
		t.Error("New() did not pass the current logger to the target")
	}

	custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	SetLogger(custom)
	if target.logger != custom {
		t.Error("SetLogger did not propagate to a live target")
	}

	s.Close()
	SetLogger(orig)
	if target.logger != custom {
		t.Error("SetLogger propagated to a closed surface's target")
	}
}

func TestSetLoggerReachesTargetOfOpenSurface(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	target := &loggingTarget{SoftwareTarget: render.NewSoftwareTarget()}
	a, err := New(target, WithOverlay(nil))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	b, err := New(target, WithOverlay(nil))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer b.Close()

	a.Close()
	custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	SetLogger(custom)
	if target.logger != custom {
		t.Error("SetLogger did not reach a target still used by an open surface")
	}
}
