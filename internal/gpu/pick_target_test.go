//go:build !nogpu

package gpu

import (
	"bytes"
	"encoding/binary"
	"errors"
	"log/slog"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/switchgrid/pick"
	"github.com/gogpu/switchgrid/render"
)

// createNoopDevice creates a noop device and queue for testing.
// Returns the device, queue, and a cleanup function.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

func newNoopTarget(t *testing.T) *PickTarget {
	t.Helper()
	device, queue, cleanup := createNoopDevice(t)
	t.Cleanup(cleanup)
	target, err := NewPickTarget(device, queue)
	if err != nil {
		t.Fatalf("NewPickTarget failed: %v", err)
	}
	t.Cleanup(target.Destroy)
	return target
}

func testPanel() *render.Mesh {
	up := mgl32.Vec3{0, 1, 0}
	c := render.Color{0.8, 0.8, 0.8, 1}
	m := &render.Mesh{}
	for _, p := range []mgl32.Vec3{
		{-50, 0, 50}, {50, 0, 50}, {50, 0, -50},
		{-50, 0, 50}, {50, 0, -50}, {-50, 0, -50},
	} {
		m.Vertices = append(m.Vertices, render.Vertex{Position: p, Normal: up, Color: c})
	}
	return m
}

func TestNewPickTargetNilDevice(t *testing.T) {
	if _, err := NewPickTarget(nil, nil); !errors.Is(err, ErrNilDevice) {
		t.Errorf("NewPickTarget(nil, nil) error = %v, want ErrNilDevice", err)
	}
}

func TestPickTargetResize(t *testing.T) {
	target := newNoopTarget(t)

	if target.attachments.ready() {
		t.Fatal("attachments exist before Resize")
	}
	if err := target.Resize(320, 240); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if target.Width() != 320 || target.Height() != 240 {
		t.Errorf("size = %dx%d, want 320x240", target.Width(), target.Height())
	}
	if target.attachments.colorTex == nil || target.attachments.idTex == nil || target.attachments.depthTex == nil {
		t.Error("expected color, id and depth textures after Resize")
	}

	color := target.attachments.colorTex
	if err := target.Resize(320, 240); err != nil {
		t.Fatal(err)
	}
	if target.attachments.colorTex != color {
		t.Error("Resize to the same size recreated textures")
	}

	if err := target.Resize(0, 240); err != nil {
		t.Fatalf("Resize(0, 240) error = %v, want nil", err)
	}
	if target.attachments.ready() || target.Width() != 0 {
		t.Error("zero-size Resize did not release the attachments")
	}
}

func TestPickTargetDraw(t *testing.T) {
	target := newNoopTarget(t)
	frame := render.DefaultCamera().Frame(200, 150, render.DefaultBackground)

	// No attachments: Draw is a no-op.
	if err := target.Draw(frame, nil); err != nil {
		t.Fatalf("Draw before Resize failed: %v", err)
	}
	if target.pipeline.ready() {
		t.Error("pipeline created without attachments")
	}

	if err := target.Resize(200, 150); err != nil {
		t.Fatal(err)
	}
	instances := []render.Instance{
		{Mesh: testPanel(), Model: mgl32.Ident4(), ID: 0},
		{Mesh: testPanel(), Model: mgl32.Translate3D(120, 0, 0), ID: 1},
	}
	if err := target.Draw(frame, instances); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if !target.pipeline.ready() {
		t.Error("pipeline not created by Draw")
	}
	if got, want := len(target.vertexData), 12*panelVertexStride; got != want {
		t.Errorf("vertex data = %d bytes, want %d", got, want)
	}

	// Empty frames clear without drawing.
	if err := target.Draw(frame, nil); err != nil {
		t.Fatalf("empty Draw failed: %v", err)
	}
	if err := target.Draw(nil, nil); !errors.Is(err, render.ErrNilFrame) {
		t.Errorf("Draw(nil) error = %v, want ErrNilFrame", err)
	}
}

func TestPickTargetReadObjectID(t *testing.T) {
	target := newNoopTarget(t)

	if got, err := target.ReadObjectID(1, 1); err != nil || got != pick.None {
		t.Errorf("ReadObjectID before Resize = (%d, %v), want (None, nil)", got, err)
	}

	if err := target.Resize(64, 64); err != nil {
		t.Fatal(err)
	}
	frame := render.DefaultCamera().Frame(64, 64, render.DefaultBackground)
	if err := target.Draw(frame, nil); err != nil {
		t.Fatal(err)
	}
	if got, err := target.ReadObjectID(10, 20); err != nil || got != pick.None {
		t.Errorf("ReadObjectID on cleared target = (%d, %v), want (None, nil)", got, err)
	}
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {64, 0}, {0, 64}} {
		if got, err := target.ReadObjectID(p[0], p[1]); err != nil || got != pick.None {
			t.Errorf("ReadObjectID(%d, %d) = (%d, %v), want (None, nil)", p[0], p[1], got, err)
		}
	}
}

func TestPickTargetColorImage(t *testing.T) {
	target := newNoopTarget(t)

	img, err := target.ColorImage()
	if err != nil || !img.Rect.Empty() {
		t.Errorf("ColorImage before Resize = (%v, %v), want empty", img.Rect, err)
	}

	// 70 pixels * 4 bytes is not a multiple of the copy alignment.
	if err := target.Resize(70, 3); err != nil {
		t.Fatal(err)
	}
	img, err = target.ColorImage()
	if err != nil {
		t.Fatalf("ColorImage failed: %v", err)
	}
	if img.Rect.Dx() != 70 || img.Rect.Dy() != 3 {
		t.Errorf("ColorImage size = %v, want 70x3", img.Rect)
	}
}

func TestPickTargetDestroyIdempotent(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	released := 0
	target, err := NewPickTarget(device, queue, WithOwnedDevice(func() { released++ }))
	if err != nil {
		t.Fatal(err)
	}
	if err := target.Resize(16, 16); err != nil {
		t.Fatal(err)
	}
	target.Destroy()
	target.Destroy()
	if released != 1 {
		t.Errorf("owned device released %d times, want 1", released)
	}
	if err := target.Resize(16, 16); err != nil {
		t.Errorf("Resize after Destroy error = %v, want nil", err)
	}
	if target.Width() != 0 {
		t.Errorf("Width after Destroy = %d, want 0", target.Width())
	}
}

func TestPanelShaderCompiles(t *testing.T) {
	if panelShaderSource == "" {
		t.Fatal("panel shader source is empty")
	}
	for _, entry := range []string{"fn vs_main", "fn fs_main", "@location(1) id"} {
		if !strings.Contains(panelShaderSource, entry) {
			t.Errorf("panel shader missing %q", entry)
		}
	}
}

func TestPickTargetSPIRV(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	target, err := NewPickTarget(device, queue, WithSPIRV())
	if err != nil {
		t.Fatal(err)
	}
	defer target.Destroy()
	if err := target.Resize(8, 8); err != nil {
		t.Fatal(err)
	}
	frame := render.DefaultCamera().Frame(8, 8, render.DefaultBackground)
	if err := target.Draw(frame, nil); err != nil {
		if strings.Contains(err.Error(), "compile") {
			t.Skipf("naga limitation: %v", err)
		}
		t.Fatalf("Draw with SPIR-V shader failed: %v", err)
	}
}

func TestBuildPanelVertices(t *testing.T) {
	verts := []render.WorldVertex{{
		Position: mgl32.Vec3{1, 2, 3},
		Normal:   mgl32.Vec3{0, 1, 0},
		Color:    render.Color{0.5, 0.25, 0.125, 1},
		ID:       pick.Encode(14),
	}}
	buf := buildPanelVertices(nil, verts)
	if len(buf) != panelVertexStride {
		t.Fatalf("len = %d, want %d", len(buf), panelVertexStride)
	}
	f := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
	}
	checks := []struct {
		off  int
		want float32
	}{
		{0, 1}, {4, 2}, {8, 3},
		{16, 1},
		{24, 0.5}, {36, 1},
		{40, pick.Encode(14)[0]}, {44, pick.Encode(14)[1]}, {52, 1},
	}
	for _, c := range checks {
		if got := f(c.off); got != c.want {
			t.Errorf("float at %d = %v, want %v", c.off, got, c.want)
		}
	}
}

func TestMakePanelUniformDepthRange(t *testing.T) {
	cam := render.DefaultCamera()
	frame := cam.Frame(100, 100, render.DefaultBackground)
	buf := makePanelUniform(frame)
	if len(buf) != panelUniformSize {
		t.Fatalf("len = %d, want %d", len(buf), panelUniformSize)
	}
	var m mgl32.Mat4
	for i := range m {
		m[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}

	// Points on the near and far planes land at depth 0 and 1.
	dir := cam.Center.Sub(cam.Eye).Normalize()
	for _, tc := range []struct {
		dist, want float32
	}{{cam.Near, 0}, {cam.Far, 1}} {
		clip := m.Mul4x1(cam.Eye.Add(dir.Mul(tc.dist)).Vec4(1))
		if got := clip.Z() / clip.W(); math.Abs(float64(got-tc.want)) > 1e-4 {
			t.Errorf("depth at distance %v = %v, want %v", tc.dist, got, tc.want)
		}
	}
}

func TestPickTargetLogger(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	t.Cleanup(cleanup)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	target, err := NewPickTarget(device, queue, WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}
	defer target.Destroy()

	if err := target.Resize(32, 16); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "pick target resize") {
		t.Errorf("log output = %q, want a resize record", buf.String())
	}
	if target.Adapter() != "" {
		t.Errorf("Adapter() = %q for a borrowed device, want empty", target.Adapter())
	}

	buf.Reset()
	target.SetLogger(nil)
	if err := target.Resize(64, 16); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("SetLogger(nil) still logs: %q", buf.String())
	}
}

func TestPickTargetSetLoggerWhileDrawing(t *testing.T) {
	target := newNoopTarget(t)
	loggers := []*slog.Logger{
		slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelDebug})),
		nil,
	}

	var wg sync.WaitGroup
	done := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-done:
				return
			default:
				target.SetLogger(loggers[i%len(loggers)])
			}
		}
	}()

	for i := range 50 {
		if err := target.Resize(16+i%2, 16); err != nil {
			t.Errorf("Resize() error = %v", err)
			break
		}
		if _, err := target.ReadObjectID(4, 4); err != nil {
			t.Errorf("ReadObjectID() error = %v", err)
			break
		}
	}
	close(done)
	wg.Wait()
}
